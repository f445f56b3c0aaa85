package view

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/client"
	"github.com/MrJamesThe3rd/levaetras/internal/money"
	"github.com/MrJamesThe3rd/levaetras/internal/transaction"
)

type txState int

const (
	txStateTimeframe txState = iota
	txStateList
	txStateRecharge
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx *transaction.Transaction
}

func (i txItem) Title() string {
	origin := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Origin))

	return fmt.Sprintf("%s  %s  %s  %s", FormatDate(i.tx.CreatedAt), FormatAmount(i.tx.Signed()), origin, i.tx.ClientName)
}

func (i txItem) Description() string {
	return i.tx.Description
}

func (i txItem) FilterValue() string {
	return i.tx.ClientName + " " + i.tx.Description
}

type TransactionsModel struct {
	CommonModel
	txService *transaction.Service
	clients   *client.Service

	state           txState
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form
	txs             []*transaction.Transaction

	startDate time.Time
	endDate   time.Time
	allTime   bool
	loading   bool
	status    string
}

func NewTransactionsModel(txSvc *transaction.Service, clients *client.Service) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 100, 20)
	l.Title = "Transações"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		txService:       txSvc,
		clients:         clients,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
		list:            l,
	}
}

func (m TransactionsModel) Title() string { return "Transações pré-pagas" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: voltar | Enter: selecionar"
	case txStateList:
		return "Esc: voltar | n: nova recarga | /: filtrar"
	case txStateRecharge:
		return "Esc: cancelar | Enter/Tab: navegar"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.timeframePicker.Init()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.loading = true
		m.state = txStateList

		return m, m.loadTxsCmd()

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Erro: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.refreshListItems()

		if len(msg.txs) == 0 {
			m.status = "Nenhuma transação encontrada."
		}

		return m, nil

	case rechargeResultMsg:
		m.state = txStateList
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Erro ao registrar recarga: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Recarga de %s registrada para %s.", FormatAmount(msg.tx.Amount), msg.tx.ClientName)

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateRecharge:
		return m.updateRecharge(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.startRecharge()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startRecharge() (tea.Model, tea.Cmd) {
	ctx, cancel := DbCtx()
	defer cancel()

	clients, err := m.clients.List(ctx)
	if err != nil {
		m.status = fmt.Sprintf("Erro ao carregar clientes: %v", err)
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(clients))
	for _, c := range clients {
		if c.IsPrepaid() {
			options = append(options, huh.NewOption(c.Name, c.ID))
		}
	}

	if len(options) == 0 {
		m.status = "Nenhum cliente pré-pago cadastrado."
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("client").
				Title("Cliente").
				Options(options...),
			huh.NewSelect[string]().
				Key("origin").
				Title("Forma").
				Options(
					huh.NewOption("Pix", string(transaction.OriginRechargePix)),
					huh.NewOption("Cartão", string(transaction.OriginRechargeCard)),
					huh.NewOption("Manual", string(transaction.OriginRechargeManual)),
				),
			huh.NewInput().
				Key("amount").
				Title("Valor").
				Placeholder("R$ 0,00").
				Validate(func(s string) error {
					if !money.Parse(s).IsPositive() {
						return errors.New("informe um valor positivo")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateRecharge

	return m, m.form.Init()
}

func (m TransactionsModel) updateRecharge(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.rechargeCmd(
		m.form.GetString("client"),
		transaction.Origin(m.form.GetString("origin")),
		money.Parse(m.form.GetString("amount")),
	)
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Carregando transações...")
		}

		header := fmt.Sprintf("Saldo do período: %s\n", activeStyle(FormatAmount(m.net())))
		if m.status != "" {
			header = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + header
		}

		return lipgloss.NewStyle().Padding(1).Render(header + m.list.View())

	case txStateRecharge:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render("Nova recarga\n\n" + m.form.View())
	}

	return ""
}

func (m TransactionsModel) net() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range m.txs {
		total = total.Add(tx.Signed())
	}

	return total
}

func (m *TransactionsModel) refreshListItems() {
	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
}

// Messages

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := transaction.ListFilter{}

		if !m.allTime {
			start, end := m.startDate, m.endDate
			filter.StartDate = &start
			filter.EndDate = &end
		}

		txs, err := m.txService.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type rechargeResultMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m TransactionsModel) rechargeCmd(clientID string, origin transaction.Origin, amount decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.clients.Get(ctx, clientID)
		if err != nil {
			return rechargeResultMsg{err: err}
		}

		if c == nil {
			return rechargeResultMsg{err: fmt.Errorf("cliente %q não encontrado", clientID)}
		}

		tx, err := m.txService.Add(ctx, transaction.CreateParams{
			Type:         transaction.TypeCredit,
			Origin:       origin,
			Description:  "Recarga de saldo",
			Amount:       amount,
			ClientID:     c.ID,
			ClientName:   c.Name,
			ClientAvatar: c.Avatar,
		})

		return rechargeResultMsg{tx: tx, err: err}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc := i.Description(); desc != "" {
		fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
		return
	}

	fmt.Fprintln(w)
}
