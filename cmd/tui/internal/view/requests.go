package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/levaetras/internal/billing"
	"github.com/MrJamesThe3rd/levaetras/internal/courier"
	"github.com/MrJamesThe3rd/levaetras/internal/delivery"
)

type requestsState int

const (
	requestsStateBrowse requestsState = iota
	requestsStateCancel
	requestsStateAssign
)

var requestStatusFilters = []delivery.Status{
	"",
	delivery.StatusPending,
	delivery.StatusAccepted,
	delivery.StatusInProgress,
	delivery.StatusConcluded,
	delivery.StatusCancelled,
}

type RequestsModel struct {
	CommonModel
	requests *delivery.Service
	billing  *billing.Service
	couriers *courier.Service

	state    requestsState
	table    table.Model
	list     []*delivery.Request
	form     *huh.Form
	filterIx int

	loading bool
	err     error
	status  string
}

func NewRequestsModel(requests *delivery.Service, billingSvc *billing.Service, couriers *courier.Service) RequestsModel {
	return RequestsModel{
		requests: requests,
		billing:  billingSvc,
		couriers: couriers,
		table: newTable([]table.Column{
			{Title: "Código", Width: 10},
			{Title: "Data", Width: 12},
			{Title: "Cliente", Width: 24},
			{Title: "Status", Width: 14},
			{Title: "Rotas", Width: 6},
			{Title: "Taxas", Width: 14},
			{Title: "Repasse", Width: 14},
			{Title: "Entregador", Width: 18},
		}),
		loading: true,
	}
}

func (m RequestsModel) Title() string { return "Solicitações" }

func (m RequestsModel) ShortHelp() string {
	if m.state != requestsStateBrowse {
		return "Esc: cancelar"
	}

	return "Esc: voltar | a: avançar | c: concluir | x: cancelar | s: filtro | r: atualizar"
}

func (m RequestsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRequestsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.list = msg.requests
		m.refreshTable()

		return m, nil

	case requestActionMsg:
		m.state = requestsStateBrowse
		m.form = nil
		m.table.Focus()
		m.status = msg.describe()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == requestsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m RequestsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		req := m.selected()

		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.filterIx = (m.filterIx + 1) % len(requestStatusFilters)
			return m, m.loadCmd()
		case "a":
			if req == nil {
				return m, nil
			}

			switch req.Status {
			case delivery.StatusPending:
				return m, m.changeStatusCmd(req, delivery.StatusAccepted, delivery.Details{})
			case delivery.StatusAccepted:
				return m.enterAssign()
			}

			m.status = fmt.Sprintf("%s não pode avançar a partir de %s", req.Code, req.Status)

			return m, nil
		case "c":
			if req != nil {
				return m, m.changeStatusCmd(req, delivery.StatusConcluded, delivery.Details{})
			}
		case "x":
			if req != nil {
				return m.enterCancel()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RequestsModel) enterCancel() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("justification").
				Title("Justificativa").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a justificativa é obrigatória")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = requestsStateCancel
	m.table.Blur()

	return m, m.form.Init()
}

func (m RequestsModel) enterAssign() (tea.Model, tea.Cmd) {
	ctx, cancel := DbCtx()
	defer cancel()

	couriers, err := m.couriers.List(ctx)
	if err != nil {
		m.status = fmt.Sprintf("Erro ao carregar entregadores: %v", err)
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(couriers))
	for _, c := range couriers {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("courier").
				Title("Entregador").
				Options(options...),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = requestsStateAssign
	m.table.Blur()

	return m, m.form.Init()
}

func (m RequestsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = requestsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	req := m.selected()
	if req == nil {
		return m, nil
	}

	if m.state == requestsStateCancel {
		details := delivery.Details{Justification: m.form.GetString("justification")}
		return m, m.changeStatusCmd(req, delivery.StatusCancelled, details)
	}

	return m, m.assignCmd(req, m.form.GetString("courier"))
}

func (m RequestsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Carregando solicitações...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Erro: %v", m.err)))
	}

	label := "Todas"
	if s := requestStatusFilters[m.filterIx]; s != "" {
		label = string(s)
	}

	header := fmt.Sprintf("Filtro: [s] Status: %s", activeStyle(label))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBox(m.table),
	)

	if m.form != nil {
		title := "Cancelar solicitação"
		if m.state == requestsStateAssign {
			title = "Iniciar entrega"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m RequestsModel) selected() *delivery.Request {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	return m.list[idx]
}

func (m *RequestsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.list))
	for _, r := range m.list {
		rows = append(rows, table.Row{
			r.Code,
			FormatDate(r.CreatedAt),
			r.ClientName,
			string(r.Status),
			strconv.Itoa(len(r.Routes)),
			FormatAmount(r.TotalFee),
			FormatAmount(r.TotalPassthrough),
			r.CourierName,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadRequestsMsg struct {
	requests []*delivery.Request
	err      error
}

func (m RequestsModel) loadCmd() tea.Cmd {
	filter := delivery.Filter{Status: requestStatusFilters[m.filterIx]}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		requests, err := m.requests.List(ctx, filter)

		return loadRequestsMsg{requests: requests, err: err}
	}
}

type requestActionMsg struct {
	code    string
	effects *billing.Effects
	err     error
}

func (msg requestActionMsg) describe() string {
	switch {
	case errors.Is(msg.err, billing.ErrReconciliationIncomplete):
		return fmt.Sprintf("%s: conciliação incompleta", msg.code)
	case msg.err != nil:
		return fmt.Sprintf("%s: %v", msg.code, msg.err)
	case msg.effects == nil:
		return fmt.Sprintf("%s não encontrada", msg.code)
	case msg.effects.Invoice != nil:
		return fmt.Sprintf("%s lançada na fatura %s", msg.code, msg.effects.Invoice.Number)
	case msg.effects.Transaction != nil:
		return fmt.Sprintf("%s debitada: %s", msg.code, FormatAmount(msg.effects.Transaction.Amount))
	case msg.effects.NoFinancialImpact:
		return fmt.Sprintf("%s concluída sem impacto financeiro", msg.code)
	default:
		return fmt.Sprintf("%s: %s", msg.code, msg.effects.Request.Status)
	}
}

func (m RequestsModel) changeStatusCmd(req *delivery.Request, status delivery.Status, details delivery.Details) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		effects, err := m.billing.UpdateRequestStatus(ctx, req.ID, status, details)

		return requestActionMsg{code: req.Code, effects: effects, err: err}
	}
}

func (m RequestsModel) assignCmd(req *delivery.Request, courierID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.couriers.Get(ctx, courierID)
		if err != nil {
			return requestActionMsg{code: req.Code, err: err}
		}

		if c == nil {
			return requestActionMsg{code: req.Code, err: fmt.Errorf("entregador %q não encontrado", courierID)}
		}

		details := delivery.Details{Courier: &delivery.CourierRef{ID: c.ID, Name: c.Name, Avatar: c.Avatar}}
		effects, err := m.billing.UpdateRequestStatus(ctx, req.ID, delivery.StatusInProgress, details)

		return requestActionMsg{code: req.Code, effects: effects, err: err}
	}
}
