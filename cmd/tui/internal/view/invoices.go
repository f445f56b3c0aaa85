package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/statement"
)

var invoiceStatusFilters = []invoice.Status{
	"",
	invoice.StatusOpen,
	invoice.StatusClosed,
	invoice.StatusPaid,
	invoice.StatusOverdue,
	invoice.StatusFinalized,
}

type InvoicesModel struct {
	CommonModel
	invoices *invoice.Service

	table    table.Model
	list     []*invoice.Invoice
	filterIx int
	detail   bool

	loading bool
	err     error
	status  string
}

func NewInvoicesModel(invoices *invoice.Service) InvoicesModel {
	return InvoicesModel{
		invoices: invoices,
		table: newTable([]table.Column{
			{Title: "Número", Width: 14},
			{Title: "Cliente", Width: 22},
			{Title: "Status", Width: 11},
			{Title: "Entregas", Width: 8},
			{Title: "Taxas", Width: 13},
			{Title: "Status Taxas", Width: 12},
			{Title: "Repasse", Width: 13},
			{Title: "Status Repasse", Width: 14},
			{Title: "Vencimento", Width: 11},
		}),
		loading: true,
	}
}

func (m InvoicesModel) Title() string { return "Faturas" }

func (m InvoicesModel) ShortHelp() string {
	return "Esc: voltar | Enter: extrato | t: taxas pagas | p: repasse feito | f: fechar | o: vencidas | s: filtro"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.list = msg.invoices
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Erro: %v", msg.err))
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		inv := m.selected()

		switch msg.String() {
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}

			return m, Back
		case "enter":
			m.detail = inv != nil && !m.detail
			return m, nil
		case "s":
			m.filterIx = (m.filterIx + 1) % len(invoiceStatusFilters)
			return m, m.loadCmd()
		case "o":
			return m, m.markOverdueCmd()
		case "t":
			if inv != nil {
				return m, m.actionCmd(inv, "taxas pagas", m.invoices.RecordFeePayment)
			}
		case "p":
			if inv != nil {
				return m, m.actionCmd(inv, "repasse realizado", m.invoices.RecordPassthroughPayment)
			}
		case "f":
			if inv != nil {
				return m, m.actionCmd(inv, "fechada", m.invoices.Close)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Carregando faturas...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Erro: %v", m.err)))
	}

	label := "Todas"
	if s := invoiceStatusFilters[m.filterIx]; s != "" {
		label = string(s)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(fmt.Sprintf("Filtro: [s] Status: %s", activeStyle(label))),
		tableBox(m.table),
	)

	if inv := m.selected(); m.detail && inv != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(70).
			Render(statement.Render(inv))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	return m.list[idx]
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.list))
	for _, inv := range m.list {
		rows = append(rows, table.Row{
			inv.Number,
			inv.ClientName,
			string(inv.Status),
			fmt.Sprint(inv.DeliveryCount),
			FormatAmount(inv.TotalFee),
			string(inv.FeeStatus),
			FormatAmount(inv.TotalPassthrough),
			string(inv.PassthroughStatus),
			FormatDate(inv.DueAt),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	filter := invoice.Filter{Status: invoiceStatusFilters[m.filterIx]}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invoices.List(ctx, filter)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

type invoiceActionMsg struct {
	status string
	err    error
}

type invoiceAction func(ctx context.Context, id, details string) (*invoice.Invoice, error)

func (m InvoicesModel) actionCmd(inv *invoice.Invoice, label string, action invoiceAction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := action(ctx, inv.ID, "via terminal")
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		if updated == nil {
			return invoiceActionMsg{status: fmt.Sprintf("%s não encontrada", inv.Number)}
		}

		return invoiceActionMsg{status: fmt.Sprintf("%s %s (%s)", updated.Number, label, updated.Status)}
	}
}

func (m InvoicesModel) markOverdueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		marked, err := m.invoices.MarkOverdue(ctx, time.Now())
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("%d faturas marcadas como vencidas", len(marked))}
	}
}
