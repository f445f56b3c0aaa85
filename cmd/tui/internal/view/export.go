package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/levaetras/internal/client"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/statement"
)

const (
	exportTimeout    = 2 * time.Minute
	defaultExportDir = "./extratos"
)

type exportStep int

const (
	exportStepPeriod exportStep = iota
	exportStepFilter
	exportStepRunning
	exportStepDone
)

// ExportModel writes statement files for the invoices matching a period and filter.
type ExportModel struct {
	CommonModel
	statements *statement.Service
	clients    *client.Service

	step    exportStep
	period  TimeframePicker
	filter  statement.Filter
	form    *huh.Form
	spinner spinner.Model

	items []statement.Item
	dir   string
	err   error
}

func NewExportModel(svc *statement.Service, clients *client.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		statements: svc,
		clients:    clients,
		period:     NewTimeframePicker(TimeframeThisMonth),
		spinner:    s,
	}
}

func (m ExportModel) Title() string { return "Exportar extratos" }

func (m ExportModel) ShortHelp() string {
	switch m.step {
	case exportStepRunning:
		return "Gerando..."
	case exportStepDone:
		return "Esc: voltar ao menu | n: nova exportação"
	}

	return "Esc: voltar | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return m.period.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = statement.Filter{}
		if !msg.All {
			m.filter.StartDate = &msg.Start
			m.filter.EndDate = &msg.End
		}

		form, err := m.filterForm()
		if err != nil {
			m.err = err
			m.step = exportStepDone

			return m, nil
		}

		m.form = form
		m.step = exportStepFilter

		return m, m.form.Init()

	case exportDoneMsg:
		m.step = exportStepDone
		m.items = msg.items
		m.err = msg.err

		return m, nil
	}

	switch m.step {
	case exportStepPeriod:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.period.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.period, cmd = m.period.Update(msg)

		return m, cmd

	case exportStepFilter:
		return m.updateFilter(msg)

	case exportStepRunning:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case exportStepDone:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				return m, Back
			case "n":
				m.step = exportStepPeriod
				m.err = nil
				m.items = nil
				m.period.Reset()

				return m, m.period.Init()
			}
		}
	}

	return m, nil
}

func (m ExportModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.step = exportStepPeriod
		m.period.Reset()

		return m, m.period.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.filter.ClientID = m.form.GetString("client")
	m.filter.Status = invoice.Status(m.form.GetString("status"))

	m.dir = m.form.GetString("dir")
	if m.dir == "" {
		m.dir = defaultExportDir
	}

	m.step = exportStepRunning

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(m.filter, m.dir))
}

func (m ExportModel) filterForm() (*huh.Form, error) {
	ctx, cancel := DbCtx()
	defer cancel()

	clients, err := m.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("carregando clientes: %w", err)
	}

	clientOptions := []huh.Option[string]{huh.NewOption("Todos", "")}
	for _, c := range clients {
		if c.IsInvoiced() {
			clientOptions = append(clientOptions, huh.NewOption(c.Name, c.ID))
		}
	}

	statusOptions := []huh.Option[string]{huh.NewOption("Todos", "")}
	for _, s := range []invoice.Status{invoice.StatusOpen, invoice.StatusClosed, invoice.StatusPaid, invoice.StatusOverdue, invoice.StatusFinalized} {
		statusOptions = append(statusOptions, huh.NewOption(string(s), string(s)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Key("client").Title("Cliente").Options(clientOptions...),
			huh.NewSelect[string]().Key("status").Title("Status da fatura").Options(statusOptions...),
			huh.NewInput().
				Key("dir").
				Title("Diretório de saída").
				Description("Criado se não existir").
				Placeholder(defaultExportDir),
		),
	).WithWidth(50).WithShowHelp(false), nil
}

func (m ExportModel) View() string {
	box := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case exportStepPeriod:
		return box.Render(m.period.View())
	case exportStepFilter:
		return box.Render(m.form.View())
	case exportStepRunning:
		return box.Render(m.spinner.View() + " Gerando extratos das faturas...")
	}

	if m.err != nil {
		return box.Render(errorStyle(fmt.Sprintf("Erro: %v", m.err)))
	}

	if len(m.items) == 0 {
		return box.Render("Nenhuma fatura encontrada para o filtro.")
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		activeStyle(fmt.Sprintf("%d extratos gravados em %s", len(m.items), m.dir)),
		"",
		m.statements.Summary(m.items),
	))
}

type exportDoneMsg struct {
	items []statement.Item
	err   error
}

func (m ExportModel) exportCmd(filter statement.Filter, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		items, err := m.statements.Export(ctx, filter, dir)

		return exportDoneMsg{items: items, err: err}
	}
}
