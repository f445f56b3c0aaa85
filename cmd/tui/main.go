package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/levaetras/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/levaetras/internal/app"
	"github.com/MrJamesThe3rd/levaetras/internal/config"
	"github.com/MrJamesThe3rd/levaetras/internal/database"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	kvStore "github.com/MrJamesThe3rd/levaetras/internal/storage/store"
	txStore "github.com/MrJamesThe3rd/levaetras/internal/transaction/store"
)

type model struct {
	services *app.Services
	appName  string

	currentView View

	requestsView     view.RequestsModel
	invoicesView     view.InvoicesModel
	transactionsView view.TransactionsModel
	importView       view.ImportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewRequests     View = 1
	ViewInvoices     View = 2
	ViewTransactions View = 3
	ViewImport       View = 4
	ViewExport       View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	svc := app.NewServices(kvStore.New(db), txStore.New(db), invoice.WithDueDays(cfg.Invoice.DueDays))

	return model{
		services:    svc,
		appName:     cfg.App.Name,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRequests
				m.requestsView = view.NewRequestsModel(m.services.Requests, m.services.Billing, m.services.Couriers)

				return m, m.requestsView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.services.Invoices)

				return m, m.invoicesView.Init()
			case "3":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.services.Transactions, m.services.Clients)

				return m, m.transactionsView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.services.Importer)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.services.Statements, m.services.Clients)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRequests:
		var newModel tea.Model
		newModel, cmd = m.requestsView.Update(msg)
		m.requestsView = newModel.(view.RequestsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Solicitações\n" +
				"2. Faturas\n" +
				"3. Transações pré-pagas\n" +
				"4. Importar taxas de bairros\n" +
				"5. Exportar extratos\n\n" +
				"q. Sair",
		)
	case ViewRequests:
		return withHelp(m.requestsView.View(), m.requestsView.ShortHelp())
	case ViewInvoices:
		return withHelp(m.invoicesView.View(), m.invoicesView.ShortHelp())
	case ViewTransactions:
		return withHelp(m.transactionsView.View(), m.transactionsView.ShortHelp())
	case ViewImport:
		return withHelp(m.importView.View(), m.importView.ShortHelp())
	case ViewExport:
		return withHelp(m.exportView.View(), m.exportView.ShortHelp())
	}

	return "Tela desconhecida"
}

func withHelp(body, help string) string {
	return body + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
