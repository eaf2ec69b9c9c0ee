package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/rvannote/billdash/cmd/tui/internal/view"
	"github.com/rvannote/billdash/internal/cache"
	"github.com/rvannote/billdash/internal/config"
	"github.com/rvannote/billdash/internal/customer"
	customerStore "github.com/rvannote/billdash/internal/customer/store"
	"github.com/rvannote/billdash/internal/database"
	"github.com/rvannote/billdash/internal/importer"
	"github.com/rvannote/billdash/internal/invoice"
	invoiceStore "github.com/rvannote/billdash/internal/invoice/store"
)

type model struct {
	invoiceService  *invoice.Service
	customerService *customer.Service
	importService   *importer.Service

	currentView View

	invoicesView  view.InvoicesModel
	customersView view.CustomersModel
	importView    view.ImportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewInvoices  View = 1
	ViewCustomers View = 2
	ViewImport    View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolLimits{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		ConnLifetime: cfg.DB.ConnLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	routes := cache.NewRoutes()

	invoiceSvc := invoice.NewService(invoiceStore.New(db), routes)
	customerSvc := customer.NewService(customerStore.New(db), routes)
	importSvc := importer.NewService()

	return model{
		invoiceService:  invoiceSvc,
		customerService: customerSvc,
		importService:   importSvc,
		currentView:     ViewMenu,
		invoicesView:    view.NewInvoicesModel(invoiceSvc, customerSvc),
		customersView:   view.NewCustomersModel(customerSvc),
		importView:      view.NewImportModel(importSvc, customerSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invoiceService, m.customerService)

				return m, m.invoicesView.Init()
			case "2":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.customerService)

				return m, m.customersView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.customerService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Billdash TUI\n\n" +
				"1. Manage Invoices\n" +
				"2. Manage Customers\n" +
				"3. Import Customers (CSV)\n\n" +
				"q. Quit",
		)
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewCustomers:
		return m.customersView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
