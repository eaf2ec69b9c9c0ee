package view

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rvannote/billdash/internal/action"
	"github.com/rvannote/billdash/internal/customer"
	"github.com/rvannote/billdash/internal/invoice"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateForm
)

type InvoicesModel struct {
	CommonModel
	invoiceSvc  *invoice.Service
	customerSvc *customer.Service

	state invoicesState
	table table.Model
	rows  []*invoice.Listing
	form  *huh.Form

	// Empty when the form creates a new invoice.
	editingID string

	loading bool
	err     error
	status  string

	// Form bindings
	formCustomer string
	formAmount   string
	formStatus   string
}

func NewInvoicesModel(invoiceSvc *invoice.Service, customerSvc *customer.Service) InvoicesModel {
	columns := []table.Column{
		{Title: "Issued", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Amount", Width: 12},
		{Title: "Customer", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InvoicesModel{
		invoiceSvc:  invoiceSvc,
		customerSvc: customerSvc,
		table:       t,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }
func (m InvoicesModel) ShortHelp() string {
	if m.state == invoicesStateForm {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new | e: edit | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadRowsCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.rows
		m.refreshTable()
		return m, nil

	case customersForFormMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading customers: %v", msg.err)
			return m, nil
		}
		return m.openForm(msg.customers)

	case invoiceSavedMsg:
		if !msg.outcome.Success {
			m.status = outcomeStatus(msg.outcome)
			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
		m.status = "Saved."
		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadRowsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadRowsCmd()
		case "n":
			m.editingID = ""
			m.formCustomer = ""
			m.formAmount = ""
			m.formStatus = string(invoice.StatusPending)
			return m, m.loadCustomersCmd()
		case "e":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.rows) {
				return m, nil
			}
			row := m.rows[idx]
			m.editingID = row.ID
			m.formCustomer = ""
			m.formAmount = row.Amount.String()
			m.formStatus = string(row.Status)
			return m, m.loadCustomersCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m InvoicesModel) openForm(customers []*customer.Customer) (tea.Model, tea.Cmd) {
	options := make([]huh.Option[string], len(customers))
	for i, c := range customers {
		options[i] = huh.NewOption(c.Name, c.ID)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("customerId").
				Title("Customer").
				Options(options...).
				Value(&m.formCustomer),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("49.99").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("amount cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Pending", string(invoice.StatusPending)),
					huh.NewOption("Paid", string(invoice.StatusPaid)),
				).
				Value(&m.formStatus),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateForm
	m.table.Blur()
	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == invoicesStateForm && m.form != nil {
		title := "New Invoice"
		if m.editingID != "" {
			title = "Edit Invoice"
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

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, row := range m.rows {
		rows = append(rows, table.Row{
			FormatDate(row.IssuedAt),
			FormatDate(row.DueBy),
			string(row.Status),
			FormatAmount(row.Amount),
			row.CustomerName,
		})
	}
	m.table.SetRows(rows)
}

// outcomeStatus flattens a failed outcome into one status line.
func outcomeStatus(o action.Outcome) string {
	if len(o.Errors) == 0 {
		return o.Message
	}

	var details []string
	for field, msgs := range o.Errors {
		details = append(details, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}

	return fmt.Sprintf("%s (%s)", o.Message, strings.Join(details, " | "))
}

// Messages

type loadInvoicesMsg struct {
	rows []*invoice.Listing
	err  error
}

func (m InvoicesModel) loadRowsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rows, err := m.invoiceSvc.List(ctx)
		return loadInvoicesMsg{rows: rows, err: err}
	}
}

type customersForFormMsg struct {
	customers []*customer.Customer
	err       error
}

func (m InvoicesModel) loadCustomersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.customerSvc.List(ctx)
		return customersForFormMsg{customers: customers, err: err}
	}
}

type invoiceSavedMsg struct {
	outcome action.Outcome
}

func (m InvoicesModel) saveCmd() tea.Cmd {
	id := m.editingID
	values := url.Values{
		"customerId": {m.formCustomer},
		"amount":     {m.formAmount},
		"status":     {m.formStatus},
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if id == "" {
			return invoiceSavedMsg{outcome: m.invoiceSvc.Create(ctx, values)}
		}

		return invoiceSavedMsg{outcome: m.invoiceSvc.Update(ctx, id, values)}
	}
}
