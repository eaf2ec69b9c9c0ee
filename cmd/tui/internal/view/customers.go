package view

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rvannote/billdash/internal/action"
	"github.com/rvannote/billdash/internal/customer"
)

type customersState int

const (
	customersStateList customersState = iota
	customersStateForm
)

// custItem wraps a customer to implement list.Item.
type custItem struct {
	c *customer.Customer
}

func (i custItem) Title() string {
	return i.c.Name
}

func (i custItem) Description() string {
	if i.c.ImageURL == "" {
		return i.c.Email
	}

	return fmt.Sprintf("%s  (%s)", i.c.Email, i.c.ImageURL)
}

func (i custItem) FilterValue() string {
	return i.c.Name + " " + i.c.Email
}

type CustomersModel struct {
	CommonModel
	customerSvc *customer.Service

	state customersState
	list  list.Model
	form  *huh.Form

	loading bool
	status  string

	// Form bindings
	formName  string
	formEmail string
	formImage string
}

func NewCustomersModel(customerSvc *customer.Service) CustomersModel {
	l := list.New([]list.Item{}, custItemDelegate{}, 0, 0)
	l.Title = "Customers"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return CustomersModel{
		customerSvc: customerSvc,
		list:        l,
	}
}

func (m CustomersModel) Title() string { return "Customers" }

func (m CustomersModel) ShortHelp() string {
	if m.state == customersStateForm {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new | /: filter | r: refresh"
}

func (m CustomersModel) Init() tea.Cmd {
	return m.loadCustomersCmd()
}

func (m CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		items := make([]list.Item, len(msg.customers))
		for i, c := range msg.customers {
			items[i] = custItem{c: c}
		}

		m.list.SetItems(items)

		if len(msg.customers) == 0 {
			m.status = "No customers found."
		}

		return m, nil

	case customerSavedMsg:
		m.state = customersStateList
		m.form = nil

		if !msg.outcome.Success {
			m.status = outcomeStatus(msg.outcome)
			return m, nil
		}

		m.status = "Saved."

		return m, m.loadCustomersCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case customersStateList:
		return m.updateList(msg)
	case customersStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m CustomersModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.Filtering {
				break // let the list handle it (close filter)
			}

			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCustomersCmd()
		case "n":
			return m.startForm()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m CustomersModel) startForm() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formEmail = ""
	m.formImage = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("customerName").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("image_url").
				Title("Avatar URL").
				Placeholder("/avatars/...").
				Value(&m.formImage).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("avatar URL cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = customersStateForm

	return m, m.form.Init()
}

func (m CustomersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = customersStateList
			m.form = nil

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

func (m CustomersModel) View() string {
	switch m.state {
	case customersStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case customersStateForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render("New Customer\n\n" + m.form.View())
	}

	return ""
}

// Messages

type loadCustomersMsg struct {
	customers []*customer.Customer
	err       error
}

func (m CustomersModel) loadCustomersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.customerSvc.List(ctx)
		return loadCustomersMsg{customers: customers, err: err}
	}
}

type customerSavedMsg struct {
	outcome action.Outcome
}

func (m CustomersModel) saveCmd() tea.Cmd {
	values := url.Values{
		"customerName": {m.formName},
		"email":        {m.formEmail},
		"image_url":    {m.formImage},
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return customerSavedMsg{outcome: m.customerSvc.Create(ctx, values)}
	}
}

// custItemDelegate renders items in the list.
type custItemDelegate struct{}

func (d custItemDelegate) Height() int                             { return 2 }
func (d custItemDelegate) Spacing() int                            { return 0 }
func (d custItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d custItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(custItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
