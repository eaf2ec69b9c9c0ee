package view

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rvannote/billdash/internal/customer"
	"github.com/rvannote/billdash/internal/importer"
)

type importState int

const (
	importStatePath importState = iota
	importStateRunning
	importStateDone
)

type ImportModel struct {
	CommonModel
	importSvc   *importer.Service
	customerSvc *customer.Service

	state importState
	form  *huh.Form

	formPath string

	imported int
	rejected []importer.RowError
	err      error
}

func NewImportModel(importSvc *importer.Service, customerSvc *customer.Service) ImportModel {
	m := ImportModel{
		importSvc:   importSvc,
		customerSvc: customerSvc,
	}
	m.form = m.pathForm()

	return m
}

func (m ImportModel) pathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Customer CSV file").
				Placeholder("customers.csv").
				Value(&m.formPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ImportModel) Title() string { return "Import Customers" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePath:
		return "Esc: back | Enter: import"
	case importStateDone:
		return "Esc: back"
	}

	return ""
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		m.state = importStateDone
		m.imported = msg.imported
		m.rejected = msg.rejected
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state != importStatePath {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateRunning
	path := m.form.GetString("path")

	return m, m.importCmd(path)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStatePath:
		return lipgloss.NewStyle().Padding(1).Render("Import Customers\n\n" + m.form.View())

	case importStateRunning:
		return lipgloss.NewStyle().Padding(2).Render("Importing...")

	case importStateDone:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Import failed: %v", m.err))
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Imported %d customers.\n", m.imported)

		if len(m.rejected) > 0 {
			fmt.Fprintf(&b, "\nRejected rows:\n")

			for _, re := range m.rejected {
				for field, msgs := range re.Fields {
					fmt.Fprintf(&b, "  line %d, %s: %s\n", re.Line, field, strings.Join(msgs, "; "))
				}
			}
		}

		return lipgloss.NewStyle().Padding(1).Render(b.String())
	}

	return ""
}

// Messages

type importDoneMsg struct {
	imported int
	rejected []importer.RowError
	err      error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		result, err := m.importSvc.Parse(f)
		if err != nil {
			return importDoneMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		created, err := m.customerSvc.CreateBatch(ctx, result.Params)
		if err != nil {
			return importDoneMsg{imported: len(created), err: err}
		}

		return importDoneMsg{imported: len(created), rejected: result.Invalid}
	}
}
