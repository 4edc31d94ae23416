package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Source is the record type a ReferenceModel browses.
type Source interface {
	Title() string
	Columns() []table.Column
	// Load returns one row per record, with ids in the same order.
	Load(ctx context.Context) ([]table.Row, []uuid.UUID, error)
	// NewForm returns a blank create form and the save that reads its bindings.
	NewForm() (*huh.Form, func(ctx context.Context) error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type referenceState int

const (
	referenceStateBrowse referenceState = iota
	referenceStateCreate
	referenceStateConfirmDelete
)

// ReferenceModel lists the records of one Source and creates and deletes them.
type ReferenceModel struct {
	CommonModel
	source Source

	state referenceState
	table table.Model
	ids   []uuid.UUID
	form  *huh.Form
	save  func(ctx context.Context) error

	loading bool
	err     error
	status  string
}

var _ View = ReferenceModel{}

func NewReferenceModel(source Source) ReferenceModel {
	t := table.New(
		table.WithColumns(source.Columns()),
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

	return ReferenceModel{source: source, table: t, loading: true}
}

func (m ReferenceModel) Title() string { return m.source.Title() }

func (m ReferenceModel) ShortHelp() string {
	switch m.state {
	case referenceStateCreate:
		return "Navigate form | Esc: cancel"
	case referenceStateConfirmDelete:
		return "y: delete | any other key: keep"
	}

	return "Esc: back | n: new | x: delete | r: refresh"
}

func (m ReferenceModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReferenceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case referenceLoadMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.ids = msg.ids
			m.table.SetRows(msg.rows)
		}

		return m, nil

	case referenceDoneMsg:
		m.state = referenceStateBrowse
		m.form = nil
		m.save = nil
		m.table.Focus()
		m.status = msg.status
		if msg.err != nil {
			m.status = ErrorText(msg.err)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 3))

		return m, nil
	}

	switch m.state {
	case referenceStateCreate:
		return m.updateCreate(msg)
	case referenceStateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m.updateBrowse(msg)
}

func (m ReferenceModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			m.form, m.save = m.source.NewForm()
			m.form = m.form.WithWidth(45).WithShowHelp(false)
			m.state = referenceStateCreate
			m.status = ""
			m.table.Blur()

			return m, m.form.Init()
		case "x":
			if _, ok := m.selected(); ok {
				m.state = referenceStateConfirmDelete
				m.status = ""
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReferenceModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = referenceStateBrowse
		m.form = nil
		m.save = nil
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

	return m, m.runCmd(m.save, "Saved.")
}

func (m ReferenceModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	id, found := m.selected()
	if keyMsg.String() != "y" || !found {
		m.state = referenceStateBrowse
		return m, nil
	}

	return m, m.runCmd(func(ctx context.Context) error {
		return m.source.Delete(ctx, id)
	}, "Deleted.")
}

func (m ReferenceModel) selected() (uuid.UUID, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.ids) {
		return uuid.Nil, false
	}

	return m.ids[idx], true
}

func (m ReferenceModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading " + m.source.Title() + "...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(ErrorText(m.err))
	}

	header := lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(m.source.Title())

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left, header, tableView)

	switch {
	case m.state == referenceStateCreate && m.form != nil:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New record\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case m.state == referenceStateConfirmDelete:
		content += "\n" + warnStyle.Render("Delete the selected record? [y/N]")
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content) + "\n" + helpStyle.Render(m.ShortHelp())
}

var (
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
)

// Messages

type referenceLoadMsg struct {
	rows []table.Row
	ids  []uuid.UUID
	err  error
}

func (m ReferenceModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rows, ids, err := m.source.Load(ctx)
		if err == nil && len(rows) != len(ids) {
			err = fmt.Errorf("loading %s: %d rows for %d ids", m.source.Title(), len(rows), len(ids))
		}

		return referenceLoadMsg{rows: rows, ids: ids, err: err}
	}
}

type referenceDoneMsg struct {
	status string
	err    error
}

func (m ReferenceModel) runCmd(fn func(ctx context.Context) error, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return referenceDoneMsg{status: status, err: fn(ctx)}
	}
}
