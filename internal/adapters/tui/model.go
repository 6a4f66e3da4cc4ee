// Package tui renders the live directory status view for denv watch.
package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/denv/internal/core/domain"
)

// DirStatusMsg updates one directory's row in the view.
type DirStatusMsg struct {
	Key     string
	Status  domain.Status
	Message string
}

// row is the rendered state of one watched directory.
type row struct {
	key     string
	status  domain.Status
	message string
}

// Model represents the watch view state.
type Model struct {
	rows  map[string]*row
	order []string
	width int
}

// NewModel creates an empty watch view.
func NewModel() *Model {
	return &Model{rows: make(map[string]*row)}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case DirStatusMsg:
		r, ok := m.rows[msg.Key]
		if !ok {
			r = &row{key: msg.Key}
			m.rows[msg.Key] = r
			m.order = append(m.order, msg.Key)
			slices.Sort(m.order)
		}
		r.status = msg.Status
		r.message = msg.Message
	}
	return m, nil
}

// View renders one line per watched directory.
func (m *Model) View() string {
	s := titleStyle.Render("denv watch") + "\n"
	for _, key := range m.order {
		r := m.rows[key]
		s += renderRow(r) + "\n"
	}
	s += helpStyle.Render("q to quit")
	return s
}

func renderRow(r *row) string {
	var icon, label string
	var st lipgloss.Style

	switch r.status {
	case domain.StatusOn:
		icon, label, st = iconOn, "on", onStyle
	case domain.StatusError:
		icon, label, st = iconError, "error", errorStyle
	default:
		icon, label, st = iconNone, "none", noneStyle
	}

	line := " " + st.Render(icon+" "+label) + "  " + r.key
	if r.status == domain.StatusError && r.message != "" {
		line += "  " + errorStyle.Render(r.message)
	}
	return line
}
