package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/denv/internal/adapters/tui"
	"go.trai.ch/denv/internal/core/domain"
)

func TestModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "q", key: "q"},
		{name: "ctrl+c", key: "ctrl+c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tui.NewModel()
			var msg tea.Msg
			if tt.key == "ctrl+c" {
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			} else {
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)}
			}

			_, cmd := m.Update(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestModel_DirStatusUpsert(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel()

	updated, _ := m.Update(tui.DirStatusMsg{Key: "/b", Status: domain.StatusOn})
	updated, _ = updated.Update(tui.DirStatusMsg{Key: "/a", Status: domain.StatusNone})
	view := updated.View()

	// Rows are sorted by directory key regardless of arrival order.
	assert.Less(t, strings.Index(view, "/a"), strings.Index(view, "/b"))
	assert.Contains(t, view, "on")
	assert.Contains(t, view, "none")
}

func TestModel_ErrorRowShowsDiagnostic(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel()

	updated, _ := m.Update(tui.DirStatusMsg{
		Key:     "/broken",
		Status:  domain.StatusError,
		Message: "line 3: command not found",
	})
	view := updated.View()

	assert.Contains(t, view, "/broken")
	assert.Contains(t, view, "line 3: command not found")
}

func TestModel_StatusTransitionReplacesRow(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel()

	updated, _ := m.Update(tui.DirStatusMsg{Key: "/p", Status: domain.StatusError, Message: "boom"})
	updated, _ = updated.Update(tui.DirStatusMsg{Key: "/p", Status: domain.StatusOn})
	view := updated.View()

	assert.Contains(t, view, "on")
	assert.NotContains(t, view, "boom")
}

func TestModel_InitIsNil(t *testing.T) {
	assert.Nil(t, tui.NewModel().Init())
}
