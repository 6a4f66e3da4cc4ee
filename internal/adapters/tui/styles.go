package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/denv/internal/ui/style"
)

const (
	iconOn    = style.Check
	iconError = style.Cross
	iconNone  = style.Circle
)

var (
	onStyle = lipgloss.NewStyle().
		Foreground(style.Green)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	noneStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(style.Teal)

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)
)
