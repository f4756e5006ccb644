// Package tui implements the full-screen interactive interface for
// browsing, creating and reading batch requests.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/regismesquita/oaibatch/internal/store"
)

// Color palette
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A67D8", Dark: "#7C3AED"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#38A169", Dark: "#48BB78"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#D69E2E", Dark: "#F6E05E"}
	colorError   = lipgloss.AdaptiveColor{Light: "#E53E3E", Dark: "#FC8181"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#3182CE", Dark: "#63B3ED"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#718096", Dark: "#A0AEC0"}
	colorText    = lipgloss.AdaptiveColor{Light: "#1A202C", Dark: "#F7FAFC"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#CBD5E0", Dark: "#4A5568"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// statusStyle returns the render style for a batch status string.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case store.StatusCompleted:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case store.StatusInProgress, store.StatusFinalizing:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case store.StatusValidating:
		return lipgloss.NewStyle().Foreground(colorInfo)
	case store.StatusFailed, store.StatusExpired:
		return lipgloss.NewStyle().Foreground(colorError)
	case store.StatusCancelled:
		return mutedStyle
	}
	return valueStyle
}
