// Package ui renders the human readable summary line.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors
const (
	ColorSuccess = lipgloss.Color("#2ECC40") // Green
	ColorError   = lipgloss.Color("#F45756") // Red
	ColorWarning = lipgloss.Color("#FF841C") // Orange
	ColorPending = lipgloss.Color("#5A5A5A") // Grey
)

// Icon constants for consistent status representation
const (
	IconSuccess = "✓"
	IconError   = "✖"
	IconWarning = "⚠"
	IconSkipped = "-"
	IconDefault = "❔"
)

// StatusStyle returns the appropriate styling for a status state
func StatusStyle(state string) lipgloss.Style {
	switch state {
	case "success", "ok", "passed":
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	case "failure", "fail", "failed", "error", "cancelled":
		return lipgloss.NewStyle().Foreground(ColorError)
	case "skipped":
		return lipgloss.NewStyle().Foreground(ColorPending)
	default:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	}
}

// StatusIcon returns the appropriate icon for a status state
func StatusIcon(state string) string {
	switch state {
	case "success", "ok", "passed":
		return IconSuccess
	case "failure", "fail", "failed", "error", "cancelled":
		return IconError
	case "skipped":
		return IconSkipped
	case "unknown":
		return IconDefault
	default:
		return IconWarning
	}
}

// RenderStatus renders a status with the appropriate icon and styling
func RenderStatus(state string) string {
	return StatusStyle(state).Render(StatusIcon(state))
}
