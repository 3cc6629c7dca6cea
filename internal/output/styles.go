package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: project names, paths, registries.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "applied" step status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "warned" step status.
	ColorYellow = lipgloss.Color("220")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for tree descriptions and other chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (project names, paths, registry URLs).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs and commands the user should run.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleMuted styles descriptions in file trees.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// Reconciliation step status constants.
const (
	StatusApplied = "applied"
	StatusSkipped = "skipped"
	StatusWarned  = "warned"
)

// StatusStyle returns the style for a reconciliation step status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusApplied:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusWarned:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// minStepColumnWidth keeps step statuses aligned.
const minStepColumnWidth = 24

// FormatStepLine renders a step name with a right-aligned, color-coded status.
func FormatStepLine(step, status string) string {
	padding := minStepColumnWidth - len(step)
	if padding < 2 {
		padding = 2
	}
	return StyleDim.Render("s:") + StyleNoun.Render(step) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCommand renders a shell command the user is expected to run.
func FormatCommand(cmd string) string {
	return "  " + StyleDim.Render("$") + " " + StyleAction.Render(cmd)
}
