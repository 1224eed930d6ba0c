package terminal

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	headingColor = lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7AB8F5"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9E9E9E"}
	successColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"}
	warningColor = lipgloss.AdaptiveColor{Light: "#EF6C00", Dark: "#FFB74D"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#4DD0E1"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(infoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(infoColor).
			Italic(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	PendingIndicator = MutedStyle.Render("○")
	SkippedIndicator = InfoStyle.Render("•")
)
