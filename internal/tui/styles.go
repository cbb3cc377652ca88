package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/sportbook-io/sportbook-cli/internal/model"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#50FA7B") // Green
	ColorAccent  = lipgloss.Color("#8BE9FD") // Cyan
	ColorError   = lipgloss.Color("#FF5555") // Red
	ColorWarning = lipgloss.Color("#FFB86C") // Orange
	ColorMuted   = lipgloss.Color("#6272A4") // Gray
	ColorWhite   = lipgloss.Color("#F8F8F2") // White
)

// Predefined styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

// Icons
const (
	IconSuccess  = "✓"
	IconError    = "✗"
	IconWarning  = "⚠"
	IconInfo     = "ℹ"
	IconPointer  = "❯"
	IconCalendar = "📅"
	IconClock    = "🕐"
	IconPlace    = "📍"
	IconGroup    = "👥"
	IconTicket   = "🎟"
	IconTrophy   = "🏆"
	IconKey      = "🔑"
)

// IsTTY returns true if stdout is a terminal
func IsTTY() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// RenderSuccess renders a success message
func RenderSuccess(msg string) string {
	return SuccessStyle.Render(IconSuccess+" ") + msg
}

// RenderError renders an error message
func RenderError(msg string) string {
	return ErrorStyle.Render(IconError+" ") + msg
}

// RenderWarning renders a warning message
func RenderWarning(msg string) string {
	return WarningStyle.Render(IconWarning+" ") + msg
}

// RenderInfo renders an info message
func RenderInfo(msg string) string {
	return MutedStyle.Render(IconInfo+" ") + msg
}

// StatusBadge renders a reservation display state as a colored chip.
func StatusBadge(s model.Status) string {
	label := fmt.Sprintf("[%s]", s)
	switch s {
	case model.StatusValidated, model.StatusActive:
		return SuccessStyle.Render(label)
	case model.StatusExpiring, model.StatusAwaitingValidation:
		return WarningStyle.Render(label)
	case model.StatusExpired:
		return ErrorStyle.Render(label)
	default:
		return MutedStyle.Render(label)
	}
}

// BookabilityBadge renders an activity's bookability for the viewer.
func BookabilityBadge(b model.Bookability) string {
	label := fmt.Sprintf("[%s]", b)
	switch b {
	case model.Available, model.AnonymousAllowed:
		return SuccessStyle.Render(label)
	default:
		return MutedStyle.Render(label)
	}
}
