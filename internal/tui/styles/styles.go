package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VuDung/serenity/internal/domain"
)

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Raw watch status characters (unstyled)
const (
	UnplayedChar   = "●"
	InProgressChar = "◐"
	PlayedChar     = "✓"
)

// Pre-rendered watch status indicators
var (
	UnplayedDot   = lipgloss.NewStyle().Foreground(Amber).Render(UnplayedChar)
	InProgressDot = lipgloss.NewStyle().Foreground(Amber).Render(InProgressChar)
	PlayedCheck   = lipgloss.NewStyle().Foreground(Green).Render(PlayedChar)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Button styles
var (
	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(Amber).
				Bold(true).
				Padding(0, 2)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 2)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Amber)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Progress bar styles
var (
	ProgressFullStyle = lipgloss.NewStyle().
				Foreground(Amber)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad pads a string to the given display width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// RenderProgressBar renders a progress bar
func RenderProgressBar(percent float64, width int) string {
	if width < 3 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	filled = max(0, min(filled, width))

	return ProgressFullStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderWatchStatus renders the watch status indicator
func RenderWatchStatus(status domain.WatchStatus) string {
	switch status {
	case domain.WatchStatusWatched:
		return PlayedCheck
	case domain.WatchStatusInProgress:
		return InProgressDot
	default:
		return UnplayedDot
	}
}
