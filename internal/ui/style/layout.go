package style

import (
	"github.com/charmbracelet/lipgloss"
)

var palette = DefaultPalette()

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Align(lipgloss.Center)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Align(lipgloss.Center).
			Margin(0, 0, 1, 0)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(palette.TextHeading).
				Bold(true).
				Margin(0, 0, 1, 0)
)

// Layout styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 2)

	SectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Border).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	ActiveSectionStyle = SectionStyle.
				BorderForeground(palette.Accent)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(palette.TextLabel).
			Background(palette.BackgroundAlt).
			Padding(0, 2).
			Margin(0, 1, 0, 0)

	ButtonActiveStyle = lipgloss.NewStyle().
				Foreground(palette.Text).
				Background(palette.Accent).
				Bold(true).
				Padding(0, 2).
				Margin(0, 1, 0, 0)
)

// Form styles
var (
	FormLabelStyle = lipgloss.NewStyle().
			Foreground(palette.TextLabel)

	FormInputStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Gray)

	FormInputFocusedStyle = FormInputStyle.
				BorderForeground(palette.Primary)

	FormReadOnlyStyle = FormInputStyle.
				Foreground(palette.TextMuted).
				BorderForeground(palette.Border)
)

// Result styles
var (
	ResultLabelStyle = lipgloss.NewStyle().
				Foreground(palette.TextHeading)

	ProfitStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	LossStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(palette.Warning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)
)

// Help bar style
var (
	HelpStyle = lipgloss.NewStyle().
		Foreground(palette.TextMuted).
		Margin(1, 0, 0, 0).
		Italic(true)
)

// AdaptiveWidth returns the card width for a terminal of the given width
func AdaptiveWidth(width, limit int) int {
	if width <= 0 {
		return limit
	}
	w := width - 4
	if w < 20 {
		return 20
	}
	if w < limit {
		return w
	}
	return limit
}
