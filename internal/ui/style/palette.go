package style

import "github.com/charmbracelet/lipgloss"

// Colors of the calculator card
var (
	Blue      = lipgloss.Color("#63B3ED") // title
	BlueDeep  = lipgloss.Color("#3182CE") // active button
	Green     = lipgloss.Color("#68D391") // result values
	Red       = lipgloss.Color("#FC8181") // negative results / errors
	Yellow    = lipgloss.Color("#F6E05E") // warnings
	SlateDark = lipgloss.Color("#1A202C") // page / section background
	Slate     = lipgloss.Color("#2D3748") // card background
	SlateMid  = lipgloss.Color("#4A5568") // inputs, borders
	Gray      = lipgloss.Color("#718096") // input border
	GrayLight = lipgloss.Color("#A0AEC0") // subtitle
	Label     = lipgloss.Color("#CBD5E0")
	Heading   = lipgloss.Color("#E2E8F0")
	White     = lipgloss.Color("#FFFFFF")
)

// Palette provides a centralized color management
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color
	Border        lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextLabel     lipgloss.Color
	TextHeading   lipgloss.Color
}

// DefaultPalette returns the default color palette
func DefaultPalette() Palette {
	return Palette{
		Primary: Blue,
		Accent:  BlueDeep,
		Success: Green,
		Error:   Red,
		Warning: Yellow,

		Background:    SlateDark,
		BackgroundAlt: SlateMid,
		Border:        SlateMid,
		Text:          White,
		TextMuted:     GrayLight,
		TextLabel:     Label,
		TextHeading:   Heading,
	}
}
