package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the color roles and glyphs the TUI renders with.
type Theme struct {
	Symbols Symbols

	fg      lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	active  lipgloss.Color
	warning lipgloss.Color
}

type Symbols struct {
	LampOn  rune // ● jack currently high
	LampOff rune // ○ jack low
	Edit    rune // ▸ marker on the value being edited
}

// New returns the default theme.
func New() *Theme {
	return &Theme{
		Symbols: Symbols{
			LampOn:  '●',
			LampOff: '○',
			Edit:    '▸',
		},
		fg:      lipgloss.Color("#d8c7e8"),
		muted:   lipgloss.Color("#6b5a80"),
		accent:  lipgloss.Color("#d145c8"),
		active:  lipgloss.Color("#f5d442"),
		warning: lipgloss.Color("#e88142"),
	}
}

func (t *Theme) FG() lipgloss.Color      { return t.fg }
func (t *Theme) Muted() lipgloss.Color   { return t.muted }
func (t *Theme) Accent() lipgloss.Color  { return t.accent }
func (t *Theme) Active() lipgloss.Color  { return t.active }
func (t *Theme) Warning() lipgloss.Color { return t.warning }
