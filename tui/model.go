package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-burst/engine"
	"go-burst/theme"
)

type keyMap struct {
	PageLeft  key.Binding
	PageRight key.Binding
	ParamUp   key.Binding
	ParamDown key.Binding
	Button1   key.Binding
	Button2   key.Binding
	TrigA     key.Binding
	GateA     key.Binding
	TrigB     key.Binding
	GateB     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PageLeft:  key.NewBinding(key.WithKeys("left", "h")),
		PageRight: key.NewBinding(key.WithKeys("right", "l")),
		ParamUp:   key.NewBinding(key.WithKeys("up", "k")),
		ParamDown: key.NewBinding(key.WithKeys("down", "j")),
		Button1:   key.NewBinding(key.WithKeys("1")),
		Button2:   key.NewBinding(key.WithKeys("2", "enter")),
		TrigA:     key.NewBinding(key.WithKeys("t")),
		GateA:     key.NewBinding(key.WithKeys("g")),
		TrigB:     key.NewBinding(key.WithKeys("y")),
		GateB:     key.NewBinding(key.WithKeys("b")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// Model is the terminal front panel: it renders the engine's snapshot and
// turns key presses into panel events and simulated input edges.
type Model struct {
	Engine *engine.Engine
	Edges  *engine.EdgeQueue
	UI     *engine.UIQueue
	Theme  *theme.Theme

	keys     keyMap
	gateHeld [engine.NumChannels]bool
	frame    int
	quitting bool
}

type UpdateMsg struct{}

func NewModel(e *engine.Engine, edges *engine.EdgeQueue, ui *engine.UIQueue, th *theme.Theme) Model {
	return Model{
		Engine: e,
		Edges:  edges,
		UI:     ui,
		Theme:  th,
		keys:   defaultKeyMap(),
	}
}

func ListenForUpdates(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		<-e.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.PageLeft):
			m.UI.Push(engine.UIEvent{Knob1: -1})
		case key.Matches(msg, m.keys.PageRight):
			m.UI.Push(engine.UIEvent{Knob1: 1})
		case key.Matches(msg, m.keys.ParamUp):
			m.UI.Push(engine.UIEvent{Knob2: 1})
		case key.Matches(msg, m.keys.ParamDown):
			m.UI.Push(engine.UIEvent{Knob2: -1})
		case key.Matches(msg, m.keys.Button1):
			m.UI.Push(engine.UIEvent{Button1: true})
		case key.Matches(msg, m.keys.Button2):
			m.UI.Push(engine.UIEvent{Button2: true})

		case key.Matches(msg, m.keys.TrigA):
			m.pulse(0)
		case key.Matches(msg, m.keys.TrigB):
			m.pulse(1)
		case key.Matches(msg, m.keys.GateA):
			m.toggleGate(0)
		case key.Matches(msg, m.keys.GateB):
			m.toggleGate(1)
		}

	case UpdateMsg:
		m.frame++
		return m, ListenForUpdates(m.Engine)
	}

	return m, nil
}

// pulse simulates a short trigger: the rising and falling edges are queued
// back to back and consumed on consecutive ticks.
func (m Model) pulse(channel int) {
	m.Edges.Push(channel, engine.EdgeRising)
	m.Edges.Push(channel, engine.EdgeFalling)
}

func (m *Model) toggleGate(channel int) {
	if m.gateHeld[channel] {
		m.Edges.Push(channel, engine.EdgeFalling)
	} else {
		m.Edges.Push(channel, engine.EdgeRising)
	}
	m.gateHeld[channel] = !m.gateHeld[channel]
}

var outputLabels = [engine.NumOutputs]string{"A", "B", "M1", "M2", "M3", "M4"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Engine.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	lampStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render("go-burst  dual trigger/gate processor"))
	out.WriteString("\n\n")

	// Jack lamps
	out.WriteString(dimStyle.Render("in  "))
	for ch := 0; ch < engine.NumChannels; ch++ {
		out.WriteString(fmt.Sprintf("%s %s  ", fgStyle.Render(string('A'+rune(ch))), m.lamp(lampStyle, dimStyle, snap.Inputs[ch])))
		if snap.Active[ch] {
			out.WriteString(dimStyle.Render("* "))
		}
	}
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("out "))
	for id := 0; id < engine.NumOutputs; id++ {
		out.WriteString(fmt.Sprintf("%s %s  ", fgStyle.Render(outputLabels[id]), m.lamp(lampStyle, dimStyle, snap.Outputs[id])))
	}
	out.WriteString("\n\n")

	// Menu panel or idle animation
	if snap.Idle {
		out.WriteString(m.idleView(dimStyle))
	} else {
		out.WriteString(m.menuView(snap, fgStyle, headerStyle, dimStyle))
	}

	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("←/→:page ↑/↓:param 1:b1 2:b2  t/y:trigger g/b:gate  q:quit"))
	return out.String()
}

func (m Model) lamp(on, off lipgloss.Style, high bool) string {
	if high {
		return on.Render(string(m.Theme.Symbols.LampOn))
	}
	return off.Render(string(m.Theme.Symbols.LampOff))
}

func (m Model) menuView(snap engine.Snapshot, fg, accent, dim lipgloss.Style) string {
	var out strings.Builder

	out.WriteString(accent.Render(fmt.Sprintf("◂ channel %c ▸", 'A'+rune(snap.Menu.Channel))))
	out.WriteString("\n")

	for p := engine.Param(0); p < engine.NumParams; p++ {
		cursor := "  "
		style := dim
		if p == snap.Menu.Param {
			cursor = "> "
			style = fg
		}
		value := snap.Params[snap.Menu.Channel][p]
		if p == snap.Menu.Param {
			value = snap.Menu.Value
		}
		line := fmt.Sprintf("%s%-14s %s", cursor, p.String(), formatValue(p, value))
		if p == snap.Menu.Param && snap.Menu.Mode == engine.ModeEditing {
			line += " " + string(m.Theme.Symbols.Edit) + " editing"
		}
		out.WriteString(style.Render(line))
		out.WriteString("\n")
	}
	return out.String()
}

// idleView draws the screensaver: a slowly turning ring so burnt-in pixels
// stay off the panel.
func (m Model) idleView(dim lipgloss.Style) string {
	ring := []rune{'◜', '◠', '◝', '◞', '◡', '◟'}
	var out strings.Builder
	for i := 0; i < len(ring); i++ {
		if i == m.frame%len(ring) {
			out.WriteRune(ring[i])
		} else {
			out.WriteRune('·')
		}
	}
	return dim.Render(out.String() + "\n\n(press 1 or 2 to wake)")
}

func formatValue(p engine.Param, v int) string {
	if p == engine.ParamBeginning {
		if v == engine.BeginAtEnd {
			return "End"
		}
		return "Start"
	}
	return fmt.Sprintf("%d", v)
}
