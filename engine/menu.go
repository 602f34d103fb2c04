package engine

import "go-burst/debug"

// UIEvent is one batch of panel activity polled from the controls. Knob
// deltas are in detents, negative meaning counter-clockwise.
type UIEvent struct {
	Knob1   int
	Knob2   int
	Button1 bool
	Button2 bool
}

// MenuMode is the navigation state of the settings menu.
type MenuMode int

const (
	ModeScreenOff MenuMode = iota
	ModeBrowsing
	ModeEditing
)

// Inactivity time before the screen goes dark.
const menuSleepMs = 10 * 1000

// Menu translates knob and button events into navigation over the channel
// pages and their parameters, and into edits of the settings store. It is
// the only writer of Settings; edits stay in a pending value until committed
// so the schedulers never see a half-finished edit.
type Menu struct {
	settings *Settings

	mode     MenuMode
	page     int   // selected channel
	param    Param // selected parameter on that page
	pending  int   // uncommitted value, valid only while editing
	lastSeen int64 // last activity, for the sleep timeout

	onCommit func()
}

// NewMenu creates a menu in the dark. Call Wake to light it at startup.
func NewMenu(settings *Settings) *Menu {
	return &Menu{settings: settings, mode: ModeScreenOff}
}

// SetOnCommit registers a hook fired after a value is committed, used by the
// shell to persist settings.
func (m *Menu) SetOnCommit(fn func()) { m.onCommit = fn }

// Wake lights the screen without changing the selection.
func (m *Menu) Wake(now int64) {
	m.mode = ModeBrowsing
	m.lastSeen = now
}

// IsIdle reports whether the screen is dark; the shell polls this to decide
// when to draw the idle animation instead of the menu.
func (m *Menu) IsIdle() bool { return m.mode == ModeScreenOff }

// Handle processes one polled panel event at time now. Never blocks.
func (m *Menu) Handle(ev UIEvent, now int64) {
	if ev == (UIEvent{}) {
		return
	}

	if m.mode == ModeScreenOff {
		// Any button wakes the screen; the press is consumed and does not
		// also select. Knob motion while dark is ignored.
		if ev.Button1 || ev.Button2 {
			m.Wake(now)
		}
		return
	}
	m.lastSeen = now

	switch m.mode {
	case ModeBrowsing:
		if ev.Button1 || ev.Button2 {
			m.pending = m.settings.Get(m.page, m.param)
			m.mode = ModeEditing
			return
		}
		m.page = wrap(m.page+ev.Knob1, NumChannels)
		m.param = Param(wrap(int(m.param)+ev.Knob2, int(NumParams)))

	case ModeEditing:
		if ev.Button1 {
			// Discard the pending value, settings untouched.
			m.mode = ModeBrowsing
			return
		}
		if ev.Button2 {
			if m.settings.Set(m.page, m.param, m.pending) {
				debug.Log("menu", "commit clamped ch=%d %s", m.page, m.param)
			}
			m.mode = ModeBrowsing
			if m.onCommit != nil {
				m.onCommit()
			}
			return
		}
		r := m.param.Range()
		m.pending = clamp(m.pending+ev.Knob1*r.Fine+ev.Knob2*r.Coarse, r.Min, r.Max)
	}
}

// Tick puts the screen to sleep after inactivity. A pending edit is dropped.
func (m *Menu) Tick(now int64) {
	if m.mode != ModeScreenOff && now-m.lastSeen >= menuSleepMs {
		m.mode = ModeScreenOff
	}
}

// MenuView is a read-only snapshot for rendering.
type MenuView struct {
	Mode    MenuMode
	Channel int
	Param   Param
	Value   int // pending value while editing, stored value otherwise
}

// View returns the current menu state for the renderer.
func (m *Menu) View() MenuView {
	v := MenuView{Mode: m.mode, Channel: m.page, Param: m.param}
	if m.mode == ModeEditing {
		v.Value = m.pending
	} else {
		v.Value = m.settings.Get(m.page, m.param)
	}
	return v
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
