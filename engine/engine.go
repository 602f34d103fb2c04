package engine

import (
	"context"
	"sync"
	"time"

	"go-burst/debug"
)

// Output jack identifiers: the two direct channel outputs followed by the
// four derived mixes.
const (
	OutA = iota
	OutB
	OutMix1
	OutMix2
	OutMix3
	OutMix4
	NumOutputs
)

// EdgeReader supplies at most one debounced input transition per channel per
// tick.
type EdgeReader interface {
	ReadEdge(channel int) Edge
}

// OutputWriter drives a physical or simulated output jack. The engine calls
// it at most once per level change.
type OutputWriter interface {
	WriteLevel(output int, high bool)
}

// UIEventSource supplies at most one panel event per tick.
type UIEventSource interface {
	PollUIEvent() (UIEvent, bool)
}

// Default tick interval. Millisecond-scale control signals don't need finer.
const DefaultTickInterval = 2 * time.Millisecond

// UI notification rate, matching the renderer's frame budget.
const updateFPS = 30

// Engine owns both channel schedulers, the mixer wiring and the menu, and
// advances them all from a single tick goroutine. Within a tick: input edges,
// then schedulers, then mixes, then at most one UI event, so derived outputs
// never lag their sources.
type Engine struct {
	mu sync.RWMutex

	settings *Settings
	menu     *Menu
	chans    [NumChannels]*Scheduler
	mixes    [NumMixes]MixerConfig

	edges   EdgeReader
	outputs OutputWriter
	ui      UIEventSource

	levels   [NumOutputs]bool // last written levels, for diffing
	interval time.Duration
	epoch    time.Time

	// Closed-loop notification for the TUI, teacher-style: non-blocking,
	// capacity one.
	UpdateChan chan struct{}
}

// New wires up an engine. The mixer wiring table is explicit configuration,
// not compiled-in constants. Any of edges, outputs and ui may be nil.
func New(settings *Settings, gate Trialer, mixes [NumMixes]MixerConfig, edges EdgeReader, outputs OutputWriter, ui UIEventSource) *Engine {
	e := &Engine{
		settings:   settings,
		menu:       NewMenu(settings),
		mixes:      mixes,
		edges:      edges,
		outputs:    outputs,
		ui:         ui,
		interval:   DefaultTickInterval,
		UpdateChan: make(chan struct{}, 1),
	}
	for i := range e.chans {
		e.chans[i] = NewScheduler(i, settings, gate)
	}
	return e
}

// SetTickInterval overrides the tick period. Call before Run.
func (e *Engine) SetTickInterval(d time.Duration) { e.interval = d }

// Settings returns the shared settings store.
func (e *Engine) Settings() *Settings { return e.settings }

// Menu returns the menu controller.
func (e *Engine) Menu() *Menu { return e.menu }

// Mixes returns the mixer wiring table.
func (e *Engine) Mixes() [NumMixes]MixerConfig { return e.mixes }

// Tick advances the whole engine to wall-clock time now (monotonic ms).
// Exposed for tests; Run drives it in production.
func (e *Engine) Tick(now int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 1. Sample input edges.
	if e.edges != nil {
		for i, ch := range e.chans {
			if edge := e.edges.ReadEdge(i); edge != EdgeNone {
				ch.OnEdge(edge, now)
			}
		}
	}

	// 2. Advance both schedulers.
	for _, ch := range e.chans {
		ch.Tick(now)
	}

	// 3. Recompute outputs from the fresh channel levels.
	e.writeLevel(OutA, e.chans[0].Output())
	e.writeLevel(OutB, e.chans[1].Output())
	for i, cfg := range e.mixes {
		e.writeLevel(OutMix1+i, Combine(e.source(cfg.A), e.source(cfg.B), cfg.Op))
	}

	// 4. At most one pending UI event.
	if e.ui != nil {
		if ev, ok := e.ui.PollUIEvent(); ok {
			e.menu.Handle(ev, now)
		}
	}
	e.menu.Tick(now)
}

func (e *Engine) source(s MixSource) bool {
	switch s {
	case SourceOutputA:
		return e.chans[0].Output()
	case SourceOutputB:
		return e.chans[1].Output()
	case SourceInputA:
		return e.chans[0].InputHigh()
	case SourceInputB:
		return e.chans[1].InputHigh()
	}
	return false
}

// writeLevel forwards a level to the output writer only when it changed.
func (e *Engine) writeLevel(output int, high bool) {
	if e.levels[output] == high {
		return
	}
	e.levels[output] = high
	if e.outputs != nil {
		e.outputs.WriteLevel(output, high)
	}
}

// Now returns monotonic milliseconds since Run started. Valid only while
// running.
func (e *Engine) Now() int64 {
	return time.Since(e.epoch).Milliseconds()
}

// Run drives the tick loop until the context is cancelled. Nothing inside a
// tick blocks or sleeps; a late tick catches up by wall-clock comparison.
func (e *Engine) Run(ctx context.Context) {
	e.epoch = time.Now()
	e.menu.Wake(0)

	ticker := time.NewTicker(e.interval)
	uiTicker := time.NewTicker(time.Second / updateFPS)
	defer ticker.Stop()
	defer uiTicker.Stop()

	debug.Log("engine", "run: tick=%s", e.interval)
	for {
		select {
		case <-ctx.Done():
			debug.Log("engine", "run: stopped")
			return
		case <-ticker.C:
			e.Tick(e.Now())
		case <-uiTicker.C:
			select {
			case e.UpdateChan <- struct{}{}:
			default:
			}
		}
	}
}

// Snapshot is the read-only state surface the renderer consumes.
type Snapshot struct {
	Inputs  [NumChannels]bool
	Active  [NumChannels]bool
	Outputs [NumOutputs]bool
	Menu    MenuView
	Idle    bool
	Params  [NumChannels][NumParams]int
}

// Snapshot returns a consistent copy of the live state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var s Snapshot
	for i, ch := range e.chans {
		s.Inputs[i] = ch.InputHigh()
		s.Active[i] = ch.Active()
	}
	s.Outputs = e.levels
	s.Menu = e.menu.View()
	s.Idle = e.menu.IsIdle()
	s.Params = e.settings.Snapshot()
	return s
}

// EdgeQueue is a thread-safe EdgeReader fed by input adapters (MIDI, serial,
// simulated keys). One edge per channel is handed out per tick, preserving
// order.
type EdgeQueue struct {
	mu      sync.Mutex
	pending [NumChannels][]Edge
}

func NewEdgeQueue() *EdgeQueue { return &EdgeQueue{} }

// Push queues one observed transition.
func (q *EdgeQueue) Push(channel int, e Edge) {
	if channel < 0 || channel >= NumChannels || e == EdgeNone {
		return
	}
	q.mu.Lock()
	q.pending[channel] = append(q.pending[channel], e)
	q.mu.Unlock()
}

// ReadEdge pops the oldest pending transition for the channel.
func (q *EdgeQueue) ReadEdge(channel int) Edge {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending[channel]) == 0 {
		return EdgeNone
	}
	e := q.pending[channel][0]
	q.pending[channel] = q.pending[channel][1:]
	return e
}

// UIQueue is a thread-safe UIEventSource fed by front-ends.
type UIQueue struct {
	mu      sync.Mutex
	pending []UIEvent
}

func NewUIQueue() *UIQueue { return &UIQueue{} }

// Push queues one panel event.
func (q *UIQueue) Push(ev UIEvent) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
}

// PollUIEvent pops the oldest pending event.
func (q *UIQueue) PollUIEvent() (UIEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return UIEvent{}, false
	}
	ev := q.pending[0]
	q.pending = q.pending[1:]
	return ev, true
}

// FanOut forwards level changes to every attached writer.
type FanOut []OutputWriter

func (f FanOut) WriteLevel(output int, high bool) {
	for _, w := range f {
		if w != nil {
			w.WriteLevel(output, high)
		}
	}
}
