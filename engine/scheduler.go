package engine

// Edge is one observed input transition.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

type schedState int

const (
	stateIdle     schedState = iota
	statePending             // waiting out the delay
	stateEmitting            // walking the plan
)

// Scheduler turns input edges on one channel into timed bursts of output
// pulses according to the channel's settings. All methods run on the tick
// goroutine; timing uses wall-clock comparison so a late tick still closes
// out a pulse that should have ended.
type Scheduler struct {
	channel  int
	settings *Settings
	gate     Trialer

	state  schedState
	origin int64 // ms timestamp of the qualifying edge
	delay  int   // latched at trigger time
	plan   Plan
	cursor int

	// Probability settings are latched at trigger time; decisions are drawn
	// lazily during execution.
	prob     int
	divProb  int
	occIndex int // occurrence occGateOK was drawn for (-1 = none yet)
	occGate  bool
	divDrawn bool // division gate drawn for the cursor interval
	divGate  bool

	inputHigh bool
	output    bool
}

// NewScheduler creates an idle scheduler for one channel.
func NewScheduler(channel int, settings *Settings, gate Trialer) *Scheduler {
	return &Scheduler{channel: channel, settings: settings, gate: gate, occIndex: -1}
}

// Output reports the level currently driven.
func (s *Scheduler) Output() bool { return s.output }

// InputHigh reports the input's current logic level.
func (s *Scheduler) InputHigh() bool { return s.inputHigh }

// Active reports whether a burst is pending or emitting.
func (s *Scheduler) Active() bool { return s.state != stateIdle }

// OnEdge feeds one input transition observed at time now (monotonic ms).
// A rising edge always cancels an in-flight burst, whatever the beginning
// mode; the edge matching the beginning mode starts a new one. Last trigger
// wins, abandoned plans are never resumed.
func (s *Scheduler) OnEdge(e Edge, now int64) {
	switch e {
	case EdgeRising:
		s.inputHigh = true
		s.reset()
		if s.settings.Get(s.channel, ParamBeginning) == BeginAtStart {
			s.trigger(now)
		}
	case EdgeFalling:
		s.inputHigh = false
		if s.settings.Get(s.channel, ParamBeginning) == BeginAtEnd {
			s.trigger(now)
		}
	}
}

// trigger latches the channel's settings, builds the plan and enters Pending.
func (s *Scheduler) trigger(now int64) {
	s.reset()
	s.plan = BuildPlan(
		s.settings.Get(s.channel, ParamDuration),
		s.settings.Get(s.channel, ParamDivisions),
		s.settings.Get(s.channel, ParamRepetitions),
	)
	s.delay = s.settings.Get(s.channel, ParamDelay)
	s.prob = s.settings.Get(s.channel, ParamProbability)
	s.divProb = s.settings.Get(s.channel, ParamDivProbability)
	s.origin = now
	s.state = statePending
}

// reset abandons any in-flight plan and drops the output.
func (s *Scheduler) reset() {
	s.state = stateIdle
	s.plan = Plan{}
	s.cursor = 0
	s.occIndex = -1
	s.divDrawn = false
	s.output = false
}

// Tick advances the state machine to wall-clock time now.
func (s *Scheduler) Tick(now int64) {
	switch s.state {
	case stateIdle:
		return
	case statePending:
		if now-s.origin < int64(s.delay) {
			return
		}
		if len(s.plan.Intervals) == 0 {
			s.reset()
			return
		}
		s.state = stateEmitting
		s.advance(now)
	case stateEmitting:
		s.advance(now)
	}
}

// advance positions the cursor on the interval covering the elapsed time and
// drives the output. Each occurrence is gated by one probability trial drawn
// at its first pulse; each division pulse is additionally gated by its own
// trial. A failed trial silences the pulse but the timeline keeps advancing,
// so repetitions are independently gated occurrences.
func (s *Scheduler) advance(now int64) {
	elapsed := now - s.origin - int64(s.delay)
	for {
		if s.cursor >= len(s.plan.Intervals) {
			s.reset()
			return
		}
		iv := s.plan.Intervals[s.cursor]
		if elapsed >= int64(iv.Offset+iv.On) {
			s.cursor++
			s.divDrawn = false
			continue
		}
		if elapsed < int64(iv.Offset) {
			s.output = false
			return
		}
		if iv.Occurrence != s.occIndex {
			s.occIndex = iv.Occurrence
			s.occGate = s.gate.Trial(s.prob)
		}
		if !s.divDrawn {
			s.divDrawn = true
			s.divGate = s.gate.Trial(s.divProb)
		}
		s.output = s.occGate && s.divGate
		return
	}
}
