package engine

import (
	"sync"

	"go-burst/debug"
)

const NumChannels = 2

// Param identifies one per-channel setting.
type Param int

const (
	ParamBeginning Param = iota
	ParamDelay
	ParamDuration
	ParamDivisions
	ParamRepetitions
	ParamProbability
	ParamDivProbability
	NumParams
)

// Beginning values: does the burst start on the input's rising or falling edge.
const (
	BeginAtStart = 0
	BeginAtEnd   = 1
)

// Range describes the legal values and edit increments of a parameter.
type Range struct {
	Name    string
	Min     int
	Max     int
	Default int
	Coarse  int // knob2 step while editing
	Fine    int // knob1 step while editing
}

var ranges = [NumParams]Range{
	ParamBeginning:      {Name: "Begin at", Min: BeginAtStart, Max: BeginAtEnd, Default: BeginAtStart, Coarse: 1, Fine: 1},
	ParamDelay:          {Name: "Delay (ms)", Min: 0, Max: 10000, Default: 0, Coarse: 100, Fine: 10},
	ParamDuration:       {Name: "Duration (ms)", Min: 10, Max: 10000, Default: 100, Coarse: 100, Fine: 10},
	ParamDivisions:      {Name: "Divisions", Min: 1, Max: 100, Default: 1, Coarse: 1, Fine: 1},
	ParamRepetitions:    {Name: "Repetitions", Min: 0, Max: 100, Default: 0, Coarse: 1, Fine: 1},
	ParamProbability:    {Name: "Probability", Min: 1, Max: 100, Default: 100, Coarse: 10, Fine: 1},
	ParamDivProbability: {Name: "Proba / div", Min: 1, Max: 100, Default: 100, Coarse: 10, Fine: 1},
}

// Range returns the range table entry for the parameter.
func (p Param) Range() Range {
	return ranges[p]
}

func (p Param) String() string {
	return ranges[p].Name
}

// Settings holds every parameter value for both channels. The menu is the
// only writer; writes are clamped into range, never rejected.
type Settings struct {
	mu     sync.RWMutex
	values [NumChannels][NumParams]int
}

// NewSettings creates a settings store with every parameter at its default.
func NewSettings() *Settings {
	s := &Settings{}
	for ch := 0; ch < NumChannels; ch++ {
		for p := Param(0); p < NumParams; p++ {
			s.values[ch][p] = ranges[p].Default
		}
	}
	return s
}

// Get returns the current value of a parameter.
func (s *Settings) Get(channel int, p Param) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[channel][p]
}

// Set writes a parameter value, silently clamping it into range. The return
// reports whether clamping occurred, for UI feedback.
func (s *Settings) Set(channel int, p Param, v int) (clamped bool) {
	r := ranges[p]
	cv := clamp(v, r.Min, r.Max)
	if cv != v {
		debug.Log("settings", "clamped ch=%d %s: %d -> %d", channel, r.Name, v, cv)
		clamped = true
	}
	s.mu.Lock()
	s.values[channel][p] = cv
	s.mu.Unlock()
	return clamped
}

// Snapshot returns a copy of all values, for rendering and persistence.
func (s *Settings) Snapshot() [NumChannels][NumParams]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// Load replaces all values at once, clamping each into range. Used when
// restoring persisted settings.
func (s *Settings) Load(values [NumChannels][NumParams]int) {
	for ch := 0; ch < NumChannels; ch++ {
		for p := Param(0); p < NumParams; p++ {
			s.Set(ch, p, values[ch][p])
		}
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
