package engine

import "go-burst/debug"

// Interval is one scheduled on-pulse, in milliseconds relative to the burst
// origin (the moment the delay has elapsed).
type Interval struct {
	Offset     int // origin to rising edge
	On         int // time the output stays high
	Occurrence int // which repetition cycle this pulse belongs to
}

// Plan is the immutable execution script for one trigger: the ordered pulse
// timeline for every occurrence. Randomness is applied during execution,
// never here.
type Plan struct {
	Intervals []Interval
	Span      int // origin to the end of the last occurrence
}

// BuildPlan computes the pulse timeline for one trigger. One occurrence is
// the duration split into divisions equal on/off half-cycles (or a single
// solid pulse when divisions is 1). The occurrence is emitted repetitions+1
// times, each separated by one occurrence span of silence.
func BuildPlan(duration, divisions, repetitions int) Plan {
	pulses, span := occurrence(duration, divisions)
	if len(pulses) == 0 {
		// Integer truncation left nothing to emit. Not an error.
		debug.Log("plan", "degenerate: duration=%dms divisions=%d leaves zero-length slices", duration, divisions)
		return Plan{}
	}

	var p Plan
	for r := 0; r <= repetitions; r++ {
		start := r * 2 * span
		for _, iv := range pulses {
			p.Intervals = append(p.Intervals, Interval{
				Offset:     start + iv.Offset,
				On:         iv.On,
				Occurrence: r,
			})
		}
	}
	p.Span = repetitions*2*span + span
	return p
}

// occurrence lays out the pulses of a single occurrence and its total span.
// With divisions > 1 each division gets duration/(2*divisions) on and the
// same off, so the span is the truncated duration.
func occurrence(duration, divisions int) ([]Interval, int) {
	if divisions <= 1 {
		return []Interval{{Offset: 0, On: duration}}, duration
	}
	half := duration / (2 * divisions)
	if half <= 0 {
		return nil, 0
	}
	pulses := make([]Interval, divisions)
	for i := 0; i < divisions; i++ {
		pulses[i] = Interval{Offset: i * 2 * half, On: half}
	}
	return pulses, 2 * half * divisions
}
