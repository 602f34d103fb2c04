package main

import (
	"flag"
	"fmt"
	"strings"

	"go-burst/engine"
)

// plantest prints the pulse timeline a parameter combination produces,
// without needing hardware or a trigger.
func main() {
	var (
		duration    = flag.Int("duration", 100, "occurrence duration in ms")
		divisions   = flag.Int("divisions", 1, "divisions per occurrence")
		repetitions = flag.Int("repetitions", 0, "extra occurrences")
		delay       = flag.Int("delay", 0, "ms before the first pulse")
	)
	flag.Parse()

	p := engine.BuildPlan(*duration, *divisions, *repetitions)

	fmt.Printf("duration=%dms divisions=%d repetitions=%d delay=%dms\n\n",
		*duration, *divisions, *repetitions, *delay)

	if len(p.Intervals) == 0 {
		fmt.Println("degenerate plan: nothing to emit")
		return
	}

	fmt.Printf("%d pulses, span %dms\n\n", len(p.Intervals), p.Span)
	for i, iv := range p.Intervals {
		fmt.Printf("  %3d  occ %-3d  on %5d..%5d  (%dms)\n",
			i, iv.Occurrence, *delay+iv.Offset, *delay+iv.Offset+iv.On, iv.On)
	}

	fmt.Println()
	fmt.Println(strip(p, *delay))
}

// strip renders the timeline as one character per bucket, high = #.
func strip(p engine.Plan, delay int) string {
	const width = 72
	total := delay + p.Span
	if total <= 0 {
		return ""
	}
	var b strings.Builder
	for col := 0; col < width; col++ {
		t := col * total / width
		high := false
		for _, iv := range p.Intervals {
			if t >= delay+iv.Offset && t < delay+iv.Offset+iv.On {
				high = true
				break
			}
		}
		if high {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
