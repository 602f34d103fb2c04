package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildPlanSingleDivision(t *testing.T) {
	Convey("Given a plain 1000ms pulse", t, func() {
		p := BuildPlan(1000, 1, 0)

		Convey("The plan is one solid interval spanning the duration", func() {
			So(p.Intervals, ShouldHaveLength, 1)
			So(p.Intervals[0].Offset, ShouldEqual, 0)
			So(p.Intervals[0].On, ShouldEqual, 1000)
			So(p.Span, ShouldEqual, 1000)
		})
	})
}

func TestBuildPlanDivisions(t *testing.T) {
	Convey("Given 1000ms split into 4 divisions", t, func() {
		p := BuildPlan(1000, 4, 0)

		Convey("There are four 125ms pulses on a 250ms grid", func() {
			So(p.Intervals, ShouldHaveLength, 4)
			for i, iv := range p.Intervals {
				So(iv.Offset, ShouldEqual, i*250)
				So(iv.On, ShouldEqual, 125)
				So(iv.Occurrence, ShouldEqual, 0)
			}
		})

		Convey("The output is fully low again by 1000ms", func() {
			last := p.Intervals[len(p.Intervals)-1]
			So(last.Offset+last.On, ShouldEqual, 875)
			So(p.Span, ShouldEqual, 1000)
		})
	})
}

func TestBuildPlanRepetitions(t *testing.T) {
	Convey("Given 1000ms with 2 repetitions", t, func() {
		p := BuildPlan(1000, 1, 2)

		Convey("On-intervals land at [0,1000), [2000,3000), [4000,5000)", func() {
			So(p.Intervals, ShouldHaveLength, 3)
			So(p.Intervals[0].Offset, ShouldEqual, 0)
			So(p.Intervals[1].Offset, ShouldEqual, 2000)
			So(p.Intervals[2].Offset, ShouldEqual, 4000)
			for i, iv := range p.Intervals {
				So(iv.On, ShouldEqual, 1000)
				So(iv.Occurrence, ShouldEqual, i)
			}
			So(p.Span, ShouldEqual, 5000)
		})
	})

	Convey("Given divided repetitions, the gap equals the truncated occurrence span", t, func() {
		// 1000/6 truncates: half-cycle 83ms, span 996ms.
		p := BuildPlan(1000, 6, 1)

		So(p.Intervals, ShouldHaveLength, 12)
		So(p.Intervals[6].Offset, ShouldEqual, 2*996)
		So(p.Span, ShouldEqual, 3*996)
	})
}

func TestBuildPlanProperties(t *testing.T) {
	Convey("For a sweep of valid parameters", t, func() {
		for _, duration := range []int{10, 100, 997, 10000} {
			for _, divisions := range []int{1, 2, 3, 7, 100} {
				for _, repetitions := range []int{0, 1, 5} {
					p := BuildPlan(duration, divisions, repetitions)

					prevEnd := -1
					for _, iv := range p.Intervals {
						So(iv.Offset, ShouldBeGreaterThanOrEqualTo, 0)
						So(iv.On, ShouldBeGreaterThan, 0)
						So(iv.Offset, ShouldBeGreaterThan, prevEnd-1)
						prevEnd = iv.Offset + iv.On
					}
					if len(p.Intervals) > 0 {
						occSpan := p.Span / (2*repetitions + 1)
						So(occSpan, ShouldBeLessThanOrEqualTo, duration)
						So(p.Span, ShouldEqual, (2*repetitions+1)*occSpan)
					}
				}
			}
		}
	})
}

func TestBuildPlanDegenerate(t *testing.T) {
	Convey("When divisions leave sub-millisecond slices", t, func() {
		p := BuildPlan(10, 50, 3)

		Convey("The plan degrades to empty instead of erroring", func() {
			So(p.Intervals, ShouldBeEmpty)
			So(p.Span, ShouldEqual, 0)
		})
	})
}
