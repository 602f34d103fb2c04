package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSettingsDefaults(t *testing.T) {
	Convey("A fresh store holds every default, all in range", t, func() {
		s := NewSettings()
		for ch := 0; ch < NumChannels; ch++ {
			for p := Param(0); p < NumParams; p++ {
				r := p.Range()
				v := s.Get(ch, p)
				So(v, ShouldEqual, r.Default)
				So(v, ShouldBeBetweenOrEqual, r.Min, r.Max)
			}
		}
		So(s.Get(0, ParamDuration), ShouldEqual, 100)
		So(s.Get(1, ParamProbability), ShouldEqual, 100)
	})
}

func TestSettingsSetClamps(t *testing.T) {
	Convey("Given a settings store", t, func() {
		s := NewSettings()

		Convey("An in-range write lands untouched", func() {
			So(s.Set(0, ParamDelay, 250), ShouldBeFalse)
			So(s.Get(0, ParamDelay), ShouldEqual, 250)
		})

		Convey("An out-of-range write is clamped, not rejected", func() {
			So(s.Set(0, ParamDuration, 99999), ShouldBeTrue)
			So(s.Get(0, ParamDuration), ShouldEqual, 10000)

			So(s.Set(1, ParamDuration, 3), ShouldBeTrue)
			So(s.Get(1, ParamDuration), ShouldEqual, 10)
		})

		Convey("Channels are independent", func() {
			s.Set(0, ParamDivisions, 8)
			So(s.Get(1, ParamDivisions), ShouldEqual, 1)
		})
	})
}

func TestSettingsLoad(t *testing.T) {
	Convey("Load clamps every restored value into range", t, func() {
		s := NewSettings()
		var vals [NumChannels][NumParams]int
		vals[0][ParamDuration] = -5
		vals[0][ParamDivisions] = 1000
		vals[1][ParamProbability] = 60
		vals[1][ParamDivisions] = 4
		vals[1][ParamDuration] = 500
		vals[1][ParamDivProbability] = 80

		s.Load(vals)

		So(s.Get(0, ParamDuration), ShouldEqual, 10)
		So(s.Get(0, ParamDivisions), ShouldEqual, 100)
		So(s.Get(1, ParamProbability), ShouldEqual, 60)
		So(s.Get(1, ParamDuration), ShouldEqual, 500)
	})
}
