package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCombine(t *testing.T) {
	Convey("Each operator follows its truth table", t, func() {
		cases := []struct {
			a, b bool
			op   MixOp
			want bool
		}{
			{false, false, MixOr, false},
			{true, false, MixOr, true},
			{false, true, MixOr, true},
			{true, true, MixOr, true},

			{false, false, MixXor, false},
			{true, false, MixXor, true},
			{false, true, MixXor, true},
			{true, true, MixXor, false},

			{false, false, MixAnd, false},
			{true, false, MixAnd, false},
			{false, true, MixAnd, false},
			{true, true, MixAnd, true},

			{true, true, MixNone, false},
			{true, false, MixNone, false},
		}
		for _, c := range cases {
			So(Combine(c.a, c.b, c.op), ShouldEqual, c.want)
		}
	})

	Convey("Xor equals Or whenever the sources are never both high", t, func() {
		for _, pair := range [][2]bool{{false, false}, {true, false}, {false, true}} {
			So(Combine(pair[0], pair[1], MixXor), ShouldEqual, Combine(pair[0], pair[1], MixOr))
		}
		So(Combine(true, true, MixXor), ShouldNotEqual, Combine(true, true, MixOr))
	})
}

func TestDefaultMixes(t *testing.T) {
	Convey("The default wiring mirrors the classic panel", t, func() {
		m := DefaultMixes()
		So(m[0], ShouldResemble, MixerConfig{Op: MixOr, A: SourceOutputA, B: SourceInputA})
		So(m[1], ShouldResemble, MixerConfig{Op: MixOr, A: SourceOutputA, B: SourceOutputB})
		So(m[2], ShouldResemble, MixerConfig{Op: MixOr, A: SourceOutputB, B: SourceInputB})
		So(m[3], ShouldResemble, MixerConfig{Op: MixXor, A: SourceOutputA, B: SourceOutputB})
	})
}
