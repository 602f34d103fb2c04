package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMenuWake(t *testing.T) {
	Convey("Given a dark screen", t, func() {
		m := NewMenu(NewSettings())
		So(m.IsIdle(), ShouldBeTrue)

		Convey("A button press wakes it without selecting anything", func() {
			m.Handle(UIEvent{Button1: true}, 0)
			So(m.IsIdle(), ShouldBeFalse)
			So(m.View().Mode, ShouldEqual, ModeBrowsing)
		})

		Convey("Knob motion while dark is ignored", func() {
			m.Handle(UIEvent{Knob1: 3}, 0)
			So(m.IsIdle(), ShouldBeTrue)
		})
	})
}

func TestMenuBrowsing(t *testing.T) {
	Convey("Given a woken menu", t, func() {
		m := NewMenu(NewSettings())
		m.Wake(0)

		Convey("Knob1 cycles the channel page, wrapping", func() {
			m.Handle(UIEvent{Knob1: 1}, 1)
			So(m.View().Channel, ShouldEqual, 1)
			m.Handle(UIEvent{Knob1: 1}, 2)
			So(m.View().Channel, ShouldEqual, 0)
			m.Handle(UIEvent{Knob1: -1}, 3)
			So(m.View().Channel, ShouldEqual, 1)
		})

		Convey("Knob2 cycles the parameter, wrapping", func() {
			m.Handle(UIEvent{Knob2: 1}, 1)
			So(m.View().Param, ShouldEqual, ParamDelay)
			m.Handle(UIEvent{Knob2: -2}, 2)
			So(m.View().Param, ShouldEqual, ParamDivProbability)
		})

		Convey("The shown value is the stored one", func() {
			m.Handle(UIEvent{Knob2: 2}, 1) // duration
			So(m.View().Value, ShouldEqual, 100)
		})
	})
}

func TestMenuEditing(t *testing.T) {
	Convey("Given a menu browsing the duration parameter", t, func() {
		set := NewSettings()
		m := NewMenu(set)
		m.Wake(0)
		m.Handle(UIEvent{Knob2: 2}, 1) // select duration

		Convey("A button press opens the edit with the stored value pending", func() {
			m.Handle(UIEvent{Button2: true}, 2)
			v := m.View()
			So(v.Mode, ShouldEqual, ModeEditing)
			So(v.Value, ShouldEqual, 100)
		})

		Convey("Knob2 steps coarse, knob1 steps fine, clamped live", func() {
			m.Handle(UIEvent{Button2: true}, 2)
			m.Handle(UIEvent{Knob2: 3}, 3) // +300
			So(m.View().Value, ShouldEqual, 400)
			m.Handle(UIEvent{Knob1: -2}, 4) // -20
			So(m.View().Value, ShouldEqual, 380)
			m.Handle(UIEvent{Knob2: -100}, 5) // way past the floor
			So(m.View().Value, ShouldEqual, 10)
		})

		Convey("Cancel leaves the store byte-for-byte unchanged", func() {
			before := set.Snapshot()
			m.Handle(UIEvent{Button1: true}, 2)
			m.Handle(UIEvent{Knob2: 5}, 3)
			m.Handle(UIEvent{Button1: true}, 4) // discard
			So(m.View().Mode, ShouldEqual, ModeBrowsing)
			So(set.Snapshot(), ShouldResemble, before)
			So(m.View().Value, ShouldEqual, 100)
		})

		Convey("Save commits exactly the pending value and fires the hook", func() {
			commits := 0
			m.SetOnCommit(func() { commits++ })
			m.Handle(UIEvent{Button2: true}, 2)
			m.Handle(UIEvent{Knob2: 3}, 3)
			m.Handle(UIEvent{Button2: true}, 4) // commit
			So(set.Get(0, ParamDuration), ShouldEqual, 400)
			So(commits, ShouldEqual, 1)
			So(m.View().Mode, ShouldEqual, ModeBrowsing)
		})
	})
}

func TestMenuSleep(t *testing.T) {
	Convey("Given a woken menu left alone", t, func() {
		m := NewMenu(NewSettings())
		m.Wake(0)

		m.Tick(9_999)
		So(m.IsIdle(), ShouldBeFalse)

		m.Tick(10_000)

		Convey("It goes dark after the inactivity timeout", func() {
			So(m.IsIdle(), ShouldBeTrue)
		})

		Convey("A mid-edit sleep drops the pending value", func() {
			m.Handle(UIEvent{Button1: true}, 10_001) // wake
			m.Handle(UIEvent{Button2: true}, 10_002) // edit
			m.Handle(UIEvent{Knob2: 1}, 10_003)
			m.Tick(25_000)
			So(m.IsIdle(), ShouldBeTrue)

			m.Handle(UIEvent{Button1: true}, 25_001) // wake again
			So(m.View().Mode, ShouldEqual, ModeBrowsing)
			So(m.View().Value, ShouldEqual, ParamBeginning.Range().Default)
		})
	})
}
