package controls

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidtouch/vidtouch/internal/tick"
)

func newTestTimer() (*Timer, *tick.Recorder) {
	rec := &tick.Recorder{}
	t := New(3 * time.Second)
	t.after = rec.Schedule
	return t, rec
}

func TestShow(t *testing.T) {
	Convey("Given a timer while playing", t, func() {
		timer, rec := newTestTimer()

		Convey("Show schedules a hide after the timeout", func() {
			cmd := timer.Show()

			So(cmd, ShouldNotBeNil)
			So(timer.State(), ShouldEqual, VisibleTimed)
			So(rec.Last().Delay, ShouldEqual, 3*time.Second)

			timer.Update(rec.Last().Msg.(HideMsg))
			So(timer.State(), ShouldEqual, Hidden)
		})

		Convey("A second Show restarts the countdown and only one hide fires", func() {
			timer.Show()
			first := rec.Last().Msg.(HideMsg)
			timer.Show()
			second := rec.Last().Msg.(HideMsg)

			timer.Update(first)
			So(timer.State(), ShouldEqual, VisibleTimed)

			timer.Update(second)
			So(timer.State(), ShouldEqual, Hidden)
		})
	})

	Convey("Given a paused timer", t, func() {
		timer, rec := newTestTimer()
		timer.SetPaused(true)

		Convey("Show never schedules a hide", func() {
			So(timer.Show(), ShouldBeNil)
			So(rec.Calls, ShouldBeEmpty)
			So(timer.State(), ShouldEqual, VisiblePinned)
		})

		Convey("Resuming while visible arms the countdown", func() {
			timer.Show()
			cmd := timer.SetPaused(false)

			So(cmd, ShouldNotBeNil)
			So(timer.State(), ShouldEqual, VisibleTimed)
			So(len(rec.Calls), ShouldEqual, 1)
		})

		Convey("Resuming while hidden keeps it hidden", func() {
			So(timer.SetPaused(false), ShouldBeNil)
			So(timer.State(), ShouldEqual, Hidden)
		})
	})

	Convey("A zero timeout never auto-hides", t, func() {
		timer, rec := newTestTimer()
		timer.Timeout = 0

		So(timer.Show(), ShouldBeNil)
		So(rec.Calls, ShouldBeEmpty)
		So(timer.State(), ShouldEqual, VisiblePinned)
	})
}

func TestPause(t *testing.T) {
	Convey("Pausing while visible cancels the pending hide", t, func() {
		timer, rec := newTestTimer()
		timer.Show()
		pending := rec.Last().Msg.(HideMsg)

		So(timer.SetPaused(true), ShouldBeNil)
		So(timer.State(), ShouldEqual, VisiblePinned)

		timer.Update(pending)
		So(timer.Visible(), ShouldBeTrue)
	})

	Convey("Repeated pause reports are ignored", t, func() {
		timer, rec := newTestTimer()
		timer.Show()

		So(timer.SetPaused(false), ShouldBeNil)
		So(len(rec.Calls), ShouldEqual, 1)
	})
}

func TestToggle(t *testing.T) {
	Convey("Given a visible timer", t, func() {
		timer, rec := newTestTimer()
		timer.Show()
		pending := rec.Last().Msg.(HideMsg)

		Convey("Toggle hides it and marks the override", func() {
			So(timer.Toggle(), ShouldBeNil)
			So(timer.State(), ShouldEqual, Hidden)
			So(timer.Manual(), ShouldBeTrue)

			timer.Update(pending)
			So(timer.State(), ShouldEqual, Hidden)
		})

		Convey("Activity after a manual hide shows it pinned", func() {
			timer.Toggle()

			So(timer.Show(), ShouldBeNil)
			So(timer.State(), ShouldEqual, VisiblePinned)
		})

		Convey("Resume after a manual hide does not arm the countdown", func() {
			timer.Toggle()
			timer.SetPaused(true)
			rec.Reset()
			timer.Show()

			So(timer.SetPaused(false), ShouldBeNil)
			So(rec.Calls, ShouldBeEmpty)
		})

		Convey("Toggling back shows it and clears the override", func() {
			timer.Toggle()

			So(timer.Toggle(), ShouldNotBeNil)
			So(timer.State(), ShouldEqual, VisibleTimed)
			So(timer.Manual(), ShouldBeFalse)
		})
	})
}

func TestStop(t *testing.T) {
	Convey("Stop cancels the countdown for good", t, func() {
		timer, rec := newTestTimer()
		timer.Show()
		pending := rec.Last().Msg.(HideMsg)

		timer.Stop()
		timer.Update(pending)
		So(timer.Visible(), ShouldBeTrue)

		rec.Reset()
		So(timer.Show(), ShouldBeNil)
		So(rec.Calls, ShouldBeEmpty)
	})
}
