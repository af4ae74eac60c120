package gesture

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidtouch/vidtouch/internal/tick"
)

func TestTapRecognizer(t *testing.T) {
	Convey("Given a tap recognizer in portrait", t, func() {
		rec := &recorder{}
		clock := &tick.Recorder{}
		landscape := false
		r := NewTapRecognizer(portrait(), rec.handlers(), func() bool { return landscape })
		r.after = clock.Schedule

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		at := func(ms int) time.Time { return start.Add(time.Duration(ms) * time.Millisecond) }

		fire := func() {
			r.Update(clock.Last().Msg.(SingleTapMsg))
		}

		Convey("A lone tap fires once the window passes", func() {
			cmd := r.Tap(150, 300, at(0))

			So(cmd, ShouldNotBeNil)
			So(clock.Last().Delay, ShouldEqual, DoubleTapWindow)
			So(rec.taps, ShouldEqual, 0)
			So(r.Pending(), ShouldBeTrue)

			fire()
			So(rec.taps, ShouldEqual, 1)
			So(r.Pending(), ShouldBeFalse)
		})

		Convey("Two quick taps are one double tap and no single tap", func() {
			r.Tap(250, 300, at(0))
			first := clock.Last().Msg.(SingleTapMsg)
			cmd := r.Tap(255, 305, at(200))

			So(cmd, ShouldBeNil)
			So(rec.doubles, ShouldResemble, []Zone{ZoneRightThird})

			r.Update(first)
			So(rec.taps, ShouldEqual, 0)
		})

		Convey("Double taps route by third", func() {
			r.Tap(10, 300, at(0))
			r.Tap(20, 300, at(100))
			r.Tap(150, 300, at(1000))
			r.Tap(150, 300, at(1100))

			So(rec.doubles, ShouldResemble, []Zone{ZoneLeftThird})
			So(rec.centers, ShouldEqual, 1)
		})

		Convey("A third rapid tap pairs with the second", func() {
			r.Tap(250, 300, at(0))
			r.Tap(250, 300, at(100))
			r.Tap(250, 300, at(200))

			So(rec.doubles, ShouldResemble, []Zone{ZoneRightThird, ZoneRightThird})
			So(rec.taps, ShouldEqual, 0)
		})

		Convey("Taps too far apart in time or space are single taps", func() {
			r.Tap(150, 300, at(0))
			r.Tap(150, 300, at(300))
			So(rec.taps, ShouldEqual, 1)
			fire()
			So(rec.taps, ShouldEqual, 2)

			r.Tap(10, 300, at(1000))
			fire()
			r.Tap(80, 300, at(1050))
			fire()
			So(rec.taps, ShouldEqual, 4)
			So(rec.doubles, ShouldBeEmpty)
			So(rec.centers, ShouldEqual, 0)
		})

		Convey("Excluded taps produce nothing and leave the state alone", func() {
			r.Tap(150, 300, at(0))
			before := r.State()

			cmd := r.Tap(150, 20, at(100))
			So(cmd, ShouldBeNil)
			So(r.State(), ShouldResemble, before)

			cmd = r.Tap(150, 20, at(150))
			So(cmd, ShouldBeNil)
			So(rec.centers, ShouldEqual, 0)
		})

		Convey("Landscape double taps carry the x coordinate", func() {
			landscape = true
			r.Tap(42, 300, at(0))
			r.Tap(44, 300, at(100))

			So(rec.landscape, ShouldResemble, []float64{44})
			So(rec.doubles, ShouldBeEmpty)
		})

		Convey("Stop drops a pending single tap", func() {
			r.Tap(150, 300, at(0))
			r.Stop()
			fire()
			So(rec.taps, ShouldEqual, 0)
		})
	})
}
