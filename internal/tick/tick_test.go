package tick

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type ping struct{ n int }

func TestRecorder(t *testing.T) {
	Convey("Given a recorder", t, func() {
		var r Recorder

		Convey("Last on an empty recorder is the zero call", func() {
			So(r.Last(), ShouldResemble, Call{})
		})

		Convey("Schedule records the delay and message", func() {
			cmd := r.Schedule(time.Second, ping{1})
			r.Schedule(2*time.Second, ping{2})

			So(len(r.Calls), ShouldEqual, 2)
			So(r.Last().Delay, ShouldEqual, 2*time.Second)
			So(r.Last().Msg, ShouldResemble, ping{2})
			So(cmd(), ShouldResemble, ping{1})

			r.Reset()
			So(r.Calls, ShouldBeEmpty)
		})
	})
}
