package adjust

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidtouch/vidtouch/gesture"
)

func TestRouter(t *testing.T) {
	Convey("With both gestures enabled", t, func() {
		r := Router{VolumeEnabled: true, BrightnessEnabled: true}

		So(r.Wired(), ShouldBeTrue)
		So(r.Target(gesture.SideRight), ShouldEqual, Volume)
		So(r.Target(gesture.SideLeft), ShouldEqual, Brightness)
	})

	Convey("With only brightness enabled both halves drive brightness", t, func() {
		r := Router{BrightnessEnabled: true}

		So(r.Target(gesture.SideRight), ShouldEqual, Brightness)
		So(r.Target(gesture.SideLeft), ShouldEqual, Brightness)
	})

	Convey("With only volume enabled both halves drive volume", t, func() {
		r := Router{VolumeEnabled: true}

		So(r.Target(gesture.SideLeft), ShouldEqual, Volume)
	})

	Convey("With neither enabled nothing is wired", t, func() {
		r := Router{}

		So(r.Wired(), ShouldBeFalse)
		So(r.Target(gesture.SideLeft), ShouldEqual, None)
		So(None.String(), ShouldEqual, "none")
	})
}
