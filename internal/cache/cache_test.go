package cache

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidtouch/vidtouch/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCache(t *testing.T) {
	Convey("Given a file never played", t, func() {
		path := "/videos/" + t.Name() + ".mp4"

		Convey("Nothing is cached", func() {
			So(Read(path).IsAbsent(), ShouldBeTrue)
		})

		Convey("Written metadata is read back", func() {
			So(Write(path, Meta{Duration: 596, Aspect: 1.5}), ShouldBeNil)

			meta, ok := Read(path).Get()
			So(ok, ShouldBeTrue)
			So(meta.Duration, ShouldEqual, 596.0)
			So(meta.Aspect, ShouldEqual, 1.5)
		})

		Convey("Expired metadata is ignored", func() {
			So(Write(path, Meta{Duration: 10}), ShouldBeNil)

			old := time.Now().Add(-TTL - time.Hour)
			file := filepath.Join(getDir(), Key(path))
			So(filesystem.API().Chtimes(file, old, old), ShouldBeNil)

			So(Read(path).IsAbsent(), ShouldBeTrue)
		})

		Convey("Keys are stable per path", func() {
			So(Key("/a.mp4"), ShouldEqual, Key("/a.mp4"))
			So(Key("/a.mp4"), ShouldNotEqual, Key("/b.mp4"))
		})
	})
}
