package library

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidtouch/vidtouch/filesystem"
)

func touch(path string) {
	lo.Must0(filesystem.API().MkdirAll(filepath.Dir(path), os.ModePerm))
	lo.Must0(filesystem.API().WriteFile(path, []byte("video"), 0644))
}

func names(videos []*Video) []string {
	return lo.Map(videos, func(v *Video, _ int) string {
		return v.Name
	})
}

func TestScan(t *testing.T) {
	Convey("Given a directory of mixed files", t, func() {
		filesystem.SetMemMapFs()

		touch("/videos/charlie.mp4")
		touch("/videos/alpha.MKV")
		touch("/videos/notes.txt")
		touch("/videos/.hidden.mp4")
		touch("/videos/season 1/bravo.webm")
		touch("/videos/.trash/delta.mp4")

		Convey("A flat scan keeps only top-level videos sorted by path", func() {
			videos, err := Scan("/videos", false)

			So(err, ShouldBeNil)
			So(names(videos), ShouldResemble, []string{"alpha", "charlie"})
			So(videos[0].Dir, ShouldEqual, "/videos")
			So(videos[0].Size, ShouldEqual, 5)
		})

		Convey("A recursive scan enters visible subdirectories", func() {
			videos, err := Scan("/videos", true)

			So(err, ShouldBeNil)
			So(names(videos), ShouldResemble, []string{"alpha", "charlie", "bravo"})
		})

		Convey("Missing directories and files are errors", func() {
			_, err := Scan("/nope", false)
			So(err, ShouldNotBeNil)

			_, err = Scan("/videos/charlie.mp4", false)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given a single file", t, func() {
		filesystem.SetMemMapFs()
		touch("/videos/clip.mp4")
		touch("/videos/notes.txt")

		Convey("A video opens", func() {
			video, err := Open("/videos/clip.mp4")
			So(err, ShouldBeNil)
			So(video.Name, ShouldEqual, "clip")
			So(video.Path, ShouldEqual, "/videos/clip.mp4")
		})

		Convey("Directories, other files and missing paths do not", func() {
			_, err := Open("/videos")
			So(err, ShouldNotBeNil)
			_, err = Open("/videos/notes.txt")
			So(err, ShouldNotBeNil)
			_, err = Open("/videos/gone.mp4")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestIsVideo(t *testing.T) {
	Convey("Extensions are matched case-insensitively", t, func() {
		So(IsVideo("a.mp4"), ShouldBeTrue)
		So(IsVideo("/x/b.MOV"), ShouldBeTrue)
		So(IsVideo("c.srt"), ShouldBeFalse)
		So(IsVideo("mp4"), ShouldBeFalse)
	})
}

func TestSearch(t *testing.T) {
	Convey("Given a few videos", t, func() {
		videos := []*Video{
			newVideo("/v/Big Buck Bunny.mp4", 1, time.Time{}),
			newVideo("/v/Sintel.mkv", 1, time.Time{}),
			newVideo("/v/Bunny.mp4", 1, time.Time{}),
		}

		Convey("An empty query keeps everything", func() {
			So(Search("", videos), ShouldResemble, videos)
		})

		Convey("Matches are case-insensitive and ranked", func() {
			found := Search("bunny", videos)

			So(names(found), ShouldContain, "Big Buck Bunny")
			So(names(found), ShouldContain, "Bunny")
			So(names(found), ShouldNotContain, "Sintel")
			So(found[0].Name, ShouldEqual, "Bunny")
		})

		Convey("No match yields nothing", func() {
			So(Search("zzz", videos), ShouldBeEmpty)
		})
	})
}

func TestOutput(t *testing.T) {
	Convey("Given a listing", t, func() {
		out := NewOutput("/v", "", nil)

		Convey("It encodes an empty list rather than null", func() {
			var buf bytes.Buffer
			So(out.Encode(&buf), ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded["videos"], ShouldResemble, []any{})
			So(decoded, ShouldNotContainKey, "query")
		})

		Convey("The schema describes the document", func() {
			raw, err := json.Marshal(Schema())
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, "scanned_at")
			So(string(raw), ShouldContainSubstring, "mod_time")
		})

		Convey("Each domain type gets its own definition", func() {
			schema := Schema()
			So(schema.Definitions, ShouldContainKey, "library.Output")
			So(schema.Definitions, ShouldContainKey, "library.Video")
			So(schema.Definitions, ShouldNotContainKey, "library.")

			raw, err := json.Marshal(schema.Definitions["library.Output"])
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"$ref":"#/$defs/library.Video"`)
		})
	})
}

func TestWatcher(t *testing.T) {
	Convey("Given a watched directory on disk", t, func() {
		filesystem.SetOsFs()
		Reset(filesystem.SetMemMapFs)

		dir := t.TempDir()
		lo.Must0(os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("x"), 0644))

		changes := make(chan []*Video, 8)
		w, err := NewWatcher(dir, false, func(videos []*Video) {
			changes <- videos
		})
		So(err, ShouldBeNil)
		So(names(w.Videos()), ShouldResemble, []string{"a"})

		w.Start()
		Reset(func() {
			w.Stop()
			w.Wait()
		})

		Convey("Creating a video triggers a rescan", func() {
			lo.Must0(os.WriteFile(filepath.Join(dir, "b.mp4"), []byte("x"), 0644))

			var got []*Video
			deadline := time.After(5 * time.Second)
		wait:
			for {
				select {
				case got = <-changes:
					if len(got) == 2 {
						break wait
					}
				case <-deadline:
					break wait
				}
			}

			So(names(got), ShouldResemble, []string{"a", "b"})
			So(len(w.Videos()), ShouldEqual, 2)
		})
	})

	Convey("Watching an in-memory filesystem fails", t, func() {
		filesystem.SetMemMapFs()
		_, err := NewWatcher("/", false, nil)
		So(err, ShouldNotBeNil)
	})
}
