package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers IPC commands from an in-memory property table.
type fakeMPV struct {
	listener net.Listener
	path     string

	mu       sync.Mutex
	props    map[string]interface{}
	commands [][]interface{}
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "vidtouch-ipc")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "mpv.sock")
	l, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })

	f := &fakeMPV{
		listener: l,
		path:     path,
		props: map[string]interface{}{
			"pid":                 float64(42),
			"time-pos":            12.5,
			"duration":            120.0,
			"pause":               false,
			"volume":              40.0,
			"brightness":          -50.0,
			"video-params/aspect": 16.0 / 9.0,
		},
	}
	go f.serve()
	return f
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			return
		}

		// unrelated traffic that must be skipped by the client
		_, _ = conn.Write([]byte(`{"event":"playback-restart"}` + "\n"))

		data, errText := f.apply(cmd.Command)
		reply, _ := json.Marshal(map[string]interface{}{
			"data":       data,
			"error":      errText,
			"request_id": cmd.RequestID,
		})
		_, _ = conn.Write(append(reply, '\n'))
	}
}

func (f *fakeMPV) apply(command []interface{}) (interface{}, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.commands = append(f.commands, command)

	switch command[0] {
	case "get_property":
		v, ok := f.props[command[1].(string)]
		if !ok {
			return nil, "property unavailable"
		}
		return v, "success"
	case "set_property":
		f.props[command[1].(string)] = command[2]
		return nil, "success"
	case "cycle":
		if command[1] == "pause" {
			f.props["pause"] = !f.props["pause"].(bool)
		}
		return nil, "success"
	default:
		return nil, "success"
	}
}

func (f *fakeMPV) prop(name string) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props[name]
}

func (f *fakeMPV) last() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commands[len(f.commands)-1]
}

func connected(f *fakeMPV) *MPV {
	m := NewMPV()
	m.socketPath = f.path
	return m
}

func TestMPV(t *testing.T) {
	Convey("Given mpv listening on a socket", t, func() {
		fake := newFakeMPV(t)
		m := connected(fake)

		Convey("It reports liveness", func() {
			So(m.IsRunning(), ShouldBeTrue)
			So(NewMPV().IsRunning(), ShouldBeFalse)
		})

		Convey("It reads playback properties", func() {
			pos, err := m.GetTimePos()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 12.5)

			dur, err := m.GetDuration()
			So(err, ShouldBeNil)
			So(dur, ShouldEqual, 120.0)

			paused, err := m.GetPausedStatus()
			So(err, ShouldBeNil)
			So(paused, ShouldBeFalse)

			aspect, err := m.AspectRatio()
			So(err, ShouldBeNil)
			So(aspect, ShouldBeGreaterThan, 1)
		})

		Convey("Levels are normalized", func() {
			volume, err := m.Volume()
			So(err, ShouldBeNil)
			So(volume, ShouldAlmostEqual, 0.4, 1e-9)

			brightness, err := m.Brightness()
			So(err, ShouldBeNil)
			So(brightness, ShouldAlmostEqual, 0.25, 1e-9)

			So(m.SetVolume(0.75), ShouldBeNil)
			So(fake.prop("volume"), ShouldEqual, 75.0)

			So(m.SetBrightness(1), ShouldBeNil)
			So(fake.prop("brightness"), ShouldEqual, 100.0)
		})

		Convey("Playback commands reach mpv", func() {
			So(m.Seek(30), ShouldBeNil)
			So(fake.last(), ShouldResemble, []interface{}{"seek", 30.0, "absolute"})

			So(m.SetSpeed(1.5), ShouldBeNil)
			So(fake.prop("speed"), ShouldEqual, 1.5)
			So(m.SetSpeed(0), ShouldNotBeNil)

			So(m.TogglePause(), ShouldBeNil)
			So(fake.prop("pause"), ShouldEqual, true)

			So(m.SetPaused(false), ShouldBeNil)
			So(fake.prop("pause"), ShouldEqual, false)

			So(m.CycleSubtitle(), ShouldBeNil)
			So(fake.last(), ShouldResemble, []interface{}{"cycle", "sub"})
		})

		Convey("mpv errors are returned", func() {
			_, err := m.getFloatProperty("chapter")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "property unavailable")
		})

		Convey("Play on a running instance loads the file", func() {
			So(m.Play("/videos/clip.mp4", Options{Start: 30}), ShouldBeNil)

			So(fake.prop("force-media-title"), ShouldEqual, "clip.mp4")
			So(fake.prop("start"), ShouldEqual, "30.000")
			So(fake.prop("pause"), ShouldEqual, false)
		})

		Convey("The ticker reports position until stopped", func() {
			m.TickInterval = 10 * time.Millisecond
			ticks := make(chan [2]float64, 8)

			m.StartIPCTicker(func(pos, dur float64) {
				select {
				case ticks <- [2]float64{pos, dur}:
				default:
				}
			})
			defer m.StopIPCTicker()

			select {
			case got := <-ticks:
				So(got, ShouldResemble, [2]float64{12.5, 120})
			case <-time.After(2 * time.Second):
				So("no tick", ShouldBeEmpty)
			}
		})
	})
}

func TestArgs(t *testing.T) {
	Convey("Given a player with a socket", t, func() {
		m := NewMPV()
		m.socketPath = "/tmp/test.sock"

		Convey("Arguments end with the target after a separator", func() {
			args := m.args("/videos/a.mkv", Options{Title: "a"})

			So(args, ShouldContain, "--input-ipc-server=/tmp/test.sock")
			So(args, ShouldContain, "--title=a")
			So(args[len(args)-2:], ShouldResemble, []string{"--", "/videos/a.mkv"})
		})

		Convey("Start and pause are passed when set", func() {
			args := m.args("/videos/a.mkv", Options{Title: "a", Start: 12.5, Paused: true})

			So(args, ShouldContain, "--start=12.500")
			So(args, ShouldContain, "--pause=yes")
		})
	})
}

func TestSanitize(t *testing.T) {
	Convey("Media targets are validated", t, func() {
		_, err := sanitizeMediaTarget("")
		So(err, ShouldNotBeNil)

		_, err = sanitizeMediaTarget("--script=evil.lua")
		So(err, ShouldNotBeNil)

		_, err = sanitizeMediaTarget("ftp://host/file.mkv")
		So(err, ShouldNotBeNil)

		target, err := sanitizeMediaTarget(" https://host/v.mp4 ")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "https://host/v.mp4")

		target, err = sanitizeMediaTarget("/videos/../videos/a.mkv")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "/videos/a.mkv")
	})

	Convey("Titles lose control characters", t, func() {
		So(sanitizeTitle(" a\tb\nc\x00 "), ShouldEqual, "a b c")
	})
}

func TestLevels(t *testing.T) {
	Convey("Volume maps percentages to levels", t, func() {
		So(volumeToLevel(150), ShouldEqual, 1.0)
		So(volumeToLevel(50), ShouldEqual, 0.5)
		So(levelToVolume(0.333), ShouldEqual, 33.0)
		So(levelToVolume(-1), ShouldEqual, 0.0)
	})

	Convey("Brightness maps [-100, 100] to levels", t, func() {
		So(brightnessToLevel(-100), ShouldEqual, 0.0)
		So(brightnessToLevel(0), ShouldEqual, 0.5)
		So(brightnessToLevel(100), ShouldEqual, 1.0)
		So(levelToBrightness(0.5), ShouldEqual, 0)
		So(levelToBrightness(0.25), ShouldEqual, -50)
		So(levelToBrightness(2), ShouldEqual, 100)
	})
}
