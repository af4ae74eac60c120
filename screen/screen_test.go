package screen

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/controls"
	"github.com/vidtouch/vidtouch/feedback"
	"github.com/vidtouch/vidtouch/gesture"
	"github.com/vidtouch/vidtouch/internal/tick"
	"github.com/vidtouch/vidtouch/key"
)

type fakeEngine struct {
	seeks     []float64
	speeds    []float64
	paused    []bool
	subtitles int
	err       error
}

func (f *fakeEngine) Seek(seconds float64) error {
	f.seeks = append(f.seeks, seconds)
	return f.err
}

func (f *fakeEngine) SetSpeed(rate float64) error {
	f.speeds = append(f.speeds, rate)
	return f.err
}

func (f *fakeEngine) SetPaused(paused bool) error {
	f.paused = append(f.paused, paused)
	return f.err
}

func (f *fakeEngine) CycleSubtitle() error {
	f.subtitles++
	return f.err
}

type fakeLevel struct {
	level   float64
	sets    []float64
	readErr error
}

func (f *fakeLevel) Volume() (float64, error)     { return f.level, f.readErr }
func (f *fakeLevel) Brightness() (float64, error) { return f.level, f.readErr }

func (f *fakeLevel) SetVolume(level float64) error {
	f.level = level
	f.sets = append(f.sets, level)
	return nil
}

func (f *fakeLevel) SetBrightness(level float64) error {
	f.level = level
	f.sets = append(f.sets, level)
	return nil
}

type harness struct {
	m      *Model
	engine *fakeEngine
	volume *fakeLevel
	bright *fakeLevel
	rec    *tick.Recorder
	clock  time.Time
}

func testSettings() Settings {
	return Settings{
		VolumeGesture:         true,
		BrightnessGesture:     true,
		SeekSensitivity:       0.2,
		VolumeSensitivity:     0.5,
		BrightnessSensitivity: 0.5,
		ControlTimeout:        3 * time.Second,
		CellWidth:             10,
		CellHeight:            10,
		TapSlop:               20,
		Speeds:                []float64{0.5, 1, 1.5},
	}
}

// newHarness mounts a 30x30 cell screen, which is 300x300 pixels.
func newHarness(settings Settings) *harness {
	viper.Set(key.IconsVariant, "plain")

	h := &harness{
		engine: &fakeEngine{},
		volume: &fakeLevel{level: 0.4},
		bright: &fakeLevel{level: 0.3},
		rec:    &tick.Recorder{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	h.m = New("clip.mp4", settings, h.engine, h.volume, h.bright)
	h.m.SetScheduler(h.rec.Schedule)
	h.m.now = func() time.Time { return h.clock }

	h.m.Update(tea.WindowSizeMsg{Width: 30, Height: 30})
	h.m.Mount()
	h.m.Update(ProgressMsg{Position: 50, Duration: 120})
	return h
}

func (h *harness) advance(d time.Duration) {
	h.clock = h.clock.Add(d)
}

func (h *harness) press(x, y int) tea.Cmd {
	return h.m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) move(x, y int) tea.Cmd {
	h.advance(10 * time.Millisecond)
	return h.m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func (h *harness) release(x, y int) tea.Cmd {
	h.advance(10 * time.Millisecond)
	return h.m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

func (h *harness) tap(x, y int) {
	h.press(x, y)
	h.advance(40 * time.Millisecond)
	h.release(x, y)
}

func (h *harness) doubleTap(x, y int) {
	h.tap(x, y)
	h.advance(100 * time.Millisecond)
	h.tap(x, y)
}

// pendingTap returns the most recent deferred single tap.
func (h *harness) pendingTap() (gesture.SingleTapMsg, bool) {
	for i := len(h.rec.Calls) - 1; i >= 0; i-- {
		if msg, ok := h.rec.Calls[i].Msg.(gesture.SingleTapMsg); ok {
			return msg, true
		}
	}
	return gesture.SingleTapMsg{}, false
}

// lastHide returns the most recently scheduled hide of the controls.
func (h *harness) lastHide() controls.HideMsg {
	for i := len(h.rec.Calls) - 1; i >= 0; i-- {
		if msg, ok := h.rec.Calls[i].Msg.(controls.HideMsg); ok {
			return msg
		}
	}
	return controls.HideMsg{}
}

func (h *harness) typeKey(s string) {
	h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// collect runs cmd and every command it batches, returning the messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}

	return []tea.Msg{msg}
}

func brightnessRead(cmd tea.Cmd) (brightnessReadMsg, bool) {
	for _, msg := range collect(cmd) {
		if read, ok := msg.(brightnessReadMsg); ok {
			return read, true
		}
	}
	return brightnessReadMsg{}, false
}

func TestSeek(t *testing.T) {
	Convey("Given a mounted screen at 50s of 120s", t, func() {
		h := newHarness(testSettings())

		Convey("A 100px horizontal drag seeks to 70s and shows +20s", func() {
			h.press(5, 10)
			h.move(15, 10)

			So(h.engine.seeks, ShouldResemble, []float64{70})
			So(h.m.CurrentTime(), ShouldEqual, 70.0)
			So(h.m.Feedback.Message(feedback.Seek), ShouldEqual, "+20s")
			So(h.m.Controls.State(), ShouldEqual, controls.VisibleTimed)
		})

		Convey("Consecutive drag events compound", func() {
			h.press(5, 10)
			h.move(15, 10)
			h.move(16, 10)

			So(h.engine.seeks, ShouldResemble, []float64{70, 92})
		})

		Convey("Seeks are clamped to the file", func() {
			h.press(0, 10)
			h.move(29, 10)
			h.move(29, 11)

			So(h.engine.seeks[0], ShouldEqual, 108.0)
			So(h.engine.seeks[1], ShouldEqual, 120.0)
		})

		Convey("A drag is not a tap", func() {
			h.press(5, 10)
			h.move(15, 10)
			h.release(15, 10)

			_, pending := h.pendingTap()
			So(pending, ShouldBeFalse)
		})

		Convey("Engine failures keep the gesture going", func() {
			h.engine.err = errors.New("ipc down")
			h.press(5, 10)
			h.move(15, 10)

			So(h.m.CurrentTime(), ShouldEqual, 70.0)
			So(h.m.Feedback.Message(feedback.Seek), ShouldEqual, "+20s")
		})
	})
}

func TestTaps(t *testing.T) {
	Convey("Given a mounted screen in portrait", t, func() {
		h := newHarness(testSettings())

		Convey("Double taps on the right third skip forward", func() {
			h.doubleTap(25, 10)

			So(h.engine.seeks, ShouldResemble, []float64{60})
			So(h.m.Feedback.Message(feedback.Seek), ShouldEqual, "+10s")
		})

		Convey("Double taps on the left third skip back", func() {
			h.doubleTap(2, 10)
			So(h.engine.seeks, ShouldResemble, []float64{40})
		})

		Convey("Double taps in the middle toggle pause", func() {
			h.doubleTap(15, 10)

			So(h.engine.paused, ShouldResemble, []bool{true})
			So(h.m.Paused(), ShouldBeTrue)
			So(h.m.Controls.State(), ShouldEqual, controls.VisiblePinned)
		})

		Convey("A double tap never also toggles the controls", func() {
			h.tap(25, 10)
			first, _ := h.pendingTap()
			h.advance(100 * time.Millisecond)
			h.tap(25, 10)

			h.m.Update(first)
			So(h.m.Controls.Visible(), ShouldBeTrue)
		})

		Convey("A single tap toggles the controls once the window passes", func() {
			h.tap(15, 10)
			So(h.m.Controls.Visible(), ShouldBeTrue)

			msg, ok := h.pendingTap()
			So(ok, ShouldBeTrue)
			h.m.Update(msg)

			So(h.m.Controls.State(), ShouldEqual, controls.Hidden)
			So(h.engine.seeks, ShouldBeEmpty)
		})

		Convey("Taps on visible chrome are ignored", func() {
			h.doubleTap(25, 0)
			h.doubleTap(25, 29)

			_, pending := h.pendingTap()
			So(pending, ShouldBeFalse)
			So(h.engine.seeks, ShouldBeEmpty)
		})

		Convey("Chrome rows are touchable once the controls are hidden", func() {
			h.m.Controls.Toggle()
			h.doubleTap(25, 0)

			So(h.engine.seeks, ShouldResemble, []float64{60})
		})

		Convey("In landscape double taps route through the landscape callback", func() {
			h.m.Update(LoadedMsg{Duration: 120, Aspect: 16.0 / 9.0})
			So(h.m.Landscape(), ShouldBeTrue)

			h.doubleTap(2, 10)
			h.advance(time.Second)
			h.doubleTap(15, 10)

			So(h.engine.seeks, ShouldResemble, []float64{40})
			So(h.engine.paused, ShouldResemble, []bool{true})
		})
	})
}

func TestAdjust(t *testing.T) {
	Convey("Given both vertical gestures enabled", t, func() {
		h := newHarness(testSettings())

		Convey("The right half drives volume from its last applied level", func() {
			h.press(25, 15)
			h.move(25, 5)

			So(len(h.volume.sets), ShouldEqual, 1)
			So(h.volume.sets[0], ShouldAlmostEqual, 0.9, 1e-9)
			So(h.m.Feedback.Message(feedback.Volume), ShouldEqual, "Volume 90%")
			So(h.bright.sets, ShouldBeEmpty)

			h.release(25, 5)
			h.volume.level = 0.1
			h.press(25, 15)
			h.move(25, 25)

			So(h.volume.sets[1], ShouldAlmostEqual, 0.4, 1e-9)
		})

		Convey("A vertical drag brings back hidden controls", func() {
			h.m.Update(h.lastHide())
			So(h.m.Controls.Visible(), ShouldBeFalse)

			h.press(25, 15)
			h.move(25, 5)
			So(h.volume.sets, ShouldHaveLength, 1)
			So(h.m.Controls.Visible(), ShouldBeTrue)
			So(h.m.Controls.State(), ShouldEqual, controls.VisibleTimed)

			h.release(25, 5)
			h.m.Update(h.lastHide())
			So(h.m.Controls.Visible(), ShouldBeFalse)

			h.press(5, 15)
			h.move(5, 5)
			So(h.bright.sets, ShouldHaveLength, 1)
			So(h.m.Controls.Visible(), ShouldBeTrue)
		})

		Convey("Levels stay within [0, 1]", func() {
			h.press(25, 14)
			h.move(25, 1)
			h.move(25, 27)

			So(h.volume.sets, ShouldResemble, []float64{1, 0})
		})

		Convey("The left half drives brightness", func() {
			h.press(5, 15)
			h.move(5, 5)

			So(len(h.bright.sets), ShouldEqual, 1)
			So(h.bright.sets[0], ShouldAlmostEqual, 0.8, 1e-9)
			So(h.m.Feedback.Message(feedback.Brightness), ShouldEqual, "Brightness 80%")
			So(h.volume.sets, ShouldBeEmpty)
		})

		Convey("A brightness read from an older drag is ignored", func() {
			stale, ok := brightnessRead(h.press(5, 15))
			So(ok, ShouldBeTrue)
			h.release(5, 15)

			h.bright.level = 0.6
			fresh, ok := brightnessRead(h.press(5, 15))
			So(ok, ShouldBeTrue)

			stale.level = 0.05
			h.m.Update(stale)
			h.m.Update(fresh)

			h.move(5, 12)
			So(h.bright.sets[0], ShouldAlmostEqual, 0.75, 1e-9)
		})

		Convey("A brightness read arriving after the drag moved is ignored", func() {
			read, _ := brightnessRead(h.press(5, 15))
			h.move(5, 5)

			read.level = 0.1
			h.m.Update(read)

			So(h.m.brightness.Last(), ShouldAlmostEqual, 0.8, 1e-9)
		})

		Convey("A failed brightness read keeps the known level", func() {
			h.bright.readErr = errors.New("denied")
			read, _ := brightnessRead(h.press(5, 15))
			h.m.Update(read)
			h.move(5, 12)

			So(h.bright.sets[0], ShouldAlmostEqual, 0.45, 1e-9)
		})

		Convey("Brightness is left alone until its original level is known", func() {
			h.m.Unmount()
			So(h.bright.sets, ShouldResemble, []float64{0.3})

			h.bright.readErr = errors.New("denied")
			h.m.Mount()
			h.press(5, 15)
			h.move(5, 5)
			h.release(5, 5)
			So(h.bright.sets, ShouldResemble, []float64{0.3})

			h.bright.readErr = nil
			h.bright.level = 0.6
			h.press(5, 15)
			h.move(5, 5)
			So(h.bright.sets, ShouldHaveLength, 2)

			h.m.Unmount()
			So(h.bright.sets[len(h.bright.sets)-1], ShouldEqual, 0.6)
		})

		Convey("The mouse wheel steps the quantity of its half", func() {
			h.m.Update(tea.MouseMsg{X: 25, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
			h.m.Update(tea.MouseMsg{X: 5, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})

			So(h.volume.sets[0], ShouldAlmostEqual, 0.45, 1e-9)
			So(h.bright.sets[0], ShouldAlmostEqual, 0.25, 1e-9)
		})
	})

	Convey("Given both vertical gestures disabled", t, func() {
		s := testSettings()
		s.VolumeGesture, s.BrightnessGesture = false, false
		h := newHarness(s)

		Convey("Vertical drags are never reported", func() {
			So(h.m.Handlers().Adjust, ShouldBeNil)

			h.press(25, 15)
			h.move(25, 5)
			h.release(25, 5)
			h.press(5, 15)
			h.move(5, 5)

			So(h.volume.sets, ShouldBeEmpty)
			So(h.bright.sets, ShouldBeEmpty)
		})
	})

	Convey("Given only the brightness gesture enabled", t, func() {
		s := testSettings()
		s.VolumeGesture = false
		h := newHarness(s)

		Convey("The right half drives brightness", func() {
			h.press(25, 15)
			h.move(25, 5)

			So(h.bright.sets, ShouldNotBeEmpty)
			So(h.volume.sets, ShouldBeEmpty)
		})
	})
}

func TestPlaybackState(t *testing.T) {
	Convey("Given a mounted screen", t, func() {
		h := newHarness(testSettings())

		Convey("Mount shows the controls with a countdown", func() {
			So(h.m.Mounted(), ShouldBeTrue)
			So(h.m.Controls.State(), ShouldEqual, controls.VisibleTimed)
		})

		Convey("Pause from the player pins the controls", func() {
			h.m.Update(PausedMsg{Paused: true})

			So(h.m.Paused(), ShouldBeTrue)
			So(h.m.Controls.State(), ShouldEqual, controls.VisiblePinned)
			So(h.engine.paused, ShouldBeEmpty)
		})

		Convey("Speed keys step through the configured speeds", func() {
			h.rec.Reset()
			h.typeKey("]")

			So(h.engine.speeds, ShouldResemble, []float64{1.5})
			So(h.m.Speed(), ShouldEqual, 1.5)
			So(h.rec.Calls, ShouldNotBeEmpty)

			h.typeKey("]")
			So(h.engine.speeds, ShouldResemble, []float64{1.5})

			h.typeKey("[")
			h.typeKey("[")
			h.typeKey("[")
			So(h.engine.speeds, ShouldResemble, []float64{1.5, 1, 0.5})
		})

		Convey("Subtitle and orientation keys show the controls", func() {
			h.m.Controls.Toggle()
			h.m.Controls.Toggle()
			h.m.Update(h.rec.Last().Msg)
			So(h.m.Controls.Visible(), ShouldBeFalse)

			h.typeKey("s")
			So(h.engine.subtitles, ShouldEqual, 1)
			So(h.m.Controls.Visible(), ShouldBeTrue)

			h.m.Update(h.rec.Last().Msg)
			h.typeKey("o")
			So(h.m.Landscape(), ShouldBeTrue)
			So(h.m.Controls.Visible(), ShouldBeTrue)
		})

		Convey("Space toggles pause", func() {
			h.typeKey(" ")
			So(h.engine.paused, ShouldResemble, []bool{true})
		})

		Convey("Unknown duration only bounds seeks from below", func() {
			h.m.Update(ProgressMsg{Position: 5})
			h.m.duration = 0
			h.typeKey("h")
			h.typeKey("l")
			h.typeKey("l")

			So(h.engine.seeks, ShouldResemble, []float64{0, 10, 20})
		})

		Convey("The view shows the title while controls are visible", func() {
			So(h.m.View(), ShouldContainSubstring, "clip.mp4")
		})

		Convey("Unmount restores brightness and stops every timer", func() {
			h.press(5, 15)
			h.move(5, 5)
			h.release(5, 5)

			var pending tick.Call
			for _, call := range h.rec.Calls {
				if _, ok := call.Msg.(feedback.ClearMsg); ok {
					pending = call
				}
			}
			So(pending.Msg, ShouldNotBeNil)

			h.m.Unmount()

			So(h.m.Mounted(), ShouldBeFalse)
			So(h.bright.level, ShouldEqual, 0.3)
			So(h.m.Feedback.Message(feedback.Brightness), ShouldBeEmpty)

			h.m.Update(pending.Msg)
			So(h.m.Feedback.Message(feedback.Brightness), ShouldBeEmpty)

			So(func() { h.m.Unmount() }, ShouldNotPanic)
		})
	})
}
