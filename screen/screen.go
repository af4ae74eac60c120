// Package screen is the playback screen: it turns terminal mouse input into
// touch gestures and applies them to the player.
package screen

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidtouch/vidtouch/adjust"
	"github.com/vidtouch/vidtouch/brightness"
	"github.com/vidtouch/vidtouch/controls"
	"github.com/vidtouch/vidtouch/feedback"
	"github.com/vidtouch/vidtouch/gesture"
	"github.com/vidtouch/vidtouch/internal/tick"
)

// Rows taken by the chrome while controls are visible.
const (
	topBarRows    = 1
	bottomBarRows = 2
)

// Seek step of double taps and arrow keys, in seconds.
const seekStep = 10.0

// Level step of keys and the mouse wheel.
const levelStep = 0.05

// Engine is the part of the player the screen commands.
type Engine interface {
	Seek(seconds float64) error
	SetSpeed(rate float64) error
	SetPaused(paused bool) error
	CycleSubtitle() error
}

// VolumeService reads and writes the volume level in [0, 1].
type VolumeService interface {
	Volume() (float64, error)
	SetVolume(level float64) error
}

// BrightnessService reads and writes the brightness level in [0, 1].
type BrightnessService = brightness.Service

// ProgressMsg reports the playback position.
type ProgressMsg struct {
	Position float64
	Duration float64
}

// PausedMsg reports a pause or resume observed on the player.
type PausedMsg struct {
	Paused bool
}

// LoadedMsg reports a newly loaded file. Aspect is width over height, zero when unknown.
type LoadedMsg struct {
	Duration float64
	Aspect   float64
}

// BrightnessChangedMsg reports a brightness change made outside the screen.
type BrightnessChangedMsg struct {
	Level float64
}

// brightnessReadMsg carries the result of the authoritative read issued at the
// start of a brightness drag.
type brightnessReadMsg struct {
	generation int
	level      float64
	err        error
}

// Model is the playback screen.
type Model struct {
	Controls *controls.Timer
	Feedback *feedback.Presenter

	settings   Settings
	engine     Engine
	volume     VolumeService
	brightness *brightness.Manager

	handlers   *gesture.Handlers
	classifier *gesture.Classifier
	taps       *gesture.TapRecognizer
	tracker    *gesture.Tracker

	router        adjust.Router
	volumeCtl     *adjust.Controller
	brightnessCtl *adjust.Controller

	// bumped on every brightness drag start; reads from older drags are ignored
	brightnessGen   int
	brightnessDirty bool
	polled          chan float64

	keys     *keymap
	progress progress.Model
	help     help.Model

	title         string
	width, height int
	currentTime   float64
	duration      float64
	paused        bool
	landscape     bool
	speed         int
	mounted       bool

	now     func() time.Time
	pending []tea.Cmd
}

// New returns an unmounted playback screen for the file called title.
func New(title string, settings Settings, engine Engine, volume VolumeService, bright BrightnessService) *Model {
	settings = settings.normalized()

	m := &Model{
		Controls:      controls.New(settings.ControlTimeout),
		Feedback:      feedback.New(),
		settings:      settings,
		engine:        engine,
		volume:        volume,
		brightness:    brightness.New(bright),
		router:        settings.Router(),
		volumeCtl:     adjust.NewController(1),
		brightnessCtl: adjust.NewController(0.5),
		keys:          newKeymap(),
		progress:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:          help.New(),
		title:         title,
		speed:         settings.normalSpeed(),
		now:           time.Now,
	}

	policy := gesture.RegionPolicy{
		Screen:   m.surface,
		Excluded: m.excluded,
	}

	m.handlers = &gesture.Handlers{
		Tap:             m.toggleControls,
		DoubleTap:       m.doubleTap,
		DoubleTapCenter: m.togglePause,
		LandscapeTap:    m.landscapeTap,
		Seek:            m.seekBy,
	}
	if m.router.Wired() {
		m.handlers.Adjust = m.adjust
	}

	m.classifier = gesture.NewClassifier(policy, m.handlers, settings.SeekSensitivity)
	m.taps = gesture.NewTapRecognizer(policy, m.handlers, m.Landscape)
	m.tracker = gesture.NewTracker(settings.TapSlop)

	return m
}

// SetScheduler replaces the timer source of every component of the screen.
func (m *Model) SetScheduler(f tick.Func) {
	m.Controls.SetScheduler(f)
	m.Feedback.SetScheduler(f)
	m.taps.SetScheduler(f)
}

// Mount prepares the screen for display: it reads the starting volume,
// remembers the brightness to restore and starts watching for external changes.
func (m *Model) Mount() tea.Cmd {
	if m.mounted {
		return nil
	}
	m.mounted = true
	m.pending = nil

	if level, err := m.volume.Volume(); err != nil {
		m.logFailure("read volume", err)
	} else {
		m.volumeCtl.Commit(level)
	}

	if err := m.brightness.Enter(); err != nil {
		m.logFailure("enter brightness", err)
	} else {
		m.brightnessCtl.Commit(m.brightness.Last())
	}

	polled := make(chan float64, 1)
	m.polled = polled
	m.brightness.StartPolling(m.settings.BrightnessPoll, func(level float64) {
		select {
		case polled <- level:
		default:
		}
	})

	m.queue(m.waitForBrightness())
	m.show()
	return m.flush()
}

// Unmount cancels every pending timer and restores the brightness found on Mount.
func (m *Model) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false

	m.Controls.Stop()
	m.Feedback.Stop()
	m.taps.Stop()

	if ev, ok := m.tracker.Cancel(m.now()); ok {
		m.classifier.Handle(ev)
	}

	// Exit waits for the polling goroutine, so closing afterwards is safe
	if err := m.brightness.Exit(); err != nil {
		m.logFailure("restore brightness", err)
	}
	close(m.polled)
}

// Mounted reports whether the screen is on display.
func (m *Model) Mounted() bool {
	return m.mounted
}

// Landscape reports the current orientation.
func (m *Model) Landscape() bool {
	return m.landscape
}

// Paused reports whether playback is paused.
func (m *Model) Paused() bool {
	return m.paused
}

// CurrentTime returns the last known playback position in seconds.
func (m *Model) CurrentTime() float64 {
	return m.currentTime
}

// Duration returns the length of the file in seconds.
func (m *Model) Duration() float64 {
	return m.duration
}

// Speed returns the current playback rate.
func (m *Model) Speed() float64 {
	return m.settings.Speeds[m.speed]
}

// Handlers exposes the wired gesture intents.
func (m *Model) Handlers() gesture.Handlers {
	return *m.handlers
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) waitForBrightness() tea.Cmd {
	polled := m.polled
	return func() tea.Msg {
		level, ok := <-polled
		if !ok {
			return nil
		}
		return BrightnessChangedMsg{Level: level}
	}
}
