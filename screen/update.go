package screen

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidtouch/vidtouch/adjust"
	"github.com/vidtouch/vidtouch/controls"
	"github.com/vidtouch/vidtouch/feedback"
	"github.com/vidtouch/vidtouch/gesture"
)

// Update handles one message and returns the commands it produced.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	m.pending = nil

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		m.handleKey(msg)
	case ProgressMsg:
		m.currentTime = msg.Position
		if msg.Duration > 0 {
			m.duration = msg.Duration
		}
	case PausedMsg:
		m.setPaused(msg.Paused, false)
	case LoadedMsg:
		if msg.Duration > 0 {
			m.duration = msg.Duration
		}
		if msg.Aspect > 0 {
			m.setLandscape(msg.Aspect > 1)
		}
	case gesture.SingleTapMsg:
		m.taps.Update(msg)
	case controls.HideMsg:
		m.Controls.Update(msg)
	case feedback.ClearMsg:
		m.Feedback.Update(msg)
	case brightnessReadMsg:
		m.adoptBrightness(msg)
	case BrightnessChangedMsg:
		if !m.brightnessCtl.Armed() {
			m.brightnessCtl.Commit(msg.Level)
		}
		if m.mounted {
			m.queue(m.waitForBrightness())
		}
	}

	return m.flush()
}

func (m *Model) resize(width, height int) {
	// a drag cannot survive a change of geometry
	if ev, ok := m.tracker.Cancel(m.now()); ok {
		m.classifier.Handle(ev)
	}

	m.width, m.height = width, height
	m.progress.Width = width
	m.help.Width = width
}

// point maps a cell to the pixel at its center.
func (m *Model) point(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * m.settings.CellWidth,
		(float64(y) + 0.5) * m.settings.CellHeight
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	at := m.now()
	x, y := m.point(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.classifier.Handle(m.tracker.Press(x, y, at))
		case tea.MouseButtonWheelUp:
			m.wheel(x, levelStep)
		case tea.MouseButtonWheelDown:
			m.wheel(x, -levelStep)
		}
	case tea.MouseActionMotion:
		if ev, ok := m.tracker.Move(x, y, at); ok {
			m.classifier.Handle(ev)
		}
	case tea.MouseActionRelease:
		ev, tap, ok := m.tracker.Release(x, y, at)
		if !ok {
			return
		}

		m.classifier.Handle(ev)
		if tap {
			m.queue(m.taps.Tap(x, y, at))
		}
	}
}

// wheel steps the quantity a vertical drag at x would adjust.
func (m *Model) wheel(x, delta float64) {
	switch m.router.Target(gesture.SideOf(x, m.surface())) {
	case adjust.Volume:
		m.stepVolume(delta)
	case adjust.Brightness:
		m.stepBrightness(delta)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case bubblesKey.Matches(msg, m.keys.playPause):
		m.togglePause()
	case bubblesKey.Matches(msg, m.keys.seekBack):
		m.seekBy(-seekStep)
	case bubblesKey.Matches(msg, m.keys.seekForward):
		m.seekBy(seekStep)
	case bubblesKey.Matches(msg, m.keys.volumeUp):
		m.stepVolume(levelStep)
	case bubblesKey.Matches(msg, m.keys.volumeDown):
		m.stepVolume(-levelStep)
	case bubblesKey.Matches(msg, m.keys.brightnessUp):
		m.stepBrightness(levelStep)
	case bubblesKey.Matches(msg, m.keys.brightnessDown):
		m.stepBrightness(-levelStep)
	case bubblesKey.Matches(msg, m.keys.slower):
		m.cycleSpeed(-1)
	case bubblesKey.Matches(msg, m.keys.faster):
		m.cycleSpeed(1)
	case bubblesKey.Matches(msg, m.keys.subtitle):
		m.cycleSubtitle()
	case bubblesKey.Matches(msg, m.keys.orientation):
		m.setLandscape(!m.landscape)
	case bubblesKey.Matches(msg, m.keys.controls):
		m.toggleControls()
	case bubblesKey.Matches(msg, m.keys.showHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m *Model) readBrightness(generation int) tea.Cmd {
	manager := m.brightness
	return func() tea.Msg {
		level, err := manager.Read()
		return brightnessReadMsg{generation: generation, level: level, err: err}
	}
}

// surface is the touch area in pixels.
func (m *Model) surface() gesture.Size {
	return gesture.Size{
		Width:  float64(m.width) * m.settings.CellWidth,
		Height: float64(m.height) * m.settings.CellHeight,
	}
}

// excluded returns the chrome rows, which only exist while controls are shown.
func (m *Model) excluded() []gesture.Rect {
	if !m.Controls.Visible() || m.height < topBarRows+bottomBarRows+1 {
		return nil
	}

	width := float64(m.width) * m.settings.CellWidth
	ch := m.settings.CellHeight

	return []gesture.Rect{
		{X: 0, Y: 0, Width: width, Height: topBarRows * ch},
		{X: 0, Y: float64(m.height-bottomBarRows) * ch, Width: width, Height: bottomBarRows * ch},
	}
}
