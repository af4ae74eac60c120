package screen

import (
	"github.com/vidtouch/vidtouch/adjust"
	"github.com/vidtouch/vidtouch/feedback"
	"github.com/vidtouch/vidtouch/gesture"
	"github.com/vidtouch/vidtouch/icon"
	"github.com/vidtouch/vidtouch/log"
	"github.com/vidtouch/vidtouch/util"
)

// show makes the controls visible and restarts their countdown.
func (m *Model) show() {
	m.queue(m.Controls.Show())
}

func (m *Model) toggleControls() {
	m.queue(m.Controls.Toggle())
}

// seekBy moves the playback position by delta seconds. The new position becomes
// the current time right away, so consecutive drag events compound.
func (m *Model) seekBy(delta float64) {
	target := m.currentTime + delta
	if m.duration > 0 {
		target = util.Clamp(target, 0, m.duration)
	} else {
		target = util.Max(target, 0)
	}

	if err := m.engine.Seek(target); err != nil {
		m.logFailure("seek", err)
	}

	m.currentTime = target
	m.queue(m.Feedback.Post(feedback.Seek, feedback.SeekText(delta)))
	m.show()
}

func (m *Model) doubleTap(zone gesture.Zone) {
	m.zoneAction(zone)
}

func (m *Model) landscapeTap(x float64) {
	m.zoneAction(gesture.Third(x, m.surface()))
}

func (m *Model) zoneAction(zone gesture.Zone) {
	switch zone {
	case gesture.ZoneLeftThird:
		m.seekBy(-seekStep)
	case gesture.ZoneRightThird:
		m.seekBy(seekStep)
	case gesture.ZoneMiddleThird:
		m.togglePause()
	}
}

func (m *Model) togglePause() {
	m.setPaused(!m.paused, true)
	m.show()
}

// setPaused records the pause state. When command is set the player is told as well.
func (m *Model) setPaused(paused, command bool) {
	if command {
		if err := m.engine.SetPaused(paused); err != nil {
			m.logFailure("set paused", err)
			return
		}
	}

	m.paused = paused
	m.queue(m.Controls.SetPaused(paused))
}

func (m *Model) cycleSpeed(step int) {
	next := util.Clamp(m.speed+step, 0, len(m.settings.Speeds)-1)
	if next == m.speed {
		return
	}

	if err := m.engine.SetSpeed(m.settings.Speeds[next]); err != nil {
		m.logFailure("set speed", err)
		return
	}

	m.speed = next
	m.show()
}

func (m *Model) cycleSubtitle() {
	if err := m.engine.CycleSubtitle(); err != nil {
		m.logFailure("cycle subtitle", err)
	}
	m.show()
}

func (m *Model) setLandscape(landscape bool) {
	if landscape == m.landscape {
		return
	}
	m.landscape = landscape
	m.show()
}

// adjust routes a vertical drag to the quantity bound to its side.
func (m *Model) adjust(a gesture.Adjustment) {
	switch m.router.Target(a.Side) {
	case adjust.Volume:
		m.adjustVolume(a)
	case adjust.Brightness:
		m.adjustBrightness(a)
	}
}

// adjustVolume starts each drag from the last level it applied rather than
// re-reading the system volume, which may not have settled yet.
func (m *Model) adjustVolume(a gesture.Adjustment) {
	switch a.Phase {
	case gesture.Began:
		m.volumeCtl.Begin(m.volumeCtl.Last())
	case gesture.Active:
		level := m.volumeCtl.Update(a.TranslationY, m.settings.VolumeSensitivity)
		m.applyVolume(level)
	default:
		m.volumeCtl.End()
	}
}

// adjustBrightness starts each drag from the last known level and asks for the
// authoritative one in the background.
func (m *Model) adjustBrightness(a gesture.Adjustment) {
	switch a.Phase {
	case gesture.Began:
		m.brightnessGen++
		m.brightnessDirty = false
		m.brightnessCtl.Begin(m.brightness.Last())
		m.queue(m.readBrightness(m.brightnessGen))
	case gesture.Active:
		level := m.brightnessCtl.Update(a.TranslationY, m.settings.BrightnessSensitivity)
		m.brightnessDirty = true
		m.applyBrightness(level)
	default:
		m.brightnessCtl.End()
	}
}

func (m *Model) stepVolume(delta float64) {
	if m.volumeCtl.Armed() {
		return
	}
	m.applyVolume(m.volumeCtl.Commit(m.volumeCtl.Last() + delta))
}

func (m *Model) stepBrightness(delta float64) {
	if m.brightnessCtl.Armed() {
		return
	}
	// a pending read belongs to a finished drag and must not overwrite this step
	m.brightnessDirty = true
	m.applyBrightness(m.brightnessCtl.Commit(m.brightness.Last() + delta))
}

func (m *Model) applyVolume(level float64) {
	if err := m.volume.SetVolume(level); err != nil {
		m.logFailure("set volume", err)
	}
	m.queue(m.Feedback.Post(feedback.Volume, feedback.LevelText(icon.Volume, level)))
	m.show()
}

func (m *Model) applyBrightness(level float64) {
	if err := m.brightness.Set(level); err != nil {
		m.logFailure("set brightness", err)
	}
	m.queue(m.Feedback.Post(feedback.Brightness, feedback.LevelText(icon.Brightness, level)))
	m.show()
}

// adoptBrightness takes the authoritative level only when it still describes
// the start of the current drag.
func (m *Model) adoptBrightness(msg brightnessReadMsg) {
	if msg.generation != m.brightnessGen {
		return
	}

	if msg.err != nil {
		m.logFailure("read brightness", msg.err)
		return
	}

	if m.brightnessDirty {
		return
	}

	m.brightness.Adopt(msg.level)
	m.brightnessCtl.Rebase(msg.level)
}

func (m *Model) logFailure(action string, err error) {
	log.WithFields(log.Fields{"action": action, "title": m.title}).Warn(err)
}
