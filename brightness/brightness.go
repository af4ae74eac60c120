// Package brightness owns the app-level brightness override of the playback screen.
//
// The backend offers no change notification, so external changes are picked up
// by polling.
package brightness

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/vidtouch/vidtouch/log"
	"github.com/vidtouch/vidtouch/util"
)

// changeEpsilon is the smallest level difference reported by polling.
const changeEpsilon = 0.005

// Service reads and writes the authoritative brightness level in [0, 1].
type Service interface {
	Brightness() (float64, error)
	SetBrightness(level float64) error
}

// Manager records the level found on Enter and puts it back on Exit.
type Manager struct {
	service Service

	mu       sync.Mutex
	original mo.Option[float64]
	last     float64

	stop chan struct{}
	done chan struct{}
}

// New returns a manager over service.
func New(service Service) *Manager {
	return &Manager{
		service: service,
		last:    0.5,
	}
}

// Enter remembers the current level so Exit can restore it. Calling Enter
// again without Exit keeps the first remembered level.
func (m *Manager) Enter() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.original.IsPresent() {
		return nil
	}

	level, err := m.service.Brightness()
	if err != nil {
		return fmt.Errorf("read brightness: %w", err)
	}

	m.original = mo.Some(level)
	m.last = level
	return nil
}

// Exit stops polling and synchronously restores the level remembered by Enter.
func (m *Manager) Exit() error {
	m.StopPolling()

	m.mu.Lock()
	defer m.mu.Unlock()

	original, ok := m.original.Get()
	if !ok {
		return nil
	}
	m.original = mo.None[float64]()

	if err := m.service.SetBrightness(original); err != nil {
		return fmt.Errorf("restore brightness: %w", err)
	}

	m.last = original
	return nil
}

// Original returns the level remembered by Enter.
func (m *Manager) Original() mo.Option[float64] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.original
}

// Read queries the service without touching the last known level. On failure
// the last known level is returned with the error.
func (m *Manager) Read() (float64, error) {
	level, err := m.service.Brightness()
	if err != nil {
		return m.Last(), err
	}
	return level, nil
}

// Adopt records level as the last known level without writing it.
func (m *Manager) Adopt(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = util.Clamp(level, 0, 1)
}

// Set applies level, clamped to [0, 1].
func (m *Manager) Set(level float64) error {
	// nothing is written until there is a level for Exit to restore
	if err := m.Enter(); err != nil {
		return err
	}

	level = util.Clamp(level, 0, 1)
	if err := m.service.SetBrightness(level); err != nil {
		return err
	}

	m.mu.Lock()
	m.last = level
	m.mu.Unlock()
	return nil
}

// Last returns the most recently read or written level.
func (m *Manager) Last() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// StartPolling reads the level every interval and calls onChange, from the
// polling goroutine, whenever it differs from the last known level.
func (m *Manager) StartPolling(interval time.Duration, onChange func(level float64)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stop != nil || interval <= 0 {
		return
	}

	stop, done := make(chan struct{}), make(chan struct{})
	m.stop, m.done = stop, done

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.poll(onChange)
			}
		}
	}()
}

func (m *Manager) poll(onChange func(float64)) {
	level, err := m.service.Brightness()
	if err != nil {
		log.Debugf("poll brightness: %v", err)
		return
	}

	m.mu.Lock()
	changed := math.Abs(level-m.last) > changeEpsilon
	m.last = level
	m.mu.Unlock()

	if changed && onChange != nil {
		onChange(level)
	}
}

// StopPolling stops the polling goroutine and waits for it to exit.
func (m *Manager) StopPolling() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mu.Unlock()

	if stop == nil {
		return
	}

	close(stop)
	<-done
}

// Polling reports whether the polling goroutine is running.
func (m *Manager) Polling() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop != nil
}
