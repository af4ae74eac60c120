package brightness

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeService struct {
	mu      sync.Mutex
	level   float64
	readErr error
	writes  []float64
}

func (f *fakeService) Brightness() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.level, f.readErr
}

func (f *fakeService) SetBrightness(level float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.level = level
	f.writes = append(f.writes, level)
	return nil
}

func (f *fakeService) set(level float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.level = level
}

func TestManager(t *testing.T) {
	Convey("Given a manager over a service at 0.3", t, func() {
		svc := &fakeService{level: 0.3}
		m := New(svc)

		Convey("Exit restores the level found on Enter", func() {
			So(m.Enter(), ShouldBeNil)
			So(m.Original().OrElse(-1), ShouldEqual, 0.3)

			So(m.Set(0.9), ShouldBeNil)
			So(svc.level, ShouldEqual, 0.9)

			So(m.Exit(), ShouldBeNil)
			So(svc.level, ShouldEqual, 0.3)
			So(m.Original().IsAbsent(), ShouldBeTrue)
		})

		Convey("A second Enter keeps the first original", func() {
			m.Enter()
			m.Set(0.8)
			m.Enter()

			So(m.Original().OrElse(-1), ShouldEqual, 0.3)
		})

		Convey("Exit without Enter writes nothing", func() {
			So(m.Exit(), ShouldBeNil)
			So(svc.writes, ShouldBeEmpty)
		})

		Convey("Set clamps", func() {
			So(m.Set(1.7), ShouldBeNil)
			So(m.Last(), ShouldEqual, 1.0)
		})

		Convey("A failed read keeps the last known level", func() {
			m.Set(0.6)
			svc.readErr = errors.New("denied")

			level, err := m.Read()
			So(err, ShouldNotBeNil)
			So(level, ShouldEqual, 0.6)
		})

		Convey("Set remembers the level to restore before its first write", func() {
			So(m.Set(0.9), ShouldBeNil)
			So(m.Original().OrElse(-1), ShouldEqual, 0.3)

			So(m.Exit(), ShouldBeNil)
			So(svc.level, ShouldEqual, 0.3)
		})

		Convey("Set writes nothing while the level to restore is unknown", func() {
			svc.readErr = errors.New("denied")

			So(m.Enter(), ShouldNotBeNil)
			So(m.Set(0.9), ShouldNotBeNil)
			So(svc.writes, ShouldBeEmpty)

			So(m.Exit(), ShouldBeNil)
			So(svc.writes, ShouldBeEmpty)
		})

		Convey("Polling reports external changes", func() {
			m.Enter()
			changes := make(chan float64, 4)
			m.StartPolling(5*time.Millisecond, func(level float64) { changes <- level })
			So(m.Polling(), ShouldBeTrue)

			svc.set(0.7)

			select {
			case level := <-changes:
				So(level, ShouldEqual, 0.7)
			case <-time.After(2 * time.Second):
				So("no change", ShouldBeEmpty)
			}

			So(m.Exit(), ShouldBeNil)
			So(m.Polling(), ShouldBeFalse)
			So(svc.level, ShouldEqual, 0.3)
		})
	})
}
