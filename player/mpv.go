package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vidtouch/vidtouch/constant"
	"github.com/vidtouch/vidtouch/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// DefaultTickInterval is how often StartIPCTicker polls when no interval is set.
const DefaultTickInterval = time.Second

// MPV implements Player over mpv's JSON-IPC protocol.
type MPV struct {
	// Binary is the mpv executable. Defaults to "mpv" on PATH.
	Binary string
	// TickInterval is the polling period of StartIPCTicker.
	TickInterval time.Duration

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}

	tickerMu   sync.Mutex
	tickerStop chan struct{}

	// serializes socket round trips
	mu sync.Mutex
}

// NewMPV returns an idle player. No process is started until Play.
func NewMPV() *MPV {
	return &MPV{
		Binary:       "mpv",
		TickInterval: DefaultTickInterval,
		exited:       make(chan struct{}),
	}
}

// Play opens target. When mpv is already running the file is loaded into the
// existing instance instead of spawning a new one.
func (m *MPV) Play(target string, opts Options) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if opts.Title == "" {
		opts.Title = filepath.Base(safeTarget)
	}
	opts.Title = sanitizeTitle(opts.Title)

	if m.IsRunning() {
		return m.load(safeTarget, opts)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes))
	}

	m.cmd = exec.Command(m.Binary, m.args(safeTarget, opts)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// reap the process so it never lingers as a zombie
	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.WithFields(log.Fields{"target": safeTarget, "socket": m.socketPath}).Info("mpv started")
	return nil
}

// args builds the mpv command line. Only the IPC socket and per-file options are
// passed so the user's mpv.conf stays in charge of everything else.
func (m *MPV) args(target string, opts Options) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", opts.Title),
		fmt.Sprintf("--title=%s", opts.Title),
		"--force-window=yes",
		"--idle=yes",
		// the terminal owns the touch surface, not the video window
		"--no-input-default-bindings",
	}

	if opts.Start > 0 {
		args = append(args, fmt.Sprintf("--start=%s", formatSeconds(opts.Start)))
	}

	if opts.Paused {
		args = append(args, "--pause=yes")
	}

	// "--" keeps a target that starts with a dash from being read as a flag
	return append(args, "--", target)
}

func (m *MPV) load(target string, opts Options) error {
	start := "none"
	if opts.Start > 0 {
		start = formatSeconds(opts.Start)
	}

	// global options set before loadfile apply to the next file
	if err := m.Set("force-media-title", opts.Title); err != nil {
		return err
	}
	if err := m.Set("start", start); err != nil {
		return err
	}

	if _, err := m.sendCommand([]interface{}{"loadfile", target, "replace"}); err != nil {
		return fmt.Errorf("load %s: %w", target, err)
	}

	return m.SetPaused(opts.Paused)
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}

	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) GetTimePos() (float64, error) {
	return m.getFloatProperty("time-pos")
}

func (m *MPV) GetDuration() (float64, error) {
	return m.getFloatProperty("duration")
}

func (m *MPV) GetPausedStatus() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "pause"})
	if err != nil {
		return false, err
	}

	paused, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property pause: expected bool, got %T", data)
	}

	return paused, nil
}

func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

func (m *MPV) TogglePause() error {
	_, err := m.sendCommand([]interface{}{"cycle", "pause"})
	return err
}

func (m *MPV) SetPaused(paused bool) error {
	return m.Set("pause", paused)
}

func (m *MPV) SetSpeed(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("invalid speed %v", rate)
	}
	return m.Set("speed", rate)
}

func (m *MPV) Volume() (float64, error) {
	volume, err := m.getFloatProperty("volume")
	if err != nil {
		return 0, err
	}
	return volumeToLevel(volume), nil
}

func (m *MPV) SetVolume(level float64) error {
	return m.Set("volume", levelToVolume(level))
}

func (m *MPV) Brightness() (float64, error) {
	brightness, err := m.getFloatProperty("brightness")
	if err != nil {
		return 0, err
	}
	return brightnessToLevel(brightness), nil
}

func (m *MPV) SetBrightness(level float64) error {
	return m.Set("brightness", levelToBrightness(level))
}

func (m *MPV) CycleSubtitle() error {
	_, err := m.sendCommand([]interface{}{"cycle", "sub"})
	return err
}

func (m *MPV) AspectRatio() (float64, error) {
	return m.getFloatProperty("video-params/aspect")
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// StartIPCTicker polls time-pos and duration every TickInterval and hands them
// to callback. It stops on StopIPCTicker or when mpv exits.
func (m *MPV) StartIPCTicker(callback func(timePos, duration float64)) {
	m.tickerMu.Lock()
	defer m.tickerMu.Unlock()

	if m.tickerStop != nil {
		return
	}

	interval := m.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	stop := make(chan struct{})
	m.tickerStop = stop
	exited := m.exited

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-exited:
				m.tickerMu.Lock()
				if m.tickerStop == stop {
					m.tickerStop = nil
				}
				m.tickerMu.Unlock()
				return
			case <-ticker.C:
				pos, err := m.GetTimePos()
				if err != nil {
					continue
				}

				// unknown for streams until enough is buffered
				dur, err := m.GetDuration()
				if err != nil {
					dur = 0
				}

				callback(pos, dur)
			}
		}
	}()
}

// StopIPCTicker stops the background ticker if it is running.
func (m *MPV) StopIPCTicker() {
	m.tickerMu.Lock()
	defer m.tickerMu.Unlock()

	if m.tickerStop != nil {
		close(m.tickerStop)
		m.tickerStop = nil
	}
}

// Close quits mpv, killing it if it does not exit in time, and removes the socket.
func (m *MPV) Close() error {
	m.StopIPCTicker()

	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	if m.cmd != nil {
		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) Socket() string {
	return m.socketPath
}

// Set writes an mpv property.
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget accepts local paths and http(s) URLs.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", errors.New("empty target")
	}

	if strings.ContainsAny(t, "\x00\n\r") {
		return "", errors.New("invalid control characters in target")
	}

	if strings.HasPrefix(t, "-") {
		return "", errors.New("target must not start with '-'")
	}

	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}

		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return t, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(t), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
