package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/vidtouch/vidtouch/log"
)

// Observed property names.
const (
	PropTimePos    = "time-pos"
	PropPause      = "pause"
	PropDuration   = "duration"
	PropEOFReached = "eof-reached"
	PropAspect     = "video-params/aspect"
)

// EventEndFile is reported when mpv finishes or abandons the current file.
const EventEndFile = "end-file"

var observed = []string{
	PropTimePos,
	PropPause,
	PropDuration,
	PropEOFReached,
	PropAspect,
}

// Event is a property change or a bare mpv event.
type Event struct {
	// Name is the property name for property changes, otherwise the event name.
	Name string
	Data interface{}
}

// Float returns the payload as a number.
func (e Event) Float() (float64, bool) {
	f, ok := e.Data.(float64)
	return f, ok
}

// Bool returns the payload as a flag.
func (e Event) Bool() (bool, bool) {
	b, ok := e.Data.(bool)
	return b, ok
}

// EventCallback receives events on the listener goroutine.
type EventCallback func(Event)

// EventListener keeps a dedicated connection open and reports property changes.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

// NewEventListener returns a listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start subscribes to the observed properties and starts the read loop.
// Observers in mpv belong to a connection, so they are registered on the same
// connection the loop reads from.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.DialTimeout("unix", el.socketPath, dialTimeout)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, int64(i+1), []interface{}{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	el.done = make(chan struct{})

	go el.readLoop(conn, el.done)

	log.WithFields(log.Fields{"socket": el.socketPath, "properties": observed}).Info("mpv event listener started")
	return nil
}

// Stop closes the connection and waits for the read loop to finish.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}

	el.listening = false
	done := el.done
	_ = el.conn.Close()
	el.mu.Unlock()

	<-done
}

// Listening reports whether the read loop is running.
func (el *EventListener) Listening() bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.listening
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if ev, ok := parseEvent(scanner.Bytes()); ok && el.callback != nil {
			el.callback(ev)
		}
	}

	el.mu.Lock()
	stopped := !el.listening
	el.listening = false
	el.mu.Unlock()

	if err := scanner.Err(); err != nil && !stopped {
		log.Warnf("event listener read error: %v", err)
	}
}

// parseEvent decodes one line. Replies to commands carry no event and are skipped.
func parseEvent(line []byte) (Event, bool) {
	var raw struct {
		Event string      `json:"event"`
		Name  string      `json:"name"`
		Data  interface{} `json:"data"`
	}

	if err := json.Unmarshal(line, &raw); err != nil || raw.Event == "" {
		return Event{}, false
	}

	if raw.Event == "property-change" {
		if raw.Name == "" {
			return Event{}, false
		}
		return Event{Name: raw.Name, Data: raw.Data}, true
	}

	return Event{Name: raw.Event}, true
}
