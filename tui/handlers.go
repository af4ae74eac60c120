// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/color"
	"github.com/vidtouch/vidtouch/filesystem"
	"github.com/vidtouch/vidtouch/history"
	"github.com/vidtouch/vidtouch/icon"
	"github.com/vidtouch/vidtouch/internal/cache"
	"github.com/vidtouch/vidtouch/internal/ui"
	"github.com/vidtouch/vidtouch/key"
	"github.com/vidtouch/vidtouch/library"
	"github.com/vidtouch/vidtouch/log"
	"github.com/vidtouch/vidtouch/player"
	"github.com/vidtouch/vidtouch/screen"
	"github.com/vidtouch/vidtouch/style"
	"github.com/vidtouch/vidtouch/util"
)

type (
	videosMsg         []*library.Video
	libraryChangedMsg []*library.Video
	playerStartedMsg  struct {
		video *library.Video
		start float64
	}
	playerExitedMsg struct {
		session *session
	}
	playbackEndedMsg struct{}

	// sessionMsg carries a player event to the session that produced it.
	sessionMsg struct {
		session *session
		msg     tea.Msg
	}
)

func (b *statefulBubble) loadLibrary() tea.Cmd {
	dir, recursive := b.dir, viper.GetBool(key.LibraryRecursive)
	return func() tea.Msg {
		videos, err := library.Scan(dir, recursive)
		if err != nil {
			return err
		}
		return videosMsg(videos)
	}
}

// setVideos replaces the library listing, decorating each video with its saved position.
func (b *statefulBubble) setVideos(videos []*library.Video) tea.Cmd {
	saved, err := history.Get()
	if err != nil {
		log.Warn(err)
	}

	items := lo.Map(videos, func(v *library.Video, _ int) list.Item {
		return newListItem(v, saved)
	})
	return b.libraryC.SetItems(items)
}

// refreshItems re-reads the saved positions of the current listing.
func (b *statefulBubble) refreshItems() tea.Cmd {
	videos := lo.FilterMap(b.libraryC.Items(), func(item list.Item, _ int) (*library.Video, bool) {
		li, ok := item.(*listItem)
		if !ok {
			return nil, false
		}
		return li.video, true
	})
	return b.setVideos(videos)
}

// watchLibrary starts the directory watcher once. Changes arrive as libraryChangedMsg.
func (b *statefulBubble) watchLibrary() tea.Cmd {
	if b.watcher != nil || !viper.GetBool(key.LibraryWatch) || !filesystem.IsOs() {
		return nil
	}

	changes := b.libraryChannel
	watcher, err := library.NewWatcher(b.dir, viper.GetBool(key.LibraryRecursive), func(videos []*library.Video) {
		// keep only the latest listing when the UI falls behind
		select {
		case <-changes:
		default:
		}
		changes <- videos
	})
	if err != nil {
		log.Warnf("library watcher disabled: %v", err)
		return nil
	}

	b.watcher = watcher
	watcher.Start()
	return b.waitForLibrary()
}

func (b *statefulBubble) waitForLibrary() tea.Cmd {
	return func() tea.Msg {
		return libraryChangedMsg(<-b.libraryChannel)
	}
}

// play opens video in the player, resuming from the saved position when enabled.
func (b *statefulBubble) play(video *library.Video) tea.Cmd {
	if b.player == nil {
		b.player = b.newPlayer()
	}

	p := b.player
	b.progressStatus = fmt.Sprintf("Launching %s", style.Fg(color.Purple)(video.Name))

	return func() tea.Msg {
		var start float64
		if viper.GetBool(key.PlayerResume) {
			start = history.Resume(video.Path).OrElse(0)
		}

		log.WithFields(log.Fields{"path": video.Path, "start": start}).Info("playing")
		if err := p.Play(video.Path, player.Options{Title: video.Name, Start: start}); err != nil {
			return fmt.Errorf("play %s: %w", video.Name, err)
		}

		return playerStartedMsg{video: video, start: start}
	}
}

// session is one file on the playback screen.
type session struct {
	video    *library.Video
	screen   *screen.Model
	listener *player.EventListener

	events chan tea.Msg
	done   chan struct{}

	position float64
	duration float64
	aspect   float64
}

// send delivers msg to the UI unless the session is over. Events are dropped
// when the UI falls far behind, the next tick brings fresh ones.
func (s *session) send(msg tea.Msg) {
	select {
	case <-s.done:
	case s.events <- msg:
	default:
	}
}

func (s *session) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.events:
			return sessionMsg{session: s, msg: msg}
		case <-s.done:
			return nil
		}
	}
}

// handleEvent runs on the listener goroutine.
func (s *session) handleEvent(ev player.Event) {
	switch ev.Name {
	case player.PropPause:
		if paused, ok := ev.Bool(); ok {
			s.send(screen.PausedMsg{Paused: paused})
		}
	case player.PropDuration:
		if duration, ok := ev.Float(); ok {
			s.send(screen.LoadedMsg{Duration: duration})
		}
	case player.PropAspect:
		if aspect, ok := ev.Float(); ok {
			s.send(screen.LoadedMsg{Aspect: aspect})
		}
	case player.PropEOFReached:
		if eof, ok := ev.Bool(); ok && eof {
			s.send(playbackEndedMsg{})
		}
	}
}

// record keeps what the player reported, for the history and the metadata cache.
func (s *session) record(msg tea.Msg) {
	switch msg := msg.(type) {
	case screen.ProgressMsg:
		s.position = msg.Position
		if msg.Duration > 0 {
			s.duration = msg.Duration
		}
	case screen.LoadedMsg:
		if msg.Duration > 0 {
			s.duration = msg.Duration
		}
		if msg.Aspect > 0 {
			s.aspect = msg.Aspect
		}
	}
}

// startSession mounts the playback screen over the running player.
func (b *statefulBubble) startSession(video *library.Video, start float64) tea.Cmd {
	s := &session{
		video:    video,
		events:   make(chan tea.Msg, 64),
		done:     make(chan struct{}),
		position: start,
	}
	s.screen = screen.New(video.Name, screen.SettingsFromConfig(), b.player, b.player, b.player)
	b.session = s

	s.screen.Update(b.screenSize())
	cmds := []tea.Cmd{s.screen.Mount()}

	if meta, ok := cache.Read(video.Path).Get(); ok {
		loaded := screen.LoadedMsg{Duration: meta.Duration, Aspect: meta.Aspect}
		s.record(loaded)
		cmds = append(cmds, s.screen.Update(loaded))
	}
	cmds = append(cmds, s.screen.Update(screen.ProgressMsg{Position: start, Duration: s.duration}))

	b.player.StartIPCTicker(func(timePos, duration float64) {
		s.send(screen.ProgressMsg{Position: timePos, Duration: duration})
	})

	s.listener = player.NewEventListener(b.player.Socket(), s.handleEvent)
	if err := s.listener.Start(); err != nil {
		log.Warn(err)
	}

	if start > 0 {
		cmds = append(cmds, ui.Notify(fmt.Sprintf("%s %s", icon.Get(icon.Resume), util.FormatClock(start))))
	}

	return tea.Batch(append(cmds, s.wait(), b.waitForExit(s))...)
}

func (b *statefulBubble) waitForExit(s *session) tea.Cmd {
	exited := b.player.Wait()
	return func() tea.Msg {
		select {
		case <-exited:
			return playerExitedMsg{session: s}
		case <-s.done:
			return nil
		}
	}
}

// stopSession unmounts the playback screen and saves where playback stopped.
// The player is left running so the screen can restore the brightness first.
func (b *statefulBubble) stopSession() {
	s := b.session
	if s == nil {
		return
	}
	b.session = nil

	close(s.done)
	if b.player != nil {
		b.player.StopIPCTicker()
	}
	if s.listener != nil {
		s.listener.Stop()
	}
	s.screen.Unmount()

	if viper.GetBool(key.HistorySaveOnExit) {
		if err := history.Save(s.video.Path, s.position, s.duration); err != nil {
			log.Warn(err)
		}
	}

	if s.duration > 0 || s.aspect > 0 {
		if err := cache.Write(s.video.Path, cache.Meta{Duration: s.duration, Aspect: s.aspect}); err != nil {
			log.Warn(err)
		}
	}
}

func (b *statefulBubble) closePlayer() {
	if b.player == nil {
		return
	}
	if err := b.player.Close(); err != nil {
		log.Warn(err)
	}
	b.player = nil
}

// leavePlayback ends the session and returns to where playback was started from.
func (b *statefulBubble) leavePlayback(notice string) tea.Cmd {
	b.stopSession()
	b.closePlayer()

	if b.statesHistory.Len() == 0 {
		return tea.Quit
	}

	b.previousState()
	cmds := []tea.Cmd{b.refreshItems()}
	if notice != "" {
		cmds = append(cmds, ui.Notify(notice))
	}
	return tea.Batch(cmds...)
}

// shutdown releases everything started by the UI.
func (b *statefulBubble) shutdown() {
	b.stopSession()
	b.closePlayer()
	if b.watcher != nil {
		b.watcher.Stop()
		b.watcher = nil
	}
}
