// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidtouch/vidtouch/history"
	"github.com/vidtouch/vidtouch/internal/ui"
	"github.com/vidtouch/vidtouch/log"
	"github.com/vidtouch/vidtouch/util"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.stopSession()
		b.closePlayer()
		b.raiseError(msg)
		return b, tea.Batch(cmds...)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		if b.session != nil {
			cmds = append(cmds, b.session.screen.Update(b.screenSize()))
		}
		return b, tea.Batch(cmds...)
	case libraryChangedMsg:
		cmds = append(cmds, b.setVideos(msg))
		if b.watcher != nil {
			cmds = append(cmds, b.waitForLibrary())
		}
		if b.state == libraryState {
			cmds = append(cmds, ui.Notify(fmt.Sprintf("Library updated: %s", util.Quantify(len(msg), "video", "videos"))))
		}
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.shutdown()
			return b, tea.Quit
		}
	}

	var (
		model tea.Model
		cmd   tea.Cmd
	)

	switch b.state {
	case loadingState:
		model, cmd = b.updateLoading(msg)
	case libraryState:
		model, cmd = b.updateLibrary(msg)
	case playState:
		model, cmd = b.updatePlay(msg)
	case errorState:
		model, cmd = b.updateError(msg)
	default:
		model = b
	}

	return model, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds = make([]tea.Cmd, 0)
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back) {
			b.stopLoading()
			b.closePlayer()
			if b.statesHistory.Len() == 0 {
				return b, tea.Quit
			}
			b.previousState()
			return b, nil
		}
	case videosMsg:
		b.stopLoading()
		b.newState(libraryState)
		cmds = append(cmds, b.setVideos(msg), b.watchLibrary())
	case playerStartedMsg:
		b.stopLoading()
		b.newState(playState)
		cmds = append(cmds, b.startSession(msg.video, msg.start))
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateLibrary(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case videosMsg:
		b.stopLoading()
		return b, tea.Batch(b.setVideos(msg), b.libraryC.NewStatusMessage(fmt.Sprintf("Rescanned %s", b.dir)))
	case tea.KeyMsg:
		if b.libraryC.FilterState() == list.Filtering {
			break
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.shutdown()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.play):
			item, ok := b.libraryC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.play(item.video))
		case bubblesKey.Matches(msg, b.keymap.forget):
			item, ok := b.libraryC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			if err := history.Remove(item.video.Path); err != nil {
				log.Warn(err)
				return b, ui.Notify("Could not forget the saved position")
			}
			return b, b.refreshItems()
		case bubblesKey.Matches(msg, b.keymap.rescan):
			return b, tea.Batch(b.startLoading(), b.loadLibrary())
		}
	}

	b.libraryC, cmd = b.libraryC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := b.session
	if s == nil {
		return b, nil
	}

	switch msg := msg.(type) {
	case sessionMsg:
		if msg.session != s {
			return b, nil
		}

		if _, ok := msg.msg.(playbackEndedMsg); ok {
			s.position = s.duration
			return b, b.leavePlayback(fmt.Sprintf("Finished %s", s.video.Name))
		}

		s.record(msg.msg)
		return b, tea.Batch(s.screen.Update(msg.msg), s.wait())
	case playerExitedMsg:
		if msg.session != s {
			return b, nil
		}
		return b, b.leavePlayback("Player closed")
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back, b.keymap.quit) {
			return b, b.leavePlayback("")
		}
	}

	return b, s.screen.Update(msg)
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.shutdown()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() == 0 {
				return b, tea.Quit
			}
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}
