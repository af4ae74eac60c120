// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/internal/ui"
	"github.com/vidtouch/vidtouch/key"
	"github.com/vidtouch/vidtouch/library"
	"github.com/vidtouch/vidtouch/player"
	"github.com/vidtouch/vidtouch/style"
	"github.com/vidtouch/vidtouch/util"
)

// statefulBubble encapsulates the application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	libraryC list.Model
	helpC    help.Model

	dir            string
	watcher        *library.Watcher
	libraryChannel chan []*library.Video

	newPlayer func() player.Player
	player    player.Player
	session   *session

	progressStatus string
	lastError      error

	width, height         int
	termWidth, termHeight int
	notifier              *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if !lo.Contains([]state{
		loadingState,
		errorState,
		playState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.libraryC.SetSize(listWidth, listHeight)
	b.libraryC.Help.Width = listWidth

	b.termWidth, b.termHeight = width, height
	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// startLoading enters a loading state, initializing visual indicators across child components.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	return tea.Batch(b.libraryC.StartSpinner(), b.spinnerC.Tick)
}

// stopLoading exits the loading state and synchronizes child component visual indicators.
func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.libraryC.StopSpinner()
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory:  util.Stack[state]{},
		keymap:         keymap,
		libraryChannel: make(chan []*library.Video, 1),
		notifier:       ui.New(),
		options:        options,
		dir:            options.Dir,
		newPlayer: func() player.Player {
			return player.NewMPV()
		},
	}

	if bubble.dir == "" {
		bubble.dir = viper.GetString(key.LibraryPath)
	}
	if bubble.dir == "" {
		bubble.dir = "."
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.libraryC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.libraryC.KeyMap = keymap.forList()
	bubble.libraryC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.libraryC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.libraryC.Title = "Library"
	bubble.libraryC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	bubble.libraryC.Styles.NoItems = paddingStyle
	bubble.libraryC.StatusMessageLifetime = time.Second * 3
	bubble.libraryC.SetStatusBarItemName("video", "videos")

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}

// screenSize is the area the playback screen may use: the whole terminal.
func (b *statefulBubble) screenSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: b.termWidth, Height: b.termHeight}
}
