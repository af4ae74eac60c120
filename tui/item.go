// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/samber/mo"
	"github.com/vidtouch/vidtouch/history"
	"github.com/vidtouch/vidtouch/icon"
	"github.com/vidtouch/vidtouch/internal/cache"
	"github.com/vidtouch/vidtouch/library"
	"github.com/vidtouch/vidtouch/style"
	"github.com/vidtouch/vidtouch/util"
)

// listItem implements the list.Item interface for a library video.
type listItem struct {
	video *library.Video
	entry mo.Option[*history.Entry]
	meta  mo.Option[cache.Meta]
}

func newListItem(video *library.Video, saved map[string]*history.Entry) *listItem {
	item := &listItem{
		video: video,
		meta:  cache.Read(video.Path),
	}
	if entry, ok := saved[video.Path]; ok {
		item.entry = mo.Some(entry)
	}
	return item
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	if entry, ok := t.entry.Get(); ok && !entry.Finished() && entry.Position >= history.MinPosition {
		return fmt.Sprintf("%s %s", t.video.Name, icon.Get(icon.Resume))
	}
	return t.video.Name
}

// Description retrieves the secondary metadata for the list item.
func (t *listItem) Description() string {
	var parts []string

	if meta, ok := t.meta.Get(); ok && meta.Duration > 0 {
		parts = append(parts, util.FormatClock(meta.Duration))
	}

	parts = append(parts, humanize.Bytes(uint64(util.Max(t.video.Size, 0))))

	if entry, ok := t.entry.Get(); ok {
		if entry.Finished() {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Green).Render("Watched"))
		} else if entry.Position >= history.MinPosition {
			progress := fmt.Sprintf("%s (%.0f%%)", util.FormatClock(entry.Position), entry.Progress()*100)
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Yellow).Render(progress))
		}
	}

	return strings.Join(parts, " • ")
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	return t.video.Name
}
