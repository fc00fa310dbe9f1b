package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/vibeclip/internal/app"
	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

type feedModel struct {
	ctx  context.Context
	feed service.FeedService

	entries []models.FeedEntry
	idx     int
	loading bool
	pending bool
	errMsg  string
}

func newFeedModel(ctx context.Context, feed service.FeedService) *feedModel {
	return &feedModel{ctx: ctx, feed: feed, loading: true}
}

func (m *feedModel) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m *feedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		return m, m.cmdLoad()
	case feedLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.entries = msg.entries
		if m.idx >= len(m.entries) {
			m.idx = max(len(m.entries)-1, 0)
		}
		return m, nil
	case likeToggledMsg:
		m.pending = false
		if msg.err != nil {
			return m, toggleErrorStatus(msg.err)
		}
		m.replace(msg.entry.Video.ID, func(e *models.FeedEntry) {
			e.Liked = msg.entry.Liked
			e.Video.Likes = msg.entry.Video.Likes
		})
		return m, nil
	case saveToggledMsg:
		m.pending = false
		if msg.err != nil {
			return m, toggleErrorStatus(msg.err)
		}
		if msg.itemType == models.ItemTypeVideo {
			m.replace(msg.itemID, func(e *models.FeedEntry) { e.Saved = msg.saved })
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *feedModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.entries)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.like):
		entry, ok := m.current()
		if !ok || m.pending {
			return m, nil
		}
		m.pending = true
		return m, cmdToggleLike(m.ctx, m.feed, entry.Video.ID)
	case key.Matches(msg, keys.save):
		entry, ok := m.current()
		if !ok || m.pending {
			return m, nil
		}
		m.pending = true
		return m, cmdToggleSave(m.ctx, m.feed, entry.Video.ID, models.ItemTypeVideo)
	case key.Matches(msg, keys.copy):
		entry, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, cmdCopyLink(entry.Video.URL)
	}
	return m, nil
}

func (m *feedModel) View() string {
	const hotKeys = "j/k: navigate │ l: like │ s: save │ c: copy link"

	if m.loading {
		return renderPage("FOR YOU", "Loading...", hotKeys)
	}
	if m.errMsg != "" {
		return renderPage("FOR YOU", errorStyle.Render(m.errMsg), hotKeys)
	}
	if len(m.entries) == 0 {
		return renderPage("FOR YOU", app.MsgNothingHere, hotKeys)
	}

	var b strings.Builder
	if entry, ok := m.current(); ok {
		b.WriteString(renderVideoCard(entry))
		b.WriteString("\n\n")
	}

	for i, e := range m.entries {
		b.WriteString(fmt.Sprintf("%s %-32s │ %-16s │ %s\n",
			cursor(i == m.idx),
			fitText(e.Video.Title, 32),
			fitText("@"+e.Video.AuthorName, 16),
			renderMarks(e.Liked, e.Saved),
		))
	}

	return renderPage("FOR YOU", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *feedModel) current() (models.FeedEntry, bool) {
	if m.idx < 0 || m.idx >= len(m.entries) {
		return models.FeedEntry{}, false
	}
	return m.entries[m.idx], true
}

func (m *feedModel) replace(videoID string, fn func(e *models.FeedEntry)) {
	for i := range m.entries {
		if m.entries[i].Video.ID == videoID {
			fn(&m.entries[i])
			return
		}
	}
}

func renderVideoCard(e models.FeedEntry) string {
	v := e.Video

	heart := "♡"
	if e.Liked {
		heart = likedStyle.Render("♥")
	}
	bookmark := "☐ save"
	if e.Saved {
		bookmark = "☑ saved"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Title))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(formatDuration(v.Duration)))
	b.WriteString("\n@")
	b.WriteString(v.AuthorName)
	b.WriteString("\n")
	b.WriteString(valueOrDash(v.Description))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s   💬 %s   ↗ %s   ▶ %s   %s",
		heart, formatCount(v.Likes),
		formatCount(v.Comments),
		formatCount(v.Shares),
		formatCount(v.Views),
		bookmark,
	))
	return b.String()
}

func renderMarks(liked, saved bool) string {
	marks := ""
	if liked {
		marks += likedStyle.Render("♥")
	} else {
		marks += " "
	}
	if saved {
		marks += " ☑"
	}
	return marks
}

// toggleErrorStatus reports a failed toggle. An anonymous attempt has already
// opened the login modal, the status line only explains why.
func toggleErrorStatus(err error) tea.Cmd {
	if errors.Is(err, service.ErrLoginRequired) {
		return cmdStatus(app.MsgLoginRequired)
	}
	return cmdStatus(humanizeError(err))
}

func cmdToggleLike(ctx context.Context, feed service.FeedService, videoID string) tea.Cmd {
	return func() tea.Msg {
		entry, err := feed.ToggleLike(ctx, videoID)
		return likeToggledMsg{entry: entry, err: err}
	}
}

func cmdToggleSave(ctx context.Context, feed service.FeedService, itemID string, itemType models.ItemType) tea.Cmd {
	return func() tea.Msg {
		saved, err := feed.ToggleSave(ctx, itemID, itemType)
		return saveToggledMsg{itemID: itemID, itemType: itemType, saved: saved, err: err}
	}
}

func cmdCopyLink(url string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWrite(url); err != nil {
			return statusMsg{text: app.MsgCopyFailed}
		}
		return statusMsg{text: app.MsgLinkCopied}
	}
}

func (m *feedModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	feed := m.feed
	return func() tea.Msg {
		entries, err := feed.Feed(ctx)
		return feedLoadedMsg{entries: entries, err: err}
	}
}
