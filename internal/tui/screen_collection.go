package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/vibeclip/internal/app"
	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// collectionRow is one line of the liked or saved page.
type collectionRow struct {
	id       string
	itemType models.ItemType
	title    string
	subtitle string
}

// collectionModel lists the current account's liked videos or saved items.
// Anonymous visitors get a prompt that opens the login modal.
type collectionModel struct {
	ctx     context.Context
	kind    page
	feed    service.FeedService
	session service.SessionService

	rows          []collectionRow
	idx           int
	loading       bool
	loginRequired bool
	errMsg        string
}

func newCollectionModel(ctx context.Context, kind page, feed service.FeedService, session service.SessionService) *collectionModel {
	return &collectionModel{ctx: ctx, kind: kind, feed: feed, session: session, loading: true}
}

func (m *collectionModel) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m *collectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg, likeToggledMsg, saveToggledMsg:
		return m, m.cmdLoad()
	case collectionLoadedMsg:
		if msg.page != m.kind {
			return m, nil
		}
		m.loading = false
		m.loginRequired = errors.Is(msg.err, service.ErrLoginRequired)
		m.errMsg = ""
		if msg.err != nil && !m.loginRequired {
			m.errMsg = humanizeError(msg.err)
		}
		m.rows = collectionRows(msg.videos, msg.sounds)
		if m.idx >= len(m.rows) {
			m.idx = max(len(m.rows)-1, 0)
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *collectionModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loginRequired {
		if key.Matches(msg, keys.enter) {
			return m, cmdSession(m.session.OpenLogin)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.rows)-1 {
			m.idx++
		}
	case m.kind == pageLiked && key.Matches(msg, keys.like):
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, cmdToggleLike(m.ctx, m.feed, row.id)
	case m.kind == pageSaved && key.Matches(msg, keys.save):
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, cmdToggleSave(m.ctx, m.feed, row.id, row.itemType)
	}
	return m, nil
}

func (m *collectionModel) View() string {
	title := "LIKED VIDEOS"
	hotKeys := "j/k: navigate │ l: unlike"
	if m.kind == pageSaved {
		title = "SAVED"
		hotKeys = "j/k: navigate │ s: remove"
	}

	switch {
	case m.loading:
		return renderPage(title, "Loading...", "")
	case m.loginRequired:
		return renderPage(title, "Log in to see your "+m.kind.String()+" items", "enter: log in")
	case m.errMsg != "":
		return renderPage(title, errorStyle.Render(m.errMsg), hotKeys)
	case len(m.rows) == 0:
		return renderPage(title, app.MsgNothingHere, "")
	}

	var b strings.Builder
	for i, r := range m.rows {
		b.WriteString(fmt.Sprintf("%s %-6s │ %-32s │ %s\n",
			cursor(i == m.idx),
			r.itemType,
			fitText(r.title, 32),
			r.subtitle,
		))
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *collectionModel) current() (collectionRow, bool) {
	if m.idx < 0 || m.idx >= len(m.rows) {
		return collectionRow{}, false
	}
	return m.rows[m.idx], true
}

func (m *collectionModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	feed := m.feed
	kind := m.kind

	return func() tea.Msg {
		msg := collectionLoadedMsg{page: kind}
		if kind == pageLiked {
			msg.videos, msg.err = feed.LikedVideos(ctx)
			return msg
		}

		msg.videos, msg.err = feed.SavedVideos(ctx)
		if msg.err != nil {
			return msg
		}
		msg.sounds, msg.err = feed.SavedSounds(ctx)
		return msg
	}
}

func collectionRows(videos []models.Video, sounds []models.Sound) []collectionRow {
	rows := make([]collectionRow, 0, len(videos)+len(sounds))
	for _, v := range videos {
		rows = append(rows, collectionRow{
			id:       v.ID,
			itemType: models.ItemTypeVideo,
			title:    v.Title,
			subtitle: "@" + v.AuthorName + " · ♥ " + formatCount(v.Likes),
		})
	}
	for _, s := range sounds {
		rows = append(rows, collectionRow{
			id:       s.ID,
			itemType: models.ItemTypeSound,
			title:    s.Title,
			subtitle: s.Artist + " · " + s.Duration,
		})
	}
	return rows
}
