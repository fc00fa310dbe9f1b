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

// soundsModel lists the catalog sounds with the account's saved marks.
type soundsModel struct {
	ctx     context.Context
	feed    service.FeedService
	session service.SessionService

	sounds        []models.Sound
	saved         map[string]bool
	idx           int
	loading       bool
	loginRequired bool
	errMsg        string
}

func newSoundsModel(ctx context.Context, feed service.FeedService, session service.SessionService) *soundsModel {
	return &soundsModel{ctx: ctx, feed: feed, session: session, loading: true}
}

func (m *soundsModel) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m *soundsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		return m, m.cmdLoad()
	case soundsLoadedMsg:
		m.loading = false
		m.loginRequired = errors.Is(msg.err, service.ErrLoginRequired)
		m.errMsg = ""
		if msg.err != nil && !m.loginRequired {
			m.errMsg = humanizeError(msg.err)
		}
		m.sounds = msg.sounds
		m.saved = msg.saved
		if m.idx >= len(m.sounds) {
			m.idx = max(len(m.sounds)-1, 0)
		}
		return m, nil
	case saveToggledMsg:
		if msg.err == nil && msg.itemType == models.ItemTypeSound {
			if m.saved == nil {
				m.saved = make(map[string]bool)
			}
			m.saved[msg.itemID] = msg.saved
		}
		return m, nil
	case tea.KeyMsg:
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
			if m.idx < len(m.sounds)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.save):
			if m.idx < len(m.sounds) {
				return m, cmdToggleSave(m.ctx, m.feed, m.sounds[m.idx].ID, models.ItemTypeSound)
			}
		}
	}
	return m, nil
}

func (m *soundsModel) View() string {
	const title = "SOUNDS"
	const hotKeys = "j/k: navigate │ s: save"

	switch {
	case m.loading:
		return renderPage(title, "Loading...", "")
	case m.loginRequired:
		return renderPage(title, "Log in to see your saved sounds", "enter: log in")
	case m.errMsg != "":
		return renderPage(title, errorStyle.Render(m.errMsg), hotKeys)
	case len(m.sounds) == 0:
		return renderPage(title, app.MsgNothingHere, "")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %-24s │ %-12s │ %-5s │ %-6s │ %s\n", "Title", "Artist", "Time", "Uses", "Saved"))
	for i, s := range m.sounds {
		mark := ""
		if m.saved[s.ID] {
			mark = "☑"
		}
		b.WriteString(fmt.Sprintf("%s %-24s │ %-12s │ %-5s │ %-6s │ %s\n",
			cursor(i == m.idx),
			fitText(s.Title, 24),
			fitText(s.Artist, 12),
			s.Duration,
			s.Uses,
			mark,
		))
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *soundsModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	feed := m.feed

	return func() tea.Msg {
		sounds := feed.Sounds()
		saved, err := feed.SavedSounds(ctx)
		if err != nil {
			return soundsLoadedMsg{sounds: sounds, err: err}
		}

		marks := make(map[string]bool, len(saved))
		for _, s := range saved {
			marks[s.ID] = true
		}
		return soundsLoadedMsg{sounds: sounds, saved: marks}
	}
}
