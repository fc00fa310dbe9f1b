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
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// profileModel shows the logged-in account and edits its username and bio.
type profileModel struct {
	ctx     context.Context
	session service.SessionService

	account *models.Account

	editing bool
	saving  bool
	inputs  []textinput.Model
	focus   int
	errors  []models.FieldError
	errMsg  string
}

func newProfileModel(ctx context.Context, session service.SessionService) *profileModel {
	m := &profileModel{ctx: ctx, session: session}
	if account, ok := session.CurrentAccount(); ok {
		m.account = &account
	}
	return m
}

func (m *profileModel) Init() tea.Cmd {
	return nil
}

// capturesInput reports whether key presses belong to the edit form.
func (m *profileModel) capturesInput() bool {
	return m.editing
}

func (m *profileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		m.account = msg.state.Account
		if m.account == nil {
			m.stopEditing()
		}
		return m, nil
	case profileSavedMsg:
		m.saving = false
		if msg.err != nil {
			var authErr *service.AuthError
			if errors.As(msg.err, &authErr) {
				m.errors = authErr.Fields
				return m, nil
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.stopEditing()
		return m, cmdStatus(app.MsgProfileSaved)
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch {
		case m.account == nil && key.Matches(msg, keys.enter):
			return m, cmdSession(m.session.OpenLogin)
		case m.account != nil && key.Matches(msg, keys.edit):
			m.startEditing()
			return m, textinput.Blink
		}
	}

	if m.editing {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *profileModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		if !m.saving {
			m.stopEditing()
		}
		return m, nil
	case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		m.inputs[m.focus].Focus()
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.saving {
			return m, nil
		}
		m.saving = true
		m.errors = nil
		m.errMsg = ""
		return m, m.cmdSave()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *profileModel) startEditing() {
	username := textinput.New()
	username.Placeholder = "username"
	username.Width = 36
	username.SetValue(m.account.Username)
	username.Focus()

	bio := textinput.New()
	bio.Placeholder = "bio"
	bio.Width = 60
	bio.CharLimit = 200
	bio.SetValue(m.account.Bio)

	m.inputs = []textinput.Model{username, bio}
	m.focus = 0
	m.editing = true
	m.errors = nil
	m.errMsg = ""
}

func (m *profileModel) stopEditing() {
	m.editing = false
	m.saving = false
	m.inputs = nil
	m.errors = nil
	m.errMsg = ""
}

func (m *profileModel) View() string {
	if m.account == nil {
		return renderPage("PROFILE", "You are browsing as a guest", "enter: log in")
	}
	if m.editing {
		return m.viewEditing()
	}

	a := m.account
	verified := ""
	if a.IsVerified {
		verified = " ✓"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("@"+a.Username) + verified + "\n")
	b.WriteString(valueOrDash(a.Bio) + "\n\n")
	b.WriteString(fmt.Sprintf("%s following   %s followers   %s likes\n\n",
		formatCount(a.Following), formatCount(a.Followers), formatCount(a.Likes)))
	b.WriteString("Email   │ " + a.Email + "\n")
	b.WriteString(fmt.Sprintf("Age     │ %d\n", a.Age))
	b.WriteString("Avatar  │ " + fitText(a.Avatar, 60) + "\n")
	b.WriteString("Joined  │ " + a.CreatedAt.Format("2006-01-02"))

	return renderPage("PROFILE", b.String(), "e: edit profile")
}

func (m *profileModel) viewEditing() string {
	labels := []string{"Username", "Bio"}
	fields := []string{models.FieldUsername, models.FieldBio}

	var b strings.Builder
	for i := range m.inputs {
		b.WriteString(padRight(labels[i], 9))
		b.WriteString("│ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
		for _, e := range m.errors {
			if e.Field == fields[i] {
				b.WriteString(padRight("", 9) + "│ " + errorStyle.Render(e.Message) + "\n")
				break
			}
		}
	}

	if m.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	return renderPage("EDIT PROFILE", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: save │ esc: cancel")
}

func (m *profileModel) cmdSave() tea.Cmd {
	ctx := m.ctx
	session := m.session
	username := strings.TrimSpace(m.inputs[0].Value())
	bio := m.inputs[1].Value()

	return func() tea.Msg {
		account, err := session.UpdateProfile(ctx, models.ProfileUpdate{
			Username: &username,
			Bio:      &bio,
		})
		return profileSavedMsg{account: account, err: err}
	}
}
