// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authField struct {
	name  string
	label string
}

var (
	loginFields = []authField{
		{name: models.FieldEmail, label: "Email"},
		{name: models.FieldPassword, label: "Password"},
	}
	registerFields = []authField{
		{name: models.FieldUsername, label: "Username"},
		{name: models.FieldEmail, label: "Email"},
		{name: models.FieldPassword, label: "Password"},
		{name: models.FieldAge, label: "Age"},
	}
)

// authModalModel renders the login and register forms shown over the active
// page while the session reports an open modal.
//
// Submissions are delayed by submitDelay. While a submission is pending the
// submit control is disabled and further enter presses are ignored.
type authModalModel struct {
	ctx         context.Context
	session     service.SessionService
	submitDelay time.Duration

	mode       service.AuthMode
	fields     []authField
	inputs     []textinput.Model
	focus      int
	submitting bool
	errors     []models.FieldError
	errMsg     string
}

func newAuthModalModel(ctx context.Context, session service.SessionService, submitDelay time.Duration) authModalModel {
	m := authModalModel{
		ctx:         ctx,
		session:     session,
		submitDelay: submitDelay,
	}
	m.reset(service.AuthModeLogin)
	return m
}

// reset rebuilds the inputs for mode and drops everything typed so far.
func (m *authModalModel) reset(mode service.AuthMode) {
	m.mode = mode
	m.fields = loginFields
	if mode == service.AuthModeRegister {
		m.fields = registerFields
	}

	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Placeholder = strings.ToLower(f.label)
		in.Width = 36
		in.CharLimit = 256
		switch f.name {
		case models.FieldPassword:
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		case models.FieldAge:
			in.CharLimit = 3
		}
		m.inputs[i] = in
	}

	m.focus = 0
	m.inputs[0].Focus()
	m.submitting = false
	m.errors = nil
	m.errMsg = ""
}

// sync follows a session snapshot. Opening the modal or switching the mode
// starts from an empty form.
func (m *authModalModel) sync(prev, next service.SessionState) {
	if next.ModalOpen && (!prev.ModalOpen || prev.Mode != next.Mode) {
		m.reset(next.Mode)
	}
	m.errors = next.Errors
}

func (m authModalModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m authModalModel) Update(msg tea.Msg) (authModalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authSubmitMsg:
		return m, m.cmdSubmit(msg)
	case authResultMsg:
		m.submitting = false
		var authErr *service.AuthError
		if msg.err != nil && !errors.As(msg.err, &authErr) {
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			if m.submitting {
				return m, nil
			}
			return m, cmdSession(m.session.Close)
		case key.Matches(msg, keys.switchMode):
			if m.submitting {
				return m, nil
			}
			return m, cmdSession(m.session.SwitchMode)
		case key.Matches(msg, keys.tab), msg.Type == tea.KeyDown:
			m.focusNext()
			return m, nil
		case key.Matches(msg, keys.backtab), msg.Type == tea.KeyUp:
			m.focusPrev()
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			submit := authSubmitMsg{mode: m.mode, form: m.form()}
			return m, tea.Tick(m.submitDelay, func(time.Time) tea.Msg { return submit })
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m authModalModel) View() string {
	title := "LOG IN"
	button := "[Log in]"
	switchHint := "ctrl+s: sign up instead"
	if m.mode == service.AuthModeRegister {
		title = "SIGN UP"
		button = "[Sign up]"
		switchHint = "ctrl+s: log in instead"
	}
	if m.submitting {
		button = strings.TrimSuffix(button, "]") + "...]"
	}

	var b strings.Builder
	for i, f := range m.fields {
		b.WriteString(padRight(f.label, 9))
		b.WriteString("│ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
		if msg := m.fieldError(f.name); msg != "" {
			b.WriteString(padRight("", 9))
			b.WriteString("│ ")
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(button)
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	hotKeys := "tab: next field │ enter: submit │ " + switchHint + " │ esc: close"
	return overlayBoxStyle.Render(renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys))
}

func (m authModalModel) fieldError(field string) string {
	for _, e := range m.errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func (m authModalModel) form() models.RegistrationForm {
	var form models.RegistrationForm
	for i, f := range m.fields {
		v := m.inputs[i].Value()
		switch f.name {
		case models.FieldUsername:
			form.Username = strings.TrimSpace(v)
		case models.FieldEmail:
			form.Email = strings.TrimSpace(v)
		case models.FieldPassword:
			form.Password = v
		case models.FieldAge:
			form.Age = v
		}
	}
	return form
}

func (m authModalModel) cmdSubmit(submit authSubmitMsg) tea.Cmd {
	ctx := m.ctx
	session := m.session

	return func() tea.Msg {
		var (
			account models.Account
			err     error
		)
		if submit.mode == service.AuthModeRegister {
			account, err = session.Register(ctx, submit.form)
		} else {
			account, err = session.Login(ctx, submit.form.Email, submit.form.Password)
		}
		return authResultMsg{mode: submit.mode, account: account, err: err}
	}
}

func (m *authModalModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *authModalModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
