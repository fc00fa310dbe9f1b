package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/vibeclip/internal/app"
	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 3 * time.Second

// inputCapturer is implemented by pages that temporarily own every key press,
// such as a page showing an edit form.
type inputCapturer interface {
	capturesInput() bool
}

// RootModel is a TUI router:
// 1) keeps the active page and the auth modal
// 2) handles global hotkeys and NavigateTo messages
// 3) follows session snapshots and broadcasts them to every page
// 4) delegates key presses to the modal when it is open, else to the active page
type RootModel struct {
	ctx     context.Context
	session service.SessionService

	pages   map[page]tea.Model
	current page
	state   service.SessionState
	modal   authModalModel

	status    string
	statusSeq int

	buildInfo     models.AppBuildInfo
	version       string
	showBuildInfo bool
}

// NewRootModel builds every page on top of services and opens the feed.
func NewRootModel(ctx context.Context, services *service.ClientServices, opts Options) RootModel {
	state := services.SessionService.State()
	modal := newAuthModalModel(ctx, services.SessionService, opts.SubmitDelay)
	if state.ModalOpen {
		modal.reset(state.Mode)
	}

	return RootModel{
		ctx:     ctx,
		session: services.SessionService,
		pages: map[page]tea.Model{
			pageFeed:    newFeedModel(ctx, services.FeedService),
			pageLiked:   newCollectionModel(ctx, pageLiked, services.FeedService, services.SessionService),
			pageSaved:   newCollectionModel(ctx, pageSaved, services.FeedService, services.SessionService),
			pageSounds:  newSoundsModel(ctx, services.FeedService, services.SessionService),
			pageProfile: newProfileModel(ctx, services.SessionService),
		},
		current:   pageFeed,
		state:     state,
		modal:     modal,
		buildInfo: opts.BuildInfo,
		version:   opts.Version,
	}
}

func (r RootModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.pages)+1)
	for _, p := range pageOrder {
		cmds = append(cmds, r.pages[p].Init())
	}
	if r.state.ModalOpen {
		cmds = append(cmds, r.modal.Init())
	}
	return tea.Batch(cmds...)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return r.updateKeys(msg)

	case NavigateTo:
		if _, ok := r.pages[msg.Page]; !ok {
			return r, nil
		}
		r.showBuildInfo = false
		r.current = msg.Page
		return r, nil

	case sessionChangedMsg:
		prev := r.state
		r.state = msg.state
		r.modal.sync(prev, msg.state)
		cmds := r.broadcast(msg)
		if msg.state.ModalOpen && !prev.ModalOpen {
			cmds = append(cmds, r.modal.Init())
		}
		return r, tea.Batch(cmds...)

	case authSubmitMsg:
		var cmd tea.Cmd
		r.modal, cmd = r.modal.Update(msg)
		return r, cmd

	case authResultMsg:
		var cmd tea.Cmd
		r.modal, cmd = r.modal.Update(msg)
		if msg.err != nil {
			return r, cmd
		}
		greeting := app.MsgWelcomeBack
		if msg.mode == service.AuthModeRegister {
			greeting = app.MsgWelcome
		}
		return r, tea.Batch(cmd, cmdStatus(fmt.Sprintf(greeting, msg.account.Username)))

	case logoutDoneMsg:
		if msg.err != nil {
			return r, cmdStatus(humanizeError(msg.err))
		}
		return r, cmdStatus(app.MsgLoggedOut)

	case statusMsg:
		r.statusSeq++
		r.status = msg.text
		seq := r.statusSeq
		return r, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })

	case clearStatusMsg:
		if msg.seq == r.statusSeq {
			r.status = ""
		}
		return r, nil
	}

	// Loader results and widget ticks go to everyone; each model ignores what
	// is not addressed to it.
	var modalCmd tea.Cmd
	if r.state.ModalOpen {
		r.modal, modalCmd = r.modal.Update(msg)
	}
	return r, tea.Batch(append(r.broadcast(msg), modalCmd)...)
}

func (r RootModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return r, tea.Quit
	}

	if r.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			r.showBuildInfo = false
		}
		return r, nil
	}

	if r.state.ModalOpen {
		var cmd tea.Cmd
		r.modal, cmd = r.modal.Update(msg)
		return r, cmd
	}

	if c, ok := r.pages[r.current].(inputCapturer); ok && c.capturesInput() {
		return r.updatePage(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		return r, tea.Quit
	case key.Matches(msg, keys.version):
		r.showBuildInfo = true
		return r, nil
	case key.Matches(msg, keys.feed):
		return r, navigate(pageFeed)
	case key.Matches(msg, keys.liked):
		return r, navigate(pageLiked)
	case key.Matches(msg, keys.saved):
		return r, navigate(pageSaved)
	case key.Matches(msg, keys.sounds):
		return r, navigate(pageSounds)
	case key.Matches(msg, keys.profile):
		return r, navigate(pageProfile)
	case key.Matches(msg, keys.login) && !r.state.IsAuthenticated():
		return r, cmdSession(r.session.OpenLogin)
	case key.Matches(msg, keys.register) && !r.state.IsAuthenticated():
		return r, cmdSession(r.session.OpenRegister)
	case key.Matches(msg, keys.logout) && r.state.IsAuthenticated():
		return r, r.cmdLogout()
	}

	return r.updatePage(msg)
}

func (r RootModel) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := r.pages[r.current].Update(msg)
	r.pages[r.current] = updated
	return r, cmd
}

func (r RootModel) broadcast(msg tea.Msg) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.pages))
	for _, p := range pageOrder {
		updated, cmd := r.pages[p].Update(msg)
		r.pages[p] = updated
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo, r.version))
	}

	var b strings.Builder
	b.WriteString(r.viewHeader())
	b.WriteString("\n\n")

	if r.state.ModalOpen {
		b.WriteString(r.modal.View())
	} else {
		b.WriteString(r.pages[r.current].View())
	}

	if r.status != "" {
		b.WriteString("\n  ")
		b.WriteString(statusStyle.Render(r.status))
	}

	b.WriteString("\n  ")
	b.WriteString(helpStyle.Render(r.globalHotKeys()))
	return appStyle.Render(b.String())
}

func (r RootModel) viewHeader() string {
	user := "guest"
	if r.state.Account != nil {
		user = "@" + r.state.Account.Username
	}

	tabs := make([]string, 0, len(pageOrder))
	for i, p := range pageOrder {
		label := fmt.Sprintf("%d %s", i+1, p)
		if p == r.current {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	return titleStyle.Render("vibeclip") + "  " + user + "\n" + strings.Join(tabs, "  ")
}

func (r RootModel) globalHotKeys() string {
	if r.state.IsAuthenticated() {
		return "1-5: pages │ o: log out │ v: version │ q: quit"
	}
	return "1-5: pages │ i: log in │ r: sign up │ v: version │ q: quit"
}

func (r RootModel) cmdLogout() tea.Cmd {
	ctx := r.ctx
	session := r.session
	return func() tea.Msg {
		return logoutDoneMsg{err: session.Logout(ctx)}
	}
}

func navigate(p page) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: p} }
}

func cmdStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// cmdSession runs a session mutation off the event loop. Session listeners
// deliver snapshots through Program.Send, which blocks until the loop reads
// them, so mutating the session inside Update would deadlock.
func cmdSession(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}
