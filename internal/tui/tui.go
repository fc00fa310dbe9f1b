// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the vibeclip client in the terminal with bubbletea.
//
// The UI only calls into the services: the session service owns login state
// and the auth modal, the feed service owns likes, saves and counters. Every
// session change reaches the UI as a snapshot through a subscription.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrNoServices = errors.New("tui: services are not configured")

// Options tunes the presentation.
type Options struct {
	// SubmitDelay is waited out before an auth form reaches the session
	// service.
	SubmitDelay time.Duration
	// Version overrides the build version in the about window.
	Version   string
	BuildInfo models.AppBuildInfo
}

type TUI struct {
	services *service.ClientServices
	opts     Options
	logger   *logger.Logger

	programOptions []tea.ProgramOption
}

func New(services *service.ClientServices, opts Options, log *logger.Logger) (*TUI, error) {
	if services == nil || services.SessionService == nil || services.FeedService == nil {
		return nil, ErrNoServices
	}

	return &TUI{
		services:       services,
		opts:           opts,
		logger:         log,
		programOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}, nil
}

// Run shows the UI and blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(ctx, t.services, t.opts)
	program := tea.NewProgram(root, append(t.programOptions, tea.WithContext(ctx))...)

	unsubscribe := t.services.SessionService.Subscribe(func(state service.SessionState) {
		program.Send(sessionChangedMsg{state: state})
	})
	defer unsubscribe()

	t.logger.Info().Str("func", "TUI.Run").Msg("starting terminal UI")
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		t.logger.Err(err).Str("func", "TUI.Run").Msg("terminal UI stopped with error")
		return err
	}

	t.logger.Info().Str("func", "TUI.Run").Msg("terminal UI closed")
	return nil
}
