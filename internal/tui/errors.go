// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/vibeclip/internal/app"
	"github.com/MKhiriev/vibeclip/internal/service"
)

// humanizeError turns a service error into a status bar line.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var authErr *service.AuthError
	switch {
	case errors.Is(err, service.ErrLoginRequired), errors.Is(err, service.ErrNotAuthenticated):
		return app.MsgLoginRequired
	case errors.As(err, &authErr) && len(authErr.Fields) > 0:
		return authErr.Fields[0].Message
	default:
		return app.MsgStorageError
	}
}
