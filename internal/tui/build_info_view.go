// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/vibeclip/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, version string) string {
	var b strings.Builder

	b.WriteString("Application: vibeclip\n")
	b.WriteString("Version: ")
	if strings.TrimSpace(version) != "" {
		b.WriteString(version)
	} else {
		b.WriteString(info.BuildVersion())
	}
	b.WriteString("\n")
	b.WriteString("Date: ")
	b.WriteString(info.BuildDate())
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(info.BuildCommit())

	return overlayBoxStyle.Render(renderPage("ABOUT", b.String(), "esc: back"))
}
