/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Datagrid Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette, dark mode optimized
var (
	accent      = lipgloss.Color("#7C3AED")
	info        = lipgloss.Color("#3B82F6")
	warning     = lipgloss.Color("#F59E0B")
	errorColor  = lipgloss.Color("#EF4444")
	muted       = lipgloss.Color("#6B7280")
	bgHighlight = lipgloss.Color("#1F2937")
	bgBorder    = lipgloss.Color("#374151")
)

var (
	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle         = lipgloss.NewStyle().Bold(true).Foreground(info)
	selectedHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorStyle      = lipgloss.NewStyle().Foreground(muted)
	selectedRowStyle    = lipgloss.NewStyle().Background(bgHighlight)
	skeletonStyle       = lipgloss.NewStyle().Foreground(bgBorder)
	placeholderStyle    = lipgloss.NewStyle().Italic(true).Foreground(muted)
	footerStyle         = lipgloss.NewStyle().Foreground(muted)
	helpKeyStyle        = lipgloss.NewStyle().Foreground(accent)
	statusStyle         = lipgloss.NewStyle().Foreground(warning)
	errorStyle          = lipgloss.NewStyle().Foreground(errorColor)
	spinnerStyle        = lipgloss.NewStyle().Foreground(accent)

	hoverStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	detailLabelStyle = lipgloss.NewStyle().Foreground(muted).Width(18)
)

// noColor checks if colors should be disabled
func noColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("DATAGRID_NO_COLOR") != ""
}

// render applies a style if colors are enabled
func render(s lipgloss.Style, text string) string {
	if noColor() {
		return text
	}
	return s.Render(text)
}
