// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used by the prompts.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // A nice teal/cyan
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
)
