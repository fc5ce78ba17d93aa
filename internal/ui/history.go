// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/toeirei/keyworker/internal/model"
)

// RenderHistory formats journal entries in the order given.
func RenderHistory(entries []model.RequestLogEntry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TIME", "USER", "ACTION", "TARGET", "STATUS", "OUTCOME")
	for _, e := range entries {
		status := "-"
		if e.StatusCode != 0 {
			status = strconv.Itoa(e.StatusCode)
		}
		outcome := e.Outcome
		if e.Error != "" {
			outcome = e.Error
		}
		t.Row(e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Username, e.Action, e.Target, status, outcome)
	}
	return t.Render()
}
