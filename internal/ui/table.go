// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/toeirei/keyworker/client"
)

// knownColumns is the column order of the Worker's Keys table.
var knownColumns = []string{"ActivationKey", "UserEmail", "MachineID", "DateCreated", "ExpiresAt"}

// KeyTable prints a /api/table response. With pretty set and a JSON array
// of objects as the body, rows are rendered as a table; otherwise it
// behaves like Response.
func (p *Printer) KeyTable(resp *client.Response, pretty bool) {
	if !pretty || resp.Outcome() != client.OutcomeSuccess {
		p.Response(resp)
		return
	}
	rendered, ok := RenderKeyTable(resp.Body)
	if !ok {
		p.Response(resp)
		return
	}
	p.StatusLine(resp)
	fmt.Fprintln(p.w, rendered)
}

// RenderKeyTable turns a JSON array of row objects into a bordered table.
// ok is false when body has another shape.
func RenderKeyTable(body []byte) (out string, ok bool) {
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return "", false
	}

	cols := columns(rows)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cols...)
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := row[c]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		t.Row(cells...)
	}
	return t.Render(), true
}

// columns returns the known Worker columns that appear in rows, followed by
// any others in name order.
func columns(rows []map[string]any) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}

	var cols []string
	for _, c := range knownColumns {
		if seen[c] {
			cols = append(cols, c)
			delete(seen, c)
		}
	}
	extra := make([]string, 0, len(seen))
	for k := range seen {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(cols, extra...)
}
