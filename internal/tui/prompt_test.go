// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestInputModel_EnterSubmits(t *testing.T) {
	var m tea.Model = newInputModel("Cloudflare Worker URL", false)
	m = typeInto(m, " https://w.example ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command on enter")
	}
	im := m.(inputModel)
	if !im.done || im.aborted {
		t.Fatalf("expected done state, got done=%v aborted=%v", im.done, im.aborted)
	}
	if im.Value() != "https://w.example" {
		t.Fatalf("unexpected value %q", im.Value())
	}
	if im.View() != "" {
		t.Fatalf("expected empty view after submit")
	}
}

func TestInputModel_SecretMasksView(t *testing.T) {
	var m tea.Model = newInputModel("Admin", true)
	m = typeInto(m, "hunter2")
	if view := m.View(); strings.Contains(view, "hunter2") {
		t.Fatalf("secret echoed in view: %q", view)
	}
	if m.(inputModel).Value() != "hunter2" {
		t.Fatalf("secret not captured")
	}
}

func TestInputModel_EscAborts(t *testing.T) {
	var m tea.Model = newInputModel("x", false)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(inputModel).aborted {
		t.Fatalf("expected aborted")
	}
}

func TestConfirmModel(t *testing.T) {
	cases := []struct {
		key  tea.KeyMsg
		want bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("J")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, false},
	}
	for _, tc := range cases {
		var m tea.Model = confirmModel{question: "Continue?"}
		m, _ = m.Update(tc.key)
		cm := m.(confirmModel)
		if !cm.done || cm.answer != tc.want {
			t.Fatalf("key %v: got done=%v answer=%v", tc.key, cm.done, cm.answer)
		}
	}

	var m tea.Model = confirmModel{question: "Continue?"}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.(confirmModel).done {
		t.Fatalf("unrelated key must not answer")
	}
}
