// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/keyworker/internal/config"
)

const listOutput = `[{"uuid":"11111111-2222-3333-4444-555555555555","name":"activation-keys","created_at":"2025-01-01"}]`

// fakeRunner answers commands by their joined arguments and records calls.
type fakeRunner struct {
	calls   []string
	outputs map[string]string
	fail    map[string]error
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	call := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, call)
	for prefix, err := range f.fail {
		if strings.HasPrefix(call, prefix) {
			return nil, err
		}
	}
	return []byte(f.outputs[call]), nil
}

// scriptedPrompter returns canned answers in order.
type scriptedPrompter struct {
	answers  []string
	confirms []bool
	asked    []string
	secrets  []bool
}

func (s *scriptedPrompter) Ask(label string, secret bool) (string, error) {
	s.asked = append(s.asked, label)
	s.secrets = append(s.secrets, secret)
	if len(s.answers) == 0 {
		return "", errors.New("no more answers")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scriptedPrompter) Confirm(question string) (bool, error) {
	if len(s.confirms) == 0 {
		return false, nil
	}
	c := s.confirms[0]
	s.confirms = s.confirms[1:]
	return c, nil
}

func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	tmpl := "name = \"activation-worker\"\nmain = \"src/index.ts\"\n\n[[d1_databases]]\nbinding = \"DB\"\ndatabase_name = \"activation-keys\"\ndatabase_id = \"<DATABASE_ID>\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrangler.toml"), []byte(tmpl), 0o644))
	return dir
}

func testOptions(dir string) Options {
	o := DefaultOptions()
	o.Dir = dir
	return o
}

func TestWizard_HappyPath(t *testing.T) {
	dir := projectDir(t)
	runner := &fakeRunner{outputs: map[string]string{"npx wrangler d1 list --json": listOutput}}
	prompt := &scriptedPrompter{answers: []string{"admin-secret", "https://worker.example.dev", ""}}
	var out bytes.Buffer

	cfg, err := NewWizard(testOptions(dir), runner, prompt, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"npm install",
		"npx wrangler d1 create activation-keys",
		"npx wrangler d1 list --json",
		"npx wrangler d1 execute activation-keys --remote --file=schema.sql",
	}, runner.calls)
	assert.Equal(t, []bool{true, false, false}, prompt.secrets)

	assert.Equal(t, "admin-secret", cfg.AdminKey)
	loaded, err := config.Load(filepath.Join(dir, "keys.json"))
	require.NoError(t, err)
	assert.Equal(t, "https://worker.example.dev", loaded.BaseURL)
	assert.Equal(t, "keys-history.db", loaded.History.DSN)

	data, err := os.ReadFile(filepath.Join(dir, "wrangler.toml"))
	require.NoError(t, err)
	var doc struct {
		Name        string `toml:"name"`
		D1Databases []struct {
			Binding      string `toml:"binding"`
			DatabaseID   string `toml:"database_id"`
			DatabaseName string `toml:"database_name"`
		} `toml:"d1_databases"`
	}
	require.NoError(t, toml.Unmarshal(data, &doc))
	require.Len(t, doc.D1Databases, 1)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", doc.D1Databases[0].DatabaseID)
	assert.Equal(t, "activation-worker", doc.Name)

	assert.Contains(t, out.String(), "All set up!")
}

func TestWizard_LookupFailureIsFatal(t *testing.T) {
	dir := projectDir(t)
	runner := &fakeRunner{outputs: map[string]string{"npx wrangler d1 list --json": `[]`}}
	prompt := &scriptedPrompter{}

	_, err := NewWizard(testOptions(dir), runner, prompt, &bytes.Buffer{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrDatabaseNotFound)
	assert.Empty(t, prompt.asked)
	_, statErr := os.Stat(filepath.Join(dir, "keys.json"))
	assert.True(t, os.IsNotExist(statErr), "config must not be written after a fatal step")
}

func TestWizard_NonFatalFailureDeclined(t *testing.T) {
	dir := projectDir(t)
	runner := &fakeRunner{fail: map[string]error{"npm install": errors.New("exit status 1")}}
	prompt := &scriptedPrompter{confirms: []bool{false}}

	_, err := NewWizard(testOptions(dir), runner, prompt, &bytes.Buffer{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, []string{"npm install"}, runner.calls)
}

func TestWizard_NonFatalFailureAccepted(t *testing.T) {
	dir := projectDir(t)
	runner := &fakeRunner{
		outputs: map[string]string{"npx wrangler d1 list --json": listOutput},
		fail:    map[string]error{"npx wrangler d1 create": errors.New("already exists")},
	}
	prompt := &scriptedPrompter{confirms: []bool{true}, answers: []string{"a", "http://localhost:8787", "https://buy"}}
	var out bytes.Buffer

	cfg, err := NewWizard(testOptions(dir), runner, prompt, &out).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://buy", cfg.BuyURL)
	assert.Contains(t, out.String(), "already exists")
}

func TestWizard_AssumeYesSkipsConfirm(t *testing.T) {
	dir := projectDir(t)
	runner := &fakeRunner{
		outputs: map[string]string{"npx wrangler d1 list --json": listOutput},
		fail:    map[string]error{"npx wrangler d1 execute": errors.New("schema failed")},
	}
	prompt := &scriptedPrompter{answers: []string{"a", "http://x", ""}}
	opts := testOptions(dir)
	opts.AssumeYes = true
	opts.SkipInstall = true

	_, err := NewWizard(opts, runner, prompt, &bytes.Buffer{}).Run(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, runner.calls, "npm install")
}

func TestWizard_RequiresAdminAndURL(t *testing.T) {
	dir := projectDir(t)
	runner := &fakeRunner{outputs: map[string]string{"npx wrangler d1 list --json": listOutput}}
	prompt := &scriptedPrompter{answers: []string{"", "http://x"}}
	opts := testOptions(dir)
	opts.SkipInstall = true
	opts.SkipSchema = true

	_, err := NewWizard(opts, runner, prompt, &bytes.Buffer{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrMissingRequired)
	_, statErr := os.Stat(filepath.Join(dir, "keys.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFindDatabaseID_SkipsBanner(t *testing.T) {
	out := []byte(" ⛅️ wrangler 3.99.0\n-------------------\n" + listOutput + "\n")
	id, err := FindDatabaseID(out, "activation-keys")
	require.NoError(t, err)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", id)

	_, err = FindDatabaseID(out, "other")
	assert.ErrorIs(t, err, ErrDatabaseNotFound)

	_, err = FindDatabaseID([]byte("no json here"), "x")
	assert.Error(t, err)
}

func TestPatchWranglerConfig_AddsEntryWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrangler.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"w\"\n"), 0o644))

	require.NoError(t, PatchWranglerConfig(path, "DB", "keys", "abc"))

	var doc map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, toml.Unmarshal(data, &doc))
	entries := doc["d1_databases"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "abc", entry["database_id"])
	assert.Equal(t, "DB", entry["binding"])
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("  secret \nhttp://w\ny\nno\n"), &out)

	v, err := p.Ask("Admin", true)
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	v, err = p.Ask("URL", false)
	require.NoError(t, err)
	assert.Equal(t, "http://w", v)

	ok, err := p.Confirm("Continue? ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm("Continue? ")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Contains(t, out.String(), "Admin: ")

	_, err = p.Ask("more", false)
	assert.Error(t, err)
}
