// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFlattenYAML(t *testing.T) {
	keys := make(map[string]struct{})
	flattenYAML("", map[string]any{
		"status": map[string]any{"success": "Success"},
		"top":    "v",
	}, keys)
	for _, k := range []string{"status.success", "top"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("expected %s in %v", k, keys)
		}
	}
}

func TestLint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "a.go"), `package pkg
func f() { _ = i18n.T("status.success"); _ = i18n.T("cli.unknown", 1) }`)
	writeFile(t, filepath.Join(root, "pkg", "a_test.go"), `package pkg
func g() { _ = i18n.T("test.only") }`)
	writeFile(t, filepath.Join(root, "tools", "x.go"), `package x
func h() { _ = i18n.T("tools.ignored") }`)
	writeFile(t, filepath.Join(root, "locales", "en.yaml"), "status:\n  success: Success\n  error: Error\n")
	writeFile(t, filepath.Join(root, "locales", "de.yaml"), "status:\n  success: Erfolg\n")

	r, err := lint(root, "locales")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(r.Missing) != 1 || r.Missing[0] != "cli.unknown" {
		t.Fatalf("unexpected missing %v", r.Missing)
	}
	if len(r.Orphaned) != 1 || r.Orphaned[0] != "status.error" {
		t.Fatalf("unexpected orphaned %v", r.Orphaned)
	}
	if got := r.Gaps["de.yaml"]; len(got) != 1 || got[0] != "status.error" {
		t.Fatalf("unexpected gaps %v", r.Gaps)
	}
	if !r.failed() {
		t.Fatalf("expected failure")
	}

	var buf bytes.Buffer
	writeReport(&buf, r)
	if !strings.Contains(buf.String(), "untranslated in de.yaml: status.error") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

// The real locales must stay in sync with the code.
func TestRepositoryLocales(t *testing.T) {
	r, err := lint(filepath.Join("..", ".."), localesDir)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if r.failed() {
		var buf bytes.Buffer
		writeReport(&buf, r)
		t.Fatalf("locale problems:\n%s", buf.String())
	}
}
