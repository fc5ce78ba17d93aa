// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks that every message id passed to i18n.T exists in the
// primary locale and that all locales carry the same ids.
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

// report is the outcome of one lint run.
type report struct {
	Missing  []string            // used in code, absent from the primary locale
	Orphaned []string            // in the primary locale, never used
	Gaps     map[string][]string // locale file -> ids it lacks
}

func (r report) failed() bool {
	return len(r.Missing) > 0 || len(r.Gaps) > 0
}

func main() {
	r, err := lint(".", localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(2)
	}
	writeReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	r := report{Gaps: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, err
	}
	primary, err := loadKeysFromLocale(filepath.Join(root, locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("primary locale: %w", err)
	}

	for k := range used {
		if _, ok := primary[k]; !ok {
			r.Missing = append(r.Missing, k)
		}
	}
	for k := range primary {
		if _, ok := used[k]; !ok {
			r.Orphaned = append(r.Orphaned, k)
		}
	}
	sort.Strings(r.Missing)
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(root, locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, f := range files {
		if filepath.Base(f) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(f)
		if err != nil {
			return r, fmt.Errorf("%s: %w", f, err)
		}
		var gaps []string
		for k := range primary {
			if _, ok := keys[k]; !ok {
				gaps = append(gaps, k)
			}
		}
		if len(gaps) > 0 {
			sort.Strings(gaps)
			r.Gaps[filepath.Base(f)] = gaps
		}
	}
	return r, nil
}

func writeReport(w io.Writer, r report) {
	for _, k := range r.Missing {
		fmt.Fprintf(w, "missing:  %s\n", k)
	}
	names := make([]string, 0, len(r.Gaps))
	for n := range r.Gaps {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		for _, k := range r.Gaps[n] {
			fmt.Fprintf(w, "untranslated in %s: %s\n", n, k)
		}
	}
	for _, k := range r.Orphaned {
		fmt.Fprintf(w, "orphaned: %s\n", k)
	}
	if !r.failed() && len(r.Orphaned) == 0 {
		fmt.Fprintln(w, "all locales consistent")
	}
}

var keyCall = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

// findUsedKeys scans non-test Go files below root for i18n.T("id") calls.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyCall.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads a YAML file and returns its dot-joined leaf ids.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	m, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		flattenYAML(k, v, keys)
	}
}
