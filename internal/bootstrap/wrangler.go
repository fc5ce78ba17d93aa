// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package bootstrap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrDatabaseNotFound is returned when `wrangler d1 list` does not show the
// database that was just created.
var ErrDatabaseNotFound = errors.New("database not found in wrangler d1 list output")

// D1Database is one entry of `wrangler d1 list --json`.
type D1Database struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// ParseD1List decodes `wrangler d1 list --json`. Anything wrangler prints
// before the JSON array (banners, update notices) is skipped.
func ParseD1List(out []byte) ([]D1Database, error) {
	start := bytes.IndexByte(out, '[')
	if start < 0 {
		return nil, fmt.Errorf("no JSON array in wrangler output")
	}
	var dbs []D1Database
	if err := json.NewDecoder(bytes.NewReader(out[start:])).Decode(&dbs); err != nil {
		return nil, fmt.Errorf("could not decode wrangler d1 list: %w", err)
	}
	return dbs, nil
}

// FindDatabaseID returns the uuid of the database called name.
func FindDatabaseID(out []byte, name string) (string, error) {
	dbs, err := ParseD1List(out)
	if err != nil {
		return "", err
	}
	for _, db := range dbs {
		if db.Name == name && db.UUID != "" {
			return db.UUID, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrDatabaseNotFound)
}

// PatchWranglerConfig sets database_id (and database_name) on the
// [[d1_databases]] entry for binding, adding the entry when the template has
// none. Comments in the template are not preserved.
func PatchWranglerConfig(path, binding, name, id string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("could not parse %s: %w", path, err)
	}

	var entries []any
	if raw, ok := doc["d1_databases"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("%s: d1_databases is not an array of tables", path)
		}
		entries = list
	}

	patched := false
	for _, e := range entries {
		table, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if table["binding"] == binding {
			table["database_name"] = name
			table["database_id"] = id
			patched = true
			break
		}
	}
	if !patched {
		entries = append(entries, map[string]any{
			"binding":       binding,
			"database_name": name,
			"database_id":   id,
		})
	}
	doc["d1_databases"] = entries

	out, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", path, err)
	}
	return os.WriteFile(path, out, 0o644)
}
