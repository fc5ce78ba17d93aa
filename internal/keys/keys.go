// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keys generates activation keys for the add command.
package keys

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
)

// New returns a random upper-case activation key such as
// "3F2504E0-4F89-41D3-9A0C-0305E82C3301".
func New() string {
	return strings.ToUpper(uuid.NewString())
}

// Valid reports whether s has the shape New produces.
func Valid(s string) bool {
	if strings.ToUpper(s) != s {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Copy places key on the system clipboard.
func Copy(key string) error {
	return clipboard.WriteAll(key)
}
