// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides Bubble Tea prompts for keys-setup when it runs on a
// terminal.
package tui
