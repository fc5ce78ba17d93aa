// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui renders Worker responses and command feedback for the
// terminal: a colored status line per response, the raw body after it, and
// an optional table view for key listings.
package ui
