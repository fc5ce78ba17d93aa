// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db stores the local request journal: one row per request the CLI
// sent to the Worker. SQLite is the default backend; Postgres and MySQL work
// through the same Bun models for teams sharing one journal.
package db
