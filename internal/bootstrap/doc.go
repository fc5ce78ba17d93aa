// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package bootstrap provisions a fresh Worker deployment: it installs the
// Worker's npm dependencies, creates the D1 database, records its id in the
// wrangler config, applies the schema and writes the keys.json the CLI
// reads. Steps run one after another; there is no rollback.
package bootstrap
