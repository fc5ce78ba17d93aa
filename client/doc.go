// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client talks to the activation-key Worker over HTTP. Each call is
// a single blocking request with a JSON body; the raw status and body are
// returned untouched so callers decide how to present them.
package client
