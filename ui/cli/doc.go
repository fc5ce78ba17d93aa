// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the keys and keys-setup commands using Cobra.
// Commands validate their arguments, load the config and hand the actual
// work to the client, bootstrap and journal packages.
package cli
