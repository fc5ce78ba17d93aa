// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// keys-setup provisions the Worker's D1 database and writes keys.json.
// Run it once from the Worker project directory.
package main

import (
	"errors"
	"os"

	"github.com/toeirei/keyworker/internal/logging"
	"github.com/toeirei/keyworker/ui/cli"
)

func main() {
	if err := cli.ExecuteSetup(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			logging.Errorf("%v", err)
		}
		os.Exit(1)
	}
}
