// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for keys.
//
// Usage:
//
//	keys -t
//	keys -a EMAIL KEY [EXPIRY]
//	keys -v KEY MACHINE_ID
//	keys -d EMAIL [SPECIFY_KEY]
//
// The Worker URL and admin key are read from keys.json. See --help.
package main

import (
	"errors"
	"os"

	"github.com/toeirei/keyworker/internal/logging"
	"github.com/toeirei/keyworker/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			logging.Errorf("%v", err)
		}
		os.Exit(1)
	}
}
