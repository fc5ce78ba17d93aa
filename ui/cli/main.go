// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the keys command: the four action flags against the
// Worker API plus a few helper subcommands.

package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/toeirei/keyworker/client"
	"github.com/toeirei/keyworker/internal/config"
	"github.com/toeirei/keyworker/internal/i18n"
	"github.com/toeirei/keyworker/internal/logging"
)

// ErrReported means the failure was already printed for the user. main
// exits non-zero without printing it again.
var ErrReported = errors.New("error already reported")

// newClient builds the Worker client for a loaded config. Tests may swap it.
var newClient = func(cfg config.Config) client.Client {
	v, _, _ := resolveBuildVersion(nil)
	return client.New(client.Config{
		BaseURL:   cfg.BaseURL,
		Admin:     cfg.Admin(),
		UserAgent: "keyworker/" + v,
	})
}

// rootOptions holds the flag values of one root command instance.
type rootOptions struct {
	configPath string
	language   string
	verbose    bool
	noHistory  bool
	pretty     bool

	table  bool
	add    bool
	verify bool
	del    bool
}

// action returns the selected action, or "" when no action flag is set.
func (o *rootOptions) action() string {
	switch {
	case o.table:
		return actionTable
	case o.add:
		return actionAdd
	case o.verify:
		return actionVerify
	case o.del:
		return actionDelete
	}
	return ""
}

// Execute runs the keys command with a context that is cancelled on
// SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates and configures a new root cobra command.
// Each call returns an independent command tree, which keeps tests isolated.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "keys [-t | -a EMAIL KEY [EXPIRY] | -v KEY MACHINE_ID | -d EMAIL [SPECIFY_KEY]]",
		Short: "Manage activation keys stored behind a Cloudflare Worker.",
		Long: `keys talks to the activation key Worker configured in keys.json.

  keys -t                          list every key
  keys -a EMAIL KEY [EXPIRY]       add a key for EMAIL
  keys -v KEY MACHINE_ID           verify a key for a machine
  keys -d EMAIL [SPECIFY_KEY]      delete all keys of EMAIL, or just one

Running without an action prints this help.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetDebug(o.verbose)
			i18n.Init(o.language)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			act := o.action()
			if act == "" {
				return cmd.Help()
			}
			if err := validateArgs(act, args); err != nil {
				return err
			}

			s, err := openSession(cmd, o)
			if err != nil {
				return err
			}
			defer s.close()
			return s.run(cmd.Context(), act, args, o.pretty)
		},
	}

	v, c, d := resolveBuildVersion(nil)
	cmd.Version = compositeVersion(v, c, d)

	// Define flags
	cmd.PersistentFlags().StringVar(&o.configPath, "config", config.DefaultPath, "config file")
	cmd.PersistentFlags().BoolVar(&o.verbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&o.language, "language", "", `Message language ("en", "de"); defaults to the config value`)
	cmd.PersistentFlags().BoolVar(&o.noHistory, "no-history", false, "Do not record requests in the local history")

	cmd.Flags().BoolP("version", "V", false, "Print version and exit")
	cmd.Flags().BoolVarP(&o.table, "table", "t", false, "List all activation keys")
	cmd.Flags().BoolVarP(&o.add, "add", "a", false, "Add a key: EMAIL KEY [EXPIRY]")
	cmd.Flags().BoolVarP(&o.verify, "verify", "v", false, "Verify a key: KEY MACHINE_ID")
	cmd.Flags().BoolVarP(&o.del, "delete", "d", false, "Delete keys: EMAIL [SPECIFY_KEY]")
	cmd.Flags().BoolVar(&o.pretty, "pretty", false, "Render the -t listing as a table")
	cmd.MarkFlagsMutuallyExclusive("table", "add", "verify", "delete")

	cmd.AddCommand(
		newBuyURLCmd(o),
		newGenerateCmd(),
		newHistoryCmd(o),
		newVersionCmd(),
	)
	return cmd
}
