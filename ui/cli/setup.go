// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/toeirei/keyworker/internal/bootstrap"
	"github.com/toeirei/keyworker/internal/i18n"
	"github.com/toeirei/keyworker/internal/logging"
	"github.com/toeirei/keyworker/internal/tui"
	"github.com/toeirei/keyworker/internal/ui"
	"golang.org/x/term"
)

// setupRunner executes wrangler and npm. Tests replace it with a fake.
var setupRunner bootstrap.Runner = bootstrap.ExecRunner{}

// newPrompter picks the Bubble Tea prompts on a terminal and plain line
// prompts for pipes and files.
func newPrompter(in io.Reader, out io.Writer) bootstrap.Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return tui.NewPrompter(in, out)
	}
	return bootstrap.NewLinePrompter(in, out)
}

// ExecuteSetup runs the keys-setup command.
func ExecuteSetup() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewSetupCmd().ExecuteContext(ctx)
}

// NewSetupCmd creates the keys-setup command, which provisions the D1
// database for the Worker and writes keys.json.
func NewSetupCmd() *cobra.Command {
	opts := bootstrap.DefaultOptions()
	var (
		verbose  bool
		language string
	)

	cmd := &cobra.Command{
		Use:   "keys-setup",
		Short: "Provision the Worker database and write the keys config.",
		Long: `keys-setup runs once inside the Worker project. It installs the npm
dependencies, creates the D1 database, writes its id into wrangler.toml,
applies the schema and finally asks for the values keys.json needs.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.SetDebug(verbose)
			i18n.Init(language)

			out := cmd.OutOrStdout()
			w := bootstrap.NewWizard(opts, setupRunner, newPrompter(cmd.InOrStdin(), out), out)
			_, err := w.Run(cmd.Context())
			switch {
			case err == nil:
				return nil
			case errors.Is(err, bootstrap.ErrAborted), errors.Is(err, tui.ErrAborted):
				ui.NewPrinter(out).Errorf("%s", i18n.T("setup.aborted"))
				return ErrReported
			case errors.Is(err, bootstrap.ErrMissingRequired):
				return ErrReported
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Dir, "dir", opts.Dir, "Worker project directory")
	f.StringVar(&opts.DatabaseName, "db-name", opts.DatabaseName, "D1 database name")
	f.StringVar(&opts.Binding, "binding", opts.Binding, "D1 binding name in wrangler.toml")
	f.StringVar(&opts.WranglerConfig, "wrangler-config", opts.WranglerConfig, "Worker config to patch with the database id")
	f.StringVar(&opts.Schema, "schema", opts.Schema, "SQL schema applied to the new database")
	f.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "keys config file to write")
	f.StringVar(&opts.HistoryDSN, "history-dsn", opts.HistoryDSN, "SQLite file for the local request history (empty disables it)")
	f.BoolVar(&opts.SkipInstall, "skip-install", false, "Skip npm install")
	f.BoolVar(&opts.SkipSchema, "skip-schema", false, "Skip applying the schema")
	f.BoolVarP(&opts.AssumeYes, "yes", "y", false, "Continue after non-fatal failures without asking")
	f.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	f.StringVar(&language, "language", "", `Message language ("en", "de")`)
	return cmd
}
