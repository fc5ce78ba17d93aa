// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/toeirei/keyworker/internal/config"
	"github.com/toeirei/keyworker/internal/i18n"
	"github.com/toeirei/keyworker/internal/logging"
	"github.com/toeirei/keyworker/internal/ui"
)

var (
	// ErrAborted is returned when the operator declines to continue past a
	// failed step.
	ErrAborted = errors.New("setup aborted")

	// ErrMissingRequired is returned when the admin key or base URL is left
	// empty.
	ErrMissingRequired = errors.New("admin key and base URL are required")
)

// Options controls a setup run. Relative paths are resolved against Dir.
type Options struct {
	Dir            string
	DatabaseName   string
	Binding        string
	WranglerConfig string
	Schema         string
	ConfigPath     string
	HistoryDSN     string
	NPM            string
	NPX            string
	SkipInstall    bool
	SkipSchema     bool
	AssumeYes      bool
}

// DefaultOptions matches the layout of the Worker project.
func DefaultOptions() Options {
	return Options{
		Dir:            ".",
		DatabaseName:   "activation-keys",
		Binding:        "DB",
		WranglerConfig: "wrangler.toml",
		Schema:         "schema.sql",
		ConfigPath:     config.DefaultPath,
		HistoryDSN:     "keys-history.db",
		NPM:            "npm",
		NPX:            "npx",
	}
}

// Wizard runs the setup steps in order.
type Wizard struct {
	opts   Options
	runner Runner
	prompt Prompter
	out    *ui.Printer
}

func NewWizard(opts Options, runner Runner, prompt Prompter, out io.Writer) *Wizard {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	return &Wizard{opts: opts, runner: runner, prompt: prompt, out: ui.NewPrinter(out)}
}

func (w *Wizard) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(w.opts.Dir, p)
}

// step runs fn and reports the result. A failed non-fatal step asks the
// operator whether to go on.
func (w *Wizard) step(title string, fatal bool, fn func() error) error {
	err := fn()
	if err == nil {
		w.out.Successf("%s", i18n.T("setup.step_ok", title))
		return nil
	}
	w.out.Errorf("%s", i18n.T("setup.step_failed", title, err))
	if fatal {
		return err
	}
	if w.opts.AssumeYes {
		logging.Warnf("continuing after failed step: %s", title)
		return nil
	}
	ok, cerr := w.prompt.Confirm(i18n.T("setup.continue_prompt"))
	if cerr != nil {
		return cerr
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

// Run provisions the Worker and returns the config it wrote.
func (w *Wizard) Run(ctx context.Context) (config.Config, error) {
	var cfg config.Config
	o := w.opts

	if !o.SkipInstall {
		err := w.step(i18n.T("setup.step_install"), false, func() error {
			_, err := w.runner.Run(ctx, o.Dir, o.NPM, "install")
			return err
		})
		if err != nil {
			return cfg, err
		}
	}

	// A database left over from an earlier run makes create fail; the
	// lookup below is what has to succeed.
	err := w.step(i18n.T("setup.step_create_db", o.DatabaseName), false, func() error {
		_, err := w.runner.Run(ctx, o.Dir, o.NPX, "wrangler", "d1", "create", o.DatabaseName)
		return err
	})
	if err != nil {
		return cfg, err
	}

	var dbID string
	err = w.step(i18n.T("setup.step_lookup_id", o.DatabaseName), true, func() error {
		out, err := w.runner.Run(ctx, o.Dir, o.NPX, "wrangler", "d1", "list", "--json")
		if err != nil {
			return err
		}
		dbID, err = FindDatabaseID(out, o.DatabaseName)
		return err
	})
	if err != nil {
		return cfg, err
	}
	logging.Debugf("database %s has id %s", o.DatabaseName, dbID)

	wranglerPath := w.path(o.WranglerConfig)
	err = w.step(i18n.T("setup.step_patch_config", wranglerPath), true, func() error {
		return PatchWranglerConfig(wranglerPath, o.Binding, o.DatabaseName, dbID)
	})
	if err != nil {
		return cfg, err
	}

	if !o.SkipSchema {
		err = w.step(i18n.T("setup.step_schema", o.Schema), false, func() error {
			_, err := w.runner.Run(ctx, o.Dir, o.NPX, "wrangler", "d1", "execute", o.DatabaseName, "--remote", "--file="+o.Schema)
			return err
		})
		if err != nil {
			return cfg, err
		}
	}

	cfg, err = w.askConfig()
	if err != nil {
		return cfg, err
	}

	configPath := w.path(o.ConfigPath)
	err = w.step(i18n.T("setup.step_write_config", configPath), true, func() error {
		return config.Write(configPath, cfg)
	})
	if err != nil {
		return cfg, err
	}

	w.out.Println(i18n.T("setup.done"))
	w.out.Mutedf("%s", i18n.T("setup.done_local_note", configPath))
	return cfg, nil
}

func (w *Wizard) askConfig() (config.Config, error) {
	var cfg config.Config

	admin, err := w.prompt.Ask(i18n.T("setup.prompt_admin_key"), true)
	if err != nil {
		return cfg, fmt.Errorf("admin key: %w", err)
	}
	baseURL, err := w.prompt.Ask(i18n.T("setup.prompt_base_url"), false)
	if err != nil {
		return cfg, fmt.Errorf("base url: %w", err)
	}
	if admin == "" || baseURL == "" {
		w.out.Errorf("%s", i18n.T("setup.required"))
		return cfg, ErrMissingRequired
	}
	buyURL, err := w.prompt.Ask(i18n.T("setup.prompt_buy_url"), false)
	if err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("buy url: %w", err)
	}

	cfg = config.Config{
		AdminKey: admin,
		BaseURL:  baseURL,
		BuyURL:   buyURL,
		Language: i18n.GetLang(),
		History:  config.HistoryConfig{Type: "sqlite", DSN: w.opts.HistoryDSN},
	}
	return cfg, nil
}
