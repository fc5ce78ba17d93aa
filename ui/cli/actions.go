// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/keyworker/client"
	"github.com/toeirei/keyworker/internal/config"
	"github.com/toeirei/keyworker/internal/db"
	"github.com/toeirei/keyworker/internal/i18n"
	"github.com/toeirei/keyworker/internal/logging"
	"github.com/toeirei/keyworker/internal/model"
	"github.com/toeirei/keyworker/internal/ui"
)

const (
	actionTable  = model.ActionTable
	actionAdd    = model.ActionAdd
	actionVerify = model.ActionVerify
	actionDelete = model.ActionDelete
)

// validateArgs checks the positional argument count of an action. It runs
// before the config is loaded so a bad invocation never reaches the Worker.
func validateArgs(action string, args []string) error {
	n := len(args)
	switch action {
	case actionTable:
		if n != 0 {
			return errors.New(i18n.T("cli.usage_table", n))
		}
	case actionAdd:
		if n < 2 || n > 3 {
			return errors.New(i18n.T("cli.usage_add", n))
		}
	case actionVerify:
		if n != 2 {
			return errors.New(i18n.T("cli.usage_verify", n))
		}
	case actionDelete:
		if n < 1 || n > 2 {
			return errors.New(i18n.T("cli.usage_delete", n))
		}
	}
	return nil
}

// session is everything a command needs after the config is loaded.
type session struct {
	cfg     config.Config
	client  client.Client
	journal *db.Store
	out     *ui.Printer
}

// openSession loads the config, applies its language and opens the request
// journal when one is configured. Journal problems are only warnings.
func openSession(cmd *cobra.Command, o *rootOptions) (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.language == "" && cfg.Language != "" {
		i18n.SetLang(cfg.Language)
	}

	adminState := i18n.T("cli.set")
	if cfg.Admin() == "" {
		adminState = i18n.T("cli.not_set")
	}
	logging.Infof("%s", i18n.T("cli.worker_url", cfg.BaseURL))
	logging.Infof("%s", i18n.T("cli.admin_key", adminState))

	s := &session{
		cfg:    cfg,
		client: newClient(cfg),
		out:    ui.NewPrinter(cmd.OutOrStdout()),
	}

	if !o.noHistory && cfg.History.DSN != "" {
		store, err := db.Open(cmd.Context(), cfg.History.Type, cfg.History.DSN)
		if err != nil {
			logging.Warnf("request history unavailable: %v", err)
		} else {
			s.journal = store
		}
	}
	return s, nil
}

func (s *session) close() {
	if s.journal == nil {
		return
	}
	if err := s.journal.Close(); err != nil {
		logging.Warnf("could not close request history: %v", err)
	}
}

// run performs one action and prints the Worker's answer. A transport
// failure is printed and reported as ErrReported; any HTTP status is a
// normal result.
func (s *session) run(ctx context.Context, action string, args []string, pretty bool) error {
	var (
		resp   *client.Response
		err    error
		target string
	)

	switch action {
	case actionTable:
		resp, err = s.client.Table(ctx)
	case actionAdd:
		expires := ""
		if len(args) == 3 {
			expires = args[2]
		}
		target = args[0] + " " + args[1]
		resp, err = s.client.Add(ctx, args[0], args[1], expires)
	case actionVerify:
		target = args[0]
		resp, err = s.client.Verify(ctx, args[0], args[1])
	case actionDelete:
		specifyKey := ""
		if len(args) == 2 {
			specifyKey = args[1]
		}
		target = strings.TrimSpace(args[0] + " " + specifyKey)
		resp, err = s.client.Delete(ctx, args[0], specifyKey)
	}

	s.record(ctx, action, target, resp, err)
	if err != nil {
		s.out.NetworkError(err)
		return ErrReported
	}

	if action == actionTable {
		s.out.KeyTable(resp, pretty)
	} else {
		s.out.Response(resp)
	}
	return nil
}

// record journals a request. It never changes the command result.
func (s *session) record(ctx context.Context, action, target string, resp *client.Response, reqErr error) {
	if s.journal == nil {
		return
	}
	e := model.RequestLogEntry{Action: action, Target: target}
	if resp != nil {
		e.StatusCode = resp.StatusCode
		e.Outcome = resp.Outcome().String()
	}
	if reqErr != nil {
		e.Outcome = "network_error"
		e.Error = reqErr.Error()
	}
	if err := s.journal.Record(context.WithoutCancel(ctx), e); err != nil {
		logging.Warnf("could not record request: %v", err)
	}
}
