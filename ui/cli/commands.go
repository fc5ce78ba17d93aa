// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/keyworker/client"
	"github.com/toeirei/keyworker/internal/i18n"
	"github.com/toeirei/keyworker/internal/keys"
	"github.com/toeirei/keyworker/internal/model"
	"github.com/toeirei/keyworker/internal/ui"
)

// newBuyURLCmd asks the Worker where keys can be bought. The configured
// buy_url is used when the Worker cannot be reached or has no link.
func newBuyURLCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "buy-url",
		Short: "Print the purchase link served by the Worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, o)
			if err != nil {
				return err
			}
			defer s.close()

			ctx := cmd.Context()
			resp, reqErr := s.client.BuyLink(ctx)
			s.record(ctx, model.ActionBuyLink, "", resp, reqErr)

			link := ""
			if reqErr == nil && resp.Outcome() == client.OutcomeSuccess {
				link, _ = client.ParseBuyLink(resp.Body)
			}
			if link == "" {
				link = s.cfg.BuyURL
			}

			switch {
			case link != "":
				s.out.Println(i18n.T("cli.buy_link", link))
			case reqErr != nil:
				s.out.NetworkError(reqErr)
				return ErrReported
			default:
				s.out.Response(resp)
			}
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var copyKey bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random activation key",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			key := keys.New()
			out := ui.NewPrinter(cmd.OutOrStdout())
			out.Println(key)
			if !copyKey {
				return
			}
			if err := keys.Copy(key); err != nil {
				out.Errorf("%s", i18n.T("cli.copy_failed", err))
				return
			}
			out.Mutedf("%s", i18n.T("cli.copied"))
		},
	}
	cmd.Flags().BoolVarP(&copyKey, "copy", "c", false, "Copy the key to the clipboard")
	return cmd
}

func newHistoryCmd(o *rootOptions) *cobra.Command {
	var (
		limit  int
		export string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or export the local request history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, o)
			if err != nil {
				return err
			}
			defer s.close()

			if s.journal == nil {
				s.out.Mutedf("%s", i18n.T("cli.history_disabled"))
				return nil
			}

			ctx := cmd.Context()
			if export != "" {
				f, err := os.Create(export)
				if err != nil {
					return fmt.Errorf("could not create %s: %w", export, err)
				}
				n, err := s.journal.Export(ctx, f)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return fmt.Errorf("could not export history: %w", err)
				}
				s.out.Successf("%s", i18n.T("cli.history_exported", n, export))
				return nil
			}

			entries, err := s.journal.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("could not read history: %w", err)
			}
			if len(entries) == 0 {
				s.out.Mutedf("%s", i18n.T("cli.history_empty"))
				return nil
			}
			s.out.Println(ui.RenderHistory(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")
	cmd.Flags().StringVar(&export, "export", "", "Write the whole history to FILE as zstd-compressed JSON")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}
