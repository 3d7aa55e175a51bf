package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"discoprowl/internal/indexer"
	"discoprowl/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report readiness of the indexer, artwork, transports, and state directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var pinger preflight.Pinger
			if !offline {
				client, err := indexer.New(cfg)
				if err != nil {
					return err
				}
				pinger = client
			}

			results := preflight.RunAll(cmd.Context(), cfg, pinger)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			writeLines(out, renderSectionHeader("Readiness", colorize))
			writeLines(out, checkLines(results, colorize))
			fmt.Fprintln(out, renderStatusLine("Transports", statusInfo, fmt.Sprintf("%d configured", len(cfg.Transports())), colorize))
			fmt.Fprintln(out, renderStatusLine("Schedule", statusInfo, cfg.ScheduleSpec(), colorize))
			fmt.Fprintln(out, renderStatusLine("Thumbnail", statusInfo, yesNo(cfg.Artwork.Thumbnail), colorize))

			if preflight.Failed(results) {
				return errors.New("readiness checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the live indexer request")
	return cmd
}
