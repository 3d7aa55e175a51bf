package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"discoprowl/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification through every configured transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := ctx.quietLogger(cfg)
			if err != nil {
				return err
			}

			deliveries := notifications.NewFromConfig(cfg, logger).Test(cmd.Context())
			out := cmd.OutOrStdout()
			writeLines(out, deliveryLines(deliveries, shouldColorize(out)))

			failed := 0
			for _, d := range deliveries {
				if !d.OK() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d transports failed", failed, len(deliveries))
			}
			return nil
		},
	}
}
