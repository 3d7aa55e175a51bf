package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"discoprowl/internal/cycle"
	"discoprowl/internal/daemonrun"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll the indexer on the configured schedule",
		Long: "Run searches every configured term immediately and then on the configured\n" +
			"schedule until interrupted. With --once a single cycle runs and a summary\n" +
			"table is printed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !once {
				return daemonrun.Run(cmd.Context(), cfg, ctx.runOptions())
			}

			report, err := daemonrun.RunOnce(cmd.Context(), cfg, ctx.runOptions())
			if err != nil {
				return err
			}
			printCycleReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single cycle and exit")
	return cmd
}

func printCycleReport(out io.Writer, report cycle.Report) {
	rows := make([][]string, 0, len(report.Terms))
	for _, term := range report.Terms {
		rows = append(rows, []string{
			term.Query,
			strconv.Itoa(term.Hits),
			strconv.Itoa(term.Matched),
			strconv.Itoa(len(term.Selected)),
			fmt.Sprintf("%d/%d", len(term.Deliveries)-term.Failures(), len(term.Deliveries)),
			termNotes(term),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Term", "Hits", "Matched", "Selected", "Sent", "Notes"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
	total, failed := report.Deliveries()
	fmt.Fprintf(out, "Cycle %s finished in %s: %d notifications, %d failed\n",
		report.CycleID, report.Duration.Round(time.Millisecond), total, failed)
}

func termNotes(term cycle.TermReport) string {
	var notes []string
	if term.SearchErr != nil {
		notes = append(notes, "search failed")
	}
	for _, d := range term.Deliveries {
		if !d.OK() {
			notes = append(notes, d.Transport+" failed")
		}
	}
	return strings.Join(notes, ", ")
}
