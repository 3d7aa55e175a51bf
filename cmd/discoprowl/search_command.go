package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"discoprowl/internal/artwork"
	"discoprowl/internal/config"
	"discoprowl/internal/filter"
	"discoprowl/internal/indexer"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var showArtwork bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Dry-run one search term without sending notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			term := strings.TrimSpace(args[0])
			if term == "" {
				return fmt.Errorf("search term is required")
			}

			client, err := indexer.New(cfg)
			if err != nil {
				return err
			}
			searchCtx, cancel := context.WithTimeout(cmd.Context(), cfg.IndexerTimeout())
			defer cancel()
			hits, err := client.Search(searchCtx, term)
			if err != nil {
				return fmt.Errorf("search %q: %w", term, err)
			}

			out := cmd.OutOrStdout()
			selected := printVerdicts(out, term, hits, filter.RulesFromConfig(cfg))

			if showArtwork && len(selected) > 0 {
				logger, err := ctx.quietLogger(cfg)
				if err != nil {
					return err
				}
				art := artwork.NewResolverFromConfig(cfg, logger).Resolve(cmd.Context(), term)
				printArtwork(out, cfg, art)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showArtwork, "artwork", false, "Also resolve the notification image")
	return cmd
}

// printVerdicts renders every hit with its verdict and returns the hits that
// would be notified.
func printVerdicts(out io.Writer, term string, hits []indexer.Hit, rules filter.Rules) []indexer.Hit {
	matcher := filter.NewMatcher(term)
	passed := make([]indexer.Hit, 0, len(hits))
	rows := make([][]string, 0, len(hits))
	for i, hit := range hits {
		verdict := filter.Evaluate(hit, matcher, rules)
		if verdict.Passed {
			passed = append(passed, hit)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			hit.Indexer,
			displayValue(hit.Seeders),
			displayValue(hit.Age),
			hit.FileName,
			verdictLabel(verdict),
		})
	}

	if len(hits) == 0 {
		fmt.Fprintf(out, "No hits for %q\n", term)
	} else {
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Indexer", "Seeders", "Age", "Filename", "Verdict"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
		))
	}

	selected := filter.Select(passed, rules.MaxResults)
	fmt.Fprintf(out, "%d of %d hits passed; %d would be notified\n", len(passed), len(hits), len(selected))
	for i, hit := range selected {
		fmt.Fprintf(out, "  %d. %s\n", i+1, hit.FileName)
	}
	return selected
}

func verdictLabel(v filter.Verdict) string {
	if v.Passed {
		return "pass"
	}
	if v.Detail == "" {
		return string(v.Reason)
	}
	return fmt.Sprintf("%s (%s)", v.Reason, v.Detail)
}

func printArtwork(out io.Writer, cfg *config.Config, art artwork.Artwork) {
	fmt.Fprintf(out, "Image: %s\n", art.Main.URL)
	if cfg.Artwork.Thumbnail {
		fmt.Fprintf(out, "Thumbnail: %s\n", art.Thumb.URL)
	}
}

func displayValue(v indexer.Value) string {
	if !v.Present() {
		return "-"
	}
	return v.String()
}
