package preflight

import (
	"context"

	"discoprowl/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Pinger reports whether the indexer API is reachable with the configured key.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RunAll executes all applicable preflight checks for the given config. A nil
// pinger skips the live indexer check.
func RunAll(ctx context.Context, cfg *config.Config, pinger Pinger) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if pinger != nil {
		results = append(results, CheckIndexer(ctx, pinger, cfg.IndexerTimeout()))
	}

	// State directory holds the instance lock
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))

	results = append(results, CheckArtworkFromConfig(cfg))
	results = append(results, CheckTransportsFromConfig(cfg)...)

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
