package indexer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"discoprowl/internal/config"
)

// Searcher runs one indexer search per call.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Hit, error)
}

// Client is a Searcher that can also report reachability for preflight checks.
type Client interface {
	Searcher
	Ping(ctx context.Context) error
	Kind() string
}

// Option configures an indexer client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	now        func() time.Time
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithClock overrides the time source used to derive hit ages.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{httpClient: &http.Client{Timeout: 2 * time.Minute}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the client selected by indexer.kind.
func New(cfg *config.Config, opts ...Option) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("indexer: config is required")
	}
	switch cfg.Indexer.Kind {
	case config.IndexerProwlarr, "":
		return NewProwlarr(cfg.Indexer.URL, cfg.Indexer.APIKey, opts...)
	case config.IndexerTorznab:
		return NewTorznab(cfg.Indexer.URL, cfg.Indexer.APIKey, opts...)
	default:
		return nil, fmt.Errorf("indexer: unsupported kind %q", cfg.Indexer.Kind)
	}
}
