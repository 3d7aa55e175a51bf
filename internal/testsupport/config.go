package testsupport

import (
	"path/filepath"
	"testing"

	"discoprowl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a valid config seeded with a unique state directory per
// test. It enables the Discord transport against a placeholder URL and
// applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Indexer.URL = "http://127.0.0.1:9696"
	cfgVal.Indexer.APIKey = "test"
	cfgVal.Search.Terms = []string{"Halo"}
	cfgVal.Discord.WebhookURL = "http://127.0.0.1:1/webhook"
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithIndexer points the config at a Prowlarr-compatible endpoint.
func WithIndexer(url, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Indexer.URL = url
		b.cfg.Indexer.APIKey = apiKey
	}
}

// WithTerms replaces the search terms.
func WithTerms(terms ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.Terms = append([]string(nil), terms...)
	}
}

// WithDiscord overrides the webhook URL; an empty value disables Discord.
func WithDiscord(webhookURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Discord.WebhookURL = webhookURL
	}
}

// WithNtfy enables ntfy delivery to topicURL.
func WithNtfy(topicURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ntfy.Topic = topicURL
	}
}

// WithInterval sets the polling interval in hours.
func WithInterval(hours float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Schedule.IntervalHours = hours
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
