package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeIndexer()
	c.normalizeSearch()
	c.normalizeFilter()
	if err := c.normalizeArtwork(); err != nil {
		return err
	}
	c.normalizeTransports()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeIndexer() {
	c.Indexer.Kind = strings.ToLower(strings.TrimSpace(c.Indexer.Kind))
	if c.Indexer.Kind == "" {
		c.Indexer.Kind = defaultIndexerKind
	}
	c.Indexer.URL = normalizeBaseURL(c.Indexer.URL)
	c.Indexer.APIKey = strings.TrimSpace(c.Indexer.APIKey)
	if c.Indexer.TimeoutSeconds == 0 {
		c.Indexer.TimeoutSeconds = defaultIndexerTimeout
	}
}

// normalizeBaseURL trims whitespace and trailing slashes and assumes https
// when no scheme is given.
func normalizeBaseURL(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if !strings.Contains(value, "://") {
		value = defaultIndexerURLScheme + value
	}
	return strings.TrimRight(value, "/")
}

// normalizeSearch drops blank terms and case-insensitive duplicates, keeping
// the first spelling, so each term is searched and notified once per cycle.
func (c *Config) normalizeSearch() {
	terms := make([]string, 0, len(c.Search.Terms))
	seen := make(map[string]struct{}, len(c.Search.Terms))
	for _, term := range c.Search.Terms {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, trimmed)
	}
	c.Search.Terms = terms
}

func (c *Config) normalizeFilter() {
	keywords := make([]string, 0, len(c.Filter.DisallowedKeywords))
	seen := make(map[string]struct{}, len(c.Filter.DisallowedKeywords))
	for _, kw := range c.Filter.DisallowedKeywords {
		normalized := strings.ToLower(strings.TrimSpace(kw))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		keywords = append(keywords, normalized)
	}
	c.Filter.DisallowedKeywords = keywords
}

func (c *Config) normalizeArtwork() error {
	c.Artwork.APIKey = strings.TrimSpace(c.Artwork.APIKey)
	c.Artwork.BaseURL = strings.TrimRight(strings.TrimSpace(c.Artwork.BaseURL), "/")
	if c.Artwork.BaseURL == "" {
		c.Artwork.BaseURL = defaultArtworkBaseURL
	}
	if c.Artwork.TimeoutSeconds == 0 {
		c.Artwork.TimeoutSeconds = defaultArtworkTimeout
	}
	c.Artwork.FallbackKind = strings.ToLower(strings.TrimSpace(c.Artwork.FallbackKind))
	if c.Artwork.FallbackKind == "" {
		c.Artwork.FallbackKind = FallbackRemote
	}
	c.Artwork.FallbackValue = strings.TrimSpace(c.Artwork.FallbackValue)
	if c.Artwork.FallbackKind == FallbackRemote && c.Artwork.FallbackValue == "" {
		c.Artwork.FallbackValue = defaultFallbackImageURL
	}
	if c.Artwork.FallbackKind == FallbackLocal && c.Artwork.FallbackValue != "" {
		expanded, err := expandPath(c.Artwork.FallbackValue)
		if err != nil {
			return fmt.Errorf("artwork.fallback_value: %w", err)
		}
		c.Artwork.FallbackValue = expanded
	}
	return nil
}

func (c *Config) normalizeTransports() {
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}

	c.Discord.WebhookURL = strings.TrimSpace(c.Discord.WebhookURL)
	c.Discord.Username = strings.TrimSpace(c.Discord.Username)
	if c.Discord.Username == "" {
		c.Discord.Username = defaultDiscordUsername
	}

	c.Apprise.URL = strings.TrimSpace(c.Apprise.URL)
	c.Apprise.Targets = strings.TrimSpace(c.Apprise.Targets)

	c.Pushover.AppToken = strings.TrimSpace(c.Pushover.AppToken)
	c.Pushover.UserKey = strings.TrimSpace(c.Pushover.UserKey)
	c.Pushover.Method = strings.ToLower(strings.TrimSpace(c.Pushover.Method))
	if c.Pushover.Method == "" {
		c.Pushover.Method = defaultPushoverMethod
	}
	c.Pushover.APIURL = strings.TrimSpace(c.Pushover.APIURL)
	if c.Pushover.APIURL == "" {
		c.Pushover.APIURL = defaultPushoverAPIURL
	}

	c.Ntfy.Topic = strings.TrimSpace(c.Ntfy.Topic)
	c.Ntfy.Priority = strings.ToLower(strings.TrimSpace(c.Ntfy.Priority))
	if c.Ntfy.Priority == "" {
		c.Ntfy.Priority = defaultNtfyPriority
	}
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format != "json" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
