package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateIndexer(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateFilter(); err != nil {
		return err
	}
	if err := c.validateSchedule(); err != nil {
		return err
	}
	if err := c.validateArtwork(); err != nil {
		return err
	}
	if err := c.validateTransports(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateIndexer() error {
	switch c.Indexer.Kind {
	case IndexerProwlarr, IndexerTorznab:
	default:
		return fmt.Errorf("indexer.kind must be %q or %q, got %q", IndexerProwlarr, IndexerTorznab, c.Indexer.Kind)
	}
	if c.Indexer.URL == "" {
		return fmt.Errorf("indexer.url is required. Set %s or edit %s", EnvIndexerURL, c.defaultPathHint())
	}
	if _, err := url.Parse(c.Indexer.URL); err != nil {
		return fmt.Errorf("indexer.url: %w", err)
	}
	if c.Indexer.APIKey == "" {
		return fmt.Errorf("indexer.api_key is required. Set %s or edit %s", EnvIndexerAPIKey, c.defaultPathHint())
	}
	if c.Indexer.TimeoutSeconds < 0 {
		return errors.New("indexer.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if len(c.Search.Terms) == 0 {
		return fmt.Errorf("search.terms must include at least one term. Set %s or edit %s", EnvSearchItems, c.defaultPathHint())
	}
	return nil
}

func (c *Config) validateFilter() error {
	if c.Filter.MaxResults < 1 {
		return errors.New("filter.max_results must be >= 1")
	}
	if c.Filter.MaxAgeDays < 0 {
		return errors.New("filter.max_age_days must be >= 0")
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if strings.TrimSpace(c.Schedule.Cron) == "" && c.Interval() <= 0 {
		return errors.New("schedule.interval_hours must be positive")
	}
	if _, err := cron.ParseStandard(c.ScheduleSpec()); err != nil {
		return fmt.Errorf("schedule: invalid expression %q: %w", c.ScheduleSpec(), err)
	}
	return nil
}

func (c *Config) validateArtwork() error {
	if c.Artwork.TimeoutSeconds < 0 {
		return errors.New("artwork.timeout_seconds must be positive")
	}
	switch c.Artwork.FallbackKind {
	case FallbackRemote, FallbackLocal:
	default:
		return fmt.Errorf("artwork.fallback_kind must be %q or %q, got %q", FallbackRemote, FallbackLocal, c.Artwork.FallbackKind)
	}
	if c.Artwork.FallbackValue == "" {
		return errors.New("artwork.fallback_value must be set when artwork.fallback_kind is local")
	}
	if c.Artwork.FallbackKind == FallbackLocal {
		info, err := os.Stat(c.Artwork.FallbackValue)
		if err != nil {
			return fmt.Errorf("artwork.fallback_value: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("artwork.fallback_value %q is a directory", c.Artwork.FallbackValue)
		}
	}
	return nil
}

func (c *Config) validateTransports() error {
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	if (c.Pushover.AppToken == "") != (c.Pushover.UserKey == "") {
		return errors.New("pushover.app_token and pushover.user_key must be set together")
	}
	switch c.Pushover.Method {
	case PushoverMethodAPI:
	case PushoverMethodApprise:
		if c.PushoverEnabled() && c.Apprise.URL == "" {
			return errors.New("apprise.url must be set when pushover.method is apprise")
		}
	default:
		return fmt.Errorf("pushover.method must be %q or %q, got %q", PushoverMethodAPI, PushoverMethodApprise, c.Pushover.Method)
	}
	switch c.Ntfy.Priority {
	case "min", "low", "default", "high", "max", "urgent":
	default:
		return fmt.Errorf("ntfy.priority: unsupported value %q", c.Ntfy.Priority)
	}
	if len(c.Transports()) == 0 {
		return fmt.Errorf("no notification method provided. Set at least one of %s, %s, %s, or both %s and %s",
			EnvDiscordWebhook, EnvAppriseURL, EnvNtfyTopic, EnvPushoverAppToken, EnvPushoverUserKey)
	}
	return nil
}

func (c *Config) defaultPathHint() string {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "~/.config/discoprowl/config.toml"
	}
	return defaultPath + " (create with 'discoprowl config init')"
}
