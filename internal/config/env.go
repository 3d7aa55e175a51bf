package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names accepted as overrides. They match the names used
// by existing container deployments.
const (
	EnvIndexerURL         = "PROWLARR_URL"
	EnvIndexerAPIKey      = "API_KEY"
	EnvSearchItems        = "SEARCH_ITEMS"
	EnvIntervalHours      = "INTERVAL_HOURS"
	EnvMaxResults         = "MAX_RESULTS"
	EnvMaxAgeDays         = "MAX_AGE_DAYS"
	EnvDisallowedKeywords = "DISALLOWED_KEYWORDS"
	EnvSteamGridDBKey     = "STEAMGRIDDB_API_KEY"
	EnvDiscordWebhook     = "DISCORD_WEBHOOK_URL"
	EnvAppriseURL         = "APPRISE_URL"
	EnvPushoverAppToken   = "PUSHOVER_APP_TOKEN"
	EnvPushoverUserKey    = "PUSHOVER_USER_KEY"
	EnvPushoverMethod     = "PUSHOVER_METHOD"
	EnvNtfyTopic          = "NTFY_TOPIC"
)

// loadDotEnv populates the process environment from path without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables on top of file values. Numeric
// variables that fail to parse are ignored so the file value or default
// stays in effect.
func (c *Config) applyEnv() {
	overrideString(&c.Indexer.URL, EnvIndexerURL)
	overrideString(&c.Indexer.APIKey, EnvIndexerAPIKey)
	overrideList(&c.Search.Terms, EnvSearchItems)
	overrideList(&c.Filter.DisallowedKeywords, EnvDisallowedKeywords)
	overrideString(&c.Artwork.APIKey, EnvSteamGridDBKey)
	overrideString(&c.Discord.WebhookURL, EnvDiscordWebhook)
	overrideString(&c.Apprise.URL, EnvAppriseURL)
	overrideString(&c.Pushover.AppToken, EnvPushoverAppToken)
	overrideString(&c.Pushover.UserKey, EnvPushoverUserKey)
	overrideString(&c.Pushover.Method, EnvPushoverMethod)
	overrideString(&c.Ntfy.Topic, EnvNtfyTopic)

	if value, ok := lookupEnv(EnvIntervalHours); ok {
		if hours, err := strconv.ParseFloat(value, 64); err == nil {
			c.Schedule.IntervalHours = hours
		}
	}
	if value, ok := lookupEnv(EnvMaxResults); ok {
		if n, err := strconv.Atoi(value); err == nil {
			c.Filter.MaxResults = n
		}
	}
	if value, ok := lookupEnv(EnvMaxAgeDays); ok {
		if n, err := strconv.Atoi(value); err == nil {
			c.Filter.MaxAgeDays = n
		}
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func overrideString(dst *string, key string) {
	if value, ok := lookupEnv(key); ok {
		*dst = value
	}
}

func overrideList(dst *[]string, key string) {
	if value, ok := lookupEnv(key); ok {
		*dst = splitList(value)
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
