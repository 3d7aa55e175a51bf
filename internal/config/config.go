package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Indexer contains configuration for the torrent-indexer aggregation API.
type Indexer struct {
	Kind           string `toml:"kind"`
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Search lists the operator's fixed search terms.
type Search struct {
	Terms []string `toml:"terms"`
}

// Filter contains the rules that decide whether a hit is worth notifying.
type Filter struct {
	MaxResults         int      `toml:"max_results"`
	MaxAgeDays         int      `toml:"max_age_days"`
	DisallowedKeywords []string `toml:"disallowed_keywords"`
}

// Schedule controls how often a polling cycle runs. Cron, when set, wins over
// IntervalHours.
type Schedule struct {
	IntervalHours float64 `toml:"interval_hours"`
	Cron          string  `toml:"cron"`
}

// Artwork contains configuration for the SteamGridDB cover-art lookup.
type Artwork struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// Thumbnail attaches the second grid image as an embed thumbnail.
	Thumbnail bool `toml:"thumbnail"`
	// FallbackKind is "remote" (FallbackValue is a URL) or "local"
	// (FallbackValue is a file uploaded with the notification).
	FallbackKind  string `toml:"fallback_kind"`
	FallbackValue string `toml:"fallback_value"`
}

// Notifications contains settings shared by every transport.
type Notifications struct {
	RequestTimeout int `toml:"request_timeout"`
}

// Discord contains configuration for webhook delivery.
type Discord struct {
	WebhookURL string `toml:"webhook_url"`
	Username   string `toml:"username"`
}

// Apprise contains configuration for the Apprise API relay.
type Apprise struct {
	URL     string `toml:"url"`
	Targets string `toml:"targets"`
}

// Pushover contains configuration for Pushover delivery.
type Pushover struct {
	AppToken string `toml:"app_token"`
	UserKey  string `toml:"user_key"`
	Method   string `toml:"method"`
	APIURL   string `toml:"api_url"`
}

// Ntfy contains configuration for ntfy push notifications.
type Ntfy struct {
	Topic    string `toml:"topic"`
	Priority string `toml:"priority"`
}

// Paths contains on-disk locations used by the daemon.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for discoprowl.
//
// Configuration sections by subsystem:
//   - Indexer: Prowlarr (or Torznab) endpoint and credential
//   - Search: the fixed list of search terms
//   - Filter: result count, age, and keyword rules
//   - Schedule: polling interval or cron expression
//   - Artwork: SteamGridDB lookup and fallback image
//   - Notifications, Discord, Apprise, Pushover, Ntfy: delivery transports
//   - Paths: state directory holding the instance lock
//   - Logging: log format, level, and optional file
type Config struct {
	Indexer       Indexer       `toml:"indexer"`
	Search        Search        `toml:"search"`
	Filter        Filter        `toml:"filter"`
	Schedule      Schedule      `toml:"schedule"`
	Artwork       Artwork       `toml:"artwork"`
	Notifications Notifications `toml:"notifications"`
	Discord       Discord       `toml:"discord"`
	Apprise       Apprise       `toml:"apprise"`
	Pushover      Pushover      `toml:"pushover"`
	Ntfy          Ntfy          `toml:"ntfy"`
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/discoprowl/config.toml")
}

// Load locates, parses, and validates a configuration file, then overlays
// the process environment (and a .env file in the working directory, when
// present). The returned config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, "", false, err
	}
	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("discoprowl.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	return nil
}

// LockPath returns the advisory lock file guarding single-instance polling.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "discoprowl.lock")
}

// Transports returns the names of the enabled notification transports in
// delivery order.
func (c *Config) Transports() []string {
	var names []string
	if strings.TrimSpace(c.Discord.WebhookURL) != "" {
		names = append(names, TransportDiscord)
	}
	if strings.TrimSpace(c.Apprise.URL) != "" {
		names = append(names, TransportApprise)
	}
	if c.PushoverEnabled() {
		names = append(names, TransportPushover)
	}
	if strings.TrimSpace(c.Ntfy.Topic) != "" {
		names = append(names, TransportNtfy)
	}
	return names
}

// PushoverEnabled reports whether both Pushover credentials are present.
func (c *Config) PushoverEnabled() bool {
	return strings.TrimSpace(c.Pushover.AppToken) != "" && strings.TrimSpace(c.Pushover.UserKey) != ""
}

// ScheduleSpec returns the cron expression that drives the polling loop.
func (c *Config) ScheduleSpec() string {
	if spec := strings.TrimSpace(c.Schedule.Cron); spec != "" {
		return spec
	}
	return "@every " + c.Interval().String()
}

// Interval returns schedule.interval_hours as a duration rounded to the second.
func (c *Config) Interval() time.Duration {
	d := time.Duration(c.Schedule.IntervalHours * float64(time.Hour))
	return d.Round(time.Second)
}

// IndexerTimeout returns the per-request timeout for indexer searches.
func (c *Config) IndexerTimeout() time.Duration {
	return time.Duration(c.Indexer.TimeoutSeconds) * time.Second
}

// ArtworkTimeout returns the per-request timeout for artwork lookups.
func (c *Config) ArtworkTimeout() time.Duration {
	return time.Duration(c.Artwork.TimeoutSeconds) * time.Second
}

// NotifyTimeout returns the per-transport delivery timeout.
func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Notifications.RequestTimeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
