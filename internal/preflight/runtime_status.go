package preflight

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"discoprowl/internal/config"
)

// CheckArtworkFromConfig evaluates the artwork lookup and fallback settings.
// A missing SteamGridDB key is not a failure; the fallback image is used.
func CheckArtworkFromConfig(cfg *config.Config) Result {
	const name = "Artwork"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if cfg.Artwork.FallbackKind == config.FallbackLocal {
		info, err := os.Stat(cfg.Artwork.FallbackValue)
		if err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("fallback image unreadable: %v", err)}
		}
		if info.IsDir() {
			return Result{Name: name, Detail: "fallback image is a directory"}
		}
	}
	if strings.TrimSpace(cfg.Artwork.APIKey) == "" {
		return Result{Name: name, Passed: true, Detail: "SteamGridDB disabled (fallback image only)"}
	}
	return Result{Name: name, Passed: true, Detail: "SteamGridDB key present"}
}

// CheckTransportsFromConfig returns one result per enabled transport. Each
// endpoint must be an absolute http(s) URL.
func CheckTransportsFromConfig(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	names := cfg.Transports()
	if len(names) == 0 {
		return []Result{{Name: "Notifications", Detail: "no transport configured"}}
	}

	results := make([]Result, 0, len(names))
	for _, transport := range names {
		switch transport {
		case config.TransportDiscord:
			results = append(results, checkEndpoint("Discord", cfg.Discord.WebhookURL))
		case config.TransportApprise:
			results = append(results, checkEndpoint("Apprise", cfg.Apprise.URL))
		case config.TransportPushover:
			if cfg.Pushover.Method == config.PushoverMethodApprise {
				r := checkEndpoint("Pushover", cfg.Apprise.URL)
				if r.Passed {
					r.Detail = "via Apprise relay " + r.Detail
				}
				results = append(results, r)
			} else {
				results = append(results, checkEndpoint("Pushover", cfg.Pushover.APIURL))
			}
		case config.TransportNtfy:
			results = append(results, checkEndpoint("ntfy", cfg.Ntfy.Topic))
		}
	}
	return results
}

func checkEndpoint(name, raw string) Result {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("invalid url (%v)", err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Result{Name: name, Detail: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return Result{Name: name, Detail: "missing host"}
	}
	return Result{Name: name, Passed: true, Detail: u.Scheme + "://" + u.Host}
}
