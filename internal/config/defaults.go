package config

const (
	IndexerProwlarr = "prowlarr"
	IndexerTorznab  = "torznab"

	FallbackRemote = "remote"
	FallbackLocal  = "local"

	PushoverMethodAPI     = "api"
	PushoverMethodApprise = "apprise"

	TransportDiscord  = "discord"
	TransportApprise  = "apprise"
	TransportPushover = "pushover"
	TransportNtfy     = "ntfy"
)

const (
	defaultIndexerKind        = IndexerProwlarr
	defaultIndexerTimeout     = 60
	defaultMaxResults         = 3
	defaultMaxAgeDays         = 30
	defaultIntervalHours      = 12
	defaultArtworkBaseURL     = "https://www.steamgriddb.com/api/v2"
	defaultArtworkTimeout     = 10
	defaultFallbackImageURL   = "https://raw.githubusercontent.com/danktankk/discoprowl/main/assets/no-image.jpg"
	defaultNotifyTimeout      = 30
	defaultDiscordUsername    = "DiscoBot!"
	defaultPushoverMethod     = PushoverMethodAPI
	defaultPushoverAPIURL     = "https://api.pushover.net/1/messages.json"
	defaultStateDir           = "~/.local/share/discoprowl"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultNtfyPriority       = "default"
	dotEnvFile                = ".env"
	defaultIndexerURLScheme   = "https://"
	defaultPushoverRelayProto = "pover://"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Indexer: Indexer{
			Kind:           defaultIndexerKind,
			TimeoutSeconds: defaultIndexerTimeout,
		},
		Filter: Filter{
			MaxResults: defaultMaxResults,
			MaxAgeDays: defaultMaxAgeDays,
		},
		Schedule: Schedule{
			IntervalHours: defaultIntervalHours,
		},
		Artwork: Artwork{
			BaseURL:        defaultArtworkBaseURL,
			TimeoutSeconds: defaultArtworkTimeout,
			FallbackKind:   FallbackRemote,
			FallbackValue:  defaultFallbackImageURL,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Discord: Discord{
			Username: defaultDiscordUsername,
		},
		Pushover: Pushover{
			Method: defaultPushoverMethod,
			APIURL: defaultPushoverAPIURL,
		},
		Ntfy: Ntfy{
			Priority: defaultNtfyPriority,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// PushoverRelayTarget returns the Apprise URL that routes to Pushover.
func (c *Config) PushoverRelayTarget() string {
	return defaultPushoverRelayProto + c.Pushover.UserKey + "@" + c.Pushover.AppToken
}
