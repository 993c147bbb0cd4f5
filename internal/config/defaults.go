package config

const (
	defaultStateDir            = "~/.local/share/plexart"
	defaultLogDir              = "~/.local/share/plexart/logs"
	defaultHistoryPath         = "~/.local/share/plexart/history.db"
	defaultPlexTimeoutSeconds  = 30
	defaultDownloadTimeout     = 15
	defaultDownloadMode        = "skip"
	defaultUserAgent           = "plexart/0.1.0"
	defaultAlbumMatchThreshold = 0.6
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Plex: Plex{
			TimeoutSeconds: defaultPlexTimeoutSeconds,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Download: Download{
			Mode:           defaultDownloadMode,
			TimeoutSeconds: defaultDownloadTimeout,
			UserAgent:      defaultUserAgent,
		},
		Music: Music{
			MatchThreshold: defaultAlbumMatchThreshold,
		},
		History: History{
			Path: defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
