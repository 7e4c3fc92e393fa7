package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the effective startup settings
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.Print("Propcast", GetVersion())

	logger.Info().
		Str("version", GetFullVersion()).
		Str("environment", config.Environment).
		Str("host", config.Server.Host).
		Int("port", config.Server.Port).
		Str("storage", config.Storage.Type).
		Str("cache", config.Cache.Backend).
		Str("curves_dir", config.Curves.Dir).
		Msg("Propcast starting")
}
