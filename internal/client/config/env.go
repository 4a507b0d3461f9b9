package config

import "os"

// Environment variables read by parseEnv. Secrets are kept out of flags so
// they do not show up in the process list.
const (
	EnvSentryDSN    = "SENTRY_DSN"
	EnvDeviceSecret = "LEGACYVAULT_DEVICE_SECRET"
	EnvDataAPIKey   = "LEGACYVAULT_DATA_API_KEY"
	EnvDatabaseDSN  = "LEGACYVAULT_DATABASE_DSN"
)

// parseEnv overlays non-empty environment values.
func parseEnv(cfg *Config) {
	for name, dst := range map[string]*string{
		EnvSentryDSN:    &cfg.SentryDSN,
		EnvDeviceSecret: &cfg.DeviceSecret,
		EnvDataAPIKey:   &cfg.DataAPIKey,
		EnvDatabaseDSN:  &cfg.DatabaseDSN,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
}
