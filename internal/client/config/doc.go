// Package config loads runtime configuration for the legacyvault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config or $LEGACYVAULT_CONFIG.
//  3. Environment: SENTRY_DSN, LEGACYVAULT_DEVICE_SECRET,
//     LEGACYVAULT_DATA_API_KEY, LEGACYVAULT_DATABASE_DSN.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string        auth API base URL
//	-d string        data API base URL
//	-k string        data API key
//	-backend string  data backend (rest|postgres)
//	-db string       local database path
//	-store string    credential store (sqlite|memory)
//	-i int           session check interval (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "15s"
// or integer nanoseconds:
//
//	{
//	  "auth_api_url": "https://api.example.com/auth",
//	  "data_api_url": "https://xyz.supabase.co",
//	  "data_api_key": "anon-key",
//	  "database_path": "data/legacyvault.db",
//	  "request_timeout": "15s",
//	  "session_check_interval": "30s",
//	  "s3_bucket": "legacy-media"
//	}
package config
