package config

import "time"

// Data backends understood by the client.
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

// Credential stores understood by the client.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds runtime settings for the legacyvault CLI.
//
// AuthAPIURL and DataAPIURL are base URLs; DataAPIKey is sent as the apikey
// header to the data API. With DataBackend "postgres" the data client talks
// to DatabaseDSN directly instead. DatabasePath is the local SQLite file
// holding the credential store.
type Config struct {
	AuthAPIURL  string
	DataAPIURL  string
	DataAPIKey  string
	DataBackend string
	DatabaseDSN string

	DatabasePath string
	Store        string
	DeviceSecret string

	RequestTimeout       time.Duration
	SessionCheckInterval time.Duration

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	SentryDSN string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AuthAPIURL = "http://127.0.0.1:3000/api/auth"
	c.DataAPIURL = "http://127.0.0.1:54321"
	c.DataBackend = BackendREST
	c.DatabasePath = "data/legacyvault.db"
	c.Store = StoreSQLite
	c.RequestTimeout = 15 * time.Second
	c.SessionCheckInterval = 30 * time.Second
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
