package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/legacyvault/internal/flagx"
	"github.com/dmitrijs2005/legacyvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	AuthAPIURL           string         `json:"auth_api_url"`
	DataAPIURL           string         `json:"data_api_url"`
	DataAPIKey           string         `json:"data_api_key"`
	DataBackend          string         `json:"data_backend"`
	DatabaseDSN          string         `json:"database_dsn"`
	DatabasePath         string         `json:"database_path"`
	Store                string         `json:"store"`
	DeviceSecret         string         `json:"device_secret"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	SessionCheckInterval timex.Duration `json:"session_check_interval"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
	S3AccessKey          string         `json:"s3_access_key"`
	S3SecretKey          string         `json:"s3_secret_key"`
	SentryDSN            string         `json:"sentry_dsn"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c/-config (or $LEGACYVAULT_CONFIG) via
// flagx.JsonConfigFlags; without one nothing is loaded. Only keys present
// with a non-zero value override cfg. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.AuthAPIURL, jc.AuthAPIURL)
	setString(&cfg.DataAPIURL, jc.DataAPIURL)
	setString(&cfg.DataAPIKey, jc.DataAPIKey)
	setString(&cfg.DataBackend, jc.DataBackend)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.Store, jc.Store)
	setString(&cfg.DeviceSecret, jc.DeviceSecret)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.SentryDSN, jc.SentryDSN)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.SessionCheckInterval, jc.SessionCheckInterval)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
