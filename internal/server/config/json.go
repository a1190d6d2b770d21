package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/crickshots/internal/flagx"
	"github.com/dmitrijs2005/crickshots/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file.
// Durations accept "15m"-style strings or integer nanoseconds; booleans are
// pointers so that an explicit false can override a true default.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	StorageMode                  string         `json:"storage_mode"`
	DatabaseDSN                  string         `json:"database_dsn"`
	RedisAddr                    string         `json:"redis_addr"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3Enabled                    *bool          `json:"s3_enabled"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	ReceiptURLValidityDuration   timex.Duration `json:"receipt_url_validity_duration"`
	LogBackend                   string         `json:"log_backend"`
	LogLevel                     string         `json:"log_level"`
	SeedFixtureUser              *bool          `json:"seed_fixture_user"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field present in it into config. Unreadable files and invalid JSON panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageMode, c.StorageMode)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.S3Enabled != nil {
		config.S3Enabled = *c.S3Enabled
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.ReceiptURLValidityDuration.Duration > 0 {
		config.ReceiptURLValidityDuration = c.ReceiptURLValidityDuration.Duration
	}
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	if c.SeedFixtureUser != nil {
		config.SeedFixtureUser = *c.SeedFixtureUser
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
