package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-m", "postgres", "-d", "db", "-k", "redis:6379", "-s", "secret",
			"-t", "1", "-r", "3", "-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
			"-l", "zap", "-v", "debug",
		},
			expected: &Config{
				EndpointAddrGRPC:             "127.0.0.1:9090",
				StorageMode:                  "postgres",
				DatabaseDSN:                  "db",
				RedisAddr:                    "redis:6379",
				SecretKey:                    "secret",
				AccessTokenValidityDuration:  1 * time.Minute,
				RefreshTokenValidityDuration: 3 * time.Minute,
				S3RootUser:                   "user",
				S3RootPassword:               "password",
				S3Bucket:                     "bucket",
				S3Region:                     "us-west-1",
				S3BaseEndpoint:               "http://endpoint",
				LogBackend:                   "zap",
				LogLevel:                     "debug",
			}},
		{name: "unrelated flags ignored", args: []string{"cmd", "-c", "cfg.json", "-x", "1"},
			expected: &Config{}},
		{name: "bad minutes value", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args[1:]...)

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_KeepsSubMinuteDurationsWhenAbsent(t *testing.T) {
	withArgs(t, "-a", ":1")

	config := &Config{AccessTokenValidityDuration: 30 * time.Second}
	parseFlags(config)

	assert.Equal(t, 30*time.Second, config.AccessTokenValidityDuration)
}
