package config

import "time"

// Config holds runtime settings for the CrickShots CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabasePath: the local SQLite file holding the session and ledger.
//   - ReceiptsDir: directory (relative to the working dir) for saved PDFs.
type Config struct {
	ServerEndpointAddr  string        `env:"SERVER_ADDR"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	DatabasePath        string        `env:"DB_PATH"`
	ReceiptsDir         string        `env:"RECEIPTS_DIR"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "storefront.db"
	c.ReceiptsDir = "receipts"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
