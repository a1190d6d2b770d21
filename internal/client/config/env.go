package config

import "github.com/caarlos0/env/v11"

// EnvPrefix matches the server's so one environment can configure both.
const EnvPrefix = "CRICKSHOTS_"

func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
