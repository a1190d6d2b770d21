package config

import "github.com/caarlos0/env/v11"

// EnvPrefix is prepended to every variable name in the Config env tags.
const EnvPrefix = "CRICKSHOTS_"

// parseEnv overlays variables that are present in the environment. Unset
// variables leave the current value alone. Malformed values panic, matching
// the JSON and flag layers.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
