package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name, e.g. LUMEXT_SERVER_URL.
const EnvPrefix = "LUMEXT_"

// parseEnv loads the optional dotenv files into the process environment,
// then overlays every LUMEXT_* variable that is set.
func parseEnv(cfg *Config, dotenvFiles ...string) {
	existing := make([]string, 0, len(dotenvFiles))
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			panic(err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
