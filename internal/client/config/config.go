package config

import "time"

// Config holds runtime settings for the lumext CLI.
//
// Either Token is given, or User, Org and a password prompted at start-up
// are used to open a session.
type Config struct {
	ServerURL      string        `env:"SERVER_URL"`
	Token          string        `env:"TOKEN"`
	TenantPath     string        `env:"TENANT_PATH"`
	User           string        `env:"USER"`
	Org            string        `env:"ORG"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8443"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "console"
}

// EffectiveTenantPath returns the configured location path, or the tenant
// route of Org when none was given.
func (c *Config) EffectiveTenantPath() string {
	if c.TenantPath != "" || c.Org == "" {
		return c.TenantPath
	}
	return "/tenant/" + c.Org + "/lumext/user"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. It panics on malformed input.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, ".env")
	parseFlags(cfg, args)
	return cfg
}
