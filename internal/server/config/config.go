// Package config handles configuration for the development directory
// backend: defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the lumext backend.
//
// An empty DatabaseDSN selects the in-memory store. Orgs are created at
// start-up when missing. AdminLogin/AdminPassword describe the system
// administrator allowed to open a session in any org.
type Config struct {
	EndpointAddr  string        `env:"ENDPOINT_ADDR"`
	// BaseURL prefixes org hrefs; empty means derived from the request Host.
	BaseURL       string        `env:"BASE_URL"`
	DatabaseDSN   string        `env:"DATABASE_DSN"`
	SecretKey     string        `env:"SECRET_KEY"`
	TokenValidity time.Duration `env:"TOKEN_VALIDITY"`
	Orgs          []string      `env:"ORGS" envSeparator:","`
	AdminLogin    string        `env:"ADMIN_LOGIN"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	BcryptCost    int           `env:"BCRYPT_COST"`
	LogLevel      string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and admin password are not fit for production.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8443"
	c.SecretKey = "secretKey"
	c.TokenValidity = 30 * time.Minute
	c.Orgs = []string{"acme"}
	c.AdminLogin = "administrator"
	c.AdminPassword = "administrator"
	c.BcryptCost = 10
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then JSON (if present), the environment and
// finally command-line flags. It panics on malformed input.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, ".env")
	parseFlags(cfg, args)
	return cfg
}
