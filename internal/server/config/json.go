package config

import (
	"encoding/json"
	"os"

	"github.com/groupe-sii/lumext/internal/flagx"
	"github.com/groupe-sii/lumext/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// both "30m" and integer nanoseconds.
type JsonConfig struct {
	EndpointAddr  string         `json:"endpoint_addr"`
	BaseURL       string         `json:"base_url"`
	DatabaseDSN   string         `json:"database_dsn"`
	SecretKey     string         `json:"secret_key"`
	TokenValidity timex.Duration `json:"token_validity"`
	Orgs          []string       `json:"orgs"`
	AdminLogin    string         `json:"admin_login"`
	AdminPassword string         `json:"admin_password"`
	BcryptCost    int            `json:"bcrypt_cost"`
	LogLevel      string         `json:"log_level"`
}

// parseJson overlays config with the file named by -c or -config.
// Missing or zero fields leave the current value untouched.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.EndpointAddr:  c.EndpointAddr,
		&config.BaseURL:       c.BaseURL,
		&config.DatabaseDSN:   c.DatabaseDSN,
		&config.SecretKey:     c.SecretKey,
		&config.AdminLogin:    c.AdminLogin,
		&config.AdminPassword: c.AdminPassword,
		&config.LogLevel:      c.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
	if c.TokenValidity.Duration != 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.Orgs != nil {
		config.Orgs = c.Orgs
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
