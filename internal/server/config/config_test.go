package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8443", c.EndpointAddr)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, c.TokenValidity)
	assert.Equal(t, []string{"acme"}, c.Orgs)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestParseFlags(t *testing.T) {
	var c Config
	c.LoadDefaults()

	parseFlags(&c, []string{"-a", ":9000", "-d", "postgres://x", "-s", "k", "-t", "5", "-o", "acme, globex,", "-x", "ignored"})

	assert.Equal(t, ":9000", c.EndpointAddr)
	assert.Equal(t, "postgres://x", c.DatabaseDSN)
	assert.Equal(t, "k", c.SecretKey)
	assert.Equal(t, 5*time.Minute, c.TokenValidity)
	assert.Equal(t, []string{"acme", "globex"}, c.Orgs)
}

func TestParseFlags_PanicsOnBadValue(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assert.Panics(t, func() { parseFlags(&c, []string{"-t", "soon"}) })
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr":  ":7000",
		"secret_key":     "from-json",
		"token_validity": "2m",
		"orgs":           []string{"initech"},
		"bcrypt_cost":    4,
	})

	var c Config
	c.LoadDefaults()
	parseJson(&c, []string{"-c", path})

	assert.Equal(t, ":7000", c.EndpointAddr)
	assert.Equal(t, "from-json", c.SecretKey)
	assert.Equal(t, 2*time.Minute, c.TokenValidity)
	assert.Equal(t, []string{"initech"}, c.Orgs)
	assert.Equal(t, 4, c.BcryptCost)
	assert.Equal(t, "administrator", c.AdminLogin)
}

func TestParseJson_Panics(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	var c Config
	assert.Panics(t, func() { parseJson(&c, []string{"-config", bad}) })
	assert.Panics(t, func() { parseJson(&c, []string{"-c", filepath.Join(t.TempDir(), "missing.json")}) })
}

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"DATABASE_DSN", "postgres://env")
	t.Setenv(EnvPrefix+"ORGS", "a,b")
	t.Setenv(EnvPrefix+"TOKEN_VALIDITY", "90s")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, []string{"a", "b"}, c.Orgs)
	assert.Equal(t, 90*time.Second, c.TokenValidity)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvPrefix+"ADMIN_LOGIN=root\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv(EnvPrefix + "ADMIN_LOGIN") })

	var c Config
	c.LoadDefaults()
	parseEnv(&c, path, filepath.Join(t.TempDir(), "absent.env"))

	assert.Equal(t, "root", c.AdminLogin)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"secret_key": "json", "log_level": "debug"})
	t.Setenv(EnvPrefix+"SECRET_KEY", "env")

	c := LoadConfig([]string{"-c", path, "-s", "flag"})

	assert.Equal(t, "flag", c.SecretKey)
	assert.Equal(t, "debug", c.LogLevel)
}
