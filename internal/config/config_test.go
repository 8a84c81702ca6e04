package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":8080"
postgres:
  dsn: "host=localhost dbname=test"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, "go-userapi", c.AppMeta.Name)
	assert.Equal(t, 500, c.Redis.PingTimeoutMS)
	assert.Equal(t, 30, c.Cache.ListTTLSeconds)
	assert.False(t, c.OTel.Enable)
}

func TestLoadRequiresHTTPAddr(t *testing.T) {
	path := writeConfig(t, `
postgres:
  dsn: "host=localhost dbname=test"
`)
	_, err := Load(path)
	assert.EqualError(t, err, "http.addr required")
}

func TestLoadRequiresDSN(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":8080"
`)
	_, err := Load(path)
	assert.EqualError(t, err, "postgres.dsn required")
}

func TestLoadOTelValidation(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":8080"
postgres:
  dsn: "host=localhost dbname=test"
otel:
  enable: true
`)
	_, err := Load(path)
	assert.EqualError(t, err, "otel.endpoint required when otel.enable=true")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
