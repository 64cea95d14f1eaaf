package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "explicit config path must exist")

	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", settings.Server.Addr)
	assert.Equal(t, "rewear.db", settings.Database.Path)
	assert.Equal(t, 10*time.Second, settings.Gemini.Timeout)
	assert.Equal(t, 15000, settings.Overpass.RadiusMeters)
	assert.Equal(t, 5*time.Second, settings.Weather.Timeout)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewear.yaml")
	content := []byte(`
server:
  addr: ":9000"
database:
  path: /tmp/test.db
gemini:
  api_key: secret
  model: gemini-2.0-flash
  timeout: 20s
overpass:
  radius_meters: 5000
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", settings.Server.Addr)
	assert.Equal(t, "/tmp/test.db", settings.Database.Path)
	assert.Equal(t, "secret", settings.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", settings.Gemini.Model)
	assert.Equal(t, 20*time.Second, settings.Gemini.Timeout)
	assert.Equal(t, 5000, settings.Overpass.RadiusMeters)
	// Unset values keep their defaults.
	assert.Equal(t, 5*time.Second, settings.Weather.Timeout)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REWEAR_SERVER_ADDR", ":7777")
	t.Setenv("REWEAR_GEMINI_API_KEY", "from-env")

	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7777", settings.Server.Addr)
	assert.Equal(t, "from-env", settings.Gemini.APIKey)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewear.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
