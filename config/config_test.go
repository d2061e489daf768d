package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("API_PREFIX", "")
	cfg := FromEnv()
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, "", cfg.APIPrefix)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "45m")
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("BCRYPT_COST", "not-a-number")
	cfg := FromEnv()
	assert.Equal(t, 45*time.Minute, cfg.AccessTTL)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadYAMLOverlay(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_driver: memory\njwt_access_ttl: 5m\napi_prefix: /api\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("CONFIG_FILE", "")
	_, err := Load("")
	assert.Error(t, err)
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}
