package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))
	return dir
}

func TestLoadConfig(t *testing.T) {
	t.Run("reads file and applies defaults", func(t *testing.T) {
		dir := writeEnvFile(t, "DB_SOURCE=postgres://localhost/medfinder\nJWT_SECRET=secret\n")

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "postgres://localhost/medfinder", cfg.DBSource)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
		assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
		assert.Equal(t, 10.0, cfg.DefaultRadiusKm)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := writeEnvFile(t, "DB_SOURCE=postgres://localhost/medfinder\nJWT_SECRET=secret\n")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "from-env")

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "from-env", cfg.JWTSecret)
	})

	t.Run("missing file falls back to environment", func(t *testing.T) {
		t.Setenv("DB_SOURCE", "postgres://env/medfinder")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "postgres://env/medfinder", cfg.DBSource)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		dir := writeEnvFile(t, "DB_SOURCE=postgres://localhost/medfinder\n")

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})
}

func TestConfig_Origins(t *testing.T) {
	cfg := Config{AllowedOrigins: "http://localhost:3000, https://medfinder.example ,"}
	assert.Equal(t, []string{"http://localhost:3000", "https://medfinder.example"}, cfg.Origins())
}
