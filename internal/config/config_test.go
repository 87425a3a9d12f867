package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkshort/internal/config"
)

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BASE_URL", "https://sho.rt")
	t.Setenv("POSTGRES_DB", "links_test")
	t.Setenv("CACHE_MAX_SIZE_POW2", "12")
	t.Setenv("ALLOW_PRIVATE_IPS", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://sho.rt", cfg.App.BaseURL)
	assert.Equal(t, "links_test", cfg.Database.DBName)
	assert.Equal(t, 12, cfg.Cache.MaxSizePow2)
	assert.True(t, cfg.Validation.AllowPrivateIPs)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.App.BaseURL)
	assert.Equal(t, 2048, cfg.Validation.MaxURLLength)
}
