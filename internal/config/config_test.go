package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL_DEV", "postgres://dev")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "documents", cfg.DocumentsBucket)
	assert.Equal(t, 30*time.Second, cfg.DashboardCacheTTL)
	assert.Equal(t, "postgres://dev", cfg.DatabaseURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ProductionDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL_DEV", "postgres://dev")
	t.Setenv("DATABASE_URL_PROD", "postgres://prod")
	t.Setenv("DASHBOARD_CACHE_TTL", "2m")
	t.Setenv("FEE_ATOMICITY", "atomic")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://prod", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Minute, cfg.DashboardCacheTTL)
	assert.Equal(t, "atomic", cfg.FeeAtomicity)
}
