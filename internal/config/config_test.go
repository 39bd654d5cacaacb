package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 200, cfg.QuoteListDefaultLimit)
	assert.Equal(t, 300, cfg.AuditListDefaultLimit)
	assert.Equal(t, 10, cfg.SettingsCacheTTLMinutes)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("QUOTE_LIST_DEFAULT_LIMIT", "50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://erp.local, https://admin.erp.local ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.QuoteListDefaultLimit)
	assert.Equal(t, []string{"https://erp.local", "https://admin.erp.local"}, cfg.AllowedOrigins())
}

func TestLoad_ProductionRequiresStrongSecret(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)

	viper.Reset()
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
