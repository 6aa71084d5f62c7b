package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	require.Equal(t, EnvDevelopment, cfg.Env)
	require.Equal(t, "/api/v1", cfg.APIPrefix)
	require.False(t, cfg.Cache.Enabled)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.Equal(t, "Letter", cfg.Reports.PageSize)
	require.Equal(t, "./exports", cfg.Reports.ExportDir)
	require.Equal(t, 4, cfg.Reports.BatchWorkers)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENABLE_CACHE", "true")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := fromViper(v)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 90*time.Second, cfg.Cache.TTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestReportsLocationFallsBackToUTC(t *testing.T) {
	require.Equal(t, time.UTC, ReportsConfig{}.Location())
	require.Equal(t, time.UTC, ReportsConfig{Timezone: "Nowhere/Invalid"}.Location())
}
