package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("ROUND_TIMEOUT", "")
	t.Setenv("HISTORY_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreFile, cfg.StoreBackend)
	assert.Equal(t, 60*time.Second, cfg.RoundTimeout)
	assert.Equal(t, time.Hour, cfg.WordCacheTTL)
	assert.Equal(t, 10000, cfg.HistoryLimit)
	assert.Equal(t, "📌", cfg.PinEmoji)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("ROUND_TIMEOUT", "30")
	t.Setenv("ROUND_DELAY", "500ms")
	t.Setenv("HISTORY_LIMIT", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.Equal(t, 30*time.Second, cfg.RoundTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.RoundDelay)
	assert.Equal(t, 250, cfg.HistoryLimit)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("ROUND_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.DiscordToken = "token"
	cfg.StoreBackend = "mongo"
	assert.Error(t, cfg.Validate())
}
