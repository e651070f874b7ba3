package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.SharedCacheTTL)
	assert.Equal(t, "gameserver", cfg.StoreDatabase)
	assert.Equal(t, 10, cfg.PasswordHashRounds)
	assert.True(t, cfg.RedisEnable)
	assert.True(t, cfg.LocalCacheDefaultEnabled)
	assert.True(t, cfg.SharedCacheDefaultEnabled)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("SHARED_CACHE_TTL", "30s")
	t.Setenv("REDIS_ENABLE", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.SharedCacheTTL)
	assert.False(t, cfg.RedisEnable)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, "gameserver", cfg.StoreDatabase)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("PASSWORD_HASH_ROUNDS", "99")

	_, err := Load("")
	assert.Error(t, err)
}
