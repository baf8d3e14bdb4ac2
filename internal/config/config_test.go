package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_BASE_URL", "")
	t.Setenv("STOREFRONT_STORAGE", "")
	t.Setenv("REDIS_DB", "")

	cfg := Load()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.NotEmpty(t, cfg.StateFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_BASE_URL", "http://localhost:9000")
	t.Setenv("STOREFRONT_STORAGE", StorageRedis)
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	assert.Equal(t, 0, Load().RedisDB)
}
