package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 0, config.RedisDB)
	assert.Equal(t, "routes", config.RedisStream)
	assert.Equal(t, "localhost:11211", config.MemcacheAddr)
	assert.Equal(t, 0, config.GpxMinMatchScore)
	assert.Equal(t, 95, config.DuplicateThreshold)

	// Test with environment variables
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")
	os.Setenv("KOMOOT_RECORDS_FILE", "/tmp/komoot.ndjson")
	os.Setenv("GPX_MIN_MATCH_SCORE", "60")
	os.Setenv("DUPLICATE_THRESHOLD", "90")

	config = LoadConfig()
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.Equal(t, "memcache.example.com:11211", config.MemcacheAddr)
	assert.Equal(t, "/tmp/komoot.ndjson", config.KomootRecordsFile)
	assert.Equal(t, 60, config.GpxMinMatchScore)
	assert.Equal(t, 90, config.DuplicateThreshold)

	// Clean up
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("MEMCACHE_ADDR")
	os.Unsetenv("KOMOOT_RECORDS_FILE")
	os.Unsetenv("GPX_MIN_MATCH_SCORE")
	os.Unsetenv("DUPLICATE_THRESHOLD")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	config.DuplicateThreshold = 0
	assert.Error(t, config.Validate(), "a zero threshold would flag everything as duplicate")

	config = LoadConfig()
	config.GpxMinMatchScore = 101
	assert.Error(t, config.Validate())
}
