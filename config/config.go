package config

import (
	"os"
	"strconv"

	"github.com/philippdrebes/MSCIDS-CIP02/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Raw record dumps written by the external scrapers
	KomootRecordsFile       string
	SacRecordsFile          string
	SchweizmobilRecordsFile string

	// Folder holding the downloaded GPX tracks
	GpxDir string

	// Matching and deduplication knobs
	GpxMinMatchScore   int
	DuplicateThreshold int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	minMatchScore, _ := strconv.Atoi(getEnv("GPX_MIN_MATCH_SCORE", "0"))
	duplicateThreshold, _ := strconv.Atoi(getEnv("DUPLICATE_THRESHOLD", "95"))

	return Config{
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:                 redisDB,
		RedisStream:             getEnv("REDIS_STREAM", "routes"),
		RedisStreamCount:        streamCount,
		RedisStreamMaxLength:    streamMaxLength,
		MemcacheAddr:            getEnv("MEMCACHE_ADDR", "localhost:11211"),
		KomootRecordsFile:       getEnv("KOMOOT_RECORDS_FILE", "data/komoot.ndjson"),
		SacRecordsFile:          getEnv("SAC_RECORDS_FILE", "data/sac.ndjson"),
		SchweizmobilRecordsFile: getEnv("SCHWEIZMOBIL_RECORDS_FILE", "data/schweizmobil.ndjson"),
		GpxDir:                  getEnv("GPX_DIR", "data/gpx"),
		GpxMinMatchScore:        minMatchScore,
		DuplicateThreshold:      duplicateThreshold,
		Environment:             getEnv("ROUTES_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		return errors.NewConfiguration("redis address must not be empty", nil)
	}
	if c.RedisStreamCount < 1 {
		return errors.NewConfiguration("redis stream count must be at least 1", nil)
	}
	if c.GpxMinMatchScore < 0 || c.GpxMinMatchScore > 100 {
		return errors.NewConfiguration("gpx min match score must be within 0..100", nil)
	}
	if c.DuplicateThreshold < 1 || c.DuplicateThreshold > 100 {
		return errors.NewConfiguration("duplicate threshold must be within 1..100", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
