package logger

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, getLogLevel())

	t.Setenv("LOG_LEVEL", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, getLogLevel(), "unparseable level falls back to info")

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ROUTES_ENVIRONMENT", "production")
	assert.Equal(t, zerolog.InfoLevel, getLogLevel())

	t.Setenv("ROUTES_ENVIRONMENT", "development")
	assert.Equal(t, zerolog.DebugLevel, getLogLevel())
}

func TestComponentLoggers(t *testing.T) {
	Init()
	require.NotNil(t, Default)

	for _, l := range []*Logger{
		ForPipeline(),
		ForWorker(),
		ForPublisher(),
		ForIngest(),
		ForCache(),
	} {
		require.NotNil(t, l)
		l.Debug().Msg("component logger is usable")
	}
}

func TestLogErrorInitializesLazily(t *testing.T) {
	Default = nil
	LogError("publisher", errors.New("connection reset"), "could not close %s", "publisher")
	require.NotNil(t, Default, "logging through the package helpers initializes the default logger")
}
