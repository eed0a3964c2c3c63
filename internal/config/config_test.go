package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NUDGE_DB", "/tmp/nudge-test.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/nudge-test.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:3000", cfg.AppBaseURL)
	assert.Equal(t, "The Onboarding Team", cfg.SenderName)
	assert.False(t, cfg.LogTicks)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("NUDGE_DB", "/tmp/nudge-test.db")
	t.Setenv("NUDGE_APP_URL", "https://clients.agency.example")
	t.Setenv("NUDGE_SENDER_NAME", "Studio Ops")
	t.Setenv("NUDGE_LOG_TICKS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://clients.agency.example", cfg.AppBaseURL)
	assert.Equal(t, "Studio Ops", cfg.SenderName)
	assert.True(t, cfg.LogTicks)
}

func TestLoad_BadBoolFallsBack(t *testing.T) {
	t.Setenv("NUDGE_DB", "/tmp/nudge-test.db")
	t.Setenv("NUDGE_LOG_TICKS", "yep")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.LogTicks)
}
