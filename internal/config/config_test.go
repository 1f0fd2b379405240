package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetisConfig_Defaults(t *testing.T) {
	t.Setenv("METIS_API_KEY", "secret")
	t.Setenv("METIS_BIO_BOT_ID", "bio-bot")

	c, err := ParseMetisConfig()
	require.NoError(t, err)

	assert.Equal(t, "secret", c.APIKey)
	assert.Equal(t, "https://api.metisai.ir/api/v1", c.BaseURL)
	assert.Equal(t, 3, c.MaxRetries)
	assert.Equal(t, time.Second, c.RetryDelay)
	assert.Equal(t, 120*time.Second, c.Timeout)

	id, err := c.GetBioBotID()
	require.NoError(t, err)
	assert.Equal(t, "bio-bot", id)

	_, err = c.GetFaceBotID()
	assert.True(t, errors.Is(err, ErrMissingBotID))
}

func TestParseMetisConfig_RequiresAPIKey(t *testing.T) {
	t.Setenv("METIS_API_KEY", "")

	_, err := ParseMetisConfig()
	assert.Error(t, err)
}

func TestParseMetisConfig_Overrides(t *testing.T) {
	t.Setenv("METIS_API_KEY", "secret")
	t.Setenv("METIS_MAX_RETRIES", "5")
	t.Setenv("METIS_RETRY_DELAY", "250ms")
	t.Setenv("METIS_BASE_URL", "http://localhost:9999/api")

	c, err := ParseMetisConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, c.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, c.RetryDelay)
	assert.Equal(t, "http://localhost:9999/api", c.BaseURL)
}

func TestParseMetisConfig_RejectsNegativeRetrySettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "max retries", key: "METIS_MAX_RETRIES", value: "-1"},
		{name: "retry delay", key: "METIS_RETRY_DELAY", value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("METIS_API_KEY", "secret")
			t.Setenv(tt.key, tt.value)

			_, err := ParseMetisConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestParseAppConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BIOPREP_RUNTIME_PATH", dir)
	t.Setenv("BATCH_CONCURRENCY", "0")

	c, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, dir, c.GetRuntimePath())
	assert.Equal(t, filepath.Join(dir, ".env"), c.GetEnvPath())
	assert.Equal(t, 1, c.GetBatchConcurrency())
	assert.Equal(t, time.Second, c.GetBatchDelay())
	assert.Equal(t, "cleaned_bio", c.BioField)
}

func TestResolveRuntimePath_Relative(t *testing.T) {
	got := resolveRuntimePath("rel")
	assert.True(t, filepath.IsAbs(got) || got == "rel")
	assert.Equal(t, "rel", filepath.Base(got))
}
