package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://api.dify.ai", cfg.DifyAPIBase)
	assert.Equal(t, "secret-123", cfg.ChannelToken)
	assert.Empty(t, cfg.DifyDatasetID)
	assert.Empty(t, cfg.TargetFolderID)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DIFY_API", "https://dify.internal.example.com/")
	t.Setenv("DIFY_DATASET_ID", " ds-42 ")
	t.Setenv("DIFY_API_KEY", "key-42\n")
	t.Setenv("WEBHOOK_URL", "https://drivefeed.example.run.app")
	t.Setenv("CHANNEL_TOKEN", "tok-42")
	t.Setenv("TARGET_FOLDER_ID", "folder-42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	// Trailing slash and surrounding whitespace are normalized away.
	assert.Equal(t, "https://dify.internal.example.com", cfg.DifyAPIBase)
	assert.Equal(t, "ds-42", cfg.DifyDatasetID)
	assert.Equal(t, "key-42", cfg.DifyAPIKey)
	assert.Equal(t, "https://drivefeed.example.run.app", cfg.WebhookURL)
	assert.Equal(t, "tok-42", cfg.ChannelToken)
	assert.Equal(t, "folder-42", cfg.TargetFolderID)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
