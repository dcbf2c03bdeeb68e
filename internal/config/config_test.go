package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FITBIT_API_URL", "https://api.fitbit.com")
	t.Setenv("FITBIT_CLIENT_ID", "id")
	t.Setenv("FITBIT_CLIENT_SECRET", "secret")
	t.Setenv("MASTODON_API_URL", "https://example.social/api/v1")
	t.Setenv("MASTODON_ACCESS_TOKEN", "mtoken")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.fitbit.com", cfg.FitbitAPIURL)
	assert.Equal(t, TargetMastodon, cfg.PostTarget)
	assert.Equal(t, "credentials.json", cfg.TokenFile)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITBIT_CLIENT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FITBIT_CLIENT_SECRET")
}

func TestLoadMisskeyTarget(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POST_TARGET", "misskey")
	t.Setenv("MISSKEY_API_URL", "https://example.io/api")
	t.Setenv("MISSKEY_ACCESS_TOKEN", "itoken")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, TargetMisskey, cfg.PostTarget)
}

func TestLoadMisskeyTargetMissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POST_TARGET", "misskey")
	t.Setenv("MISSKEY_API_URL", "https://example.io/api")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadUnknownTarget(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POST_TARGET", "geocities")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geocities")
}

func TestLoadTokenFileOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_FILE", "/var/lib/fitpost/credentials.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/fitpost/credentials.json", cfg.TokenFile)
}
