// Package config loads settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Post targets.
const (
	TargetMastodon = "mastodon"
	TargetMisskey  = "misskey"
)

const defaultTokenFile = "credentials.json"

// Config holds everything read from the environment.
type Config struct {
	FitbitAPIURL       string
	FitbitClientID     string
	FitbitClientSecret string

	MastodonAPIURL      string
	MastodonAccessToken string

	MisskeyAPIURL      string
	MisskeyAccessToken string

	// PostTarget selects where the summary is published:
	// TargetMastodon (default) or TargetMisskey.
	PostTarget string

	// TokenFile is the path of the persisted OAuth token record.
	TokenFile string
}

// Load reads configuration from the environment. A missing .env file is
// fine; missing required variables are not.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		FitbitAPIURL:        os.Getenv("FITBIT_API_URL"),
		FitbitClientID:      os.Getenv("FITBIT_CLIENT_ID"),
		FitbitClientSecret:  os.Getenv("FITBIT_CLIENT_SECRET"),
		MastodonAPIURL:      os.Getenv("MASTODON_API_URL"),
		MastodonAccessToken: os.Getenv("MASTODON_ACCESS_TOKEN"),
		MisskeyAPIURL:       os.Getenv("MISSKEY_API_URL"),
		MisskeyAccessToken:  os.Getenv("MISSKEY_ACCESS_TOKEN"),
		PostTarget:          os.Getenv("POST_TARGET"),
		TokenFile:           os.Getenv("TOKEN_FILE"),
	}

	if cfg.PostTarget == "" {
		cfg.PostTarget = TargetMastodon
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile
	}

	for name, value := range map[string]string{
		"FITBIT_API_URL":       cfg.FitbitAPIURL,
		"FITBIT_CLIENT_ID":     cfg.FitbitClientID,
		"FITBIT_CLIENT_SECRET": cfg.FitbitClientSecret,
	} {
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	switch cfg.PostTarget {
	case TargetMastodon:
		if cfg.MastodonAPIURL == "" || cfg.MastodonAccessToken == "" {
			return nil, errors.New("mastodon target requires MASTODON_API_URL and MASTODON_ACCESS_TOKEN")
		}
	case TargetMisskey:
		if cfg.MisskeyAPIURL == "" || cfg.MisskeyAccessToken == "" {
			return nil, errors.New("misskey target requires MISSKEY_API_URL and MISSKEY_ACCESS_TOKEN")
		}
	default:
		return nil, fmt.Errorf("unknown post target %q", cfg.PostTarget)
	}

	return cfg, nil
}
