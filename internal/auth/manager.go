package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitpost/internal/logging"
)

// ErrAuthRequired signals that no usable token exists and the user must
// authorize out-of-band. It covers both the first run (nothing stored) and
// an upstream-rejected refresh (token irrecoverably invalid).
var ErrAuthRequired = errors.New("authorization required")

// TokenSource performs the network half of the token lifecycle against the
// upstream API. Refresh returns (nil, nil) when the upstream rejected the
// refresh token without a transport error; any returned error is a
// transport or protocol failure and is fatal for the run.
type TokenSource interface {
	Exchange(ctx context.Context, code string) (*Token, error)
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}

// Manager decides per run whether the stored token is reused, refreshed,
// or has to be re-authorized. Every successful exchange or refresh is
// persisted before the token is handed out.
type Manager struct {
	store  Store
	source TokenSource
	now    func() time.Time
}

// NewManager creates a Manager on top of the given store and token source.
func NewManager(store Store, source TokenSource) *Manager {
	return &Manager{
		store:  store,
		source: source,
		now:    time.Now,
	}
}

// GetValidToken returns a token that is valid for at least the safety
// margin. It makes no network call when the stored token is still fresh.
// ErrAuthRequired means the caller must run ExchangeCode with a new
// authorization code; any other error is fatal and is not retried.
func (m *Manager) GetValidToken(ctx context.Context) (*Token, error) {
	log := logging.Logger

	tok, err := m.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			log.Debug().Msg("no stored token, authorization required")
			return nil, ErrAuthRequired
		}
		return nil, fmt.Errorf("loading token: %w", err)
	}

	if tok.Valid(m.now()) {
		log.Debug().
			Time("expires_at", tok.ExpiresAt).
			Msg("reusing stored token")
		return tok, nil
	}

	log.Info().
		Time("expires_at", tok.ExpiresAt).
		Msg("token expiring, refreshing")

	fresh, err := m.source.Refresh(ctx, tok.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	if fresh == nil {
		// Upstream said no: the refresh token is dead, only a new
		// authorization can recover.
		log.Warn().Msg("refresh rejected by upstream, re-authorization required")
		return nil, ErrAuthRequired
	}

	if err := m.store.Save(fresh); err != nil {
		return nil, fmt.Errorf("saving refreshed token: %w", err)
	}

	log.Info().
		Time("expires_at", fresh.ExpiresAt).
		Msg("token refreshed")
	return fresh, nil
}

// ExchangeCode trades an authorization code obtained out-of-band for a
// token and persists it.
func (m *Manager) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	tok, err := m.source.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	if err := m.store.Save(tok); err != nil {
		return nil, fmt.Errorf("saving token: %w", err)
	}
	logging.Logger.Info().
		Time("expires_at", tok.ExpiresAt).
		Msg("authorization successful")
	return tok, nil
}
