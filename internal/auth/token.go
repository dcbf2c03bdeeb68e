package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// expiryMargin is the safety window before the recorded expiry in which a
// token is already treated as expiring. A token that expires within the
// margin is refreshed instead of reused.
const expiryMargin = 60 * time.Second

// Token is the persisted OAuth2 token triple. ExpiresAt is always derived
// from the moment of issue plus the upstream expires_in value; only the
// current token is kept, refreshes overwrite it in place.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the token can be used as-is at the given time,
// keeping the safety margin before the recorded expiry.
func (t *Token) Valid(now time.Time) bool {
	return t.ExpiresAt.After(now.Add(expiryMargin))
}

// FromOAuth2 converts an oauth2.Token to our persisted form. The oauth2
// package fills Expiry as issue time + expires_in, which is exactly the
// derivation the store relies on.
func FromOAuth2(tok *oauth2.Token) *Token {
	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
}
