package post

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fitpost/internal/logging"
)

// Mastodon posts statuses to a Mastodon-compatible API.
type Mastodon struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewMastodon creates a Mastodon poster. baseURL is the statuses API root
// (e.g. https://example.social/api/v1).
func NewMastodon(baseURL, accessToken string) *Mastodon {
	return &Mastodon{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  newHTTPClient(),
	}
}

// Post publishes text as a new status.
func (m *Mastodon) Post(ctx context.Context, text string) error {
	form := url.Values{"status": {text}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/statuses", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("posting status: unexpected status code: %d", resp.StatusCode)
	}

	logging.Logger.Info().Msg("status posted to mastodon")
	return nil
}
