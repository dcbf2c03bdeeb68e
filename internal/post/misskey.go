package post

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"fitpost/internal/logging"
)

// Misskey posts notes to a Misskey API.
type Misskey struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewMisskey creates a Misskey poster. baseURL is the API root
// (e.g. https://example.io/api).
func NewMisskey(baseURL, token string) *Misskey {
	return &Misskey{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: newHTTPClient(),
	}
}

// Post publishes text as a new note.
func (m *Misskey) Post(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"text": text,
		"i":    m.token,
	})
	if err != nil {
		return fmt.Errorf("encoding note: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/notes/create", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting note: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("posting note: unexpected status code: %d", resp.StatusCode)
	}

	logging.Logger.Info().Msg("note posted to misskey")
	return nil
}
