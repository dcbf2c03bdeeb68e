// Package fitbit is the client for the Fitbit Web API: activity listing,
// TCX activity logs, and the OAuth2 token operations.
package fitbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"fitpost/internal/auth"
	"fitpost/internal/logging"
)

const (
	authURL = "https://www.fitbit.com/oauth2/authorize"

	requestTimeout = 30 * time.Second
	listLimit      = 100

	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 30 * time.Second
)

// Config holds the client settings. BaseURL is the API root
// (https://api.fitbit.com in production, an httptest server in tests).
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// Activity is one entry of the Fitbit activity list. Fields beyond these
// are not consumed.
type Activity struct {
	LogID        int64    `json:"logId"`
	ActivityName string   `json:"activityName"`
	StartTime    string   `json:"startTime"`
	Distance     *float64 `json:"distance"`
	Duration     int      `json:"duration"` // milliseconds
	Calories     int      `json:"calories"`
}

type activityList struct {
	Activities []Activity `json:"activities"`
}

// Client is a Fitbit API client. Read endpoints go through retryablehttp
// with backoff; token endpoints go through golang.org/x/oauth2 with a
// single attempt, since a failed refresh must surface immediately.
type Client struct {
	httpClient *retryablehttp.Client
	oauth      *oauth2.Config
	baseURL    string
}

// NewClient creates a Fitbit API client.
func NewClient(cfg Config) *Client {
	log := logging.Logger

	client := retryablehttp.NewClient()
	client.RetryMax = defaultMaxRetries
	client.RetryWaitMin = defaultInitialBackoff
	client.RetryWaitMax = defaultMaxBackoff
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = &logging.LeveledLogger{}

	client.RequestLogHook = func(logger retryablehttp.Logger, req *http.Request, retry int) {
		if retry > 0 {
			log.Info().
				Str("url", req.URL.Path).
				Int("attempt", retry+1).
				Msg("retrying request")
		}
		if logging.IsTraceEnabled() {
			log.Debug().
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Str("headers", formatHeaders(req.Header)).
				Msg("request headers")
		}
	}

	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{"activity"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: strings.TrimRight(cfg.BaseURL, "/") + "/oauth2/token",
				// Fitbit requires client credentials as Basic auth.
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
	}
}

// AuthCodeURL returns the URL the user visits to obtain an authorization
// code out-of-band.
func (c *Client) AuthCodeURL() string {
	return c.oauth.AuthCodeURL("")
}

// Exchange trades an authorization code for a token.
func (c *Client) Exchange(ctx context.Context, code string) (*auth.Token, error) {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return auth.FromOAuth2(tok), nil
}

// Refresh trades a refresh token for a fresh token. A (nil, nil) result
// means the upstream rejected the refresh token outright; the token is
// irrecoverably invalid and only a new authorization can help. Any error
// is a transport or protocol failure.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*auth.Token, error) {
	seed := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}

	tok, err := c.oauth.TokenSource(ctx, seed).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) &&
			retrieveErr.Response != nil &&
			retrieveErr.Response.StatusCode >= 400 && retrieveErr.Response.StatusCode < 500 {
			logging.Logger.Warn().
				Int("status", retrieveErr.Response.StatusCode).
				Msg("refresh token rejected by upstream")
			return nil, nil
		}
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	return auth.FromOAuth2(tok), nil
}

// ListActivities fetches the activity list after the given date, sorted
// descending by start time upstream.
func (c *Client) ListActivities(ctx context.Context, accessToken string, since time.Time) ([]Activity, error) {
	url := fmt.Sprintf("%s/1/user/-/activities/list.json?afterDate=%s&sort=desc&offset=0&limit=%d",
		c.baseURL, since.Format("2006-01-02"), listLimit)

	body, err := c.get(ctx, url, accessToken)
	if err != nil {
		return nil, err
	}

	var list activityList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding activity list: %w", err)
	}
	return list.Activities, nil
}

// FetchActivityLog fetches the raw TCX document for one activity log.
func (c *Client) FetchActivityLog(ctx context.Context, accessToken string, logID int64) ([]byte, error) {
	url := fmt.Sprintf("%s/1/user/-/activities/%d.tcx", c.baseURL, logID)
	return c.get(ctx, url, accessToken)
}

func (c *Client) get(ctx context.Context, url, accessToken string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// formatHeaders formats HTTP headers for trace logging, redacting
// sensitive values.
func formatHeaders(headers http.Header) string {
	if len(headers) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		value := strings.Join(headers[k], ", ")
		if lower := strings.ToLower(k); lower == "authorization" || lower == "cookie" {
			value = "[REDACTED]"
		}
		sb.WriteString(fmt.Sprintf("%s: %q", k, value))
	}
	sb.WriteString("}")
	return sb.String()
}
