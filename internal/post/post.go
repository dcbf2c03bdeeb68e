// Package post publishes the rendered summary to a social-posting API.
// Posting uses a plain http.Client without automatic retries: status
// creation is not idempotent and a retried POST could publish twice.
package post

import (
	"context"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

// Poster publishes one status text.
type Poster interface {
	Post(ctx context.Context, text string) error
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
