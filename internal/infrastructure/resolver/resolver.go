package resolver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/osero2000/coddee-news-app/internal/ports"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// RedirectResolver follows a link's redirect chain with a HEAD request and
// reports the terminal URL. Aggregator links redirect through per-fetch
// tracking URLs; the terminal URL is the stable one.
type RedirectResolver struct {
	client *http.Client
}

var _ ports.LinkResolver = (*RedirectResolver)(nil)

// NewRedirectResolver wires an HTTP client; the default carries a 10s
// timeout so one slow link cannot stall the whole run.
func NewRedirectResolver(client *http.Client) *RedirectResolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RedirectResolver{client: client}
}

// Resolve returns the final URL after redirects, or an error the caller is
// expected to degrade on.
func (r *RedirectResolver) Resolve(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve link: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("resolve link: %s", resp.Status)
	}

	return resp.Request.URL.String(), nil
}
