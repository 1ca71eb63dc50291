// Where: internal/infra/fetch/http.go
// What: HTTP(S) snapshot source.
// Why: Probe the size with HEAD and stream the body with GET.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/antipatico/portid/internal/domain/portdb"
)

// HTTPSource downloads a snapshot over HTTP(S). Certificates are checked
// against the host trust store.
type HTTPSource struct {
	url       string
	userAgent string
	client    *http.Client
}

// NewHTTPSource returns a source for url.
func NewHTTPSource(url string, opts Options) *HTTPSource {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPSource{url: url, userAgent: opts.UserAgent, client: client}
}

func (s *HTTPSource) Location() string {
	return s.url
}

// Size issues a HEAD request. A non-200 answer or a missing Content-Length
// yields -1; only transport failures are errors.
func (s *HTTPSource) Size(ctx context.Context) (int64, error) {
	resp, err := s.do(ctx, http.MethodHead)
	if err != nil {
		return -1, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK || resp.ContentLength < 0 {
		slog.Debug("Snapshot size unknown.", "url", s.url, "status", resp.StatusCode)
		return -1, nil
	}
	return resp.ContentLength, nil
}

// Open issues the streaming GET. Any status other than 200 is an *portdb.HTTPError.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.do(ctx, http.MethodGet)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &portdb.HTTPError{URL: s.url, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func (s *HTTPSource) do(ctx context.Context, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s request: %w", portdb.ErrNetwork, method, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", portdb.ErrNetwork, method, s.url, err)
	}
	return resp, nil
}
