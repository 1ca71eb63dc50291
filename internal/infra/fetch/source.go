// Where: internal/infra/fetch/source.go
// What: Snapshot source abstraction and URL-scheme dispatch.
// Why: Let refresh stream a snapshot without knowing where it lives.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source is a remote (or local) copy of a snapshot.
type Source interface {
	// Size returns the payload length, or -1 when it cannot be determined.
	Size(ctx context.Context) (int64, error)
	// Open starts streaming the payload.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Location identifies the source in messages.
	Location() string
}

// Options configures source construction.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
	S3Endpoint string
	S3Region   string
	S3Client   S3API
}

// New returns the source for rawURL based on its scheme:
// http(s)://, s3://bucket/key or file://path.
func New(ctx context.Context, rawURL string, opts Options) (Source, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return NewHTTPSource(parsed.String(), opts), nil
	case "s3":
		return NewS3Source(ctx, parsed, opts)
	case "file":
		return NewFileSource(filePath(parsed)), nil
	case "":
		return nil, fmt.Errorf("%w: %q", errMissingScheme, rawURL)
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedScheme, parsed.Scheme)
	}
}

func filePath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	if u.Host != "" {
		return u.Host + u.Path
	}
	return u.Path
}

// Name returns the last path element of a source location, used as the
// progress label.
func Name(src Source) string {
	location := src.Location()
	if idx := strings.LastIndex(location, "/"); idx >= 0 && idx < len(location)-1 {
		return location[idx+1:]
	}
	return location
}
