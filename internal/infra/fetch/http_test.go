// Where: internal/infra/fetch/http_test.go
// What: Tests for the HTTP snapshot source.
// Why: Lock HEAD sizing, User-Agent, and status handling.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/antipatico/portid/internal/domain/portdb"
)

func TestHTTPSourceSizeAndOpen(t *testing.T) {
	payload := []byte(`{"ports":{},"services":[]}`)
	var mu sync.Mutex
	var agents []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.Method+" "+r.Header.Get("User-Agent"))
		mu.Unlock()
		http.ServeContent(w, r, "portid.json", time.Time{}, bytes.NewReader(payload))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/portid.json", Options{UserAgent: "portid/test"})
	ctx := context.Background()

	size, err := src.Size(ctx)
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("Size() = %d, want %d", size, len(payload))
	}

	body, err := src.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer body.Close()
	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("body = %s", got)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"HEAD portid/test", "GET portid/test"}
	if len(agents) != 2 || agents[0] != want[0] || agents[1] != want[1] {
		t.Fatalf("requests = %#v, want %#v", agents, want)
	}
	if Name(src) != "portid.json" {
		t.Fatalf("Name() = %q", Name(src))
	}
}

func TestHTTPSourceNon200IsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/missing.json", Options{})

	size, err := src.Size(context.Background())
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != -1 {
		t.Fatalf("Size() = %d, want -1", size)
	}

	_, err = src.Open(context.Background())
	if !errors.Is(err, portdb.ErrHTTP) {
		t.Fatalf("Open() error = %v, want ErrHTTP", err)
	}
	var httpErr *portdb.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("Open() error = %#v", err)
	}
}

func TestHTTPSourceTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	src := NewHTTPSource(url+"/portid.json", Options{})
	if _, err := src.Size(context.Background()); !errors.Is(err, portdb.ErrNetwork) {
		t.Fatalf("Size() error = %v, want ErrNetwork", err)
	}
	if _, err := src.Open(context.Background()); !errors.Is(err, portdb.ErrNetwork) {
		t.Fatalf("Open() error = %v, want ErrNetwork", err)
	}
}
