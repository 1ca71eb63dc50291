// Where: cmd/portid-gendb/generate_test.go
// What: Tests for the generator pipeline.
// Why: Ensure generated snapshots load in portid and bad input writes nothing.
package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antipatico/portid/internal/infra/store"
)

const upstreamListing = `{
  "80/tcp": {"name": "http", "description": "World Wide Web HTTP"},
  "80/udp": {"name": "http", "description": "World Wide Web HTTP"},
  "81/tcp": {"name": "", "description": "Unassigned"},
  "70000/tcp": {"name": "bogus", "description": "out of range"},
  "22/tcp": {"name": "ssh", "description": "The Secure Shell (SSH) Protocol"}
}`

func writeListing(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ports.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write listing: %v", err)
	}
	return path
}

func TestRunFromInputFile(t *testing.T) {
	input := writeListing(t, upstreamListing)
	output := filepath.Join(t.TempDir(), "out", "portid.json")

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"--input", input, "--output", output, "--log-level", "error"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, errOut.String())
	}

	payload, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if err := store.Validate(payload); err != nil {
		t.Fatalf("generated snapshot invalid: %v", err)
	}
	db, err := store.New(output).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	result, err := db.Identify(80)
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if len(result.Matches) != 2 || len(result.Services) != 1 {
		t.Fatalf("identification = %+v", result)
	}
	if len(db.Services) != 2 {
		t.Fatalf("services = %d, want 2", len(db.Services))
	}
	if !strings.Contains(errOut.String(), "2 ports, 2 services") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestRunFromSourceURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(upstreamListing))
	}))
	t.Cleanup(srv.Close)
	output := filepath.Join(t.TempDir(), "portid.json")

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"--source", srv.URL + "/ports.json", "-o", output, "--log-level", "error"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, errOut.String())
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestRunMalformedListingWritesNothing(t *testing.T) {
	input := writeListing(t, `{"80/tcp": [`)
	output := filepath.Join(t.TempDir(), "portid.json")

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"-i", input, "-o", output}, &out, &errOut)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Fatalf("output written for malformed listing: %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"-i", filepath.Join(t.TempDir(), "nope.json")}, &out, &errOut)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}
