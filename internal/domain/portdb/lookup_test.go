// Where: internal/domain/portdb/lookup_test.go
// What: Tests for single-port lookup.
// Why: Lock result content and document ordering.
package portdb

import (
	"errors"
	"reflect"
	"testing"
)

func TestIdentifyHTTP(t *testing.T) {
	db := mustDecode(t, `{"ports": {"80": {"tcp": [{"name": "http", "description": "World Wide Web HTTP"}]}}, "services": []}`)

	got, err := db.Identify(80)
	if err != nil {
		t.Fatalf("Identify(80) error = %v", err)
	}
	want := []Match{{Port: 80, Protocol: "tcp", Name: "http", Description: "World Wide Web HTTP"}}
	if !reflect.DeepEqual(got.Matches, want) {
		t.Fatalf("matches = %#v, want %#v", got.Matches, want)
	}
	if line := got.Matches[0].String(); line != `80/tcp http "World Wide Web HTTP"` {
		t.Fatalf("line = %q", line)
	}
}

func TestIdentifyKeepsDocumentOrderAndDedupesNames(t *testing.T) {
	db := mustDecode(t, sampleSnapshot)

	got, err := db.Identify(53)
	if err != nil {
		t.Fatalf("Identify(53) error = %v", err)
	}
	var lines []string
	for _, m := range got.Matches {
		lines = append(lines, m.String())
	}
	wantLines := []string{
		`53/udp domain "Domain Name Server"`,
		`53/tcp domain "Domain Name Server"`,
		`53/tcp dns-alt "Alternate DNS"`,
	}
	if !reflect.DeepEqual(lines, wantLines) {
		t.Fatalf("lines = %#v, want %#v", lines, wantLines)
	}
	if want := []string{"domain", "dns-alt"}; !reflect.DeepEqual(got.Services, want) {
		t.Fatalf("services = %#v, want %#v", got.Services, want)
	}
}

func TestIdentifyUnknownPortIsEmpty(t *testing.T) {
	db := mustDecode(t, sampleSnapshot)

	got, err := db.Identify(12345)
	if err != nil {
		t.Fatalf("Identify(12345) error = %v", err)
	}
	if len(got.Matches) != 0 || len(got.Services) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
}

func TestIdentifyRejectsOutOfRange(t *testing.T) {
	db := mustDecode(t, sampleSnapshot)
	for _, port := range []int{-1, 65536} {
		if _, err := db.Identify(port); !errors.Is(err, ErrInvalidPort) {
			t.Fatalf("Identify(%d) error = %v, want ErrInvalidPort", port, err)
		}
	}
}

func TestIdentifyOnEmptyDatabase(t *testing.T) {
	got, err := New().Identify(22)
	if err != nil {
		t.Fatalf("Identify(22) error = %v", err)
	}
	if len(got.Matches) != 0 {
		t.Fatalf("expected no matches, got %#v", got.Matches)
	}
}
