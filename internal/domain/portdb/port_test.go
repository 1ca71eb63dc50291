// Where: internal/domain/portdb/port_test.go
// What: Tests for port parsing and validation.
// Why: Every port in range is accepted and everything else is ErrInvalidPort.
package portdb

import (
	"errors"
	"testing"
)

func TestValidatePortAcceptsWholeRange(t *testing.T) {
	for port := MinPort; port <= MaxPort; port++ {
		if err := ValidatePort(port); err != nil {
			t.Fatalf("ValidatePort(%d) = %v", port, err)
		}
	}
}

func TestValidatePortRejectsOutOfRange(t *testing.T) {
	for _, port := range []int{-65536, -1, 65536, 70000, 1 << 20} {
		err := ValidatePort(port)
		if !errors.Is(err, ErrInvalidPort) {
			t.Fatalf("ValidatePort(%d) = %v, want ErrInvalidPort", port, err)
		}
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "80", want: 80},
		{raw: "0", want: 0},
		{raw: "65535", want: 65535},
		{raw: " 443 ", want: 443},
		{raw: "080", want: 80},
		{raw: "65536", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "http", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "8o", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePort(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPort) {
					t.Fatalf("ParsePort(%q) error = %v, want ErrInvalidPort", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePort(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("ParsePort(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
