// Where: internal/domain/portdb/port.go
// What: Port number parsing and range validation.
// Why: Reject non-numeric and out-of-range ports before touching the database.
package portdb

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinPort = 0
	MaxPort = 65535
)

// ValidatePort fails with ErrInvalidPort outside [MinPort, MaxPort].
func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("%w: %d is not between %d and %d", ErrInvalidPort, port, MinPort, MaxPort)
	}
	return nil
}

// ParsePort converts a command-line argument into a validated port number.
func ParsePort(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPort, raw)
	}
	if err := ValidatePort(port); err != nil {
		return 0, err
	}
	return port, nil
}

func portKey(port int) string {
	return strconv.Itoa(port)
}
