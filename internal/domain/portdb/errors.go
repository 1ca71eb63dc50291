// Where: internal/domain/portdb/errors.go
// What: Error taxonomy shared by lookup, storage, and refresh.
// Why: Let the command layer report which failure occurred with errors.Is.
package portdb

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPort        = errors.New("invalid port")
	ErrInvalidPattern     = errors.New("invalid service pattern")
	ErrUserDeclined       = errors.New("database update declined")
	ErrHTTP               = errors.New("http error")
	ErrNetwork            = errors.New("network error")
	ErrDatabaseUnreadable = errors.New("database unreadable")
	ErrIO                 = errors.New("i/o error")
)

// HTTPError reports a non-200 response from a snapshot source.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: response code was %d for %s", ErrHTTP, e.StatusCode, e.URL)
}

// Is makes errors.Is(err, ErrHTTP) hold for any *HTTPError.
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}
