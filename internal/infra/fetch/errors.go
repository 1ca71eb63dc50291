// Where: internal/infra/fetch/errors.go
// What: Shared error definitions for snapshot sources.
// Why: Ensure consistent error wrapping without dynamic error creation.
package fetch

import "errors"

var (
	errMissingScheme     = errors.New("source url has no scheme")
	errUnsupportedScheme = errors.New("unsupported source scheme")
	errInvalidS3URL      = errors.New("s3 url must be s3://bucket/key")
)
