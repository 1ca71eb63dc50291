// Where: internal/infra/config/errors.go
// What: Shared error definitions for configuration loading.
// Why: Ensure consistent error wrapping without dynamic error creation.
package config

import "errors"

var (
	errDataDirRequired   = errors.New("data dir is required")
	errInvalidDBName     = errors.New("database file name must be a bare file name")
	errUpdateURLRequired = errors.New("update url is required")
	errNegativeTimeout   = errors.New("http timeout must not be negative")
	errInvalidConfig     = errors.New("invalid config file")
)
