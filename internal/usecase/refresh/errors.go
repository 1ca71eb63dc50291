// Where: internal/usecase/refresh/errors.go
// What: Shared error definitions for the refresh use case.
// Why: Ensure consistent error wrapping without dynamic error creation.
package refresh

import "errors"

var errRefresherIncomplete = errors.New("refresher requires a source and a store")
