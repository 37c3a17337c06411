package fitment

import "errors"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrCatalogUnavailable wraps every catalog failure, including deadlines.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
