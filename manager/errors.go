package manager

import "errors"

var (
	// ErrNoResults means a search matched nothing. Informational, not fatal.
	ErrNoResults = errors.New("no matching places")

	// ErrPermissionDenied means the device refused to disclose its location.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrUnsupported means no location source is available.
	ErrUnsupported = errors.New("location not available")
)
