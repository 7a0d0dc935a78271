package platform

import "errors"

// Sentinel errors for driver operations.
var (
	// ErrWindowClosed is returned when operating on a closed window.
	ErrWindowClosed = errors.New("platform: window closed")

	// ErrWindowLimit is returned by CreateWindow on backends that cannot
	// open another window.
	ErrWindowLimit = errors.New("platform: window limit reached")
)
