package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrFetch  = errors.New("feed fetch failed")
	ErrStatus = errors.New("feed returned non-success status")
)
