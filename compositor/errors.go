package compositor

import "errors"

var (
	// A shell surface or restack request named a surface that was never
	// registered or is already gone
	ErrUnknownSurface = errors.New("unknown surface")
	// A destroy notification arrived for a surface with no record at all
	ErrAccountingError = errors.New("accounting error, unknown surface")
)
