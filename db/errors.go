// db/errors.go
package db

import "errors"

// Error taxonomy returned by Repo operations. Callers match with errors.Is;
// operations wrap these with %w plus detail. Any error leaves the store
// exactly as it was before the call.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInvalidInput       = errors.New("invalid input")
)
