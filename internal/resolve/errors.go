package resolve

import "errors"

// Sentinels wrapped by every LookupError, for use with errors.Is.
var (
	ErrUnknownName = errors.New("unknown component or category name")
	ErrNotFound    = errors.New("no matching component")
	ErrAmbiguous   = errors.New("ambiguous match")
	ErrBitWidth    = errors.New("bit width mismatch")
	ErrDirection   = errors.New("wrong pin direction")
)

// LookupError is a failed lookup. The message names the board and the
// search criteria so the circuit's author can act on it.
type LookupError struct {
	Err   error
	Board string
	Msg   string
}

func (e *LookupError) Error() string { return e.Msg }

func (e *LookupError) Unwrap() error { return e.Err }
