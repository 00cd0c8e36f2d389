package blitzar

import "errors"

// Recoverable errors. These are returned, never panicked, and carry no
// global state: every function that can fail this way returns its own
// error value local to that call.
var (
	// ErrAlreadyInitialized is returned by Init when the library has
	// already been initialized once in this process.
	ErrAlreadyInitialized = errors.New("blitzar: already initialized")

	// ErrInvalidConfig is returned by Init when the supplied Config is
	// not well formed (unknown backend, etc).
	ErrInvalidConfig = errors.New("blitzar: invalid config")

	// ErrNilOutput is returned by GetGenerators and GetOneCommit when
	// called with a nil output slice but a non-zero amount of work to
	// do.
	ErrNilOutput = errors.New("blitzar: nil output")
)

// PreconditionError is the panic value used for programmer errors: null
// required pointers, out-of-range widths, calling an entry point before a
// successful Init, and similar misuse that cannot be safely recovered
// from. It is typed so that a caller wrapping this package behind a
// different ABI (a cgo shim, for instance) can distinguish "the caller
// misused the API" from an unrelated runtime panic.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return "blitzar: " + e.Op + ": " + e.Msg
}

func fail(op, msg string) {
	panic(&PreconditionError{Op: op, Msg: msg})
}
