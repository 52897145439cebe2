package abort

import "errors"

// Error reports that an operation stopped because its token was
// aborted. Callers must classify errors with IsCancellation rather
// than asserting on the concrete type: the check is shape-based, so it
// keeps working when an error value crosses the boundary between
// independently compiled copies of this package.
type Error struct {
	Message string
}

// NewError returns a cancellation error with the given message.
func NewError(msg string) *Error {
	return &Error{Message: msg}
}

func (e *Error) Error() string { return e.Message }

// IsCancellation marks the error as a cancellation signal. The method
// is the discriminant IsCancellation(err) looks for.
func (e *Error) IsCancellation() bool { return true }

// IsCancellation reports whether err, or any error it wraps, is a
// cancellation signal. Any error exposing IsCancellation() bool
// returning true qualifies, not just *Error.
func IsCancellation(err error) bool {
	var tagged interface{ IsCancellation() bool }
	return errors.As(err, &tagged) && tagged.IsCancellation()
}
