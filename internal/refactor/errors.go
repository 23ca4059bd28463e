package refactor

import (
	"errors"
	"fmt"
)

// Precondition failures. They reach the user as an inline message and never
// leave a partial edit behind.
var (
	ErrNoEnclosingNode        = errors.New("no enclosing node of the requested kind")
	ErrInvalidSelection       = errors.New("selection is not a complete set of statements")
	ErrNotAProperty           = errors.New("token is not an object property")
	ErrNotInPropertyContainer = errors.New("property is not part of an object literal")
	ErrNamedOrMissingFunction = errors.New("no anonymous function expression")
)

// ErrSessionConsumed is returned when a session that already committed an
// edit is asked to run again.
var ErrSessionConsumed = errors.New("refactoring session already used")

// Error is a precondition failure detected at Offset.
type Error struct {
	Command string
	Offset  int
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Command, e.Offset, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUserError reports whether err is a precondition failure the user can
// fix by moving the cursor or changing the selection.
func IsUserError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
