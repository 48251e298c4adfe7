package scout

import "errors"

// ErrPrecondition matches any PreconditionError via errors.Is.
var ErrPrecondition = errors.New("precondition failed")

// PreconditionError reports a missing mandatory input.
type PreconditionError struct {
	Field string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Field + " is required"
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
