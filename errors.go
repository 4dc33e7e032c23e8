package singlet

import (
	"errors"
	"fmt"
)

// Sentinel kinds wrapped by every ResolveError; match them with errors.Is.
var (
	// ErrNotFound is returned when nothing is registered for the type.
	ErrNotFound = errors.New("no entry registered for this type")

	// ErrCircularDependency is returned when the type is already under
	// construction further up the call stack. It is also what a resolution
	// reports after an earlier factory failure left the slot poisoned (see
	// Resolve).
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrFactoryFailure is returned when the factory itself failed; the
	// underlying cause is wrapped alongside it.
	ErrFactoryFailure = errors.New("factory failed")

	// ErrTypeMismatch is returned when the memoized instance does not have
	// the requested type.
	ErrTypeMismatch = errors.New("stored instance has an unexpected type")
)

// ResolveError is the error type returned by Resolve. It names the contract
// type the caller asked for and wraps one of the sentinel kinds above (plus
// the factory's own error for ErrFactoryFailure).
type ResolveError struct {
	typeName string
	err      error
}

func newResolveError(typeName string, err error) *ResolveError {
	return &ResolveError{typeName: typeName, err: err}
}

// TypeName returns the diagnostic name of the type that failed to resolve.
func (e *ResolveError) TypeName() string {
	return e.typeName
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("could not resolve %s:\n\t%v", e.typeName, e.err)
}

func (e *ResolveError) Unwrap() error {
	return e.err
}
