package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate is returned by Store.Add together with the matches when a
	// candidate looks like an existing subscription. It is advisory.
	ErrDuplicate = errors.New("probable duplicate subscription")

	ErrNotFound  = errors.New("subscription not found")
	ErrNoBackend = errors.New("no persistence backend for the current session")
)

// ValidationError reports a record that failed the create-time gate
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failure of the selected backend
type PersistenceError struct {
	Op      string
	Backend string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err is or wraps a PersistenceError
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
