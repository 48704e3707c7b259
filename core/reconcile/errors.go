package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupMiss means a business or group key is absent from the
	// identifier map. It is recovered locally as a skip-with-warning.
	ErrLookupMiss = errors.New("key not found in identifier map")

	// ErrValidationGap means a required feed field is missing or malformed.
	// The row is dropped with a warning.
	ErrValidationGap = errors.New("required field missing or malformed")

	// ErrDuplicateKey means more than one remote entity shares a business key
	// where matching requires uniqueness (e.g. two open orders per PO).
	ErrDuplicateKey = errors.New("business key matches more than one entity")
)

// RemoteServiceError wraps a failed call to the commerce API or file store.
// It propagates to the stage, which is then recorded as failed.
type RemoteServiceError struct {
	// Op names the failed call (e.g. "count orders", "list products page 2").
	Op  string
	Err error
}

// Error implements the error interface.
func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("remote service: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// NewRemoteServiceError wraps err, keeping an existing RemoteServiceError as is.
func NewRemoteServiceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var rse *RemoteServiceError
	if errors.As(err, &rse) {
		return err
	}
	return &RemoteServiceError{Op: op, Err: err}
}

// IsRemoteServiceError returns true if err wraps a RemoteServiceError.
func IsRemoteServiceError(err error) bool {
	var rse *RemoteServiceError
	return errors.As(err, &rse)
}

// PersistenceError wraps a failed write of an export artifact or cursor.
// A PersistenceError on the artifact must block the cursor advance.
type PersistenceError struct {
	// Path is the artifact or cursor location.
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError returns true if err wraps a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
