// ABOUTME: Error types for the feeding store
// ABOUTME: Distinguishes bad input from storage-level failures
package db

import "fmt"

// ValidationError reports input the caller must correct before retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError reports a failure in the underlying store. The operation was
// aborted and no partial write occurred.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
