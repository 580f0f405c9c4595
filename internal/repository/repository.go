// Package repository contains the document store contract and its error kinds.
// Implementations live in subpackages (postgres, sqlite) and hold no business
// logic beyond the fingerprint check that guards every insert.
package repository

import (
	"errors"
	"fmt"

	"corpusapi/internal/fingerprint"
)

var (
	// ErrHashMismatch is returned by Insert when the fingerprint is not the hash of the content.
	ErrHashMismatch = errors.New("fingerprint does not match content")
	// ErrNotFound is returned by GetContent when no document has the fingerprint.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned by Insert when the backing table already holds the
	// fingerprint, i.e. a concurrent writer won the uniqueness race.
	ErrDuplicate = errors.New("document with the same fingerprint already exists")
)

// BackendError wraps a connectivity or query failure of the backing store.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Backend wraps err as a *BackendError for op; nil stays nil.
func Backend(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

// IsBackend reports whether err is a backing store failure.
func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// CheckFingerprint returns ErrHashMismatch unless fp is the fingerprint of content.
func CheckFingerprint(fp, content string) error {
	if !fingerprint.Matches(fp, content) {
		return ErrHashMismatch
	}
	return nil
}
