package secondary

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable wraps read/write failures against the document store.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDispatchFailed wraps push notification delivery failures.
	ErrDispatchFailed = errors.New("push dispatch failed")

	// ErrConflict is returned when a conditional write finds the record in a
	// state that no longer allows the change.
	ErrConflict = errors.New("conflicting state")

	// ErrCorruptRecord marks a stored row whose columns cannot be decoded.
	// It is permanent, unlike ErrStorageUnavailable.
	ErrCorruptRecord = errors.New("corrupt record")
)

// RecordError reports one stored row that could not be decoded.
type RecordError struct {
	ID  string
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: %v", e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// SkippedRecords returns the per-row errors carried by err when err consists
// only of RecordErrors (as returned alongside partial list results).
// ok is false for any other error.
func SkippedRecords(err error) (skipped []*RecordError, ok bool) {
	if err == nil {
		return nil, false
	}
	errs := []error{err}
	if joined, isJoined := err.(interface{ Unwrap() []error }); isJoined {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var re *RecordError
		if !errors.As(e, &re) {
			return nil, false
		}
		skipped = append(skipped, re)
	}
	return skipped, len(skipped) > 0
}
