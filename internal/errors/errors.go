package errors

import (
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func Validation(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func Forbidden(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

// StoreUnavailable marks transient persistence failures. Safe to retry with
// backoff; answered as 503 so callers can tell infra failures from data errors.
func StoreUnavailable(cause error) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Message:    fmt.Sprintf("storage unavailable: %v", cause),
		StatusCode: http.StatusServiceUnavailable,
	}
}

func statusOf(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsStoreUnavailable(err error) bool {
	return statusOf(err) == http.StatusServiceUnavailable
}

// CascadeIncompleteError reports a cascade delete that removed threads but
// could not finish back-reference cleanup: either the bulk removal count did
// not match the computed closure, or a $pull on users/communities failed.
// Distinct from plain failure ("nothing deleted") so callers can flag it for
// reconciliation instead of retrying the whole delete.
type CascadeIncompleteError struct {
	ThreadId string
	Expected int
	Deleted  int64
	Cause    error
}

func (e *CascadeIncompleteError) Error() string {
	msg := fmt.Sprintf("cascade delete of thread %s incomplete: deleted %d of %d", e.ThreadId, e.Deleted, e.Expected)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CascadeIncompleteError) Unwrap() error {
	return e.Cause
}
