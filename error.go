package permitsearch

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"

	// Lookup and search input errors.
	ENOSTATE      = "no_state_selected"
	EEMPTYZIP     = "empty_zipcode"
	EZIPFORMAT    = "invalid_zipcode_format"
	ENOTFOUND     = "not_found"
	EEMPTYADDRESS = "empty_address"
)

// Error represents an application-specific error. Message is safe to show
// to the end user.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("permitsearch error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFoundError is returned when a well-formed zipcode has no entry in the
// selected state's table.
type NotFoundError struct {
	Zipcode string
	State   State
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("permitsearch error: code=%s zipcode=%s state=%s", ENOTFOUND, e.Zipcode, e.State)
}

// Message returns the user-facing message naming the zipcode and state.
func (e *NotFoundError) Message() string {
	return fmt.Sprintf("No permit information found for zipcode %s in %s", e.Zipcode, e.State)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return ENOTFOUND
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Message()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
