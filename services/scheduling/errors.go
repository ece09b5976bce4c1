package scheduling

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a scheduling operation was refused.
type ErrorCode string

const (
	CodeNotVerified          ErrorCode = "notVerified"
	CodeParseError           ErrorCode = "parseError"
	CodeInPast               ErrorCode = "inPast"
	CodeTooFarOut            ErrorCode = "tooFarOut"
	CodeWeekendRejected      ErrorCode = "weekendRejected"
	CodeOutsideBusinessHours ErrorCode = "outsideBusinessHours"
	CodeSlotTaken            ErrorCode = "slotTaken"
	CodeBookingNotFound      ErrorCode = "bookingNotFound"
	CodeRemoteError          ErrorCode = "remoteError"
)

// Error is a scheduling refusal. Message is user-facing; callers
// surface it verbatim instead of the raw error chain.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// RemoteError wraps a calendar provider failure. The provider's own
// error text is kept verbatim to aid caller diagnosis.
func RemoteError(op string, err error) *Error {
	return &Error{Code: CodeRemoteError, Message: fmt.Sprintf("error %s: %v", op, err)}
}

// IsCode reports whether err is a scheduling Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == code
}
