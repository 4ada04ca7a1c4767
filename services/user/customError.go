package user

import (
	"errors"
	"fmt"
)

// ErrorCode groups service errors by how the handler should answer.
type ErrorCode int

const (
	CodeInvalid ErrorCode = iota + 1
	CodeUnauthorized
	CodeNotFound
	CodeTooManyRequests
	CodeUnavailable
)

// Error is a failure whose message is meant for the end user.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func invalid(msg string) *Error {
	return &Error{Code: CodeInvalid, Message: msg}
}

var (
	ErrEmailTaken      = invalid("Email already registered")
	ErrPhoneTaken      = invalid("Phone already registered")
	ErrAccountTaken    = invalid("Email or phone already registered")
	ErrNoSignupData    = invalid("No signup data found")
	ErrInvalidOTP      = invalid("Invalid OTP")
	ErrOTPNotVerified  = invalid("OTP not verified")
	ErrPasswordTooWeak = invalid("Password must be at least 6 characters")
	ErrUserNotFound    = &Error{Code: CodeNotFound, Message: "User not found"}
	ErrInvalidPassword = &Error{Code: CodeUnauthorized, Message: "Invalid password"}
	ErrMaxResends      = &Error{Code: CodeTooManyRequests, Message: "Maximum OTP resend attempts reached"}
	ErrSendFailed      = &Error{Code: CodeUnavailable, Message: "Failed to send OTP. Please try again."}
	ErrInternal        = &Error{Code: CodeUnavailable, Message: "Something went wrong. Please try again."}
)

// CooldownError is returned by a resend or a repeated signup inside the
// cooldown window.
type CooldownError struct {
	Remaining int
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("Please wait %d seconds before resending", e.Remaining)
}

// AsError extracts the user-facing error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	var cd CooldownError
	if errors.As(err, &cd) {
		return &Error{Code: CodeTooManyRequests, Message: cd.Error()}, true
	}
	return nil, false
}
