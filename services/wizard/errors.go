// Package wizard holds the signup, password recovery and login state
// machines. They validate locally, call the backend through the OTP and API
// clients, and hand the resulting session to a writer.
package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"kisansaarthi/services/api"
	"kisansaarthi/services/otp"
	"kisansaarthi/services/validator"
)

var (
	// ErrInFlight is returned when a transition is attempted while another
	// one is still waiting on the network.
	ErrInFlight = errors.New("wizard: request already in flight")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("wizard: closed")
	// ErrFinished is returned by Next and Back once the flow completed.
	ErrFinished = errors.New("wizard: flow already complete")
	// ErrFirstStep is returned by Back on the first step.
	ErrFirstStep = errors.New("wizard: already on the first step")
	// ErrWrongStep is returned by Resend outside the code entry step and by
	// SetField for a field whose step was already passed.
	ErrWrongStep = errors.New("wizard: not allowed on the current step")
	// ErrSessionNotSaved is returned by the final Next when the backend
	// accepted the flow but the session could not be stored. The wizard is
	// complete and Session still holds the result.
	ErrSessionNotSaved = errors.New("wizard: session not saved")
)

// ValidationError carries the field messages that blocked a step.
type ValidationError struct {
	Fields validator.FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrorKind tells the presentation layer how to show an error.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindValidation goes inline under the offending fields.
	KindValidation
	// KindChannel is a remote failure shown as a notification.
	KindChannel
	// KindBusy means the submit was ignored.
	KindBusy
	// KindCooldown means resend is not available yet.
	KindCooldown
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindChannel:
		return "channel"
	case KindBusy:
		return "busy"
	case KindCooldown:
		return "cooldown"
	default:
		return "internal"
	}
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	var ve *ValidationError
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &ve):
		return KindValidation
	case errors.Is(err, ErrInFlight):
		return KindBusy
	case errors.Is(err, otp.ErrCooldownActive):
		return KindCooldown
	}
	if _, ok := api.AsChannelError(err); ok {
		return KindChannel
	}
	return KindInternal
}

// FieldsOf returns the field messages of a validation error, or nil.
func FieldsOf(err error) validator.FieldErrors {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
