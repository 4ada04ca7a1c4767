package api

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a reply whose body could not be understood.
var ErrMalformedResponse = errors.New("malformed response")

// genericFailure is shown when neither the server nor the transport gave a
// usable message.
const genericFailure = "Something went wrong. Please try again."

// ChannelError is any failed round trip to the backend: transport failure,
// non-2xx status, explicit failure body or malformed body. Error() returns
// the text meant for the user.
type ChannelError struct {
	Op        string
	Status    int
	Message   string
	Malformed bool
	Timeout   bool
	Err       error
}

func (e *ChannelError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return genericFailure
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

// Detail is a log-friendly description including the operation and status.
func (e *ChannelError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: status %d: %s: %v", e.Op, e.Status, e.Error(), e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Error())
}

// AsChannelError unwraps err to a *ChannelError if it is one.
func AsChannelError(err error) (*ChannelError, bool) {
	var ce *ChannelError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
