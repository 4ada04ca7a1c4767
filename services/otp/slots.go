// Package otp holds the six-digit code entry, the resend cooldown and the
// send/resend/verify client over the backend channels.
package otp

import "strings"

// Length is the number of digit slots in a code.
const Length = 6

// Slots is the six-box code entry. Each slot is empty or one ASCII digit.
type Slots struct {
	digits [Length]string
}

// Set writes value into slot index. Only the last character of value is
// kept, as with a one-character input box. A value containing anything but
// digits leaves the slot unchanged and returns false. An empty value clears
// the slot.
func (s *Slots) Set(index int, value string) bool {
	if index < 0 || index >= Length {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	if value == "" {
		s.digits[index] = ""
		return true
	}
	s.digits[index] = value[len(value)-1:]
	return true
}

// Fill spreads a pasted code across the slots from the first. It accepts
// digits only and at most Length of them.
func (s *Slots) Fill(code string) bool {
	code = strings.TrimSpace(code)
	if len(code) > Length {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	s.Reset()
	for i := 0; i < len(code); i++ {
		s.digits[i] = code[i : i+1]
	}
	return true
}

// Get returns the content of slot index.
func (s *Slots) Get(index int) string {
	if index < 0 || index >= Length {
		return ""
	}
	return s.digits[index]
}

// Complete is true when every slot holds a digit.
func (s *Slots) Complete() bool {
	for _, d := range s.digits {
		if d == "" {
			return false
		}
	}
	return true
}

// Code joins the slots.
func (s *Slots) Code() string {
	return strings.Join(s.digits[:], "")
}

// Reset empties every slot.
func (s *Slots) Reset() {
	s.digits = [Length]string{}
}
