package commands

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"kisansaarthi/models"
	"kisansaarthi/services/api"
	"kisansaarthi/services/otp"
	"kisansaarthi/services/validator"
	"kisansaarthi/services/wizard"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	internal := errors.New("disk full")

	tests := []struct {
		name    string
		err     error
		want    string
		wantErr error
	}{
		{"nil", nil, "", nil},
		{
			"validation",
			&wizard.ValidationError{Fields: validator.FieldErrors{models.FieldEmail: "Invalid email format"}},
			"Please correct the highlighted fields.\n",
			nil,
		},
		{
			"channel",
			&api.ChannelError{Op: "signup", Status: 400, Message: "Email already registered"},
			"! Email already registered\n",
			nil,
		},
		{
			"cooldown",
			fmt.Errorf("%w: 12 seconds left", otp.ErrCooldownActive),
			"! Please wait before requesting another OTP.\n",
			nil,
		},
		{"busy", wizard.ErrInFlight, "! Please wait for the current request to finish.\n", nil},
		{
			"session not saved",
			fmt.Errorf("%w: %w", wizard.ErrSessionNotSaved, internal),
			"! Your session could not be saved on this device. Please log in again.\n",
			nil,
		},
		{"internal", internal, "", internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := report(&out, tt.err)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestFieldError(t *testing.T) {
	var out bytes.Buffer
	errs := validator.FieldErrors{models.FieldPhone: "Phone number must be 10 digits"}

	fieldError(&out, errs, models.FieldEmail)
	assert.Empty(t, out.String())

	fieldError(&out, errs, models.FieldPhone)
	assert.Equal(t, "  x Phone number must be 10 digits\n", out.String())
}

func TestStrengthLine(t *testing.T) {
	assert.Equal(t,
		"Password strength: Weak (2/5). Password must be at least 8 characters long",
		strengthLine(validator.PasswordStrength("abc1")))
	assert.Equal(t,
		"Password strength: Strong (5/5)",
		strengthLine(validator.PasswordStrength("Str0ng!Pass")))
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Mobile number", fieldLabel(models.FieldPhone))
	assert.Equal(t, "nickname", fieldLabel("nickname"))
}
