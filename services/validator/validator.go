// Package validator holds the pure field checks run before any wizard step
// is allowed to touch the network.
package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"kisansaarthi/models"
)

// FieldErrors maps a field name to its message. An empty map means valid.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Clear drops the message for one field, as happens when the user edits it.
func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

// Clone returns a copy safe to hand to callers.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)
)

// MinResetPasswordLength is the only strength rule of the recovery flow.
const MinResetPasswordLength = 6

// MinStepScore is the password score the signup security step requires.
const MinStepScore = 3

// IsValidPhone is true iff s is exactly ten ASCII decimal digits.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidateBasicInfo checks the first signup step.
func ValidateBasicInfo(d models.RegistrationDraft) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.FirstName) == "" {
		errs[models.FieldFirstName] = "First name is required"
	}
	if strings.TrimSpace(d.LastName) == "" {
		errs[models.FieldLastName] = "Last name is required"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs[models.FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(d.Email) {
		errs[models.FieldEmail] = "Invalid email format"
	}
	return errs
}

// ValidateLocation checks the second signup step.
func ValidateLocation(d models.RegistrationDraft) FieldErrors {
	errs := FieldErrors{}
	if d.State == "" {
		errs[models.FieldState] = "State is required"
	}
	if d.District == "" {
		errs[models.FieldDistrict] = "District is required"
	}
	if d.Village == "" {
		errs[models.FieldVillage] = "Village is required"
	}
	return errs
}

// ValidateSecurity checks the third signup step, including the strength gate.
func ValidateSecurity(d models.RegistrationDraft) FieldErrors {
	errs := FieldErrors{}
	if d.Password == "" {
		errs[models.FieldPassword] = "Password is required"
	} else if PasswordStrength(d.Password).Score < MinStepScore {
		errs[models.FieldPassword] = "Password is too weak. Please choose a stronger password."
	}
	if d.Password != d.ConfirmPassword {
		errs[models.FieldConfirmPassword] = "Passwords do not match"
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs[models.FieldPhone] = "Phone number is required"
	} else if !IsValidPhone(d.Phone) {
		errs[models.FieldPhone] = "Phone number must be 10 digits"
	}
	return errs
}

// ValidateOTP checks an assembled one-time code.
func ValidateOTP(code string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(code) == "" {
		errs[models.FieldOTP] = "OTP is required"
	} else if !otpPattern.MatchString(code) {
		errs[models.FieldOTP] = "Please enter complete 6-digit OTP"
	}
	return errs
}

// ValidatePhone checks the mobile number of the recovery and login forms.
func ValidatePhone(phone string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(phone) == "" {
		errs[models.FieldPhone] = "Mobile number is required"
	} else if !IsValidPhone(phone) {
		errs[models.FieldPhone] = "Mobile number must be 10 digits"
	}
	return errs
}

// ValidateNewPassword checks the last recovery step.
func ValidateNewPassword(d models.PasswordResetDraft) FieldErrors {
	errs := FieldErrors{}
	if d.NewPassword == "" {
		errs[models.FieldNewPassword] = "New password is required"
	} else if utf8.RuneCountInString(d.NewPassword) < MinResetPasswordLength {
		errs[models.FieldNewPassword] = "Password must be at least 6 characters"
	}
	if d.NewPassword != d.ConfirmPassword {
		errs[models.FieldConfirmPassword] = "Passwords do not match"
	}
	return errs
}

// ValidateLogin checks presence and phone shape only.
func ValidateLogin(r models.LoginRequest) FieldErrors {
	errs := ValidatePhone(r.Phone)
	if r.Password == "" {
		errs[models.FieldPassword] = "Password is required"
	}
	return errs
}
