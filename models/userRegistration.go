package models

import (
	"fmt"
	"strings"
)

// Registration and recovery form field names. They double as FieldErrors keys
// and as JSON names on the wire.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldState           = "state"
	FieldDistrict        = "district"
	FieldVillage         = "village"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldPhone           = "phone"
	FieldOTP             = "otp"
	FieldNewPassword     = "newPassword"
)

// RegistrationDraft is the signup form while the wizard is running. It is
// sent to the backend once, at the end of the security step.
type RegistrationDraft struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	State           string `json:"state"`
	District        string `json:"district"`
	Village         string `json:"village"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
}

// Set assigns one field by name. Choosing a state clears district and
// village; choosing a district clears village.
func (d *RegistrationDraft) Set(field, value string) error {
	switch field {
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldEmail:
		d.Email = value
	case FieldState:
		if d.State != value {
			d.District = ""
			d.Village = ""
		}
		d.State = value
	case FieldDistrict:
		if d.District != value {
			d.Village = ""
		}
		d.District = value
	case FieldVillage:
		d.Village = value
	case FieldPassword:
		d.Password = value
	case FieldConfirmPassword:
		d.ConfirmPassword = value
	case FieldPhone:
		d.Phone = value
	default:
		return fmt.Errorf("unknown registration field %q", field)
	}
	return nil
}

// Get reads one field by name.
func (d RegistrationDraft) Get(field string) (string, bool) {
	switch field {
	case FieldFirstName:
		return d.FirstName, true
	case FieldLastName:
		return d.LastName, true
	case FieldEmail:
		return d.Email, true
	case FieldState:
		return d.State, true
	case FieldDistrict:
		return d.District, true
	case FieldVillage:
		return d.Village, true
	case FieldPassword:
		return d.Password, true
	case FieldConfirmPassword:
		return d.ConfirmPassword, true
	case FieldPhone:
		return d.Phone, true
	}
	return "", false
}

// DisplayName is "first last" with surrounding blanks removed.
func (d RegistrationDraft) DisplayName() string {
	return JoinName(d.FirstName, d.LastName)
}

// JoinName concatenates first and last name and trims the result.
func JoinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// PasswordResetDraft is the forgot-password form.
type PasswordResetDraft struct {
	Phone           string `json:"phone"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"-"`
}

// Set assigns one field by name.
func (d *PasswordResetDraft) Set(field, value string) error {
	switch field {
	case FieldPhone:
		d.Phone = value
	case FieldNewPassword:
		d.NewPassword = value
	case FieldConfirmPassword:
		d.ConfirmPassword = value
	default:
		return fmt.Errorf("unknown password reset field %q", field)
	}
	return nil
}

// LoginRequest is the login form and the body of POST /api/login/.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Set assigns one field by name.
func (r *LoginRequest) Set(field, value string) error {
	switch field {
	case FieldPhone:
		r.Phone = value
	case FieldPassword:
		r.Password = value
	default:
		return fmt.Errorf("unknown login field %q", field)
	}
	return nil
}
