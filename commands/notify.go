package commands

import (
	"errors"
	"fmt"
	"io"

	"kisansaarthi/models"
	"kisansaarthi/services/validator"
	"kisansaarthi/services/wizard"
)

var fieldLabels = map[string]string{
	models.FieldFirstName:       "First name",
	models.FieldLastName:        "Last name",
	models.FieldEmail:           "Email",
	models.FieldState:           "State",
	models.FieldDistrict:        "District",
	models.FieldVillage:         "Village",
	models.FieldPassword:        "Password",
	models.FieldConfirmPassword: "Confirm password",
	models.FieldPhone:           "Mobile number",
	models.FieldOTP:             "OTP",
	models.FieldNewPassword:     "New password",
}

func fieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// report renders a flow error. Validation errors are shown next to their
// fields when the step is prompted again, so only a hint is printed here.
// Errors the user cannot act on are returned.
func report(out io.Writer, err error) error {
	if errors.Is(err, wizard.ErrSessionNotSaved) {
		fmt.Fprintln(out, "! Your session could not be saved on this device. Please log in again.")
		return nil
	}
	switch wizard.KindOf(err) {
	case wizard.KindNone:
		return nil
	case wizard.KindValidation:
		fmt.Fprintln(out, "Please correct the highlighted fields.")
	case wizard.KindChannel, wizard.KindCooldown:
		fmt.Fprintf(out, "! %s\n", message(err))
	case wizard.KindBusy:
		fmt.Fprintln(out, "! Please wait for the current request to finish.")
	default:
		return err
	}
	return nil
}

// message is the user-facing text for a channel or cooldown error.
func message(err error) string {
	if wizard.KindOf(err) == wizard.KindCooldown {
		return "Please wait before requesting another OTP."
	}
	return err.Error()
}

// fieldError prints the inline message for field, if any.
func fieldError(out io.Writer, errs validator.FieldErrors, field string) {
	if msg := errs[field]; msg != "" {
		fmt.Fprintf(out, "  x %s\n", msg)
	}
}

// strengthLine summarises a password score with the first unmet rule.
func strengthLine(s validator.Strength) string {
	line := fmt.Sprintf("Password strength: %s (%d/%d)", s.Band(), s.Score, validator.MaxScore)
	if len(s.Failed) > 0 {
		line += ". " + s.Failed[0].Message()
	}
	return line
}
