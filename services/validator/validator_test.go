package validator

import (
	"testing"

	"kisansaarthi/models"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"9876543210", true},
		{"0000000000", true},
		{"98765432", false},
		{"98765432101", false},
		{"98765 4321", false},
		{"+919876543", false},
		{"987654321a", false},
		{"９８７６５４３２１０", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPhone(tt.in), "IsValidPhone(%q)", tt.in)
	}
}

func TestValidatePhone_Messages(t *testing.T) {
	errs := ValidatePhone("98765432")
	assert.Equal(t, "Mobile number must be 10 digits", errs[models.FieldPhone])

	assert.True(t, ValidatePhone("9876543210").Valid())

	errs = ValidatePhone("   ")
	assert.Equal(t, "Mobile number is required", errs[models.FieldPhone])
}

func TestValidateBasicInfo(t *testing.T) {
	errs := ValidateBasicInfo(models.RegistrationDraft{FirstName: "  ", Email: "ram@"})
	assert.Equal(t, FieldErrors{
		models.FieldFirstName: "First name is required",
		models.FieldLastName:  "Last name is required",
		models.FieldEmail:     "Invalid email format",
	}, errs)

	errs = ValidateBasicInfo(models.RegistrationDraft{FirstName: "Ram", LastName: "Kumar"})
	assert.Equal(t, "Email is required", errs[models.FieldEmail])

	assert.True(t, ValidateBasicInfo(models.RegistrationDraft{
		FirstName: "Ram", LastName: "Kumar", Email: "ram@kisan.in",
	}).Valid())
}

func TestValidateLocation(t *testing.T) {
	errs := ValidateLocation(models.RegistrationDraft{State: "up"})
	assert.Len(t, errs, 2)
	assert.Equal(t, "District is required", errs[models.FieldDistrict])
	assert.Equal(t, "Village is required", errs[models.FieldVillage])

	assert.True(t, ValidateLocation(models.RegistrationDraft{
		State: "up", District: "lucknow", Village: "malihabad",
	}).Valid())
}

func TestValidateSecurity(t *testing.T) {
	valid := models.RegistrationDraft{Password: "abc12345", ConfirmPassword: "abc12345", Phone: "9876543210"}
	assert.True(t, ValidateSecurity(valid).Valid())

	weak := valid
	weak.Password, weak.ConfirmPassword = "abc", "abc"
	assert.Equal(t, "Password is too weak. Please choose a stronger password.",
		ValidateSecurity(weak)[models.FieldPassword])

	mismatch := valid
	mismatch.Password, mismatch.ConfirmPassword = "Abc123!@", "Abc123!#"
	errs := ValidateSecurity(mismatch)
	assert.Equal(t, "Passwords do not match", errs[models.FieldConfirmPassword])
	assert.NotContains(t, errs, models.FieldPassword)

	badPhone := valid
	badPhone.Phone = "98765"
	assert.Equal(t, "Phone number must be 10 digits", ValidateSecurity(badPhone)[models.FieldPhone])

	empty := ValidateSecurity(models.RegistrationDraft{})
	assert.Equal(t, "Password is required", empty[models.FieldPassword])
	assert.Equal(t, "Phone number is required", empty[models.FieldPhone])
	assert.NotContains(t, empty, models.FieldConfirmPassword)
}

func TestValidateOTP(t *testing.T) {
	assert.Equal(t, "OTP is required", ValidateOTP("")[models.FieldOTP])
	assert.Equal(t, "Please enter complete 6-digit OTP", ValidateOTP("12345")[models.FieldOTP])
	assert.Equal(t, "Please enter complete 6-digit OTP", ValidateOTP("1234567")[models.FieldOTP])
	assert.True(t, ValidateOTP("123456").Valid())
}

func TestValidateNewPassword(t *testing.T) {
	errs := ValidateNewPassword(models.PasswordResetDraft{NewPassword: "abc", ConfirmPassword: "abd"})
	assert.Equal(t, "Password must be at least 6 characters", errs[models.FieldNewPassword])
	assert.Equal(t, "Passwords do not match", errs[models.FieldConfirmPassword])

	assert.Equal(t, "New password is required",
		ValidateNewPassword(models.PasswordResetDraft{})[models.FieldNewPassword])

	// No strength gate on reset.
	assert.True(t, ValidateNewPassword(models.PasswordResetDraft{
		NewPassword: "simple", ConfirmPassword: "simple",
	}).Valid())
}

func TestValidateLogin(t *testing.T) {
	errs := ValidateLogin(models.LoginRequest{Phone: "12"})
	assert.Equal(t, "Mobile number must be 10 digits", errs[models.FieldPhone])
	assert.Equal(t, "Password is required", errs[models.FieldPassword])

	// Presence only: a weak password is fine here.
	assert.True(t, ValidateLogin(models.LoginRequest{Phone: "9876543210", Password: "x"}).Valid())
}

func TestFieldErrors_ClearAndClone(t *testing.T) {
	errs := FieldErrors{models.FieldPhone: "bad", models.FieldOTP: "bad"}
	clone := errs.Clone()

	errs.Clear(models.FieldPhone)

	assert.NotContains(t, errs, models.FieldPhone)
	assert.Contains(t, clone, models.FieldPhone)
}

func TestLocationCatalog(t *testing.T) {
	assert.Len(t, States(), 4)
	assert.Equal(t, "lucknow", Districts("up")[0].Value)
	assert.Equal(t, "Malihabad", Villages("lucknow")[0].Label)
	assert.Empty(t, Districts("kerala"))
	assert.Empty(t, Villages("surat"))
}
