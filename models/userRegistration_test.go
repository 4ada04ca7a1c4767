package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationDraft_StateCascade(t *testing.T) {
	d := RegistrationDraft{State: "punjab", District: "ludhiana", Village: "khanna"}

	require.NoError(t, d.Set(FieldState, "up"))

	assert.Equal(t, "up", d.State)
	assert.Empty(t, d.District)
	assert.Empty(t, d.Village)
}

func TestRegistrationDraft_StateCascadeFromEmpty(t *testing.T) {
	var d RegistrationDraft
	d.District = "lucknow"
	d.Village = "malihabad"

	require.NoError(t, d.Set(FieldState, "up"))

	assert.Empty(t, d.District)
	assert.Empty(t, d.Village)
}

func TestRegistrationDraft_DistrictCascade(t *testing.T) {
	d := RegistrationDraft{State: "up", District: "lucknow", Village: "malihabad"}

	require.NoError(t, d.Set(FieldDistrict, "agra"))

	assert.Equal(t, "up", d.State)
	assert.Equal(t, "agra", d.District)
	assert.Empty(t, d.Village)
}

func TestRegistrationDraft_SameValueKeepsChildren(t *testing.T) {
	d := RegistrationDraft{State: "up", District: "lucknow", Village: "malihabad"}

	require.NoError(t, d.Set(FieldState, "up"))
	require.NoError(t, d.Set(FieldDistrict, "lucknow"))

	assert.Equal(t, "malihabad", d.Village)
}

func TestRegistrationDraft_UnknownField(t *testing.T) {
	var d RegistrationDraft
	assert.Error(t, d.Set("age", "40"))
	_, ok := d.Get("age")
	assert.False(t, ok)
}

func TestRegistrationDraft_DisplayName(t *testing.T) {
	assert.Equal(t, "Ram Kumar", RegistrationDraft{FirstName: "Ram", LastName: "Kumar"}.DisplayName())
	assert.Equal(t, "Ram", RegistrationDraft{FirstName: "Ram"}.DisplayName())
	assert.Equal(t, "Kumar", RegistrationDraft{LastName: "Kumar"}.DisplayName())
	assert.Empty(t, RegistrationDraft{}.DisplayName())
}

func TestAPIResponse_IgnoresOTPEcho(t *testing.T) {
	var resp APIResponse
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"otp":"123456"}`), &resp))

	assert.False(t, resp.Failed())
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "123456")
}

func TestAPIResponse_Failed(t *testing.T) {
	f := false
	assert.True(t, APIResponse{Success: &f}.Failed())
	assert.True(t, APIResponse{Error: "Invalid OTP"}.Failed())
	assert.False(t, APIResponse{Message: "OTP sent successfully"}.Failed())
}
