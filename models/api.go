package models

// APIResponse is the union of every envelope the backend returns. Fields a
// given endpoint does not send stay zero. A development OTP echo, if present
// on the wire, is deliberately not decoded.
type APIResponse struct {
	Success *bool      `json:"success,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   string     `json:"error,omitempty"`
	Token   string     `json:"token,omitempty"`
	User    *LoginUser `json:"user,omitempty"`
}

// Failed reports an explicit failure inside a 2xx body.
func (r APIResponse) Failed() bool {
	return r.Error != "" || (r.Success != nil && !*r.Success)
}

// LoginUser is the profile summary returned by /api/login/.
type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OTPVerifyRequest is the body of POST /api/verify-otp/.
type OTPVerifyRequest struct {
	OTP string `json:"otp" binding:"required"`
}

// PhoneRequest is the body of POST /api/forgot-password/send-otp/.
type PhoneRequest struct {
	Phone string `json:"phone"`
}

// PhoneOTPRequest is the body of POST /api/forgot-password/verify-otp/.
type PhoneOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// ResetRequest is the body of POST /api/forgot-password/reset/.
type ResetRequest struct {
	Phone       string `json:"phone"`
	NewPassword string `json:"newPassword"`
}
