package user

// AuthResponse is what a successful signup, reset or login yields.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// resetRecord is the recovery code of one phone, kept in the OTP cache.
type resetRecord struct {
	OTP      string `json:"otp"`
	Verified bool   `json:"verified"`
}
