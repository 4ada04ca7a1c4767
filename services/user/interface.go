package user

import (
	"context"

	"kisansaarthi/models"
)

// UserService is the account side of the backend contract the wizards talk
// to: signup with phone verification, password recovery and login.
type UserService interface {
	// Signup stores the draft under sessionID and sends the first code.
	Signup(ctx context.Context, sessionID string, draft models.RegistrationDraft) error
	// VerifySignupOTP creates the account once the code matches.
	VerifySignupOTP(ctx context.Context, sessionID, otp string) (*AuthResponse, error)
	// ResendSignupOTP issues a new code, subject to cooldown and send limit.
	ResendSignupOTP(ctx context.Context, sessionID string) error

	// SendResetOTP starts recovery for an existing phone.
	SendResetOTP(ctx context.Context, phone string) error
	// VerifyResetOTP marks the recovery code as verified.
	VerifyResetOTP(ctx context.Context, phone, otp string) error
	// ResetPassword sets the new password after a verified code.
	ResetPassword(ctx context.Context, phone, newPassword string) (*AuthResponse, error)

	// Login checks phone and password.
	Login(ctx context.Context, phone, password string) (*AuthResponse, error)
}
