package user

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"kisansaarthi/utils"

	"go.uber.org/zap"
)

// MinPasswordLength is the only rule a reset password must meet.
const MinPasswordLength = 6

func resetKey(phone string) string {
	return utils.ResetSessionPrefix + phone
}

// SendResetOTP sends a recovery code to a registered phone. A new send
// replaces any earlier code, verified or not.
func (s *DefaultUserService) SendResetOTP(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return invalid("Phone number is required")
	}
	u, err := s.Repo.GetByPhone(ctx, phone)
	if err != nil {
		utils.GetLogger().Error("SendResetOTP: failed to fetch user", zap.Error(err))
		return ErrInternal
	}
	if u == nil {
		return ErrUserNotFound
	}

	code, err := utils.GenerateNumericOTP(utils.OTPLength)
	if err != nil {
		return ErrInternal
	}
	if err := saveJSON(ctx, s.Cache, resetKey(phone), resetRecord{OTP: code}, utils.OTPTTL); err != nil {
		return ErrInternal
	}
	if err := s.Sender.SendOTP(ctx, phone, fmt.Sprintf("Your OTP for password reset is %s", code)); err != nil {
		utils.GetLogger().Error("SendResetOTP: failed to send OTP", zap.Error(err))
		return &Error{Code: CodeUnavailable, Message: "Failed to send OTP"}
	}
	utils.GetLogger().Info("Reset OTP sent", zap.String("userID", u.ID))
	return nil
}

// VerifyResetOTP checks the recovery code of phone.
func (s *DefaultUserService) VerifyResetOTP(ctx context.Context, phone, otp string) error {
	if phone == "" || otp == "" {
		return invalid("Phone and OTP are required")
	}
	var rec resetRecord
	found, err := loadJSON(ctx, s.Cache, resetKey(phone), &rec)
	if err != nil {
		return ErrInternal
	}
	if !found || !codesMatch(rec.OTP, otp) {
		return ErrInvalidOTP
	}
	rec.Verified = true
	if err := saveJSON(ctx, s.Cache, resetKey(phone), rec, utils.OTPTTL); err != nil {
		return ErrInternal
	}
	return nil
}

// ResetPassword sets a new password for phone once its code was verified,
// then signs the user in.
func (s *DefaultUserService) ResetPassword(ctx context.Context, phone, newPassword string) (*AuthResponse, error) {
	if phone == "" || newPassword == "" {
		return nil, invalid("Phone and new password are required")
	}
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		return nil, ErrPasswordTooWeak
	}
	u, err := s.Repo.GetByPhone(ctx, phone)
	if err != nil {
		utils.GetLogger().Error("ResetPassword: failed to fetch user", zap.Error(err))
		return nil, ErrInternal
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	var rec resetRecord
	found, err := loadJSON(ctx, s.Cache, resetKey(phone), &rec)
	if err != nil {
		return nil, ErrInternal
	}
	if !found || !rec.Verified {
		return nil, ErrOTPNotVerified
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		utils.GetLogger().Error("ResetPassword: failed to hash password", zap.Error(err))
		return nil, ErrInternal
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		utils.GetLogger().Error("ResetPassword: failed to update password", zap.Error(err))
		return nil, ErrInternal
	}
	_ = s.Cache.Del(ctx, resetKey(phone))

	token, err := s.issueToken(u.ID, u.Phone)
	if err != nil {
		return nil, ErrInternal
	}
	utils.GetLogger().Sugar().Infof("ResetPassword: password updated for user %s", u.ID)
	return &AuthResponse{ID: u.ID, Token: token, Name: u.DisplayName(), Phone: u.Phone}, nil
}
