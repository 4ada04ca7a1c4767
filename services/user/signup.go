package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "kisansaarthi/database/repository/user"
	"kisansaarthi/models"
	"kisansaarthi/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func signupMessage(code string) string {
	return fmt.Sprintf("Your OTP is %s. It is valid for 10 minutes.", code)
}

func signupKey(sessionID string) string {
	return utils.SignupSessionPrefix + sessionID
}

// Signup checks that email and phone are free, parks the draft with a fresh
// code under sessionID and sends the code. A second signup on the same
// session replaces the draft but keeps its send count and cooldown.
func (s *DefaultUserService) Signup(ctx context.Context, sessionID string, d models.RegistrationDraft) error {
	if sessionID == "" {
		return ErrNoSignupData
	}
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	if d.Email == "" || d.Phone == "" || d.Password == "" {
		return invalid("Email, phone and password are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, d.Email)
	if err != nil {
		utils.GetLogger().Error("Signup: failed to check email", zap.Error(err))
		return ErrInternal
	}
	if existing != nil {
		return ErrEmailTaken
	}
	existing, err = s.Repo.GetByPhone(ctx, d.Phone)
	if err != nil {
		utils.GetLogger().Error("Signup: failed to check phone", zap.Error(err))
		return ErrInternal
	}
	if existing != nil {
		return ErrPhoneTaken
	}

	sends := 1
	var previous models.SignupSession
	found, err := s.loadSignup(ctx, sessionID, &previous)
	if err != nil {
		return err
	}
	if found {
		if err := s.checkResend(previous); err != nil {
			return err
		}
		sends = previous.OTPSendCount + 1
	}

	hash, err := s.hash(d.Password)
	if err != nil {
		utils.GetLogger().Error("Signup: failed to hash password", zap.Error(err))
		return ErrInternal
	}
	code, err := utils.GenerateNumericOTP(utils.OTPLength)
	if err != nil {
		return ErrInternal
	}

	pending := models.SignupSession{
		FirstName:    strings.TrimSpace(d.FirstName),
		LastName:     strings.TrimSpace(d.LastName),
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: hash,
		State:        d.State,
		District:     d.District,
		Village:      d.Village,
		OTP:          code,
		OTPSentAt:    s.now(),
		OTPSendCount: sends,
	}
	if err := saveJSON(ctx, s.Cache, signupKey(sessionID), pending, utils.SignupSessionTTL); err != nil {
		return ErrInternal
	}
	if err := s.Sender.SendOTP(ctx, d.Phone, signupMessage(code)); err != nil {
		utils.GetLogger().Error("Signup: failed to send OTP", zap.String("phone", d.Phone), zap.Error(err))
		s.rollbackSignup(ctx, sessionID, found, previous)
		return ErrSendFailed
	}
	utils.GetLogger().Info("Signup OTP sent", zap.String("phone", d.Phone))
	return nil
}

// VerifySignupOTP turns the parked draft into an account when otp matches.
func (s *DefaultUserService) VerifySignupOTP(ctx context.Context, sessionID, otp string) (*AuthResponse, error) {
	var pending models.SignupSession
	found, err := s.loadSignup(ctx, sessionID, &pending)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoSignupData
	}
	if !codesMatch(pending.OTP, otp) {
		return nil, ErrInvalidOTP
	}

	u := models.User{
		ID:           uuid.New().String(),
		FirstName:    pending.FirstName,
		LastName:     pending.LastName,
		Email:        pending.Email,
		Phone:        pending.Phone,
		PasswordHash: pending.PasswordHash,
		State:        pending.State,
		District:     pending.District,
		Village:      pending.Village,
		IsVerified:   true,
	}
	if err := s.Repo.Create(ctx, &u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateUser) {
			return nil, ErrAccountTaken
		}
		utils.GetLogger().Error("VerifySignupOTP: failed to create user", zap.Error(err))
		return nil, ErrInternal
	}
	_ = s.Cache.Del(ctx, signupKey(sessionID))

	token, err := s.issueToken(u.ID, u.Phone)
	if err != nil {
		utils.GetLogger().Error("VerifySignupOTP: failed to generate token", zap.Error(err))
		return nil, ErrInternal
	}
	utils.GetLogger().Info("User registered", zap.String("userID", u.ID))
	return &AuthResponse{ID: u.ID, Token: token, Name: u.DisplayName(), Phone: u.Phone}, nil
}

// ResendSignupOTP replaces the code of a parked signup. It refuses inside
// ResendCooldown of the previous send and after MaxOTPSends codes.
func (s *DefaultUserService) ResendSignupOTP(ctx context.Context, sessionID string) error {
	var pending models.SignupSession
	found, err := s.loadSignup(ctx, sessionID, &pending)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoSignupData
	}

	if err := s.checkResend(pending); err != nil {
		return err
	}

	code, err := utils.GenerateNumericOTP(utils.OTPLength)
	if err != nil {
		return ErrInternal
	}
	pending.OTP = code
	pending.OTPSentAt = s.now()
	pending.OTPSendCount++
	if err := saveJSON(ctx, s.Cache, signupKey(sessionID), pending, utils.SignupSessionTTL); err != nil {
		return ErrInternal
	}
	if err := s.Sender.SendOTP(ctx, pending.Phone, signupMessage(code)); err != nil {
		utils.GetLogger().Error("ResendSignupOTP: failed to send OTP", zap.Error(err))
		return &Error{Code: CodeUnavailable, Message: "Failed to resend OTP. Please try again."}
	}
	utils.GetLogger().Info("Signup OTP resent", zap.String("phone", pending.Phone), zap.Int("count", pending.OTPSendCount))
	return nil
}

// rollbackSignup undoes a parked signup whose code never went out, so the
// failed send does not count against the session.
func (s *DefaultUserService) rollbackSignup(ctx context.Context, sessionID string, hadPrevious bool, previous models.SignupSession) {
	var err error
	if hadPrevious {
		err = saveJSON(ctx, s.Cache, signupKey(sessionID), previous, utils.SignupSessionTTL)
	} else {
		err = s.Cache.Del(ctx, signupKey(sessionID))
	}
	if err != nil {
		utils.GetLogger().Warn("Signup: failed to roll back parked signup", zap.Error(err))
	}
}

// checkResend refuses another code for pending inside ResendCooldown of the
// last one or once MaxOTPSends codes went out.
func (s *DefaultUserService) checkResend(pending models.SignupSession) error {
	if elapsed := s.now().Sub(pending.OTPSentAt); elapsed < ResendCooldown {
		remaining := int(ResendCooldown.Seconds()) - int(elapsed.Seconds())
		if remaining < 0 {
			remaining = 0
		}
		return CooldownError{Remaining: remaining}
	}
	if pending.OTPSendCount >= MaxOTPSends {
		return ErrMaxResends
	}
	return nil
}

func (s *DefaultUserService) loadSignup(ctx context.Context, sessionID string, into *models.SignupSession) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	found, err := loadJSON(ctx, s.Cache, signupKey(sessionID), into)
	if err != nil {
		return false, ErrInternal
	}
	return found, nil
}
