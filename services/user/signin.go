package user

import (
	"context"

	"kisansaarthi/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies phone and password and issues a token.
func (s *DefaultUserService) Login(ctx context.Context, phone, password string) (*AuthResponse, error) {
	if phone == "" || password == "" {
		return nil, invalid("Missing phone or password")
	}
	u, err := s.Repo.GetByPhone(ctx, phone)
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, ErrInternal
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	token, err := s.issueToken(u.ID, u.Phone)
	if err != nil {
		utils.GetLogger().Error("Login: failed to generate token", zap.Error(err))
		return nil, ErrInternal
	}
	return &AuthResponse{ID: u.ID, Token: token, Name: u.DisplayName(), Phone: u.Phone}, nil
}
