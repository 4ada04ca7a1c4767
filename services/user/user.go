package user

import (
	"time"

	userRepo "kisansaarthi/database/repository/user"
	"kisansaarthi/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	// ResendCooldown is the minimum gap between two signup codes.
	ResendCooldown = 60 * time.Second
	// MaxOTPSends caps signup codes per session, the first one included.
	MaxOTPSends = 5
	// DefaultTokenTTL applies when TokenTTL is unset.
	DefaultTokenTTL = 72 * time.Hour
)

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Cache    utils.KV
	Sender   utils.OTPSender
	Signer   *utils.Signer
	TokenTTL time.Duration
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultUserService) hash(password string) (string, error) {
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *DefaultUserService) issueToken(id, phone string) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return s.Signer.GenerateToken(id, phone, ttl)
}
