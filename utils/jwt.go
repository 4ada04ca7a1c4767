package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Signer mints and validates HS256 tokens for the stub backend.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	if secret == "" {
		secret = "kisansaarthi-dev"
	}
	return &Signer{secret: []byte(secret)}
}

// GenerateToken creates a signed JWT token with the given subject and phone.
// The token expires after the specified duration.
func (s *Signer) GenerateToken(subject, phone string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"phone": phone,
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func (s *Signer) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
}

// ExtractIDFromToken extracts the subject from a valid JWT token string.
func (s *Signer) ExtractIDFromToken(tokenString string) (string, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
