package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// GenerateNumericOTP returns a uniformly random string of length decimal digits.
func GenerateNumericOTP(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}

// OTPSender delivers a code to a phone number.
type OTPSender interface {
	SendOTP(ctx context.Context, phone, message string) error
}

// LogSender writes outgoing messages to the log instead of an SMS gateway.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) SendOTP(_ context.Context, phone, message string) error {
	logger := s.Logger
	if logger == nil {
		logger = GetLogger()
	}
	logger.Info("Sending OTP message", zap.String("phone", phone), zap.String("message", message))
	return nil
}
