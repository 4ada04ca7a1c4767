package utils

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_SetGetDel(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, kv.Set(ctx, "token", "abc", 0))
	got, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, kv.Del(ctx, "token"))
	_, err = kv.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryKV_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	kv := NewMemoryKV().WithClock(func() time.Time { return now })

	require.NoError(t, kv.Set(ctx, "otp:1", "123456", time.Minute))
	require.NoError(t, kv.Set(ctx, "otp:2", "654321", time.Hour))

	now = now.Add(59 * time.Second)
	_, err := kv.Get(ctx, "otp:1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = kv.Get(ctx, "otp:1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, kv.Purge())
}

func TestGenerateNumericOTP(t *testing.T) {
	digits := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateNumericOTP(OTPLength)
		require.NoError(t, err)
		assert.Regexp(t, digits, code)
	}
}

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("secret")
	token, err := s.GenerateToken("user-1", "9876543210", time.Hour)
	require.NoError(t, err)

	id, err := s.ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	_, err = NewSigner("other").ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestSigner_ExpiredToken(t *testing.T) {
	s := NewSigner("secret")
	token, err := s.GenerateToken("user-1", "9876543210", -time.Minute)
	require.NoError(t, err)

	_, err = s.ExtractIDFromToken(token)
	assert.Error(t, err)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthMonitor_Check(t *testing.T) {
	m := NewHealthMonitor(map[string]Pinger{
		"cache":    pingerFunc(func(context.Context) error { return nil }),
		"database": pingerFunc(func(context.Context) error { return errors.New("down") }),
	})

	status := m.Check(context.Background())
	assert.True(t, status.Services["cache"])
	assert.False(t, status.Services["database"])
	assert.False(t, status.Healthy())
	assert.Equal(t, status, m.Status())
}
