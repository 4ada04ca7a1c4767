// Package session persists the credential a finished flow hands back and reads
// it again for later commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kisansaarthi/models"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

// Materializer writes and reads the session keys of a Store. It does not
// refresh or expire anything.
type Materializer struct {
	store  Store
	logger *zap.Logger
}

func NewMaterializer(store Store, logger *zap.Logger) *Materializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Materializer{store: store, logger: logger}
}

// Materialize persists sess. An empty token is skipped. A new token without
// a name removes the stored name, which may belong to another account.
func (m *Materializer) Materialize(ctx context.Context, sess models.Session) error {
	if sess.Token != "" {
		if err := m.store.Set(ctx, KeyToken, sess.Token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
	}
	name := strings.TrimSpace(sess.DisplayName)
	switch {
	case name != "":
		if err := m.store.Set(ctx, KeyUserName, name); err != nil {
			return fmt.Errorf("store user name: %w", err)
		}
	case sess.Token != "":
		if err := m.store.Delete(ctx, KeyUserName); err != nil {
			return fmt.Errorf("delete user name: %w", err)
		}
	}
	m.logger.Info("Session stored",
		zap.Bool("token", sess.Token != ""),
		zap.String("userName", strings.TrimSpace(sess.DisplayName)))
	return nil
}

// Current reads the persisted session. Missing keys come back empty.
func (m *Materializer) Current(ctx context.Context) (models.Session, error) {
	var sess models.Session
	token, err := m.store.Get(ctx, KeyToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return sess, fmt.Errorf("read token: %w", err)
	}
	name, err := m.store.Get(ctx, KeyUserName)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return sess, fmt.Errorf("read user name: %w", err)
	}
	sess.Token = token
	sess.DisplayName = name
	return sess, nil
}

// Clear removes both keys, as on logout.
func (m *Materializer) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyToken); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if err := m.store.Delete(ctx, KeyUserName); err != nil {
		return fmt.Errorf("delete user name: %w", err)
	}
	m.logger.Info("Session cleared")
	return nil
}

// TokenInfo is what can be read from a token without the signing key.
type TokenInfo struct {
	Subject   string
	Phone     string
	ExpiresAt time.Time
}

// Expired reports whether the token carried an exp claim that has passed.
// Nothing acts on it; the backend stays the authority.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// ErrOpaqueToken means the token is not a JWT.
var ErrOpaqueToken = errors.New("session: token is not a JWT")

// Describe decodes the claims of a JWT without verifying its signature.
func Describe(token string) (TokenInfo, error) {
	var info TokenInfo
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return info, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}
	info.Subject, _ = claims["sub"].(string)
	info.Phone, _ = claims["phone"].(string)
	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return info, nil
}
