package otp

import (
	"context"
	"errors"

	"kisansaarthi/models"
	"kisansaarthi/services/api"
)

// Identity names whom a code is for. Signup sends the whole draft; recovery
// only needs the phone.
type Identity struct {
	Phone string
	Draft *models.RegistrationDraft
}

// Channel is one remote code flow.
type Channel interface {
	Send(ctx context.Context, id Identity) error
	Resend(ctx context.Context, id Identity) error
	// Verify checks code. A nil error always comes with a non-nil session,
	// which may be empty when the backend issued no token.
	Verify(ctx context.Context, id Identity, code string) (*models.Session, error)
}

var errNoDraft = errors.New("otp: signup identity has no draft")

// signupChannel drives /api/signup/, /api/resend-otp/ and /api/verify-otp/.
// The backend ties the three together with a cookie, so the identity only
// matters for Send.
type signupChannel struct {
	api *api.Client
}

// NewSignupChannel sends the full draft as the first code request.
func NewSignupChannel(c *api.Client) Channel {
	return &signupChannel{api: c}
}

func (s *signupChannel) Send(ctx context.Context, id Identity) error {
	if id.Draft == nil {
		return errNoDraft
	}
	return s.api.Signup(ctx, *id.Draft)
}

func (s *signupChannel) Resend(ctx context.Context, _ Identity) error {
	return s.api.ResendSignupOTP(ctx)
}

func (s *signupChannel) Verify(ctx context.Context, id Identity, code string) (*models.Session, error) {
	token, err := s.api.VerifySignupOTP(ctx, code)
	if err != nil {
		return nil, err
	}
	sess := &models.Session{Token: token}
	if id.Draft != nil {
		sess.DisplayName = id.Draft.DisplayName()
	}
	return sess, nil
}

// recoveryChannel drives the forgot-password endpoints. Resending is another
// send for the same phone.
type recoveryChannel struct {
	api *api.Client
}

// NewRecoveryChannel verifies codes without yielding a token; the token comes
// with the password reset.
func NewRecoveryChannel(c *api.Client) Channel {
	return &recoveryChannel{api: c}
}

func (r *recoveryChannel) Send(ctx context.Context, id Identity) error {
	return r.api.SendResetOTP(ctx, id.Phone)
}

func (r *recoveryChannel) Resend(ctx context.Context, id Identity) error {
	return r.api.SendResetOTP(ctx, id.Phone)
}

func (r *recoveryChannel) Verify(ctx context.Context, id Identity, code string) (*models.Session, error) {
	if err := r.api.VerifyResetOTP(ctx, id.Phone, code); err != nil {
		return nil, err
	}
	return &models.Session{}, nil
}
