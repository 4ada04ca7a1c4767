package wizard

import (
	"context"
	"sync"

	"kisansaarthi/models"
	"kisansaarthi/services/api"
	"kisansaarthi/services/validator"

	"go.uber.org/zap"
)

// Authenticator checks phone and password against the backend.
// *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*api.LoginResult, error)
}

// LoginFlow is the single-step login form, held to the same loading gate as
// the wizards.
type LoginFlow struct {
	auth     Authenticator
	sessions SessionWriter
	logger   *zap.Logger
	gate     gate

	mu   sync.Mutex
	req  models.LoginRequest
	errs validator.FieldErrors
	user *models.LoginUser
}

// NewLoginFlow returns an empty form. sessions may be nil.
func NewLoginFlow(auth Authenticator, sessions SessionWriter, logger *zap.Logger) *LoginFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginFlow{auth: auth, sessions: sessions, logger: logger, errs: validator.FieldErrors{}}
}

// SetField updates one form field and clears its error. It is refused while
// Submit waits on the backend.
func (f *LoginFlow) SetField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.gate.editable(); err != nil {
		return err
	}
	if err := f.req.Set(field, value); err != nil {
		return err
	}
	f.errs.Clear(field)
	return nil
}

// Submit logs in and persists the token and the user's name.
func (f *LoginFlow) Submit(ctx context.Context) (*models.Session, error) {
	ctx, release, err := f.gate.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	f.mu.Lock()
	req := f.req
	errs := validator.ValidateLogin(req)
	f.errs = errs
	f.mu.Unlock()
	if !errs.Valid() {
		return nil, &ValidationError{Fields: errs.Clone()}
	}

	res, err := f.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	sess := &models.Session{Token: res.Token}
	if res.User != nil {
		sess.DisplayName = res.User.Name
	}
	if f.sessions != nil {
		if err := f.sessions.Materialize(ctx, *sess); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	f.user = res.User
	f.mu.Unlock()
	f.logger.Info("Logged in", zap.String("phone", req.Phone))
	return sess, nil
}

// Errors returns a copy of the current field errors.
func (f *LoginFlow) Errors() validator.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs.Clone()
}

// Loading is true while Submit waits on the backend.
func (f *LoginFlow) Loading() bool {
	return f.gate.loading()
}

// User is the profile returned by the last successful login.
func (f *LoginFlow) User() *models.LoginUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

// Close cancels a login in flight.
func (f *LoginFlow) Close() {
	f.gate.close()
}
