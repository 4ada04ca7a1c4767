package wizard

import (
	"context"
	"fmt"
	"sync"

	"kisansaarthi/models"
	"kisansaarthi/services/api"
	"kisansaarthi/services/otp"
	"kisansaarthi/services/validator"

	"go.uber.org/zap"
)

// RecoveryStep is a position in the forgot-password flow.
type RecoveryStep int

const (
	EnterPhone RecoveryStep = iota
	VerifyOtp
	SetNewPassword
	RecoveryComplete
)

func (s RecoveryStep) String() string {
	switch s {
	case EnterPhone:
		return "enter-phone"
	case VerifyOtp:
		return "verify-otp"
	case SetNewPassword:
		return "set-new-password"
	case RecoveryComplete:
		return "complete"
	}
	return "unknown"
}

// PasswordResetter submits the new password once the code was accepted.
// *api.Client satisfies it.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, phone, newPassword string) (*api.LoginResult, error)
}

// recoveryFieldStep is the step that validates each draft field.
var recoveryFieldStep = map[string]RecoveryStep{
	models.FieldPhone:           EnterPhone,
	models.FieldNewPassword:     SetNewPassword,
	models.FieldConfirmPassword: SetNewPassword,
}

// RecoveryWizard resets a forgotten password through a phone code.
type RecoveryWizard struct {
	codes    *otp.Client
	resetter PasswordResetter
	sessions SessionWriter
	logger   *zap.Logger
	gate     gate

	mu      sync.Mutex
	step    RecoveryStep
	draft   models.PasswordResetDraft
	slots   otp.Slots
	errs    validator.FieldErrors
	session *models.Session
}

// NewRecoveryWizard starts at EnterPhone. codes must be built over a
// recovery channel.
func NewRecoveryWizard(codes *otp.Client, resetter PasswordResetter, sessions SessionWriter, logger *zap.Logger) *RecoveryWizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecoveryWizard{
		codes:    codes,
		resetter: resetter,
		sessions: sessions,
		logger:   logger,
		errs:     validator.FieldErrors{},
	}
}

// SetField updates one draft field and clears its error. The phone is locked
// once the code was sent, and nothing changes while a request is in flight.
func (w *RecoveryWizard) SetField(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.gate.editable(); err != nil {
		return err
	}
	if owner, ok := recoveryFieldStep[field]; ok && owner < w.step {
		return fmt.Errorf("%w: %s belongs to %s", ErrWrongStep, field, owner)
	}
	if err := w.draft.Set(field, value); err != nil {
		return err
	}
	w.errs.Clear(field)
	return nil
}

// SetOTPDigit types into one code slot. Non-digits are ignored.
func (w *RecoveryWizard) SetOTPDigit(index int, value string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	ok := w.slots.Set(index, value)
	if ok {
		w.errs.Clear(models.FieldOTP)
	}
	return ok
}

// SetOTP pastes a whole code.
func (w *RecoveryWizard) SetOTP(code string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	ok := w.slots.Fill(code)
	if ok {
		w.errs.Clear(models.FieldOTP)
	}
	return ok
}

// Next validates the current step, performs its backend call and advances.
// Once the password is reset the flow completes even if storing the session
// fails; that is reported as ErrSessionNotSaved.
func (w *RecoveryWizard) Next(ctx context.Context) error {
	ctx, release, err := w.gate.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	w.mu.Lock()
	step, draft, code := w.step, w.draft, w.slots.Code()
	w.mu.Unlock()
	id := otp.Identity{Phone: draft.Phone}

	switch step {
	case EnterPhone:
		if err := w.check(validator.ValidatePhone(draft.Phone)); err != nil {
			return err
		}
		if err := w.codes.Send(ctx, id); err != nil {
			return err
		}
		w.mu.Lock()
		w.slots.Reset()
		w.mu.Unlock()
		return w.advance(step, VerifyOtp)
	case VerifyOtp:
		if err := w.check(validator.ValidateOTP(code)); err != nil {
			return err
		}
		if _, err := w.codes.Verify(ctx, id, code); err != nil {
			return err
		}
		return w.advance(step, SetNewPassword)
	case SetNewPassword:
		if err := w.check(validator.ValidateNewPassword(draft)); err != nil {
			return err
		}
		res, err := w.resetter.ResetPassword(ctx, draft.Phone, draft.NewPassword)
		if err != nil {
			return err
		}
		sess := &models.Session{}
		if res != nil {
			sess.Token = res.Token
			if res.User != nil {
				sess.DisplayName = res.User.Name
			}
		}
		w.codes.Close()
		w.mu.Lock()
		w.session = sess
		w.mu.Unlock()
		if err := w.advance(step, RecoveryComplete); err != nil {
			return err
		}
		if sess.Token == "" {
			return nil
		}
		return persist(ctx, w.sessions, *sess)
	}
	return ErrFinished
}

// check records errs and converts a non-empty map into a ValidationError.
func (w *RecoveryWizard) check(errs validator.FieldErrors) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errs = errs
	if errs.Valid() {
		return nil
	}
	return &ValidationError{Fields: errs.Clone()}
}

func (w *RecoveryWizard) advance(from, to RecoveryStep) error {
	w.mu.Lock()
	w.step = to
	w.errs = validator.FieldErrors{}
	w.mu.Unlock()
	w.logger.Info("Recovery step advanced", zap.Stringer("from", from), zap.Stringer("to", to))
	return nil
}

// Back returns to the previous step without validating.
func (w *RecoveryWizard) Back() error {
	if w.gate.isClosed() {
		return ErrClosed
	}
	if w.gate.loading() {
		return ErrInFlight
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case EnterPhone:
		return ErrFirstStep
	case RecoveryComplete:
		return ErrFinished
	}
	w.step--
	w.errs = validator.FieldErrors{}
	return nil
}

// Resend sends another code to the same phone while on VerifyOtp.
func (w *RecoveryWizard) Resend(ctx context.Context) error {
	ctx, release, err := w.gate.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	w.mu.Lock()
	step, phone := w.step, w.draft.Phone
	w.mu.Unlock()
	if step != VerifyOtp {
		return ErrWrongStep
	}
	if err := w.codes.Resend(ctx, otp.Identity{Phone: phone}); err != nil {
		return err
	}
	w.mu.Lock()
	w.slots.Reset()
	w.errs.Clear(models.FieldOTP)
	w.mu.Unlock()
	return nil
}

// Close cancels any request in flight and stops the cooldown.
func (w *RecoveryWizard) Close() {
	w.gate.close()
	w.codes.Close()
}

// Step is the current position.
func (w *RecoveryWizard) Step() RecoveryStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the form.
func (w *RecoveryWizard) Draft() models.PasswordResetDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Errors returns a copy of the current field errors.
func (w *RecoveryWizard) Errors() validator.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs.Clone()
}

// OTP returns the code typed so far and whether all slots are filled.
func (w *RecoveryWizard) OTP() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slots.Code(), w.slots.Complete()
}

// Loading is true while a request is in flight.
func (w *RecoveryWizard) Loading() bool {
	return w.gate.loading()
}

// Cooldown is the number of seconds before Resend is allowed.
func (w *RecoveryWizard) Cooldown() int {
	return w.codes.Cooldown().Remaining()
}

// Session is set on completion. Its token is empty when the backend issued none.
func (w *RecoveryWizard) Session() *models.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}
