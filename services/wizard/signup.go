package wizard

import (
	"context"
	"fmt"
	"sync"

	"kisansaarthi/models"
	"kisansaarthi/services/otp"
	"kisansaarthi/services/validator"

	"go.uber.org/zap"
)

// SignupStep is a position in the registration flow.
type SignupStep int

const (
	BasicInfo SignupStep = iota
	Location
	SecurityAndContact
	OtpVerify
	SignupComplete
)

func (s SignupStep) String() string {
	switch s {
	case BasicInfo:
		return "basic-info"
	case Location:
		return "location"
	case SecurityAndContact:
		return "security-and-contact"
	case OtpVerify:
		return "otp-verify"
	case SignupComplete:
		return "complete"
	}
	return "unknown"
}

// signupFieldStep is the step that validates each draft field.
var signupFieldStep = map[string]SignupStep{
	models.FieldFirstName:       BasicInfo,
	models.FieldLastName:        BasicInfo,
	models.FieldEmail:           BasicInfo,
	models.FieldState:           Location,
	models.FieldDistrict:        Location,
	models.FieldVillage:         Location,
	models.FieldPassword:        SecurityAndContact,
	models.FieldConfirmPassword: SecurityAndContact,
	models.FieldPhone:           SecurityAndContact,
}

// SignupWizard walks a new user from basic details to a verified account.
// All methods are safe for concurrent use.
type SignupWizard struct {
	codes    *otp.Client
	sessions SessionWriter
	logger   *zap.Logger
	gate     gate

	mu      sync.Mutex
	step    SignupStep
	draft   models.RegistrationDraft
	slots   otp.Slots
	errs    validator.FieldErrors
	session *models.Session
}

// NewSignupWizard starts at BasicInfo with an empty draft. codes must be
// built over a signup channel. sessions may be nil, in which case the
// session is only kept in memory.
func NewSignupWizard(codes *otp.Client, sessions SessionWriter, logger *zap.Logger) *SignupWizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignupWizard{
		codes:    codes,
		sessions: sessions,
		logger:   logger,
		errs:     validator.FieldErrors{},
	}
}

// SetField updates one draft field and clears its error. A field whose step
// was already passed stays locked until Back returns to that step, and no
// field changes while a request is in flight.
func (w *SignupWizard) SetField(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.gate.editable(); err != nil {
		return err
	}
	if owner, ok := signupFieldStep[field]; ok && owner < w.step {
		return fmt.Errorf("%w: %s belongs to %s", ErrWrongStep, field, owner)
	}
	if err := w.draft.Set(field, value); err != nil {
		return err
	}
	w.errs.Clear(field)
	return nil
}

// SetOTPDigit types into one code slot. Non-digits are ignored.
func (w *SignupWizard) SetOTPDigit(index int, value string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	ok := w.slots.Set(index, value)
	if ok {
		w.errs.Clear(models.FieldOTP)
	}
	return ok
}

// SetOTP pastes a whole code.
func (w *SignupWizard) SetOTP(code string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	ok := w.slots.Fill(code)
	if ok {
		w.errs.Clear(models.FieldOTP)
	}
	return ok
}

// Next validates the current step and, where the step needs it, calls the
// backend. The step advances only when both succeed. A failure to store the
// session after verification still completes the flow and is reported as
// ErrSessionNotSaved.
func (w *SignupWizard) Next(ctx context.Context) error {
	ctx, release, err := w.gate.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	w.mu.Lock()
	step, draft, code := w.step, w.draft, w.slots.Code()
	w.mu.Unlock()

	switch step {
	case BasicInfo:
		return w.advance(step, validator.ValidateBasicInfo(draft), Location)
	case Location:
		return w.advance(step, validator.ValidateLocation(draft), SecurityAndContact)
	case SecurityAndContact:
		if err := w.check(validator.ValidateSecurity(draft)); err != nil {
			return err
		}
		if err := w.codes.Send(ctx, otp.Identity{Phone: draft.Phone, Draft: &draft}); err != nil {
			return err
		}
		w.mu.Lock()
		w.slots.Reset()
		w.mu.Unlock()
		return w.advance(step, nil, OtpVerify)
	case OtpVerify:
		if err := w.check(validator.ValidateOTP(code)); err != nil {
			return err
		}
		sess, err := w.codes.Verify(ctx, otp.Identity{Phone: draft.Phone, Draft: &draft}, code)
		if err != nil {
			return err
		}
		// The backend has consumed the signup; from here on the flow is done.
		w.codes.Close()
		w.mu.Lock()
		w.session = sess
		w.mu.Unlock()
		if err := w.advance(step, nil, SignupComplete); err != nil {
			return err
		}
		return persist(ctx, w.sessions, *sess)
	}
	return ErrFinished
}

// check records errs as the current field errors and converts a non-empty
// map into a ValidationError.
func (w *SignupWizard) check(errs validator.FieldErrors) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errs = errs
	if errs.Valid() {
		return nil
	}
	return &ValidationError{Fields: errs.Clone()}
}

func (w *SignupWizard) advance(from SignupStep, errs validator.FieldErrors, to SignupStep) error {
	if errs != nil {
		if err := w.check(errs); err != nil {
			return err
		}
	}
	w.mu.Lock()
	w.step = to
	w.errs = validator.FieldErrors{}
	w.mu.Unlock()
	w.logger.Info("Signup step advanced", zap.Stringer("from", from), zap.Stringer("to", to))
	return nil
}

// Back returns to the previous step without validating or clearing data.
func (w *SignupWizard) Back() error {
	if w.gate.isClosed() {
		return ErrClosed
	}
	if w.gate.loading() {
		return ErrInFlight
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case BasicInfo:
		return ErrFirstStep
	case SignupComplete:
		return ErrFinished
	}
	w.step--
	w.errs = validator.FieldErrors{}
	return nil
}

// Resend asks for a fresh code while on OtpVerify. It is refused during the
// cooldown; a success empties the code slots.
func (w *SignupWizard) Resend(ctx context.Context) error {
	ctx, release, err := w.gate.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	w.mu.Lock()
	step, draft := w.step, w.draft
	w.mu.Unlock()
	if step != OtpVerify {
		return ErrWrongStep
	}
	if err := w.codes.Resend(ctx, otp.Identity{Phone: draft.Phone, Draft: &draft}); err != nil {
		return err
	}
	w.mu.Lock()
	w.slots.Reset()
	w.errs.Clear(models.FieldOTP)
	w.mu.Unlock()
	return nil
}

// Close cancels any request in flight and stops the cooldown.
func (w *SignupWizard) Close() {
	w.gate.close()
	w.codes.Close()
}

// Step is the current position.
func (w *SignupWizard) Step() SignupStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the form.
func (w *SignupWizard) Draft() models.RegistrationDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Errors returns a copy of the current field errors.
func (w *SignupWizard) Errors() validator.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs.Clone()
}

// OTP returns the code typed so far and whether all slots are filled.
func (w *SignupWizard) OTP() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slots.Code(), w.slots.Complete()
}

// Loading is true while a request is in flight.
func (w *SignupWizard) Loading() bool {
	return w.gate.loading()
}

// Cooldown is the number of seconds before Resend is allowed.
func (w *SignupWizard) Cooldown() int {
	return w.codes.Cooldown().Remaining()
}

// Session is the session obtained on completion, or nil.
func (w *SignupWizard) Session() *models.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}
