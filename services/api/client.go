// Package api is the HTTP client for the KisanSaarthi backend endpoints used
// by the account wizards.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"kisansaarthi/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

const (
	PathSignup          = "/api/signup/"
	PathVerifyOTP       = "/api/verify-otp/"
	PathResendOTP       = "/api/resend-otp/"
	PathForgotSendOTP   = "/api/forgot-password/send-otp/"
	PathForgotVerifyOTP = "/api/forgot-password/verify-otp/"
	PathForgotReset     = "/api/forgot-password/reset/"
	PathLogin           = "/api/login/"
)

// DefaultTimeout bounds every request when Options.Timeout is zero.
const DefaultTimeout = 15 * time.Second

const maxBodyBytes = 1 << 20

// Fallback messages per operation, used when the server sends none.
var fallbackMessages = map[string]string{
	"signup":            "Signup failed",
	"verify-otp":        "OTP verification failed",
	"resend-otp":        "Failed to resend OTP",
	"forgot-send-otp":   "Failed to send OTP",
	"forgot-verify-otp": "Failed to verify OTP",
	"forgot-reset":      "Failed to reset password",
	"login":             "Login failed",
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient is optional. A cookie jar is attached if it has none, since
	// the signup endpoints keep the draft in a server-side session.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient validates the base URL and prepares the cookie-carrying client.
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", opts.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	} else {
		copied := *hc
		hc = &copied
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{baseURL: base, http: hc, timeout: timeout, logger: logger}, nil
}

// Signup submits the full draft; the backend answers by sending an OTP.
func (c *Client) Signup(ctx context.Context, draft models.RegistrationDraft) error {
	_, err := c.post(ctx, "signup", PathSignup, draft)
	return err
}

// VerifySignupOTP completes registration and returns the token, if issued.
func (c *Client) VerifySignupOTP(ctx context.Context, code string) (string, error) {
	resp, err := c.post(ctx, "verify-otp", PathVerifyOTP, models.OTPVerifyRequest{OTP: code})
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ResendSignupOTP asks for a fresh signup code for the current cookie session.
func (c *Client) ResendSignupOTP(ctx context.Context) error {
	_, err := c.post(ctx, "resend-otp", PathResendOTP, struct{}{})
	return err
}

// SendResetOTP starts, or restarts, password recovery for phone.
func (c *Client) SendResetOTP(ctx context.Context, phone string) error {
	_, err := c.post(ctx, "forgot-send-otp", PathForgotSendOTP, models.PhoneRequest{Phone: phone})
	return err
}

// VerifyResetOTP checks the recovery code for phone.
func (c *Client) VerifyResetOTP(ctx context.Context, phone, code string) error {
	_, err := c.post(ctx, "forgot-verify-otp", PathForgotVerifyOTP, models.PhoneOTPRequest{Phone: phone, OTP: code})
	return err
}

// ResetPassword sets the new password. The backend may log the user in; the
// result then carries the token and the user.
func (c *Client) ResetPassword(ctx context.Context, phone, newPassword string) (*LoginResult, error) {
	resp, err := c.post(ctx, "forgot-reset", PathForgotReset, models.ResetRequest{Phone: phone, NewPassword: newPassword})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: resp.Token, User: resp.User}, nil
}

// LoginResult is what a successful login or password reset yields. Token is
// empty and User nil when the backend issued neither.
type LoginResult struct {
	Token string
	User  *models.LoginUser
}

// Login authenticates by phone and password.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	resp, err := c.post(ctx, "login", PathLogin, req)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: resp.Token, User: resp.User}, nil
}

// post performs one JSON round trip. Every failure comes back as *ChannelError.
func (c *Client) post(ctx context.Context, op, path string, body interface{}) (*models.APIResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &ChannelError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	endpoint := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ChannelError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logger := c.logger.With(zap.String("op", op), zap.String("requestId", requestID))
	start := time.Now()

	res, err := c.http.Do(req)
	if err != nil {
		cerr := transportError(ctx, op, err)
		logger.Warn("request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, cerr
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		cerr := transportError(ctx, op, err)
		cerr.Status = res.StatusCode
		logger.Warn("reading response failed", zap.Int("status", res.StatusCode), zap.Error(err))
		return nil, cerr
	}

	logger.Debug("request completed",
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	var resp models.APIResponse
	decodeErr := json.Unmarshal(raw, &resp)
	ok := res.StatusCode >= 200 && res.StatusCode < 300

	switch {
	case decodeErr != nil && ok:
		logger.Warn("malformed response", zap.Int("status", res.StatusCode), zap.Error(decodeErr))
		return nil, &ChannelError{
			Op:        op,
			Status:    res.StatusCode,
			Message:   fallbackMessages[op],
			Malformed: true,
			Err:       fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr),
		}
	case decodeErr != nil:
		logger.Warn("request rejected", zap.Int("status", res.StatusCode))
		return nil, &ChannelError{Op: op, Status: res.StatusCode, Message: fallbackMessages[op], Malformed: true, Err: decodeErr}
	case !ok || resp.Failed():
		msg := resp.Error
		if msg == "" {
			msg = fallbackMessages[op]
		}
		logger.Info("request rejected", zap.Int("status", res.StatusCode), zap.String("error", msg))
		return nil, &ChannelError{Op: op, Status: res.StatusCode, Message: msg}
	}
	return &resp, nil
}

func transportError(ctx context.Context, op string, err error) *ChannelError {
	cerr := &ChannelError{Op: op, Message: genericFailure, Err: err}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		cerr.Timeout = true
		cerr.Message = "Request timed out. Please try again."
	case errors.Is(ctx.Err(), context.Canceled):
		cerr.Message = "Request cancelled."
		cerr.Err = fmt.Errorf("%w: %v", context.Canceled, err)
	}
	return cerr
}
