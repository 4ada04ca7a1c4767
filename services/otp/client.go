package otp

import (
	"context"
	"errors"
	"fmt"

	"kisansaarthi/models"

	"go.uber.org/zap"
)

// ErrCooldownActive is returned by Send and Resend while the previous code is
// still fresh.
var ErrCooldownActive = errors.New("otp: resend cooldown active")

// Client wraps a Channel with the resend cooldown. Failed calls never touch
// the cooldown and are not retried.
type Client struct {
	channel  Channel
	cooldown *Cooldown
	window   int
	logger   *zap.Logger
}

// NewClient builds a Client. window is the cooldown length in seconds; a
// negative value falls back to DefaultCooldown.
func NewClient(ch Channel, cooldown *Cooldown, window int, logger *zap.Logger) *Client {
	if cooldown == nil {
		cooldown = NewCooldown()
	}
	if window < 0 {
		window = DefaultCooldown
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{channel: ch, cooldown: cooldown, window: window, logger: logger}
}

// Cooldown exposes the countdown for display.
func (c *Client) Cooldown() *Cooldown {
	return c.cooldown
}

// Send issues the first code and starts the cooldown on success. Sending
// again after stepping back counts as a resend, so it is refused with
// ErrCooldownActive while the countdown runs.
func (c *Client) Send(ctx context.Context, id Identity) error {
	if err := c.cooling(); err != nil {
		return err
	}
	if err := c.channel.Send(ctx, id); err != nil {
		c.logger.Warn("OTP send failed", zap.Error(err))
		return err
	}
	c.cooldown.Start(c.window)
	c.logger.Info("OTP sent", zap.Int("cooldown", c.window))
	return nil
}

// Resend issues a fresh code. While the cooldown runs it returns
// ErrCooldownActive without touching the network.
func (c *Client) Resend(ctx context.Context, id Identity) error {
	if err := c.cooling(); err != nil {
		return err
	}
	if err := c.channel.Resend(ctx, id); err != nil {
		c.logger.Warn("OTP resend failed", zap.Error(err))
		return err
	}
	c.cooldown.Start(c.window)
	c.logger.Info("OTP resent", zap.Int("cooldown", c.window))
	return nil
}

func (c *Client) cooling() error {
	if left := c.cooldown.Remaining(); left > 0 {
		return fmt.Errorf("%w: %d seconds left", ErrCooldownActive, left)
	}
	return nil
}

// Verify checks code and yields the resulting session.
func (c *Client) Verify(ctx context.Context, id Identity, code string) (*models.Session, error) {
	sess, err := c.channel.Verify(ctx, id, code)
	if err != nil {
		c.logger.Warn("OTP verification failed", zap.Error(err))
		return nil, err
	}
	return sess, nil
}

// Close stops the countdown.
func (c *Client) Close() {
	c.cooldown.Stop()
}
