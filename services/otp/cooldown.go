package otp

import (
	"sync"
	"time"
)

// DefaultCooldown is the wait between successful sends.
const DefaultCooldown = 60

// Timer is the handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler uses time.AfterFunc.
var RealScheduler Scheduler = realScheduler{}

// Cooldown counts whole seconds down to zero with a single self-rescheduling
// callback. Remaining never goes negative.
type Cooldown struct {
	mu        sync.Mutex
	remaining int
	timer     Timer
	gen       uint64
	sched     Scheduler
	interval  time.Duration
	onTick    func(remaining int)
}

// CooldownOption customises a Cooldown.
type CooldownOption func(*Cooldown)

// WithScheduler swaps the clock, mainly for tests.
func WithScheduler(s Scheduler) CooldownOption {
	return func(c *Cooldown) { c.sched = s }
}

// WithTickInterval changes the length of one tick.
func WithTickInterval(d time.Duration) CooldownOption {
	return func(c *Cooldown) { c.interval = d }
}

// WithOnTick registers a callback run after every decrement, outside the lock.
func WithOnTick(f func(remaining int)) CooldownOption {
	return func(c *Cooldown) { c.onTick = f }
}

// NewCooldown returns a stopped countdown ticking once a second on the real
// clock unless opts say otherwise.
func NewCooldown(opts ...CooldownOption) *Cooldown {
	c := &Cooldown{sched: RealScheduler, interval: time.Second}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start restarts the countdown at seconds.
func (c *Cooldown) Start(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.remaining = seconds
	if seconds > 0 {
		c.scheduleLocked()
	}
}

// Remaining is the number of seconds left.
func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Active reports whether a resend is still blocked.
func (c *Cooldown) Active() bool {
	return c.Remaining() > 0
}

// Stop cancels the pending tick and zeroes the counter.
func (c *Cooldown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.remaining = 0
}

func (c *Cooldown) stopLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Cooldown) scheduleLocked() {
	gen := c.gen
	c.timer = c.sched.AfterFunc(c.interval, func() { c.tick(gen) })
}

func (c *Cooldown) tick(gen uint64) {
	c.mu.Lock()
	// A restart or Stop raced with this callback.
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	remaining := c.remaining
	if remaining > 0 {
		c.scheduleLocked()
	} else {
		c.timer = nil
	}
	onTick := c.onTick
	c.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
}
