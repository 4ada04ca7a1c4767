package otp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"kisansaarthi/models"
	"kisansaarthi/services/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTask struct {
	f       func()
	stopped bool
}

type fakeTimer struct {
	s    *fakeScheduler
	task *fakeTask
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	was := !t.task.stopped
	t.task.stopped = true
	return was
}

// fakeScheduler fires callbacks only when the test says so.
type fakeScheduler struct {
	mu      sync.Mutex
	pending []*fakeTask
}

func (s *fakeScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &fakeTask{f: f}
	s.pending = append(s.pending, task)
	return &fakeTimer{s: s, task: task}
}

// Tick fires the oldest live callback. It returns false when none is pending.
func (s *fakeScheduler) Tick() bool {
	s.mu.Lock()
	var next *fakeTask
	for len(s.pending) > 0 {
		next, s.pending = s.pending[0], s.pending[1:]
		if !next.stopped {
			break
		}
		next = nil
	}
	s.mu.Unlock()
	if next == nil {
		return false
	}
	next.f()
	return true
}

func (s *fakeScheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func TestSlots_SetDigits(t *testing.T) {
	var s Slots
	assert.True(t, s.Set(0, "5"))
	assert.Equal(t, "5", s.Get(0))

	assert.False(t, s.Set(0, "a"), "non-digit must be rejected")
	assert.Equal(t, "5", s.Get(0), "rejected input leaves the slot unchanged")

	assert.False(t, s.Set(0, "7x"))
	assert.Equal(t, "5", s.Get(0))

	assert.True(t, s.Set(0, "12"))
	assert.Equal(t, "2", s.Get(0), "last typed digit wins")

	assert.True(t, s.Set(0, ""))
	assert.Equal(t, "", s.Get(0))

	assert.False(t, s.Set(-1, "1"))
	assert.False(t, s.Set(Length, "1"))
}

func TestSlots_Complete(t *testing.T) {
	var s Slots
	for i := 0; i < Length-1; i++ {
		require.True(t, s.Set(i, "1"))
	}
	assert.False(t, s.Complete())
	require.True(t, s.Set(Length-1, "9"))
	assert.True(t, s.Complete())
	assert.Equal(t, "111119", s.Code())

	s.Set(2, "")
	assert.False(t, s.Complete())

	s.Reset()
	assert.Equal(t, "", s.Code())
}

func TestSlots_Fill(t *testing.T) {
	var s Slots
	assert.True(t, s.Fill("123456"))
	assert.True(t, s.Complete())
	assert.Equal(t, "123456", s.Code())

	assert.True(t, s.Fill("12"))
	assert.False(t, s.Complete())
	assert.Equal(t, "12", s.Code())

	assert.False(t, s.Fill("1234567"))
	assert.False(t, s.Fill("12a456"))
	assert.Equal(t, "12", s.Code())
}

func TestCooldown_CountsDownToZero(t *testing.T) {
	sched := &fakeScheduler{}
	var seen []int
	c := NewCooldown(WithScheduler(sched), WithOnTick(func(r int) { seen = append(seen, r) }))

	c.Start(3)
	assert.Equal(t, 3, c.Remaining())
	assert.True(t, c.Active())
	assert.Equal(t, 1, sched.Live(), "exactly one callback is scheduled")

	for sched.Tick() {
	}
	assert.Equal(t, 0, c.Remaining())
	assert.False(t, c.Active())
	assert.Equal(t, []int{2, 1, 0}, seen)
	assert.Equal(t, 0, sched.Live(), "countdown stops rescheduling at zero")
}

func TestCooldown_RestartIgnoresStaleCallback(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewCooldown(WithScheduler(sched))

	c.Start(3)
	sched.mu.Lock()
	stale := sched.pending[0].f
	sched.mu.Unlock()

	c.Start(60)
	assert.Equal(t, 1, sched.Live())

	stale()
	assert.Equal(t, 60, c.Remaining(), "callback from a previous run must not decrement")

	require.True(t, sched.Tick())
	assert.Equal(t, 59, c.Remaining())
}

func TestCooldown_StopCancels(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewCooldown(WithScheduler(sched))
	c.Start(10)
	c.Stop()
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, 0, sched.Live())
	assert.False(t, sched.Tick())
}

func TestCooldown_NeverNegative(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewCooldown(WithScheduler(sched))
	c.Start(-5)
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, 0, sched.Live())

	c.Start(0)
	assert.Equal(t, 0, c.Remaining())
	assert.False(t, sched.Tick())
}

func TestCooldown_RealScheduler(t *testing.T) {
	c := NewCooldown(WithTickInterval(5 * time.Millisecond))
	c.Start(3)
	assert.Eventually(t, func() bool { return c.Remaining() == 0 }, time.Second, 5*time.Millisecond)
}

type fakeChannel struct {
	mu        sync.Mutex
	sends     int
	resends   int
	verifies  int
	err       error
	sess      *models.Session
	lastPhone string
}

func (f *fakeChannel) Send(_ context.Context, id Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends++
	f.lastPhone = id.Phone
	return f.err
}

func (f *fakeChannel) Resend(_ context.Context, id Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resends++
	f.lastPhone = id.Phone
	return f.err
}

func (f *fakeChannel) Verify(_ context.Context, _ Identity, code string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifies++
	if f.err != nil {
		return nil, f.err
	}
	if f.sess != nil {
		return f.sess, nil
	}
	return &models.Session{Token: "tok-" + code}, nil
}

func newFakeClient(ch Channel) (*Client, *fakeScheduler) {
	sched := &fakeScheduler{}
	return NewClient(ch, NewCooldown(WithScheduler(sched)), DefaultCooldown, nil), sched
}

func TestClient_SendStartsCooldown(t *testing.T) {
	ch := &fakeChannel{}
	c, _ := newFakeClient(ch)

	require.NoError(t, c.Send(context.Background(), Identity{Phone: "9876543210"}))
	assert.Equal(t, 1, ch.sends)
	assert.Equal(t, "9876543210", ch.lastPhone)
	assert.Equal(t, DefaultCooldown, c.Cooldown().Remaining())
}

func TestClient_FailedSendLeavesCooldown(t *testing.T) {
	ch := &fakeChannel{err: errors.New("boom")}
	c, _ := newFakeClient(ch)

	err := c.Send(context.Background(), Identity{})
	require.Error(t, err)
	assert.Equal(t, 0, c.Cooldown().Remaining())
}

func TestClient_ResendBlockedDuringCooldown(t *testing.T) {
	ch := &fakeChannel{}
	c, sched := newFakeClient(ch)
	require.NoError(t, c.Send(context.Background(), Identity{}))

	for i := 0; i < 10; i++ {
		sched.Tick()
	}
	err := c.Resend(context.Background(), Identity{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCooldownActive))
	assert.Contains(t, err.Error(), "50 seconds left")
	assert.Equal(t, 0, ch.resends, "resend must not reach the network while cooling down")

	for sched.Tick() {
	}
	require.NoError(t, c.Resend(context.Background(), Identity{}))
	assert.Equal(t, 1, ch.resends)
	assert.Equal(t, DefaultCooldown, c.Cooldown().Remaining(), "successful resend restarts the window")
}

func TestClient_SendAgainWaitsForCooldown(t *testing.T) {
	ch := &fakeChannel{}
	c, sched := newFakeClient(ch)
	require.NoError(t, c.Send(context.Background(), Identity{Phone: "9876543210"}))

	sched.Tick()
	err := c.Send(context.Background(), Identity{Phone: "9876543210"})
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.Contains(t, err.Error(), "59 seconds left")
	assert.Equal(t, 1, ch.sends)

	for sched.Tick() {
	}
	require.NoError(t, c.Send(context.Background(), Identity{Phone: "9876543210"}))
	assert.Equal(t, 2, ch.sends)
}

func TestClient_FailedResendDoesNotStartCooldown(t *testing.T) {
	ch := &fakeChannel{}
	c, _ := newFakeClient(ch)

	ch.err = errors.New("server down")
	require.Error(t, c.Resend(context.Background(), Identity{}))
	assert.Equal(t, 1, ch.resends)
	assert.Equal(t, 0, c.Cooldown().Remaining())

	ch.err = nil
	require.NoError(t, c.Resend(context.Background(), Identity{}))
	assert.Equal(t, 2, ch.resends)
}

func TestClient_Verify(t *testing.T) {
	ch := &fakeChannel{}
	c, _ := newFakeClient(ch)

	sess, err := c.Verify(context.Background(), Identity{}, "123456")
	require.NoError(t, err)
	assert.Equal(t, "tok-123456", sess.Token)

	ch.err = errors.New("Invalid OTP")
	sess, err = c.Verify(context.Background(), Identity{}, "000000")
	assert.Nil(t, sess)
	assert.EqualError(t, err, "Invalid OTP")
}

func TestClient_CloseStopsCooldown(t *testing.T) {
	ch := &fakeChannel{}
	c, sched := newFakeClient(ch)
	require.NoError(t, c.Send(context.Background(), Identity{}))
	c.Close()
	assert.Equal(t, 0, c.Cooldown().Remaining())
	assert.Equal(t, 0, sched.Live())
}

func TestSignupChannel(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case api.PathVerifyOTP:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"token": "abc"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		}
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	ch := NewSignupChannel(client)
	ctx := context.Background()

	assert.ErrorIs(t, ch.Send(ctx, Identity{}), errNoDraft)

	draft := &models.RegistrationDraft{FirstName: " Asha", LastName: "Patel "}
	require.NoError(t, ch.Send(ctx, Identity{Draft: draft}))
	require.NoError(t, ch.Resend(ctx, Identity{Draft: draft}))

	sess, err := ch.Verify(ctx, Identity{Draft: draft}, "123456")
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, "Asha Patel", sess.DisplayName)

	assert.Equal(t, []string{api.PathSignup, api.PathResendOTP, api.PathVerifyOTP}, paths)
}

func TestRecoveryChannel(t *testing.T) {
	var bodies []map[string]string
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	ch := NewRecoveryChannel(client)
	ctx := context.Background()
	id := Identity{Phone: "9876543210"}

	require.NoError(t, ch.Send(ctx, id))
	require.NoError(t, ch.Resend(ctx, id))
	sess, err := ch.Verify(ctx, id, "654321")
	require.NoError(t, err)
	assert.True(t, sess.Empty())

	assert.Equal(t, []string{api.PathForgotSendOTP, api.PathForgotSendOTP, api.PathForgotVerifyOTP}, paths)
	assert.Equal(t, "9876543210", bodies[0]["phone"])
	assert.Equal(t, "654321", bodies[2]["otp"])
}
