package utils

import (
	"context"
	"sync"
	"time"
)

// Pinger is anything whose reachability the stub reports on /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Services  map[string]bool `json:"services"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy is true when every monitored service answered.
func (h HealthStatus) Healthy() bool {
	for _, ok := range h.Services {
		if !ok {
			return false
		}
	}
	return true
}

// HealthMonitor keeps the latest health snapshot in memory.
type HealthMonitor struct {
	mu      sync.RWMutex
	current HealthStatus
	targets map[string]Pinger
}

func NewHealthMonitor(targets map[string]Pinger) *HealthMonitor {
	return &HealthMonitor{targets: targets}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check pings every target once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Services: make(map[string]bool, len(m.targets)), CheckedAt: time.Now()}
	for name, target := range m.targets {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		status.Services[name] = target.Ping(pingCtx) == nil
		cancel()
	}
	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context, every time.Duration) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
