package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultThreshold is the reference low-water mark for remaining calls.
	DefaultThreshold = 11
	// DefaultCooldown is the reference pause when the budget is low.
	DefaultCooldown = 5 * time.Second
)

// Limiter applies advisory backpressure based on the remaining call budget
// reported by the remote service. It is not a token bucket: it never tracks
// request timestamps, it only reacts to what the service last reported.
//
// A Limiter is safe for concurrent use. Waiters are not queued; each one
// sleeps independently and resumes in no particular order.
type Limiter struct {
	threshold int
	cooldown  time.Duration

	mu        sync.Mutex
	remaining int
	known     bool

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Limiter with the given threshold and cooldown.
// Non-positive values fall back to the defaults.
func New(threshold int, cooldown time.Duration) *Limiter {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Limiter{
		threshold: threshold,
		cooldown:  cooldown,
		sleep:     sleepContext,
	}
}

// NewFromConfig creates a Limiter from configuration.
func NewFromConfig(cfg Config) *Limiter {
	return New(cfg.Threshold, time.Duration(cfg.CooldownSeconds)*time.Second)
}

// ShouldWait reports whether a caller seeing the given remaining budget must
// pause before its next call.
func (l *Limiter) ShouldWait(remaining int) bool {
	return remaining < l.threshold
}

// Observe records the remaining budget reported by the latest response.
func (l *Limiter) Observe(remaining int) {
	l.mu.Lock()
	l.remaining = remaining
	l.known = true
	l.mu.Unlock()
}

// Remaining returns the last observed budget and whether one has been seen.
func (l *Limiter) Remaining() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining, l.known
}

// Reset forgets the observed budget, as before the first response.
func (l *Limiter) Reset() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.remaining = 0
	l.known = false
	l.mu.Unlock()
}

// Wait must be called immediately before each remote call. It blocks for the
// cooldown interval when the last observed budget is below the threshold and
// returns immediately otherwise, or when no budget has been observed yet.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	remaining, known := l.Remaining()
	if !known || !l.ShouldWait(remaining) {
		return nil
	}
	return l.sleep(ctx, l.cooldown)
}

// Cooldown returns the configured pause interval.
func (l *Limiter) Cooldown() time.Duration {
	return l.cooldown
}

// ParseCallLimit parses a "used/max" call-limit header value and returns the
// remaining budget.
func ParseCallLimit(header string) (int, error) {
	parts := strings.Split(strings.TrimSpace(header), "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid call limit header %q", header)
	}
	used, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid call limit header %q: %w", header, err)
	}
	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("invalid call limit header %q: %w", header, err)
	}
	return max - used, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
