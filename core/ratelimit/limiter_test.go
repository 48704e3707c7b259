package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_ShouldWait(t *testing.T) {
	l := New(DefaultThreshold, DefaultCooldown)

	tests := []struct {
		remaining int
		want      bool
	}{
		{0, true},
		{10, true},
		{11, false},
		{40, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, l.ShouldWait(tt.remaining), "remaining=%d", tt.remaining)
	}
}

func TestLimiter_Wait(t *testing.T) {
	var slept []time.Duration
	l := New(11, 5*time.Second)
	l.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	t.Run("UnknownBudget", func(t *testing.T) {
		assert.NoError(t, l.Wait(context.Background()))
		assert.Empty(t, slept)
	})

	t.Run("HealthyBudget", func(t *testing.T) {
		l.Observe(39)
		assert.NoError(t, l.Wait(context.Background()))
		assert.Empty(t, slept)
	})

	t.Run("LowBudget", func(t *testing.T) {
		l.Observe(10)
		assert.NoError(t, l.Wait(context.Background()))
		assert.Equal(t, []time.Duration{5 * time.Second}, slept)
	})
}

func TestLimiter_WaitCancelled(t *testing.T) {
	l := New(11, time.Hour)
	l.Observe(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimiter_ConcurrentObserve(t *testing.T) {
	l := New(11, time.Millisecond)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Observe(n)
			_ = l.Wait(context.Background())
		}(i)
	}
	wg.Wait()

	_, known := l.Remaining()
	assert.True(t, known)
}

func TestLimiter_Reset(t *testing.T) {
	var slept int
	l := New(11, time.Second)
	l.sleep = func(ctx context.Context, d time.Duration) error {
		slept++
		return nil
	}

	l.Observe(2)
	l.Reset()
	_, known := l.Remaining()
	assert.False(t, known)
	assert.NoError(t, l.Wait(context.Background()))
	assert.Zero(t, slept, "a reset budget does not pause the first call")
}

func TestLimiter_NilIsNoop(t *testing.T) {
	var l *Limiter
	assert.NoError(t, l.Wait(context.Background()))
}

func TestParseCallLimit(t *testing.T) {
	remaining, err := ParseCallLimit("32/40")
	assert.NoError(t, err)
	assert.Equal(t, 8, remaining)

	_, err = ParseCallLimit("garbage")
	assert.Error(t, err)

	_, err = ParseCallLimit("a/40")
	assert.Error(t, err)
}

func TestNewFromConfig_Defaults(t *testing.T) {
	l := NewFromConfig(Config{})
	assert.Equal(t, DefaultCooldown, l.Cooldown())
	assert.True(t, l.ShouldWait(10))
	assert.False(t, l.ShouldWait(11))
}
