package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedSource serves ints from a fixed slice and records calls.
type pagedSource struct {
	items     []int
	count     int
	countErr  error
	failPage  int
	pageCalls []int
	limits    []int
}

func (s *pagedSource) Name() string { return "widgets" }

func (s *pagedSource) Count(ctx context.Context) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	if s.count > 0 {
		return s.count, nil
	}
	return len(s.items), nil
}

func (s *pagedSource) Page(ctx context.Context, page, limit int) ([]int, error) {
	s.pageCalls = append(s.pageCalls, page)
	s.limits = append(s.limits, limit)
	if page == s.failPage {
		return nil, errors.New("connection reset")
	}
	start := (page - 1) * limit
	if start >= len(s.items) {
		return nil, nil
	}
	end := start + limit
	if end > len(s.items) {
		end = len(s.items)
	}
	return s.items[start:end], nil
}

type countingThrottle struct{ calls int }

func (c *countingThrottle) Wait(ctx context.Context) error {
	c.calls++
	return nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestEnumerate_TwoPages(t *testing.T) {
	src := &pagedSource{items: seq(25)}
	throttle := &countingThrottle{}

	got, err := Enumerate[int](context.Background(), src, 20, throttle)
	require.NoError(t, err)

	assert.Len(t, got, 25)
	assert.Equal(t, []int{1, 2}, src.pageCalls, "should request exactly two pages")
	assert.Equal(t, []int{20, 20}, src.limits)
	assert.Equal(t, 3, throttle.calls, "throttle consulted before count and each page")
}

func TestEnumerate_PageFailureAbortsWithoutPartialResult(t *testing.T) {
	src := &pagedSource{items: seq(25), failPage: 2}

	got, err := Enumerate[int](context.Background(), src, 20, nil)
	require.Error(t, err)

	assert.Nil(t, got, "no partial catalog may be exposed")
	assert.True(t, IsRemoteServiceError(err))
	assert.Contains(t, err.Error(), "list widgets page 2")
}

func TestEnumerate_CountFailure(t *testing.T) {
	src := &pagedSource{countErr: errors.New("503")}

	_, err := Enumerate[int](context.Background(), src, 20, nil)
	require.Error(t, err)
	assert.True(t, IsRemoteServiceError(err))
	assert.Empty(t, src.pageCalls)
}

func TestEnumerate_Empty(t *testing.T) {
	src := &pagedSource{}

	got, err := Enumerate[int](context.Background(), src, 20, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, src.pageCalls)
}

func TestEnumerate_ShrinkingCollectionStops(t *testing.T) {
	// Count claims 30 but only 25 exist: the third page is empty.
	src := &pagedSource{items: seq(25), count: 30}

	got, err := Enumerate[int](context.Background(), src, 10, nil)
	require.NoError(t, err)
	assert.Len(t, got, 25)
	assert.Equal(t, []int{1, 2, 3}, src.pageCalls)
}

func TestEnumerate_ClampsPageSize(t *testing.T) {
	src := &pagedSource{items: seq(300)}

	got, err := Enumerate[int](context.Background(), src, 1000, nil)
	require.NoError(t, err)
	assert.Len(t, got, 300)
	assert.Equal(t, []int{MaxPageSize, MaxPageSize}, src.limits)
}

type failingThrottle struct{}

func (failingThrottle) Wait(ctx context.Context) error { return context.Canceled }

func TestEnumerate_ThrottleCancelled(t *testing.T) {
	src := &pagedSource{items: seq(5)}

	_, err := Enumerate[int](context.Background(), src, 20, failingThrottle{})
	assert.ErrorIs(t, err, context.Canceled)
}
