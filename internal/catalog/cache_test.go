package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowbricks/internal/model"
	"github.com/vk/flowbricks/internal/testutil"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type countingSource struct {
	calls int
	units []model.UnitSummary
	err   error
}

func (s *countingSource) Units(context.Context) ([]model.UnitSummary, error) {
	s.calls++
	return s.units, s.err
}

func TestCache_ReloadsAfterTTL(t *testing.T) {
	ctx, _ := testutil.Context(t)
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	src := &countingSource{units: []model.UnitSummary{{ID: "a", Version: "1.0.0"}}}

	reloads := 0
	c := NewCache(src, time.Minute, clock)
	c.OnReload = func(int) { reloads++ }

	first, err := c.Index(ctx)
	require.NoError(t, err)
	second, err := c.Index(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, src.calls)

	clock.now = clock.now.Add(59 * time.Second)
	_, err = c.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	clock.now = clock.now.Add(time.Second)
	third, err := c.Index(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 2, reloads)
}

func TestCache_Invalidate(t *testing.T) {
	ctx, _ := testutil.Context(t)
	src := &countingSource{units: []model.UnitSummary{{ID: "a", Version: "1.0.0"}}}
	c := NewCache(src, time.Hour, &fakeClock{})

	_, err := c.Index(ctx)
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCache_ZeroTTLAlwaysReloads(t *testing.T) {
	ctx, _ := testutil.Context(t)
	src := &countingSource{units: []model.UnitSummary{{ID: "a", Version: "1.0.0"}}}
	c := NewCache(src, 0, nil)

	for range 3 {
		_, err := c.Index(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.calls)
}

func TestCache_Errors(t *testing.T) {
	ctx, _ := testutil.Context(t)

	t.Run("source failure", func(t *testing.T) {
		c := NewCache(&countingSource{err: errors.New("boom")}, time.Minute, &fakeClock{})
		_, err := c.Index(ctx)
		assert.ErrorContains(t, err, "loading catalog: boom")
	})

	t.Run("invalid units", func(t *testing.T) {
		c := NewCache(&countingSource{units: []model.UnitSummary{{ID: "a", Version: "x"}}}, time.Minute, &fakeClock{})
		_, err := c.Index(ctx)
		assert.ErrorIs(t, err, ErrInvalidUnit)
	})
}
