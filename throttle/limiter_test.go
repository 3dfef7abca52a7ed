package throttle_test

import (
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/citycopy/throttle"
	"github.com/stretchr/testify/assert"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(rps float64, burst int) (*throttle.Limiter, *clock) {
	c := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := throttle.NewLimiter(rps, burst)
	l.SetClock(c.Now)
	return l, c
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("allows burst then denies", func(t *testing.T) {
		t.Parallel()

		l, _ := newLimiter(1, 3)

		assert.True(t, l.Allow("1.2.3.4"))
		assert.True(t, l.Allow("1.2.3.4"))
		assert.True(t, l.Allow("1.2.3.4"))
		assert.False(t, l.Allow("1.2.3.4"))
	})

	t.Run("refills over time", func(t *testing.T) {
		t.Parallel()

		l, c := newLimiter(1, 1)

		assert.True(t, l.Allow("k"))
		assert.False(t, l.Allow("k"))
		c.Advance(time.Second)
		assert.True(t, l.Allow("k"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		l, _ := newLimiter(1, 1)

		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		assert.True(t, l.Allow("b"))
	})

	t.Run("treats burst below one as one", func(t *testing.T) {
		t.Parallel()

		l, _ := newLimiter(1, 0)

		assert.True(t, l.Allow("k"))
		assert.False(t, l.Allow("k"))
	})
}

func TestLimiter_Reset(t *testing.T) {
	t.Parallel()

	l, _ := newLimiter(1, 1)
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	l.Reset("k")

	assert.True(t, l.Allow("k"))
}

func TestLimiter_Sweep(t *testing.T) {
	t.Parallel()

	l, c := newLimiter(1, 1)
	l.Allow("old")
	c.Advance(10 * time.Minute)
	l.Allow("fresh")

	removed := l.Sweep(5 * time.Minute)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Allow("old"), "evicted key starts with a full bucket")
}
