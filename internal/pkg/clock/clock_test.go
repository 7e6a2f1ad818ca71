//go:build unit

package clock_test

import (
	"testing"
	"time"

	"prize-wheel/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

	t.Run("fires due tasks in order at their due time", func(t *testing.T) {
		c := clock.NewMockClock(start)
		var fired []time.Duration

		c.AfterFunc(2*time.Second, func() { fired = append(fired, c.Now().Sub(start)) })
		c.AfterFunc(time.Second, func() { fired = append(fired, c.Now().Sub(start)) })
		c.AfterFunc(5*time.Second, func() { fired = append(fired, c.Now().Sub(start)) })

		c.Advance(3 * time.Second)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, fired)
		assert.Equal(t, start.Add(3*time.Second), c.Now())
		assert.Equal(t, 1, c.Pending())
	})

	t.Run("tasks scheduled by tasks fire within the same advance", func(t *testing.T) {
		c := clock.NewMockClock(start)
		count := 0
		var tick func()
		tick = func() {
			count++
			c.AfterFunc(time.Second, tick)
		}
		c.AfterFunc(time.Second, tick)

		c.Advance(3500 * time.Millisecond)
		assert.Equal(t, 3, count)
		assert.Equal(t, 1, c.Pending())
	})

	t.Run("stopped task never fires", func(t *testing.T) {
		c := clock.NewMockClock(start)
		fired := false
		timer := c.AfterFunc(time.Second, func() { fired = true })

		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())
		c.Advance(time.Minute)
		assert.False(t, fired)
	})

	t.Run("set fires due tasks", func(t *testing.T) {
		c := clock.NewMockClock(start)
		fired := false
		c.AfterFunc(time.Hour, func() { fired = true })

		c.Set(start.Add(2 * time.Hour))
		assert.True(t, fired)
		assert.Equal(t, start.Add(2*time.Hour), c.Now())
	})
}
