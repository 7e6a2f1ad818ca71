//go:build unit

package spin_test

import (
	"errors"
	"testing"
	"time"

	"prize-wheel/internal/domain/reward"
	"prize-wheel/internal/domain/spin"
	"prize-wheel/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

func TestSession(t *testing.T) {
	def, err := reward.NewDiscountDefinition(2, "30% off printing services", 60, 30)
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		idle := spin.NewSession(3)
		assert.NotEqual(t, uuid.Nil, idle.ID())
		assert.Equal(t, spin.StateIdle, idle.State())

		spinning, err := idle.Begin(now)
		require.NoError(t, err)
		assert.True(t, spinning.IsSpinning())
		assert.Equal(t, spin.StateIdle, idle.State(), "transitions return copies")

		drawn, err := spinning.Draw(1, def, now.Add(3500*time.Millisecond))
		require.NoError(t, err)
		assert.True(t, drawn.Drawn())
		assert.Equal(t, 1, drawn.RewardIndex())
		assert.Equal(t, 2, drawn.Reward().ID())

		won := builder.NewWonRewardBuilder().MustBuildDomain(t)
		resolved, err := drawn.Resolve(now.Add(3500*time.Millisecond), won)
		require.NoError(t, err)
		assert.True(t, resolved.IsResolved())
		assert.Same(t, won, resolved.Won())
		assert.Equal(t, idle.ID(), resolved.ID())
		assert.Equal(t, 3, resolved.Cost())
	})

	t.Run("invalid transitions", func(t *testing.T) {
		idle := spin.NewSession(3)

		_, err := idle.Draw(0, def, now)
		assert.ErrorIs(t, err, spin.ErrInvalidTransition)
		_, err = idle.Resolve(now, nil)
		assert.ErrorIs(t, err, spin.ErrInvalidTransition)
		_, err = idle.Fail(now, nil)
		assert.ErrorIs(t, err, spin.ErrInvalidTransition)

		spinning, _ := idle.Begin(now)
		_, err = spinning.Begin(now)
		assert.ErrorIs(t, err, spin.ErrInvalidTransition)
		_, err = spinning.Resolve(now, nil)
		assert.ErrorIs(t, err, spin.ErrInvalidTransition, "cannot resolve before the draw")

		drawn, _ := spinning.Draw(1, def, now)
		_, err = drawn.Draw(1, def, now)
		assert.ErrorIs(t, err, spin.ErrInvalidTransition)

		resolved, _ := drawn.Resolve(now, nil)
		_, err = resolved.Resolve(now, nil)
		assert.ErrorIs(t, err, spin.ErrInvalidTransition)
		_, err = resolved.Begin(now)
		assert.ErrorIs(t, err, spin.ErrInvalidTransition)
	})

	t.Run("fail keeps cause", func(t *testing.T) {
		spinning, _ := spin.NewSession(3).Begin(now)
		failed, err := spinning.Fail(now, errors.New("disk full"))
		require.NoError(t, err)

		assert.True(t, failed.IsResolved())
		assert.Nil(t, failed.Won())
		assert.Equal(t, "disk full", failed.Failure())
	})

	t.Run("zero session", func(t *testing.T) {
		var s spin.Session
		assert.True(t, s.IsZero())
		assert.False(t, s.IsSpinning())
	})
}
