//go:build unit

package wonreward_test

import (
	"testing"
	"time"

	"prize-wheel/internal/domain/promocode"
	"prize-wheel/internal/domain/reward"
	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

func TestMint(t *testing.T) {
	discount, err := reward.NewDiscountDefinition(2, "30% off printing services", 60, 30)
	require.NoError(t, err)

	t.Run("discount reward", func(t *testing.T) {
		won, err := wonreward.Mint(discount, "PLASTAAAAAA", now, 24*time.Hour)
		require.NoError(t, err)

		assert.NotEmpty(t, won.ID())
		assert.Equal(t, 2, won.RewardID())
		assert.Equal(t, "30% off printing services", won.DisplayName())
		assert.Equal(t, promocode.Code("PLASTAAAAAA"), won.Code())
		assert.Equal(t, 30, won.DiscountPercent())
		assert.Equal(t, now.Add(24*time.Hour), won.ExpiresAt())
	})

	t.Run("physical reward is not minted", func(t *testing.T) {
		physical, err := reward.NewPhysicalDefinition(3, "Printer", 0)
		require.NoError(t, err)
		_, err = wonreward.Mint(physical, "PLASTAAAAAA", now, time.Hour)
		assert.ErrorIs(t, err, reward.ErrNotDiscountReward)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		_, err := wonreward.Mint(discount, "PLASTAAAAAA", now, 0)
		assert.ErrorIs(t, err, wonreward.ErrInvalidTTL)
	})

	t.Run("malformed code", func(t *testing.T) {
		_, err := wonreward.Mint(discount, "plast-1", now, time.Hour)
		assert.ErrorIs(t, err, promocode.ErrInvalidPromoCode)
	})
}

func TestLiveness(t *testing.T) {
	won := builder.NewWonRewardBuilder().With(func(b *builder.WonRewardBuilder) {
		b.ExpiresAt = now
	}).MustBuildDomain(t)

	assert.True(t, won.IsLiveAt(now.Add(-time.Millisecond)))
	assert.False(t, won.IsLiveAt(now), "expiry instant is not live")
	assert.False(t, won.IsLiveAt(now.Add(time.Millisecond)))
}

func TestReconstruct(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*builder.WonRewardBuilder)
		errIs  error
	}{
		{name: "valid", mutate: func(*builder.WonRewardBuilder) {}},
		{name: "lowercase code is normalized", mutate: func(b *builder.WonRewardBuilder) { b.PromoCode = "plastk3x9q2" }},
		{name: "missing id", mutate: func(b *builder.WonRewardBuilder) { b.ID = " " }, errIs: wonreward.ErrMissingID},
		{name: "zero reward id", mutate: func(b *builder.WonRewardBuilder) { b.RewardID = 0 }, errIs: wonreward.ErrInvalidRewardRef},
		{name: "blank name", mutate: func(b *builder.WonRewardBuilder) { b.DisplayName = "" }, errIs: reward.ErrEmptyRewardName},
		{name: "bad code", mutate: func(b *builder.WonRewardBuilder) { b.PromoCode = "!" }, errIs: promocode.ErrInvalidPromoCode},
		{name: "discount out of range", mutate: func(b *builder.WonRewardBuilder) { b.DiscountPercent = 150 }, errIs: reward.ErrInvalidDiscount},
		{name: "zero expiry", mutate: func(b *builder.WonRewardBuilder) { b.ExpiresAt = time.Time{} }, errIs: wonreward.ErrMissingExpiry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			won, err := builder.NewWonRewardBuilder().With(tc.mutate).BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, promocode.Code("PLASTK3X9Q2"), won.Code())
		})
	}
}
