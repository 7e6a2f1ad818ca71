//go:build unit || e2e

package builder

import (
	"testing"
	"time"

	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type WonRewardBuilder struct {
	ID              string
	RewardID        int
	DisplayName     string
	PromoCode       string
	DiscountPercent int
	ExpiresAt       time.Time
}

func NewWonRewardBuilder() *WonRewardBuilder {
	return &WonRewardBuilder{
		ID:              uuid.NewString(),
		RewardID:        2,
		DisplayName:     "30% off printing services",
		PromoCode:       "PLASTK3X9Q2",
		DiscountPercent: 30,
		ExpiresAt:       time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func (b *WonRewardBuilder) With(mutate func(*WonRewardBuilder)) *WonRewardBuilder {
	mutate(b)
	return b
}

func (b *WonRewardBuilder) BuildDomain() (*wonreward.WonReward, error) {
	return wonreward.Reconstruct(b.ID, b.RewardID, b.DisplayName, b.PromoCode, b.DiscountPercent, b.ExpiresAt)
}

func (b *WonRewardBuilder) MustBuildDomain(t testing.TB) *wonreward.WonReward {
	t.Helper()
	r, err := b.BuildDomain()
	require.NoError(t, err)
	return r
}

// BuildStored returns the record as it is persisted under wonPrizes.
func (b *WonRewardBuilder) BuildStored() map[string]any {
	return map[string]any{
		"id":                 b.ID,
		"rewardDefinitionId": b.RewardID,
		"displayName":        b.DisplayName,
		"promoCode":          b.PromoCode,
		"discountPercent":    b.DiscountPercent,
		"expiresAt":          b.ExpiresAt.UnixMilli(),
	}
}

// BuildLegacyStored uses the short field aliases.
func (b *WonRewardBuilder) BuildLegacyStored() map[string]any {
	return map[string]any{
		"id":        b.ID,
		"prizeId":   b.RewardID,
		"name":      b.DisplayName,
		"promoCode": b.PromoCode,
		"discount":  b.DiscountPercent,
		"expiresAt": b.ExpiresAt.UnixMilli(),
	}
}

func (b *WonRewardBuilder) BuildView() *queries.RewardView {
	return &queries.RewardView{
		ID:              b.ID,
		RewardID:        b.RewardID,
		DisplayName:     b.DisplayName,
		PromoCode:       b.PromoCode,
		DiscountPercent: b.DiscountPercent,
		ExpiresAt:       b.ExpiresAt,
	}
}
