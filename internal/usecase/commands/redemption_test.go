//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"prize-wheel/internal/infra/repository/converter"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/shared"
	"prize-wheel/tests/common/builder"
	"prize-wheel/tests/common/promotest"

	"github.com/stretchr/testify/suite"
)

type RedemptionCommandsTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *RedemptionCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestRedemptionCommandsSuite(t *testing.T) {
	suite.Run(t, new(RedemptionCommandsTestSuite))
}

func seededRewards(s *RedemptionCommandsTestSuite, records ...*builder.WonRewardBuilder) promotest.Option {
	stored := make([]map[string]any, 0, len(records))
	for _, r := range records {
		stored = append(stored, r.BuildStored())
	}
	b, err := json.Marshal(stored)
	s.Require().NoError(err)
	return promotest.WithSeed(converter.KeyWonRewards, string(b))
}

func (s *RedemptionCommandsTestSuite) TestRedeem() {
	live := builder.NewWonRewardBuilder().With(func(b *builder.WonRewardBuilder) {
		b.PromoCode = "PLASTLIVE01"
		b.ExpiresAt = promotest.Start.Add(time.Hour)
	})

	s.Run("single use", func() {
		env := promotest.New(s.T(), seededRewards(s, live))

		res, err := env.Redemptions.Redeem(s.ctx, "plastlive01")
		s.Require().NoError(err)
		s.Equal("PLASTLIVE01", res.Code)
		s.Equal(30, res.DiscountPercent)
		s.Equal(live.ExpiresAt, res.ExpiresAt)

		_, err = env.Redemptions.Redeem(s.ctx, "PLASTLIVE01")
		s.True(errs.Is(err, errs.ErrInvalidRedemption))

		raw, _ := env.Persisted(s.T(), converter.KeyWonRewards)
		s.NotContains(raw, "PLASTLIVE01")

		redeemed := env.Publisher.OfType(shared.EventRewardRedeemed)
		s.Require().Len(redeemed, 1)
		s.Equal("PLASTLIVE01", redeemed[0].Payload["promo_code"])
	})

	s.Run("redeemed code stays gone after restart", func() {
		env := promotest.New(s.T(), seededRewards(s, live))
		_, err := env.Redemptions.Redeem(s.ctx, "PLASTLIVE01")
		s.Require().NoError(err)

		restarted := env.Restart(s.T())
		_, err = restarted.Redemptions.Redeem(s.ctx, "PLASTLIVE01")
		s.True(errs.Is(err, errs.ErrInvalidRedemption))
	})

	s.Run("expiry boundary", func() {
		env := promotest.New(s.T(), seededRewards(s, live))

		env.Clock.Advance(time.Hour - time.Millisecond)
		_, err := env.Queries.LookupPromoCode(s.ctx, "PLASTLIVE01")
		s.Require().NoError(err)

		env.Clock.Advance(time.Millisecond)
		_, err = env.Redemptions.Redeem(s.ctx, "PLASTLIVE01")
		s.True(errs.Is(err, errs.ErrInvalidRedemption), "not redeemable at expiresAt")
	})

	s.Run("expired code is rejected even before any sweep", func() {
		env := promotest.New(s.T(), seededRewards(s, live), promotest.WithNow(promotest.Start.Add(2*time.Hour)))

		_, err := env.Redemptions.Redeem(s.ctx, "PLASTLIVE01")
		s.True(errs.Is(err, errs.ErrInvalidRedemption))
	})

	s.Run("unknown and malformed codes", func() {
		env := promotest.New(s.T())

		for _, code := range []string{"PLASTNOPE00", "", "no-such-code!"} {
			_, err := env.Redemptions.Redeem(s.ctx, code)
			s.True(errs.Is(err, errs.ErrInvalidRedemption), code)
		}
		s.Empty(env.Publisher.Events())
	})
}
