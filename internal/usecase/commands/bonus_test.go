//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"prize-wheel/internal/infra/repository/converter"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/shared"
	"prize-wheel/tests/common/promotest"
	sharedmock "prize-wheel/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BonusCommandsTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *BonusCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestBonusCommandsSuite(t *testing.T) {
	suite.Run(t, new(BonusCommandsTestSuite))
}

func (s *BonusCommandsTestSuite) TestClaimDailyBonus() {
	s.Run("granted once per calendar date", func() {
		env := promotest.New(s.T())

		first, err := env.Bonuses.ClaimDailyBonus(s.ctx)
		s.Require().NoError(err)
		s.True(first.Granted)
		s.Equal(10, first.Amount)
		s.Equal(10, first.Balance)
		s.Equal("2025-03-05", first.Date.String())

		env.Clock.Advance(11 * time.Hour)
		second, err := env.Bonuses.ClaimDailyBonus(s.ctx)
		s.Require().NoError(err)
		s.False(second.Granted)
		s.Zero(second.Amount)
		s.Equal(10, second.Balance)

		s.Len(env.Publisher.OfType(shared.EventBonusGranted), 1)
	})

	s.Run("new calendar date grants again", func() {
		env := promotest.New(s.T(), promotest.WithNow(time.Date(2025, 3, 5, 23, 59, 0, 0, time.UTC)))

		_, err := env.Bonuses.ClaimDailyBonus(s.ctx)
		s.Require().NoError(err)

		env.Clock.Advance(2 * time.Minute)
		res, err := env.Bonuses.ClaimDailyBonus(s.ctx)
		s.Require().NoError(err)
		s.True(res.Granted)
		s.Equal(20, env.Balance())

		date, _ := env.Persisted(s.T(), converter.KeyLastDailyBonus)
		s.Equal("2025-03-06", date)
		balance, _ := env.Persisted(s.T(), converter.KeyBalance)
		s.Equal("20", balance)
	})

	s.Run("legacy persisted date still counts as today", func() {
		env := promotest.New(s.T(), promotest.WithSeed(converter.KeyLastDailyBonus, "Wed Mar 05 2025"))

		res, err := env.Bonuses.ClaimDailyBonus(s.ctx)
		s.Require().NoError(err)
		s.False(res.Granted)
	})

	s.Run("grant survives a restart", func() {
		env := promotest.New(s.T())
		_, err := env.Bonuses.ClaimDailyBonus(s.ctx)
		s.Require().NoError(err)

		restarted := env.Restart(s.T())
		res, err := restarted.Bonuses.ClaimDailyBonus(s.ctx)
		s.Require().NoError(err)
		s.False(res.Granted)
		s.Equal(10, restarted.Balance())
	})

	s.Run("failed write grants nothing", func() {
		ctrl := gomock.NewController(s.T())
		repo := sharedmock.NewMockStateRepository(ctrl)
		repo.EXPECT().Load(gomock.Any()).Return(&shared.PromotionsSnapshot{}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("timeout")).Times(3)

		env := promotest.New(s.T(), promotest.WithRepository(repo))

		res, err := env.Bonuses.ClaimDailyBonus(s.ctx)
		s.Nil(res)
		s.True(errs.Is(err, errs.ErrPersistenceFailure))
		s.Zero(env.Balance())

		wallet, err := env.Queries.GetWallet(s.ctx)
		s.Require().NoError(err)
		s.False(wallet.DailyBonusClaimedToday)
	})
}

func (s *BonusCommandsTestSuite) TestSubscription() {
	s.Run("credited once after the confirmation delay", func() {
		env := promotest.New(s.T())

		res, err := env.Bonuses.StartSubscription(s.ctx)
		s.Require().NoError(err)
		s.True(res.Pending)
		s.False(res.AlreadyClaimed)
		s.Equal("https://t.me/levo_del", res.URL)
		s.Equal(promotest.Start.Add(2*time.Second), res.ConfirmAt)
		s.Zero(env.Balance())

		again, err := env.Bonuses.StartSubscription(s.ctx)
		s.Require().NoError(err)
		s.True(again.Pending)
		s.Equal(1, env.Clock.Pending(), "a pending confirmation is not scheduled twice")

		env.Clock.Advance(2 * time.Second)
		s.Equal(50, env.Balance())

		flag, _ := env.Persisted(s.T(), converter.KeySubscriptionClaimed)
		s.Equal("true", flag)

		after, err := env.Bonuses.StartSubscription(s.ctx)
		s.Require().NoError(err)
		s.True(after.AlreadyClaimed)
		s.False(after.Pending)
		s.Zero(env.Clock.Pending())

		granted := env.Publisher.OfType(shared.EventBonusGranted)
		s.Require().Len(granted, 1)
		s.Equal("subscription", granted[0].Payload["bonus"])
	})

	s.Run("claimed flag survives a restart", func() {
		env := promotest.New(s.T(), promotest.WithSeed(converter.KeySubscriptionClaimed, "true"))

		res, err := env.Bonuses.StartSubscription(s.ctx)
		s.Require().NoError(err)
		s.True(res.AlreadyClaimed)
		s.Zero(env.Clock.Pending())
	})

	s.Run("failed write clears pending so the user can retry", func() {
		ctrl := gomock.NewController(s.T())
		repo := sharedmock.NewMockStateRepository(ctrl)
		repo.EXPECT().Load(gomock.Any()).Return(&shared.PromotionsSnapshot{}, nil)
		gomock.InOrder(
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("timeout")).Times(3),
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		)

		env := promotest.New(s.T(), promotest.WithRepository(repo))

		_, err := env.Bonuses.StartSubscription(s.ctx)
		s.Require().NoError(err)
		env.Clock.Advance(2 * time.Second)

		wallet, err := env.Queries.GetWallet(s.ctx)
		s.Require().NoError(err)
		s.False(wallet.SubscriptionPending)
		s.False(wallet.SubscriptionClaimed)
		s.Zero(wallet.Balance)

		_, err = env.Bonuses.StartSubscription(s.ctx)
		s.Require().NoError(err)
		env.Clock.Advance(2 * time.Second)
		s.Equal(50, env.Balance())
	})
}

func (s *BonusCommandsTestSuite) TestBalanceNeverNegative() {
	env := promotest.New(s.T(), promotest.WithBalance(4))

	for range 5 {
		_, _ = env.Spins.AttemptSpin(s.ctx)
		s.GreaterOrEqual(env.Balance(), 0)
		env.Clock.Advance(env.Settings.RevealDelay)
		_, _ = env.Bonuses.ClaimDailyBonus(s.ctx)
		s.GreaterOrEqual(env.Balance(), 0)
		env.Clock.Advance(24 * time.Hour)
	}
}
