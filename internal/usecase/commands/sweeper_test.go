//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"prize-wheel/internal/infra/repository/converter"
	"prize-wheel/internal/usecase/shared"
	"prize-wheel/tests/common/builder"
	"prize-wheel/tests/common/promotest"

	"github.com/stretchr/testify/suite"
)

type ExpirySweeperTestSuite struct {
	suite.Suite
	ctx context.Context
	env *promotest.Env
}

func (s *ExpirySweeperTestSuite) SetupTest() {
	s.ctx = context.Background()

	records := []map[string]any{
		builder.NewWonRewardBuilder().With(func(b *builder.WonRewardBuilder) {
			b.PromoCode = "PLASTSOON01"
			b.ExpiresAt = promotest.Start.Add(1500 * time.Millisecond)
		}).BuildStored(),
		builder.NewWonRewardBuilder().With(func(b *builder.WonRewardBuilder) {
			b.PromoCode = "PLASTLATER1"
			b.ExpiresAt = promotest.Start.Add(time.Hour)
		}).BuildStored(),
	}
	raw, err := json.Marshal(records)
	s.Require().NoError(err)

	s.env = promotest.New(s.T(), promotest.WithSeed(converter.KeyWonRewards, string(raw)))
}

func TestExpirySweeperSuite(t *testing.T) {
	suite.Run(t, new(ExpirySweeperTestSuite))
}

func (s *ExpirySweeperTestSuite) TestSweepNow() {
	n, err := s.env.Sweeper.SweepNow(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
	s.Empty(s.env.Publisher.Events())

	s.env.Clock.Set(promotest.Start.Add(1500 * time.Millisecond))
	n, err = s.env.Sweeper.SweepNow(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	raw, _ := s.env.Persisted(s.T(), converter.KeyWonRewards)
	s.NotContains(raw, "PLASTSOON01")
	s.Contains(raw, "PLASTLATER1")

	expired := s.env.Publisher.OfType(shared.EventRewardsExpired)
	s.Require().Len(expired, 1)
	s.Equal(1, expired[0].Payload["count"])
	s.Equal([]string{"PLASTSOON01"}, expired[0].Payload["promo_codes"])
}

func (s *ExpirySweeperTestSuite) TestPeriodicSweep() {
	s.Require().NoError(s.env.Sweeper.Start(s.ctx))
	s.Equal(1, s.env.Clock.Pending())

	s.env.Clock.Advance(time.Second)
	s.Empty(s.env.Publisher.OfType(shared.EventRewardsExpired))

	s.env.Clock.Advance(time.Second)
	s.Len(s.env.Publisher.OfType(shared.EventRewardsExpired), 1)

	live, err := s.env.Queries.ListLiveRewards(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(live, 1)
	s.Equal("PLASTLATER1", live[0].PromoCode)

	s.env.Sweeper.Stop()
	s.Zero(s.env.Clock.Pending())

	s.env.Clock.Advance(2 * time.Hour)
	s.Len(s.env.Publisher.OfType(shared.EventRewardsExpired), 1, "stopped sweeper does not run")
}

func (s *ExpirySweeperTestSuite) TestStartSweepsImmediately() {
	s.env.Clock.Set(promotest.Start.Add(2 * time.Hour))

	s.Require().NoError(s.env.Sweeper.Start(s.ctx))
	defer s.env.Sweeper.Stop()

	raw, _ := s.env.Persisted(s.T(), converter.KeyWonRewards)
	s.Equal("[]", raw)
}
