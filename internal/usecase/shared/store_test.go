//go:build unit

package shared_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/infra"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/shared"
	"prize-wheel/tests/common/builder"
	sharedmock "prize-wheel/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PromotionsStoreTestSuite struct {
	suite.Suite
	ctx      context.Context
	logger   *slog.Logger
	mockCtrl *gomock.Controller
	mockRepo *sharedmock.MockStateRepository
	retry    shared.RetryPolicy
}

func (s *PromotionsStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = sharedmock.NewMockStateRepository(s.mockCtrl)
	s.retry = shared.RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}
}

func (s *PromotionsStoreTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPromotionsStoreSuite(t *testing.T) {
	suite.Run(t, new(PromotionsStoreTestSuite))
}

func (s *PromotionsStoreTestSuite) newStore(snap *shared.PromotionsSnapshot) *shared.PromotionsStore {
	s.mockRepo.EXPECT().Load(gomock.Any()).Return(snap, nil)
	store, err := shared.NewPromotionsStore(s.ctx, s.mockRepo, s.retry, s.logger)
	s.Require().NoError(err)
	return store
}

func (s *PromotionsStoreTestSuite) credit(amount int) shared.Mutation {
	return func(st *shared.State) (shared.StateChange, error) {
		b, err := st.Balance.Credit(amount)
		if err != nil {
			return shared.StateChange{}, err
		}
		st.Balance = b
		return shared.StateChange{Balance: shared.BalanceChange(b)}, nil
	}
}

func (s *PromotionsStoreTestSuite) balance(store *shared.PromotionsStore) int {
	var n int
	store.View(func(st shared.State) { n = st.Balance.Amount() })
	return n
}

// ================================================================================
// Load
// ================================================================================

func (s *PromotionsStoreTestSuite) TestLoad() {
	s.Run("restores the snapshot", func() {
		r := builder.NewWonRewardBuilder().MustBuildDomain(s.T())
		store := s.newStore(&shared.PromotionsSnapshot{Balance: 12, SubscriptionClaimed: true, Rewards: []*wonreward.WonReward{r}})

		store.View(func(st shared.State) {
			s.Equal(12, st.Balance.Amount())
			s.True(st.SubscriptionClaimed)
			s.Equal(1, st.Ledger.Len())
		})
	})

	s.Run("negative balance starts from zero", func() {
		store := s.newStore(&shared.PromotionsSnapshot{Balance: -4})
		s.Equal(0, s.balance(store))
	})

	s.Run("duplicate promo codes keep the first record", func() {
		a := builder.NewWonRewardBuilder().MustBuildDomain(s.T())
		b := builder.NewWonRewardBuilder().MustBuildDomain(s.T())
		store := s.newStore(&shared.PromotionsSnapshot{Rewards: []*wonreward.WonReward{a, b}})

		store.View(func(st shared.State) {
			s.Require().Equal(1, st.Ledger.Len())
			s.Equal(a.ID(), st.Ledger.Records()[0].ID())
		})
	})

	s.Run("load failure is a persistence failure", func() {
		s.mockRepo.EXPECT().Load(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := shared.NewPromotionsStore(s.ctx, s.mockRepo, s.retry, s.logger)
		s.True(errs.Is(err, errs.ErrPersistenceFailure))
	})
}

// ================================================================================
// Mutate
// ================================================================================

func (s *PromotionsStoreTestSuite) TestMutate() {
	s.Run("commits after a successful write", func() {
		store := s.newStore(&shared.PromotionsSnapshot{})
		s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, change shared.StateChange) error {
				s.Require().NotNil(change.Balance)
				s.Equal(10, *change.Balance)
				return nil
			})

		var committed int
		err := store.Mutate(s.ctx, s.credit(10), func(st *shared.State) { committed = st.Balance.Amount() })
		s.Require().NoError(err)
		s.Equal(10, committed)
		s.Equal(10, s.balance(store))
	})

	s.Run("retries transient failures", func() {
		store := s.newStore(&shared.PromotionsSnapshot{})
		gomock.InOrder(
			s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("timeout")),
			s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		)

		s.Require().NoError(store.Mutate(s.ctx, s.credit(5)))
		s.Equal(5, s.balance(store))
	})

	s.Run("failed write keeps the previous state", func() {
		store := s.newStore(&shared.PromotionsSnapshot{Balance: 3})
		s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("timeout")).Times(s.retry.MaxRetries + 1)

		called := false
		err := store.Mutate(s.ctx, s.credit(10), func(*shared.State) { called = true })
		s.True(errs.Is(err, errs.ErrPersistenceFailure))
		s.False(called)
		s.Equal(3, s.balance(store))
	})

	s.Run("permanent failures are not retried", func() {
		store := s.newStore(&shared.PromotionsSnapshot{})
		permanent := infra.WrapRepoErr(s.logger, infra.KindDecodeFailure, "failed to encode won rewards", errors.New("bad json"))
		s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(permanent).Times(1)

		err := store.Mutate(s.ctx, s.credit(10))
		s.True(errs.Is(err, errs.ErrPersistenceFailure))
		s.Equal(0, s.balance(store))
	})

	s.Run("store failures are retried", func() {
		store := s.newStore(&shared.PromotionsSnapshot{})
		transient := infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to write promotions state", errors.New("i/o timeout"))
		gomock.InOrder(
			s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(transient),
			s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		)

		s.Require().NoError(store.Mutate(s.ctx, s.credit(1)))
		s.Equal(1, s.balance(store))
	})

	s.Run("empty change skips the write", func() {
		store := s.newStore(&shared.PromotionsSnapshot{})

		err := store.Mutate(s.ctx, func(*shared.State) (shared.StateChange, error) {
			return shared.StateChange{}, nil
		})
		s.NoError(err)
	})

	s.Run("mutation error discards the working copy", func() {
		store := s.newStore(&shared.PromotionsSnapshot{Balance: 2})
		boom := errors.New("rejected")

		err := store.Mutate(s.ctx, func(st *shared.State) (shared.StateChange, error) {
			b, _ := st.Balance.Credit(100)
			st.Balance = b
			return shared.StateChange{}, boom
		})
		s.ErrorIs(err, boom)
		s.Equal(2, s.balance(store))
	})

	s.Run("cancelled context stops retrying", func() {
		store := s.newStore(&shared.PromotionsSnapshot{})
		ctx, cancel := context.WithCancel(s.ctx)
		s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, shared.StateChange) error {
				cancel()
				return errors.New("timeout")
			}).Times(1)

		err := store.Mutate(ctx, s.credit(1))
		s.True(errs.Is(err, errs.ErrPersistenceFailure))
	})
}

func (s *PromotionsStoreTestSuite) TestUpdateDoesNotPersist() {
	store := s.newStore(&shared.PromotionsSnapshot{})

	store.Update(func(st *shared.State) { st.SubscriptionPending = true })

	store.View(func(st shared.State) { s.True(st.SubscriptionPending) })
}
