package shared

import (
	"context"
	"log/slog"
	"sync"

	"prize-wheel/internal/domain/bonus"
	"prize-wheel/internal/domain/spin"
	"prize-wheel/internal/domain/wallet"
	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/pkg/errs"
)

// State is the in-memory promotions state. Session and SubscriptionPending
// are volatile; everything else is mirrored to the StateRepository.
type State struct {
	Balance             wallet.Balance
	LastDailyBonus      bonus.Date
	SubscriptionClaimed bool
	SubscriptionPending bool
	Ledger              *wonreward.Ledger
	Session             spin.Session
}

func (st *State) clone() *State {
	c := *st
	c.Ledger = st.Ledger.Clone()
	return &c
}

// Mutation edits a working copy of the state and reports which durable
// fields changed. Returning an error discards the working copy.
type Mutation func(st *State) (StateChange, error)

// PromotionsStore owns the balance, the reward ledger and the bonus flags.
// All writers are serialized; a mutation and its durable write form one
// unit, so a failed write leaves the previous state in place.
type PromotionsStore struct {
	mu     sync.Mutex
	state  *State
	repo   StateRepository
	retry  RetryPolicy
	logger *slog.Logger
}

func NewPromotionsStore(ctx context.Context, repo StateRepository, retry RetryPolicy, logger *slog.Logger) (*PromotionsStore, error) {
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "load promotions state"), errs.ErrPersistenceFailure)
	}

	balance, err := wallet.NewBalance(snap.Balance)
	if err != nil {
		logger.Warn("persisted balance rejected, starting from zero", "balance", snap.Balance, "error", err.Error())
		balance = wallet.Balance{}
	}

	ledger, _ := wonreward.NewLedger()
	for _, r := range snap.Rewards {
		if err := ledger.Insert(r); err != nil {
			logger.Warn("dropping duplicate persisted reward", "promo_code", r.Code().String(), "reward_id", r.ID())
		}
	}

	logger.Info("promotions state loaded",
		"balance", balance.Amount(),
		"live_rewards", ledger.Len(),
		"last_daily_bonus", snap.LastDailyBonus.String(),
		"subscription_claimed", snap.SubscriptionClaimed)

	return &PromotionsStore{
		state: &State{
			Balance:             balance,
			LastDailyBonus:      snap.LastDailyBonus,
			SubscriptionClaimed: snap.SubscriptionClaimed,
			Ledger:              ledger,
		},
		repo:   repo,
		retry:  retry,
		logger: logger,
	}, nil
}

// Mutate applies m and persists its change before committing it. afterCommit
// callbacks run on the committed state while the store is still locked.
func (s *PromotionsStore) Mutate(ctx context.Context, m Mutation, afterCommit ...func(st *State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	change, err := m(working)
	if err != nil {
		return err
	}

	if !change.IsEmpty() {
		if err := SaveWithRetry(ctx, s.repo, change, s.retry, s.logger); err != nil {
			return err
		}
	}

	s.state = working
	for _, fn := range afterCommit {
		fn(s.state)
	}
	return nil
}

// Update changes volatile fields only. Nothing is persisted.
func (s *PromotionsStore) Update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// View runs fn against the current state. fn must not modify the ledger.
func (s *PromotionsStore) View(fn func(st State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(*s.state)
}

func BalanceChange(b wallet.Balance) *int {
	amount := b.Amount()
	return &amount
}

func RewardsChange(l *wonreward.Ledger) StateChange {
	return StateChange{Rewards: l.Records(), RewardsChanged: true}
}
