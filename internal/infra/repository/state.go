package repository

import (
	"context"
	"log/slog"

	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/infra"
	"prize-wheel/internal/infra/kv"
	"prize-wheel/internal/infra/repository/converter"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/usecase/shared"
)

// StateRepository maps the promotions snapshot onto a kv.Store using the
// plain-text key layout in the converter package.
type StateRepository struct {
	store  kv.Store
	clock  clock.Clock
	logger *slog.Logger
}

func NewStateRepository(store kv.Store, clk clock.Clock, logger *slog.Logger) *StateRepository {
	return &StateRepository{store: store, clock: clk, logger: logger}
}

// Load decodes the persisted state. Malformed scalars fall back to their
// zero value; malformed reward records are moved to the quarantine key.
func (r *StateRepository) Load(ctx context.Context) (*shared.PromotionsSnapshot, error) {
	values, err := r.store.GetMany(ctx, converter.StateKeys)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindStoreFailure, "failed to read promotions state", err)
	}

	snap := &shared.PromotionsSnapshot{}

	if snap.Balance, err = converter.DecodeBalance(values[converter.KeyBalance]); err != nil {
		r.logger.Warn("discarding malformed balance", "key", converter.KeyBalance, "error", err.Error())
		snap.Balance = 0
	}

	if snap.LastDailyBonus, err = converter.DecodeDate(values[converter.KeyLastDailyBonus]); err != nil {
		r.logger.Warn("discarding malformed daily bonus date", "key", converter.KeyLastDailyBonus, "error", err.Error())
	}

	if snap.SubscriptionClaimed, err = converter.DecodeFlag(values[converter.KeySubscriptionClaimed]); err != nil {
		r.logger.Warn("discarding malformed subscription flag", "key", converter.KeySubscriptionClaimed, "error", err.Error())
	}

	rawRewards := values[converter.KeyWonRewards]
	rewards, rejected, err := converter.DecodeRewards(rawRewards)
	if err != nil {
		rejected = []converter.RejectedRecord{{
			Raw:    converter.RawJSON(rawRewards),
			Reason: err.Error(),
		}}
		rewards = nil
	}
	snap.Rewards = rewards

	if len(rejected) > 0 {
		if err := r.quarantine(ctx, values[converter.KeyQuarantine], rewards, rejected); err != nil {
			return nil, err
		}
	}

	return snap, nil
}

// quarantine moves rejected records aside and rewrites the reward key with
// the records that survived, in one store write.
func (r *StateRepository) quarantine(ctx context.Context, existing string, kept []*wonreward.WonReward, rejected []converter.RejectedRecord) error {
	quarantined, err := converter.AppendQuarantine(existing, rejected, r.clock.Now())
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDecodeFailure, "failed to encode quarantine", err)
	}
	encoded, err := converter.EncodeRewards(kept)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDecodeFailure, "failed to encode won rewards", err)
	}

	err = r.store.SetMany(ctx, map[string]string{
		converter.KeyQuarantine: quarantined,
		converter.KeyWonRewards: encoded,
	})
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindStoreFailure, "failed to quarantine malformed rewards", err)
	}

	for _, rec := range rejected {
		r.logger.Warn("quarantined malformed won reward", "reason", rec.Reason)
	}
	return nil
}

// Save writes every field named by the change in a single store call.
func (r *StateRepository) Save(ctx context.Context, change shared.StateChange) error {
	entries := make(map[string]string, 4)

	if change.Balance != nil {
		entries[converter.KeyBalance] = converter.EncodeBalance(*change.Balance)
	}
	if change.LastDailyBonus != nil {
		entries[converter.KeyLastDailyBonus] = converter.EncodeDate(*change.LastDailyBonus)
	}
	if change.SubscriptionClaimed != nil {
		entries[converter.KeySubscriptionClaimed] = converter.EncodeFlag(*change.SubscriptionClaimed)
	}
	if change.RewardsChanged {
		encoded, err := converter.EncodeRewards(change.Rewards)
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDecodeFailure, "failed to encode won rewards", err)
		}
		entries[converter.KeyWonRewards] = encoded
	}

	if len(entries) == 0 {
		return nil
	}
	if err := r.store.SetMany(ctx, entries); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindStoreFailure, "failed to write promotions state", err)
	}
	return nil
}

var _ shared.StateRepository = (*StateRepository)(nil)
