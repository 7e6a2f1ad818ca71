package commands

import (
	"context"
	"log/slog"
	"time"

	"prize-wheel/internal/domain/promocode"
	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/shared"
)

type RedemptionResult struct {
	Code            string
	RewardID        int
	RewardName      string
	DiscountPercent int
	ExpiresAt       time.Time
}

type RedemptionCommands interface {
	Redeem(ctx context.Context, rawCode string) (*RedemptionResult, error)
}

type redemptionCommandsImpl struct {
	store     *shared.PromotionsStore
	clock     clock.Clock
	publisher shared.EventPublisher
	logger    *slog.Logger
}

func NewRedemptionCommands(
	store *shared.PromotionsStore,
	clk clock.Clock,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) RedemptionCommands {
	return &redemptionCommandsImpl{
		store:     store,
		clock:     clk,
		publisher: publisher,
		logger:    logger,
	}
}

// Redeem consumes a live promo code. Unknown, expired and already
// redeemed codes are all reported as ErrInvalidRedemption.
func (c *redemptionCommandsImpl) Redeem(ctx context.Context, rawCode string) (*RedemptionResult, error) {
	code, err := promocode.Parse(rawCode)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRedemption)
	}

	now := c.clock.Now()
	var redeemed *wonreward.WonReward

	err = c.store.Mutate(ctx, func(st *shared.State) (shared.StateChange, error) {
		record, err := st.Ledger.Redeem(code, now)
		if err != nil {
			return shared.StateChange{}, errs.Mark(err, errs.ErrInvalidRedemption)
		}
		redeemed = record
		return shared.RewardsChange(st.Ledger), nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("promo code redeemed",
		"won_reward_id", redeemed.ID(),
		"reward_id", redeemed.RewardID(),
		"discount_percent", redeemed.DiscountPercent())

	publishEvent(ctx, c.publisher, c.logger, shared.Event{
		Type:       shared.EventRewardRedeemed,
		OccurredAt: now,
		Payload: map[string]any{
			"won_reward_id":    redeemed.ID(),
			"reward_id":        redeemed.RewardID(),
			"promo_code":       redeemed.Code().String(),
			"discount_percent": redeemed.DiscountPercent(),
		},
	})

	return &RedemptionResult{
		Code:            redeemed.Code().String(),
		RewardID:        redeemed.RewardID(),
		RewardName:      redeemed.DisplayName(),
		DiscountPercent: redeemed.DiscountPercent(),
		ExpiresAt:       redeemed.ExpiresAt(),
	}, nil
}
