package commands

import (
	"context"
	"log/slog"
	"time"

	"prize-wheel/internal/domain/bonus"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/usecase/shared"
)

type DailyBonusResult struct {
	Granted bool
	Amount  int
	Balance int
	Date    bonus.Date
}

type SubscriptionResult struct {
	URL            string
	AlreadyClaimed bool
	Pending        bool
	ConfirmAt      time.Time
}

type BonusCommands interface {
	ClaimDailyBonus(ctx context.Context) (*DailyBonusResult, error)
	StartSubscription(ctx context.Context) (*SubscriptionResult, error)
}

type bonusCommandsImpl struct {
	store        *shared.PromotionsStore
	daily        bonus.DailyPolicy
	subscription bonus.SubscriptionPolicy
	clock        clock.Clock
	scheduler    clock.Scheduler
	publisher    shared.EventPublisher
	logger       *slog.Logger
}

func NewBonusCommands(
	store *shared.PromotionsStore,
	daily bonus.DailyPolicy,
	subscription bonus.SubscriptionPolicy,
	clk clock.Clock,
	scheduler clock.Scheduler,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) BonusCommands {
	return &bonusCommandsImpl{
		store:        store,
		daily:        daily,
		subscription: subscription,
		clock:        clk,
		scheduler:    scheduler,
		publisher:    publisher,
		logger:       logger,
	}
}

// ClaimDailyBonus credits the daily amount at most once per calendar date.
// Calling it again on the same date is a no-op, not an error.
func (c *bonusCommandsImpl) ClaimDailyBonus(ctx context.Context) (*DailyBonusResult, error) {
	now := c.clock.Now()
	today := c.daily.Today(now)
	result := DailyBonusResult{Date: today}

	err := c.store.Mutate(ctx, func(st *shared.State) (shared.StateChange, error) {
		amount, ok := c.daily.TryGrant(st.LastDailyBonus, today)
		if !ok {
			result.Balance = st.Balance.Amount()
			return shared.StateChange{}, nil
		}

		credited, err := st.Balance.Credit(amount)
		if err != nil {
			return shared.StateChange{}, err
		}

		st.Balance = credited
		st.LastDailyBonus = today

		result.Granted = true
		result.Amount = amount
		result.Balance = credited.Amount()

		return shared.StateChange{
			Balance:        shared.BalanceChange(credited),
			LastDailyBonus: &today,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if result.Granted {
		c.logger.Info("daily bonus granted", "amount", result.Amount, "balance", result.Balance, "date", today.String())
		publishEvent(ctx, c.publisher, c.logger, shared.Event{
			Type:       shared.EventBonusGranted,
			OccurredAt: now,
			Payload: map[string]any{
				"bonus":   "daily",
				"amount":  result.Amount,
				"balance": result.Balance,
				"date":    today.String(),
			},
		})
	}

	return &result, nil
}

// StartSubscription hands out the channel URL and schedules the one-time
// subscription credit. Nothing verifies that the user actually subscribed.
func (c *bonusCommandsImpl) StartSubscription(ctx context.Context) (*SubscriptionResult, error) {
	result := SubscriptionResult{URL: c.subscription.URL()}

	c.store.Update(func(st *shared.State) {
		switch {
		case st.SubscriptionClaimed:
			result.AlreadyClaimed = true
		case st.SubscriptionPending:
			result.Pending = true
		default:
			st.SubscriptionPending = true
			result.Pending = true
			result.ConfirmAt = c.clock.Now().Add(c.subscription.ConfirmDelay())
			c.scheduler.AfterFunc(c.subscription.ConfirmDelay(), c.confirmSubscription)
		}
	})

	return &result, nil
}

func (c *bonusCommandsImpl) confirmSubscription() {
	ctx := context.Background()
	now := c.clock.Now()

	var (
		granted bool
		amount  int
		balance int
	)

	err := c.store.Mutate(ctx, func(st *shared.State) (shared.StateChange, error) {
		st.SubscriptionPending = false

		grant, ok := c.subscription.TryGrant(st.SubscriptionClaimed)
		if !ok {
			return shared.StateChange{}, nil
		}

		credited, err := st.Balance.Credit(grant)
		if err != nil {
			return shared.StateChange{}, err
		}

		st.Balance = credited
		st.SubscriptionClaimed = true

		granted, amount, balance = true, grant, credited.Amount()

		claimed := true
		return shared.StateChange{
			Balance:             shared.BalanceChange(credited),
			SubscriptionClaimed: &claimed,
		}, nil
	})
	if err != nil {
		c.logger.Error("subscription bonus not granted", "error", err.Error())
		c.store.Update(func(st *shared.State) { st.SubscriptionPending = false })
		return
	}
	if !granted {
		return
	}

	c.logger.Info("subscription bonus granted", "amount", amount, "balance", balance)
	publishEvent(ctx, c.publisher, c.logger, shared.Event{
		Type:       shared.EventBonusGranted,
		OccurredAt: now,
		Payload: map[string]any{
			"bonus":   "subscription",
			"amount":  amount,
			"balance": balance,
		},
	})
}
