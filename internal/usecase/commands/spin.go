package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"prize-wheel/internal/domain/promocode"
	"prize-wheel/internal/domain/reward"
	"prize-wheel/internal/domain/spin"
	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpinResult struct {
	SessionID   uuid.UUID
	RewardIndex int
	Reward      reward.Definition
	Balance     int
	RevealAt    time.Time
}

type SpinCommands interface {
	AttemptSpin(ctx context.Context) (*SpinResult, error)
}

type spinCommandsImpl struct {
	store     *shared.PromotionsStore
	catalog   *reward.Catalog
	drawer    reward.Drawer
	codes     promocode.Generator
	clock     clock.Clock
	scheduler clock.Scheduler
	publisher shared.EventPublisher
	settings  shared.WheelSettings
	logger    *slog.Logger
}

func NewSpinCommands(
	store *shared.PromotionsStore,
	catalog *reward.Catalog,
	drawer reward.Drawer,
	codes promocode.Generator,
	clk clock.Clock,
	scheduler clock.Scheduler,
	publisher shared.EventPublisher,
	settings shared.WheelSettings,
	logger *slog.Logger,
) SpinCommands {
	return &spinCommandsImpl{
		store:     store,
		catalog:   catalog,
		drawer:    drawer,
		codes:     codes,
		clock:     clk,
		scheduler: scheduler,
		publisher: publisher,
		settings:  settings,
		logger:    logger,
	}
}

// AttemptSpin debits the spin cost, draws a reward once the debit is durable,
// and schedules the reveal. The reward is minted when the reveal fires.
func (c *spinCommandsImpl) AttemptSpin(ctx context.Context) (*SpinResult, error) {
	var result *SpinResult

	err := c.store.Mutate(ctx, func(st *shared.State) (shared.StateChange, error) {
		if st.Session.IsSpinning() {
			return shared.StateChange{}, errs.ErrSpinInProgress
		}

		debited, err := st.Balance.Debit(c.settings.SpinCost)
		if err != nil {
			return shared.StateChange{}, err
		}

		session, err := spin.NewSession(c.settings.SpinCost).Begin(c.clock.Now())
		if err != nil {
			return shared.StateChange{}, err
		}

		st.Balance = debited
		st.Session = session
		return shared.StateChange{Balance: shared.BalanceChange(debited)}, nil
	}, func(st *shared.State) {
		index := c.catalog.Select(c.drawer.Draw())
		def := c.catalog.At(index)
		revealAt := c.clock.Now().Add(c.settings.RevealDelay)

		session, err := st.Session.Draw(index, def, revealAt)
		if err != nil {
			c.logger.Error("failed to record draw", "session_id", st.Session.ID().String(), "error", err.Error())
			return
		}
		st.Session = session

		result = &SpinResult{
			SessionID:   session.ID(),
			RewardIndex: index,
			Reward:      def,
			Balance:     st.Balance.Amount(),
			RevealAt:    revealAt,
		}

		sessionID := session.ID()
		c.scheduler.AfterFunc(c.settings.RevealDelay, func() { c.resolve(sessionID) })
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errs.New("spin committed without a draw")
	}

	c.logger.Info("spin committed",
		"session_id", result.SessionID.String(),
		"reward_id", result.Reward.ID(),
		"reward_index", result.RewardIndex,
		"balance", result.Balance)

	return result, nil
}

func (c *spinCommandsImpl) resolve(sessionID uuid.UUID) {
	ctx := context.Background()
	now := c.clock.Now()

	var (
		minted   *wonreward.WonReward
		resolved spin.Session
	)

	err := c.store.Mutate(ctx, func(st *shared.State) (shared.StateChange, error) {
		if st.Session.ID() != sessionID || !st.Session.IsSpinning() {
			return shared.StateChange{}, spin.ErrInvalidTransition
		}

		def := st.Session.Reward()
		if !def.IsDiscount() {
			return shared.StateChange{}, nil
		}

		record, err := c.mint(st.Ledger, def, now)
		if err != nil {
			return shared.StateChange{}, err
		}
		if err := st.Ledger.Insert(record); err != nil {
			return shared.StateChange{}, errs.Mark(err, errs.ErrGenerationCollision)
		}

		minted = record
		return shared.RewardsChange(st.Ledger), nil
	}, func(st *shared.State) {
		session, err := st.Session.Resolve(now, minted)
		if err != nil {
			c.logger.Error("failed to resolve session", "session_id", sessionID.String(), "error", err.Error())
			return
		}
		st.Session = session
		resolved = session
	})

	if err != nil {
		if errors.Is(err, spin.ErrInvalidTransition) {
			c.logger.Warn("ignoring stale spin resolution", "session_id", sessionID.String())
			return
		}

		c.logger.Error("spin resolution failed, reward lost",
			"session_id", sessionID.String(),
			"error", err.Error())

		c.store.Update(func(st *shared.State) {
			if st.Session.ID() != sessionID {
				return
			}
			if failed, failErr := st.Session.Fail(now, err); failErr == nil {
				st.Session = failed
			}
		})

		publishEvent(ctx, c.publisher, c.logger, shared.Event{
			Type:       shared.EventSpinFailed,
			OccurredAt: now,
			Payload: map[string]any{
				"session_id": sessionID.String(),
				"error":      err.Error(),
			},
		})
		return
	}

	def := resolved.Reward()
	payload := map[string]any{
		"session_id":  sessionID.String(),
		"reward_id":   def.ID(),
		"reward_name": def.Name(),
		"kind":        def.Kind().String(),
	}
	if minted != nil {
		payload["won_reward_id"] = minted.ID()
		payload["promo_code"] = minted.Code().String()
		payload["discount_percent"] = minted.DiscountPercent()
		payload["expires_at"] = minted.ExpiresAt().UnixMilli()
	}

	c.logger.Info("spin resolved",
		"session_id", sessionID.String(),
		"reward_id", def.ID(),
		"kind", def.Kind().String(),
		"minted", minted != nil)

	publishEvent(ctx, c.publisher, c.logger, shared.Event{
		Type:       shared.EventSpinWon,
		OccurredAt: now,
		Payload:    payload,
	})
}

// mint regenerates the code while it collides with a live one.
func (c *spinCommandsImpl) mint(ledger *wonreward.Ledger, def reward.Definition, now time.Time) (*wonreward.WonReward, error) {
	attempts := max(c.settings.PromoCodeMaxAttempts, 1)
	for attempt := 1; attempt <= attempts; attempt++ {
		code, err := c.codes.Generate()
		if err != nil {
			return nil, errs.Wrap(err, "generate promo code")
		}
		if ledger.Contains(code) {
			c.logger.Warn("promo code collision, regenerating", "attempt", attempt)
			continue
		}
		return wonreward.Mint(def, code, now, c.settings.RewardTTL)
	}
	return nil, errs.ErrGenerationCollision
}
