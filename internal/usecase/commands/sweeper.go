package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/usecase/shared"

	"github.com/samber/lo"
)

// ExpirySweeper removes expired rewards from the ledger on a fixed interval.
// Redemption never depends on it: expired codes are rejected either way.
type ExpirySweeper struct {
	store     *shared.PromotionsStore
	clock     clock.Clock
	scheduler clock.Scheduler
	publisher shared.EventPublisher
	interval  time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	timer   clock.Timer
	running bool
}

func NewExpirySweeper(
	store *shared.PromotionsStore,
	clk clock.Clock,
	scheduler clock.Scheduler,
	publisher shared.EventPublisher,
	interval time.Duration,
	logger *slog.Logger,
) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Second
	}
	return &ExpirySweeper{
		store:     store,
		clock:     clk,
		scheduler: scheduler,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
	}
}

// SweepNow removes every record whose expiry is at or before now and
// returns how many were removed.
func (w *ExpirySweeper) SweepNow(ctx context.Context) (int, error) {
	now := w.clock.Now()
	var removed []*wonreward.WonReward

	err := w.store.Mutate(ctx, func(st *shared.State) (shared.StateChange, error) {
		removed = st.Ledger.SweepExpired(now)
		if len(removed) == 0 {
			return shared.StateChange{}, nil
		}
		return shared.RewardsChange(st.Ledger), nil
	})
	if err != nil {
		return 0, err
	}
	if len(removed) == 0 {
		return 0, nil
	}

	codes := lo.Map(removed, func(r *wonreward.WonReward, _ int) string { return r.Code().String() })
	w.logger.Info("expired rewards swept", "count", len(removed))
	publishEvent(ctx, w.publisher, w.logger, shared.Event{
		Type:       shared.EventRewardsExpired,
		OccurredAt: now,
		Payload: map[string]any{
			"count":       len(removed),
			"promo_codes": codes,
		},
	})

	return len(removed), nil
}

func (w *ExpirySweeper) Start(ctx context.Context) error {
	if _, err := w.SweepNow(ctx); err != nil {
		w.logger.Warn("initial expiry sweep failed", "error", err.Error())
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	w.running = true
	w.schedule()
	return nil
}

func (w *ExpirySweeper) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// schedule must be called with w.mu held.
func (w *ExpirySweeper) schedule() {
	w.timer = w.scheduler.AfterFunc(w.interval, w.tick)
}

func (w *ExpirySweeper) tick() {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if !running {
		return
	}

	if _, err := w.SweepNow(context.Background()); err != nil {
		w.logger.Warn("expiry sweep failed", "error", err.Error())
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		w.schedule()
	}
}
