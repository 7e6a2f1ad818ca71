//go:build unit || e2e

package builder

import (
	"time"

	"prize-wheel/internal/domain/reward"
	"prize-wheel/internal/usecase/commands"
	"prize-wheel/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpinBuilder struct {
	SessionID   uuid.UUID
	RewardIndex int
	Reward      reward.Definition
	Balance     int
	StartedAt   time.Time
	RevealDelay time.Duration
}

func NewSpinBuilder() *SpinBuilder {
	def, _ := reward.NewDiscountDefinition(2, "30% off printing services", 60, 30)
	return &SpinBuilder{
		SessionID:   uuid.New(),
		RewardIndex: 1,
		Reward:      def,
		Balance:     7,
		StartedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		RevealDelay: 3500 * time.Millisecond,
	}
}

func (b *SpinBuilder) With(mutate func(*SpinBuilder)) *SpinBuilder {
	mutate(b)
	return b
}

func (b *SpinBuilder) BuildResult() *commands.SpinResult {
	return &commands.SpinResult{
		SessionID:   b.SessionID,
		RewardIndex: b.RewardIndex,
		Reward:      b.Reward,
		Balance:     b.Balance,
		RevealAt:    b.StartedAt.Add(b.RevealDelay),
	}
}

func (b *SpinBuilder) BuildSpinningView() *queries.SpinView {
	return &queries.SpinView{
		ID:          b.SessionID,
		State:       "spinning",
		Cost:        3,
		Drawn:       true,
		RewardIndex: b.RewardIndex,
		RewardID:    b.Reward.ID(),
		RewardName:  b.Reward.Name(),
		Kind:        b.Reward.Kind().String(),
		StartedAt:   b.StartedAt,
		RevealAt:    b.StartedAt.Add(b.RevealDelay),
	}
}

func (b *SpinBuilder) BuildResolvedView(won *queries.RewardView) *queries.SpinView {
	v := b.BuildSpinningView()
	resolvedAt := v.RevealAt
	v.State = "resolved"
	v.ResolvedAt = &resolvedAt
	v.Won = won
	return v
}
