package shared

import (
	"time"

	"prize-wheel/internal/domain/bonus"
	"prize-wheel/internal/domain/wonreward"
)

// PromotionsSnapshot is the durable part of the promotions state.
type PromotionsSnapshot struct {
	Balance             int
	LastDailyBonus      bonus.Date
	SubscriptionClaimed bool
	Rewards             []*wonreward.WonReward
}

// StateChange lists the durable fields a mutation touched. Nil/false
// fields are left as they are in storage.
type StateChange struct {
	Balance             *int
	LastDailyBonus      *bonus.Date
	SubscriptionClaimed *bool
	Rewards             []*wonreward.WonReward
	RewardsChanged      bool
}

func (c StateChange) IsEmpty() bool {
	return c.Balance == nil && c.LastDailyBonus == nil && c.SubscriptionClaimed == nil && !c.RewardsChanged
}

type EventType string

const (
	EventSpinWon        EventType = "spin.won"
	EventSpinFailed     EventType = "spin.failed"
	EventBonusGranted   EventType = "bonus.granted"
	EventRewardRedeemed EventType = "reward.redeemed"
	EventRewardsExpired EventType = "rewards.expired"
)

type Event struct {
	Type       EventType      `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}
