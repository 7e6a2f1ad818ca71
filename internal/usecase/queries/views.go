package queries

import (
	"time"

	"github.com/google/uuid"
)

type WheelEntryView struct {
	Index           int     `json:"index"`
	RewardID        int     `json:"reward_id"`
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
	Percentage      float64 `json:"percentage"`
	Winnable        bool    `json:"winnable"`
	Fallback        bool    `json:"fallback"`
}

type WheelView struct {
	SpinCost    int              `json:"spin_cost"`
	RevealDelay time.Duration    `json:"reveal_delay"`
	Entries     []WheelEntryView `json:"entries"`
}

type WalletView struct {
	Balance                 int    `json:"balance"`
	SpinCost                int    `json:"spin_cost"`
	CanSpin                 bool   `json:"can_spin"`
	DailyBonusAmount        int    `json:"daily_bonus_amount"`
	DailyBonusClaimedToday  bool   `json:"daily_bonus_claimed_today"`
	LastDailyBonus          string `json:"last_daily_bonus,omitempty"`
	SubscriptionBonusAmount int    `json:"subscription_bonus_amount"`
	SubscriptionClaimed     bool   `json:"subscription_claimed"`
	SubscriptionPending     bool   `json:"subscription_pending"`
	SubscriptionURL         string `json:"subscription_url"`
}

// RewardView is a live won reward as shown to its owner.
type RewardView struct {
	ID              string    `json:"id"`
	RewardID        int       `json:"reward_id"`
	DisplayName     string    `json:"display_name"`
	PromoCode       string    `json:"promo_code"`
	DiscountPercent int       `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type SpinView struct {
	ID          uuid.UUID   `json:"id"`
	State       string      `json:"state"`
	Cost        int         `json:"cost"`
	Drawn       bool        `json:"drawn"`
	RewardIndex int         `json:"reward_index"`
	RewardID    int         `json:"reward_id"`
	RewardName  string      `json:"reward_name"`
	Kind        string      `json:"kind"`
	StartedAt   time.Time   `json:"started_at"`
	RevealAt    time.Time   `json:"reveal_at"`
	ResolvedAt  *time.Time  `json:"resolved_at,omitempty"`
	Won         *RewardView `json:"won,omitempty"`
	Failure     string      `json:"failure,omitempty"`
}

type PromoCodeView struct {
	PromoCode       string    `json:"promo_code"`
	RewardID        int       `json:"reward_id"`
	RewardName      string    `json:"reward_name"`
	DiscountPercent int       `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
}
