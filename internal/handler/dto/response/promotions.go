package response

import (
	"prize-wheel/internal/usecase/commands"
	"prize-wheel/internal/usecase/queries"

	"github.com/samber/lo"
)

type WheelEntryResponse struct {
	Index           int     `json:"index"`
	RewardID        int     `json:"reward_id"`
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
	Percentage      float64 `json:"percentage"`
	Winnable        bool    `json:"winnable"`
	Fallback        bool    `json:"fallback"`
}

type WheelResponse struct {
	SpinCost      int                  `json:"spin_cost"`
	RevealDelayMs int64                `json:"reveal_delay_ms"`
	Entries       []WheelEntryResponse `json:"entries"`
}

func FromWheelView(v *queries.WheelView) (*WheelResponse, error) {
	res := &WheelResponse{}
	if err := copyInto(res, v); err != nil {
		return nil, err
	}
	res.RevealDelayMs = v.RevealDelay.Milliseconds()
	return res, nil
}

type WalletResponse struct {
	Balance                 int    `json:"balance"`
	SpinCost                int    `json:"spin_cost"`
	CanSpin                 bool   `json:"can_spin"`
	DailyBonusAmount        int    `json:"daily_bonus_amount"`
	DailyBonusClaimedToday  bool   `json:"claimed_today"`
	LastDailyBonus          string `json:"last_daily_bonus,omitempty"`
	SubscriptionBonusAmount int    `json:"subscription_bonus_amount"`
	SubscriptionClaimed     bool   `json:"subscription_claimed"`
	SubscriptionPending     bool   `json:"subscription_pending"`
	SubscriptionURL         string `json:"subscription_url"`
}

func FromWalletView(v *queries.WalletView) (*WalletResponse, error) {
	res := &WalletResponse{}
	if err := copyInto(res, v); err != nil {
		return nil, err
	}
	return res, nil
}

type RewardResponse struct {
	ID              string `json:"id"`
	RewardID        int    `json:"reward_id"`
	DisplayName     string `json:"display_name"`
	PromoCode       string `json:"promo_code"`
	DiscountPercent int    `json:"discount_percent"`
	ExpiresAt       int64  `json:"expires_at"`
}

func FromRewardViews(views []*queries.RewardView) ([]*RewardResponse, error) {
	res := make([]*RewardResponse, 0, len(views))
	if len(views) == 0 {
		return res, nil
	}
	if err := copyInto(&res, views); err != nil {
		return nil, err
	}
	return res, nil
}

type SpinResponse struct {
	SessionID   string `json:"session_id"`
	RewardIndex int    `json:"reward_index"`
	RewardID    int    `json:"reward_id"`
	RewardName  string `json:"reward_name"`
	Kind        string `json:"kind"`
	Balance     int    `json:"balance"`
	RevealAt    int64  `json:"reveal_at"`
}

func FromSpinResult(r *commands.SpinResult) *SpinResponse {
	return &SpinResponse{
		SessionID:   r.SessionID.String(),
		RewardIndex: r.RewardIndex,
		RewardID:    r.Reward.ID(),
		RewardName:  r.Reward.Name(),
		Kind:        r.Reward.Kind().String(),
		Balance:     r.Balance,
		RevealAt:    millis(r.RevealAt),
	}
}

type SpinStatusResponse struct {
	SessionID   string          `json:"session_id"`
	State       string          `json:"state"`
	Cost        int             `json:"cost"`
	RewardIndex int             `json:"reward_index"`
	RewardID    int             `json:"reward_id"`
	RewardName  string          `json:"reward_name"`
	Kind        string          `json:"kind"`
	StartedAt   int64           `json:"started_at"`
	RevealAt    int64           `json:"reveal_at"`
	ResolvedAt  *int64          `json:"resolved_at,omitempty"`
	Won         *RewardResponse `json:"won,omitempty"`
	Failure     string          `json:"failure,omitempty"`
}

func FromSpinView(v *queries.SpinView) *SpinStatusResponse {
	res := &SpinStatusResponse{
		SessionID:   v.ID.String(),
		State:       v.State,
		Cost:        v.Cost,
		RewardIndex: v.RewardIndex,
		RewardID:    v.RewardID,
		RewardName:  v.RewardName,
		Kind:        v.Kind,
		StartedAt:   millis(v.StartedAt),
		RevealAt:    millis(v.RevealAt),
		Failure:     v.Failure,
	}
	if v.ResolvedAt != nil {
		res.ResolvedAt = lo.ToPtr(millis(*v.ResolvedAt))
	}
	if v.Won != nil {
		res.Won = &RewardResponse{
			ID:              v.Won.ID,
			RewardID:        v.Won.RewardID,
			DisplayName:     v.Won.DisplayName,
			PromoCode:       v.Won.PromoCode,
			DiscountPercent: v.Won.DiscountPercent,
			ExpiresAt:       millis(v.Won.ExpiresAt),
		}
	}
	return res
}

type DailyBonusResponse struct {
	Granted bool   `json:"granted"`
	Amount  int    `json:"amount"`
	Balance int    `json:"balance"`
	Date    string `json:"date"`
}

func FromDailyBonusResult(r *commands.DailyBonusResult) *DailyBonusResponse {
	return &DailyBonusResponse{
		Granted: r.Granted,
		Amount:  r.Amount,
		Balance: r.Balance,
		Date:    r.Date.String(),
	}
}

type SubscriptionResponse struct {
	URL            string `json:"url"`
	AlreadyClaimed bool   `json:"already_claimed"`
	Pending        bool   `json:"pending"`
	ConfirmAt      int64  `json:"confirm_at,omitempty"`
}

func FromSubscriptionResult(r *commands.SubscriptionResult) (*SubscriptionResponse, error) {
	res := &SubscriptionResponse{}
	if err := copyInto(res, r); err != nil {
		return nil, err
	}
	return res, nil
}

type PromoCodeResponse struct {
	PromoCode       string `json:"promo_code"`
	Valid           bool   `json:"valid"`
	RewardID        int    `json:"reward_id,omitempty"`
	RewardName      string `json:"reward_name,omitempty"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
	ExpiresAt       int64  `json:"expires_at,omitempty"`
}

func FromPromoCodeView(v *queries.PromoCodeView) (*PromoCodeResponse, error) {
	res := &PromoCodeResponse{Valid: true}
	if err := copyInto(res, v); err != nil {
		return nil, err
	}
	return res, nil
}

type RedemptionResponse struct {
	PromoCode       string `json:"promo_code"`
	RewardID        int    `json:"reward_id"`
	RewardName      string `json:"reward_name"`
	DiscountPercent int    `json:"discount_percent"`
}

func FromRedemptionResult(r *commands.RedemptionResult) *RedemptionResponse {
	return &RedemptionResponse{
		PromoCode:       r.Code,
		RewardID:        r.RewardID,
		RewardName:      r.RewardName,
		DiscountPercent: r.DiscountPercent,
	}
}

type InsufficientFundsDetail struct {
	Required  int `json:"required"`
	Available int `json:"available"`
}
