package wonreward

import (
	"errors"
	"strings"
	"time"

	"prize-wheel/internal/domain/promocode"
	"prize-wheel/internal/domain/reward"

	"github.com/google/uuid"
)

var (
	ErrInvalidTTL       = errors.New("reward validity window must be positive")
	ErrMissingID        = errors.New("won reward id cannot be empty")
	ErrMissingExpiry    = errors.New("won reward expiry cannot be zero")
	ErrInvalidRewardRef = errors.New("won reward must reference a positive reward id")
)

// WonReward is a minted, time-limited, single-use discount. expiresAt is set
// at mint and never changes.
type WonReward struct {
	id              string
	rewardID        int
	displayName     string
	code            promocode.Code
	discountPercent int
	expiresAt       time.Time
}

func Mint(def reward.Definition, code promocode.Code, now time.Time, ttl time.Duration) (*WonReward, error) {
	if !def.IsDiscount() {
		return nil, reward.ErrNotDiscountReward
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if _, err := promocode.Parse(code.String()); err != nil {
		return nil, err
	}

	return &WonReward{
		id:              uuid.NewString(),
		rewardID:        def.ID(),
		displayName:     def.Name(),
		code:            code,
		discountPercent: def.DiscountPercent(),
		expiresAt:       now.Add(ttl),
	}, nil
}

// Reconstruct rebuilds a persisted record, validating every field.
func Reconstruct(
	id string,
	rewardID int,
	displayName string,
	code string,
	discountPercent int,
	expiresAt time.Time,
) (*WonReward, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}
	if rewardID <= 0 {
		return nil, ErrInvalidRewardRef
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, reward.ErrEmptyRewardName
	}
	parsed, err := promocode.Parse(code)
	if err != nil {
		return nil, err
	}
	if discountPercent < reward.MinDiscountPercent || discountPercent > reward.MaxDiscountPercent {
		return nil, reward.ErrInvalidDiscount
	}
	if expiresAt.IsZero() {
		return nil, ErrMissingExpiry
	}

	return &WonReward{
		id:              id,
		rewardID:        rewardID,
		displayName:     displayName,
		code:            parsed,
		discountPercent: discountPercent,
		expiresAt:       expiresAt,
	}, nil
}

// IsLiveAt reports whether the reward can still be redeemed at t.
func (w *WonReward) IsLiveAt(t time.Time) bool {
	return t.Before(w.expiresAt)
}

func (w *WonReward) ID() string           { return w.id }
func (w *WonReward) RewardID() int        { return w.rewardID }
func (w *WonReward) DisplayName() string  { return w.displayName }
func (w *WonReward) Code() promocode.Code { return w.code }
func (w *WonReward) DiscountPercent() int { return w.discountPercent }
func (w *WonReward) ExpiresAt() time.Time { return w.expiresAt }
