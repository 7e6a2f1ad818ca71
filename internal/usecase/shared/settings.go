package shared

import "time"

type WheelSettings struct {
	SpinCost             int
	RevealDelay          time.Duration
	RewardTTL            time.Duration
	PromoCodeMaxAttempts int
}
