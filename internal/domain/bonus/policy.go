package bonus

import (
	"errors"
	"time"
)

var ErrInvalidBonusAmount = errors.New("bonus amount must be positive")

// DailyPolicy grants once per distinct calendar day. Elapsed time does not
// matter; only the date does.
type DailyPolicy struct {
	amount   int
	location *time.Location
}

func NewDailyPolicy(amount int, loc *time.Location) (DailyPolicy, error) {
	if amount <= 0 {
		return DailyPolicy{}, ErrInvalidBonusAmount
	}
	if loc == nil {
		loc = time.UTC
	}
	return DailyPolicy{amount: amount, location: loc}, nil
}

func (p DailyPolicy) Today(now time.Time) Date {
	return DateOf(now, p.location)
}

// TryGrant returns the amount to credit, or false when today was already granted.
func (p DailyPolicy) TryGrant(lastGrant, today Date) (int, bool) {
	if !lastGrant.IsZero() && lastGrant.Equal(today) {
		return 0, false
	}
	return p.amount, true
}

func (p DailyPolicy) Amount() int { return p.amount }

// SubscriptionPolicy grants once ever, after the visitor opens the
// subscription link and a fixed delay passes. Nothing verifies that the
// visitor actually subscribed: the grant is on the honor system.
type SubscriptionPolicy struct {
	amount       int
	confirmDelay time.Duration
	url          string
}

func NewSubscriptionPolicy(amount int, confirmDelay time.Duration, url string) (SubscriptionPolicy, error) {
	if amount <= 0 {
		return SubscriptionPolicy{}, ErrInvalidBonusAmount
	}
	if confirmDelay < 0 {
		confirmDelay = 0
	}
	return SubscriptionPolicy{amount: amount, confirmDelay: confirmDelay, url: url}, nil
}

func (p SubscriptionPolicy) TryGrant(alreadyClaimed bool) (int, bool) {
	if alreadyClaimed {
		return 0, false
	}
	return p.amount, true
}

func (p SubscriptionPolicy) Amount() int                 { return p.amount }
func (p SubscriptionPolicy) ConfirmDelay() time.Duration { return p.confirmDelay }
func (p SubscriptionPolicy) URL() string                 { return p.url }
