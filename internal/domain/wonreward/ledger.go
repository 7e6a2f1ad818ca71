package wonreward

import (
	"errors"
	"sort"
	"time"

	"prize-wheel/internal/domain/promocode"

	"github.com/samber/lo"
)

var (
	ErrDuplicatePromoCode = errors.New("promo code already live in ledger")
	ErrRewardNotFound     = errors.New("reward not found or expired")
)

// Ledger is the set of live won rewards keyed by promo code.
// It is not safe for concurrent use; callers serialize access.
type Ledger struct {
	records map[promocode.Code]*WonReward
}

func NewLedger(records ...*WonReward) (*Ledger, error) {
	l := &Ledger{records: make(map[promocode.Code]*WonReward, len(records))}
	for _, r := range records {
		if err := l.Insert(r); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Ledger) Insert(r *WonReward) error {
	if _, exists := l.records[r.code]; exists {
		return ErrDuplicatePromoCode
	}
	l.records[r.code] = r
	return nil
}

func (l *Ledger) Contains(code promocode.Code) bool {
	_, ok := l.records[code]
	return ok
}

// Lookup finds a live record without consuming it.
func (l *Ledger) Lookup(code promocode.Code, now time.Time) (*WonReward, error) {
	r, ok := l.records[code]
	if !ok || !r.IsLiveAt(now) {
		return nil, ErrRewardNotFound
	}
	return r, nil
}

// Redeem removes and returns a live record. A second call for the same code
// always fails.
func (l *Ledger) Redeem(code promocode.Code, now time.Time) (*WonReward, error) {
	r, err := l.Lookup(code, now)
	if err != nil {
		return nil, err
	}
	delete(l.records, code)
	return r, nil
}

// SweepExpired drops every record with expiresAt <= now and returns them.
func (l *Ledger) SweepExpired(now time.Time) []*WonReward {
	expired := lo.Filter(lo.Values(l.records), func(r *WonReward, _ int) bool {
		return !r.IsLiveAt(now)
	})
	for _, r := range expired {
		delete(l.records, r.code)
	}
	sortRecords(expired)
	return expired
}

// Records lists every record, soonest expiry first.
func (l *Ledger) Records() []*WonReward {
	out := lo.Values(l.records)
	sortRecords(out)
	return out
}

func (l *Ledger) Live(now time.Time) []*WonReward {
	return lo.Filter(l.Records(), func(r *WonReward, _ int) bool { return r.IsLiveAt(now) })
}

func (l *Ledger) Len() int { return len(l.records) }

// Clone copies the set. Records are immutable and shared.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{records: lo.Assign(l.records)}
}

func sortRecords(rs []*WonReward) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].expiresAt.Equal(rs[j].expiresAt) {
			return rs[i].code < rs[j].code
		}
		return rs[i].expiresAt.Before(rs[j].expiresAt)
	})
}
