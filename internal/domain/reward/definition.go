package reward

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidRewardID    = errors.New("reward id must be positive")
	ErrEmptyRewardName    = errors.New("reward name cannot be empty")
	ErrInvalidWeight      = errors.New("reward weight must be a finite non-negative number")
	ErrInvalidKind        = errors.New("invalid reward kind")
	ErrInvalidDiscount    = errors.New("discount percent must be between 1 and 100")
	ErrUnexpectedDiscount = errors.New("physical reward cannot carry a discount")
	ErrNotDiscountReward  = errors.New("reward is not a discount reward")
)

const (
	MinDiscountPercent = 1
	MaxDiscountPercent = 100
)

type Kind string

const (
	KindDiscount Kind = "discount"
	KindPhysical Kind = "physical"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindDiscount, KindPhysical:
		return true
	default:
		return false
	}
}

// Definition is an immutable catalog entry.
type Definition struct {
	id              int
	name            string
	weight          float64
	kind            Kind
	discountPercent int
}

func NewDefinition(id int, name string, weight float64, kind Kind, discountPercent int) (Definition, error) {
	if id <= 0 {
		return Definition{}, ErrInvalidRewardID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Definition{}, ErrEmptyRewardName
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return Definition{}, ErrInvalidWeight
	}
	if !kind.IsValid() {
		return Definition{}, ErrInvalidKind
	}

	switch kind {
	case KindDiscount:
		if discountPercent < MinDiscountPercent || discountPercent > MaxDiscountPercent {
			return Definition{}, ErrInvalidDiscount
		}
	case KindPhysical:
		if discountPercent != 0 {
			return Definition{}, ErrUnexpectedDiscount
		}
	}

	return Definition{
		id:              id,
		name:            name,
		weight:          weight,
		kind:            kind,
		discountPercent: discountPercent,
	}, nil
}

func NewDiscountDefinition(id int, name string, weight float64, percent int) (Definition, error) {
	return NewDefinition(id, name, weight, KindDiscount, percent)
}

func NewPhysicalDefinition(id int, name string, weight float64) (Definition, error) {
	return NewDefinition(id, name, weight, KindPhysical, 0)
}

func (d Definition) IsDiscount() bool { return d.kind == KindDiscount }

// IsWinnable reports whether the weighted draw can land on this entry.
func (d Definition) IsWinnable() bool { return d.weight > 0 }

func (d Definition) ID() int              { return d.id }
func (d Definition) Name() string         { return d.name }
func (d Definition) Weight() float64      { return d.weight }
func (d Definition) Kind() Kind           { return d.kind }
func (d Definition) DiscountPercent() int { return d.discountPercent }
