package reward

import (
	"errors"
	"math"

	"github.com/samber/lo"
)

var (
	ErrEmptyCatalog       = errors.New("catalog must contain at least one reward")
	ErrDuplicateRewardID  = errors.New("duplicate reward id in catalog")
	ErrZeroTotalWeight    = errors.New("catalog total weight must be positive")
	ErrUnknownFallback    = errors.New("fallback reward id is not in catalog")
	ErrRewardNotInCatalog = errors.New("reward not in catalog")
)

// Catalog is the ordered, immutable list of wheel outcomes. The fallback
// index is configuration: it is returned whenever a draw does not resolve
// through the cumulative weights.
type Catalog struct {
	definitions   []Definition
	totalWeight   float64
	fallbackIndex int
}

func NewCatalog(definitions []Definition, fallbackID int) (*Catalog, error) {
	if len(definitions) == 0 {
		return nil, ErrEmptyCatalog
	}

	if dup := lo.FindDuplicatesBy(definitions, func(d Definition) int { return d.id }); len(dup) > 0 {
		return nil, ErrDuplicateRewardID
	}

	total := lo.SumBy(definitions, func(d Definition) float64 { return d.weight })
	if total <= 0 || math.IsInf(total, 0) {
		return nil, ErrZeroTotalWeight
	}

	_, fallbackIndex, found := lo.FindIndexOf(definitions, func(d Definition) bool { return d.id == fallbackID })
	if !found {
		return nil, ErrUnknownFallback
	}

	return &Catalog{
		definitions:   append([]Definition(nil), definitions...),
		totalWeight:   total,
		fallbackIndex: fallbackIndex,
	}, nil
}

func (c *Catalog) Len() int { return len(c.definitions) }

func (c *Catalog) At(index int) Definition { return c.definitions[index] }

func (c *Catalog) Definitions() []Definition {
	return append([]Definition(nil), c.definitions...)
}

func (c *Catalog) TotalWeight() float64 { return c.totalWeight }

func (c *Catalog) FallbackIndex() int { return c.fallbackIndex }

func (c *Catalog) Fallback() Definition { return c.definitions[c.fallbackIndex] }

func (c *Catalog) ByID(id int) (Definition, error) {
	def, found := lo.Find(c.definitions, func(d Definition) bool { return d.id == id })
	if !found {
		return Definition{}, ErrRewardNotInCatalog
	}
	return def, nil
}

// Percentage returns the entry's normalized chance on a 0-100 scale.
func (c *Catalog) Percentage(index int) float64 {
	return c.definitions[index].weight / c.totalWeight * 100
}

// DefaultCatalog mirrors the wheel shown on the site: two winnable discounts
// and a row of zero-weight showcase prizes.
func DefaultCatalog() *Catalog {
	defs := []Definition{
		mustDefinition(NewPhysicalDefinition(1, "Telegram Premium for 1 year", 0)),
		mustDefinition(NewDiscountDefinition(2, "30% off printing services", 60, 30)),
		mustDefinition(NewPhysicalDefinition(3, "iPhone 17 Pro Max 256GB", 0)),
		mustDefinition(NewPhysicalDefinition(4, "5000 RUB account credit", 0)),
		mustDefinition(NewPhysicalDefinition(5, "Bambu Lab A1 3D printer", 0)),
		mustDefinition(NewDiscountDefinition(6, "30% off printed toys", 40, 30)),
		mustDefinition(NewPhysicalDefinition(7, "1000 RUB account credit", 0)),
	}
	catalog, err := NewCatalog(defs, 2)
	if err != nil {
		panic("default catalog is invalid: " + err.Error())
	}
	return catalog
}

func mustDefinition(d Definition, err error) Definition {
	if err != nil {
		panic("invalid reward definition: " + err.Error())
	}
	return d
}
