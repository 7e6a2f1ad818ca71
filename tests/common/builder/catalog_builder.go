//go:build unit || e2e

package builder

import (
	"testing"

	"prize-wheel/internal/domain/reward"

	"github.com/stretchr/testify/require"
)

type catalogEntry struct {
	id      int
	name    string
	weight  float64
	kind    reward.Kind
	percent int
}

type CatalogBuilder struct {
	entries    []catalogEntry
	fallbackID int
}

func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{}
}

func (b *CatalogBuilder) WithDiscount(id int, name string, weight float64, percent int) *CatalogBuilder {
	b.entries = append(b.entries, catalogEntry{id: id, name: name, weight: weight, kind: reward.KindDiscount, percent: percent})
	if b.fallbackID == 0 {
		b.fallbackID = id
	}
	return b
}

func (b *CatalogBuilder) WithPhysical(id int, name string, weight float64) *CatalogBuilder {
	b.entries = append(b.entries, catalogEntry{id: id, name: name, weight: weight, kind: reward.KindPhysical})
	return b
}

func (b *CatalogBuilder) WithFallback(id int) *CatalogBuilder {
	b.fallbackID = id
	return b
}

func (b *CatalogBuilder) BuildDomain() (*reward.Catalog, error) {
	defs := make([]reward.Definition, 0, len(b.entries))
	for _, e := range b.entries {
		def, err := reward.NewDefinition(e.id, e.name, e.weight, e.kind, e.percent)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return reward.NewCatalog(defs, b.fallbackID)
}

func (b *CatalogBuilder) MustBuildDomain(t testing.TB) *reward.Catalog {
	t.Helper()
	c, err := b.BuildDomain()
	require.NoError(t, err)
	return c
}
