//go:build unit

package reward_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prize-wheel/internal/domain/reward"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
fallback_reward_id: 2
rewards:
  - id: 1
    name: Telegram Premium
    weight: 0
    kind: physical
  - id: 2
    name: 30% off printing
    weight: 70
    kind: discount
    discount_percent: 30
  - id: 3
    name: 15% off toys
    weight: 30
    kind: discount
    discount_percent: 15
`

func TestParseCatalog(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		c, err := reward.ParseCatalog(strings.NewReader(catalogYAML), 0)
		require.NoError(t, err)

		assert.Equal(t, 3, c.Len())
		assert.Equal(t, 2, c.Fallback().ID())
		assert.Equal(t, 15, c.At(2).DiscountPercent())
		assert.InDelta(t, 70.0, c.Percentage(1), 1e-9)
	})

	t.Run("override replaces fallback", func(t *testing.T) {
		c, err := reward.ParseCatalog(strings.NewReader(catalogYAML), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, c.Fallback().ID())
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := reward.ParseCatalog(strings.NewReader("rewards: []\nbogus: 1\n"), 0)
		assert.Error(t, err)
	})

	t.Run("invalid entry names its position", func(t *testing.T) {
		bad := "fallback_reward_id: 1\nrewards:\n  - id: 1\n    name: x\n    weight: 1\n    kind: discount\n    discount_percent: 0\n"
		_, err := reward.ParseCatalog(strings.NewReader(bad), 0)
		require.ErrorIs(t, err, reward.ErrInvalidDiscount)
		assert.Contains(t, err.Error(), "catalog entry 0")
	})

	t.Run("load from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

		c, err := reward.LoadCatalogFile(path, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, c.Len())

		_, err = reward.LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"), 0)
		assert.Error(t, err)
	})
}
