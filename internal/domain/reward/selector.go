package reward

import "math"

// Select maps a uniform draw in [0,1) to a catalog index.
//
// Weights are normalized to a 0-100 scale and accumulated in catalog order;
// the first winnable entry whose running sum reaches the scaled draw wins.
// Zero-weight entries never win through the sum. Draws outside [0,1) and
// draws that slip past the last sum through rounding resolve to the
// configured fallback index.
func (c *Catalog) Select(draw float64) int {
	if math.IsNaN(draw) || draw < 0 || draw >= 1 {
		return c.fallbackIndex
	}

	scaled := draw * 100
	cumulative := 0.0
	for i, d := range c.definitions {
		if d.weight == 0 {
			continue
		}
		cumulative += d.weight / c.totalWeight * 100
		if cumulative >= scaled {
			return i
		}
	}
	return c.fallbackIndex
}
