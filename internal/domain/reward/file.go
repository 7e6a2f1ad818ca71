package reward

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	FallbackRewardID int               `yaml:"fallback_reward_id"`
	Rewards          []catalogFileItem `yaml:"rewards"`
}

type catalogFileItem struct {
	ID              int     `yaml:"id"`
	Name            string  `yaml:"name"`
	Weight          float64 `yaml:"weight"`
	Kind            Kind    `yaml:"kind"`
	DiscountPercent int     `yaml:"discount_percent"`
}

// LoadCatalogFile reads a YAML catalog. A positive fallbackOverride takes
// precedence over the file's fallback_reward_id.
func LoadCatalogFile(path string, fallbackOverride int) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return ParseCatalog(f, fallbackOverride)
}

func ParseCatalog(r io.Reader, fallbackOverride int) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	defs := make([]Definition, 0, len(file.Rewards))
	for i, item := range file.Rewards {
		def, err := NewDefinition(item.ID, item.Name, item.Weight, item.Kind, item.DiscountPercent)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (id=%d): %w", i, item.ID, err)
		}
		defs = append(defs, def)
	}

	fallback := file.FallbackRewardID
	if fallbackOverride > 0 {
		fallback = fallbackOverride
	}
	return NewCatalog(defs, fallback)
}
