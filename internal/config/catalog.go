package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/taxonomy"
)

// LoadCatalog reads the discipline/trade catalog from a YAML file.
// An empty path means the built-in catalog; a missing or partial file
// is an error rather than a silent fallback, since a typo'd path would
// otherwise change every project's folder structure.
func LoadCatalog(path string) (taxonomy.Catalog, error) {
	if path == "" {
		return taxonomy.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return taxonomy.Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}

	var catalog taxonomy.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return taxonomy.Catalog{}, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(catalog.Disciplines) == 0 {
		return taxonomy.Catalog{}, fmt.Errorf("catalog file %s: no disciplines defined", path)
	}
	if len(catalog.Trades) == 0 {
		return taxonomy.Catalog{}, fmt.Errorf("catalog file %s: no trades defined", path)
	}
	return catalog, nil
}
