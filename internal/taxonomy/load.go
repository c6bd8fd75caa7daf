package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a taxonomy definition file.
type file struct {
	Version  string     `yaml:"version"`
	Products []*Product `yaml:"products"`
}

// Load builds the product registry. It starts from the builtin set
// and, when path is non-empty, merges the products defined in the
// YAML file at path. File definitions override builtin products with
// the same name.
func Load(path string) (*Registry, error) {
	merged := make(map[string]*Product)
	for _, p := range Builtin() {
		merged[p.Name] = p
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
		}

		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy file %s: %w", path, err)
		}
		for _, p := range f.Products {
			merged[p.Name] = p
		}
	}

	products := make([]*Product, 0, len(merged))
	for _, p := range merged {
		products = append(products, p)
	}
	return NewRegistry(products)
}
