package tent

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog maps variant names to their specifications.
type Catalog struct {
	Variants map[string]*Specification `yaml:"variants"`
}

// LoadCatalog reads a variant catalog from a YAML file and validates every
// entry.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	for name, spec := range c.Variants {
		if spec.Name == "" {
			spec.Name = name
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
	}
	return &c, nil
}

// Get returns the specification for a variant name.
func (c *Catalog) Get(name string) (*Specification, error) {
	spec, ok := c.Variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown tent variant %q", name)
	}
	return spec, nil
}

// Names returns the variant names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog returns the built-in variants, used when no catalog file is
// configured.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Variants: map[string]*Specification{
			"grande": {
				Name:          "grande",
				Width:         15,
				HalfWidth:     7.5,
				EaveHeight:    3.2,
				RidgeHeight:   5.1,
				BayDistance:   5,
				ArchOuterSpan: 7.606,
				Profiles: map[string]Profile{
					"upright":   {Width: 0.12, Height: 0.12},
					"rafter":    {Width: 0.12, Height: 0.30},
					"purlin":    {Width: 0.08, Height: 0.12},
					"connector": {Width: 0.12, Height: 0.12},
				},
				Baseplate:           Baseplate{Footprint: 0.40, Height: 0.02},
				GableSupportOffsets: []float32{-5, -2.5, 0, 2.5, 5},
				PurlinOffsets:       []float32{-6.0, -3.0, 0, 3.0, 6.0},
			},
			"colossal": {
				Name:          "colossal",
				Width:         20,
				HalfWidth:     10,
				EaveHeight:    4.0,
				RidgeHeight:   6.8,
				BayDistance:   5,
				ArchOuterSpan: 10.142,
				Profiles: map[string]Profile{
					"upright":   {Width: 0.15, Height: 0.15},
					"rafter":    {Width: 0.15, Height: 0.35},
					"purlin":    {Width: 0.10, Height: 0.14},
					"connector": {Width: 0.15, Height: 0.15},
				},
				Baseplate:           Baseplate{Footprint: 0.50, Height: 0.025},
				GableSupportOffsets: []float32{-7.5, -3.75, 0, 3.75, 7.5},
				PurlinOffsets:       []float32{-8.0, -4.0, 0, 4.0, 8.0},
			},
		},
	}
}
