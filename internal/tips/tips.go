// Package tips serves the built-in tilt management advice.
package tips

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tips.yaml
var catalogYAML []byte

// DefaultCategory is shown when no category is asked for.
const DefaultCategory = "quick"

// Tip is one piece of advice. Link is optional.
type Tip struct {
	Title   string `yaml:"title"`
	Emoji   string `yaml:"emoji"`
	Content string `yaml:"content"`
	Link    string `yaml:"link,omitempty"`
}

type category struct {
	Name string `yaml:"name"`
	Tips []Tip  `yaml:"tips"`
}

// Catalog holds tips grouped by category, in file order.
type Catalog struct {
	categories []category
}

// Parse decodes a YAML catalog.
func Parse(b []byte) (*Catalog, error) {
	var doc struct {
		Categories []category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse tips: %w", err)
	}
	return &Catalog{categories: doc.Categories}, nil
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// ByCategory returns a copy of the tips in name, or an empty slice for an
// unknown category.
func (c *Catalog) ByCategory(name string) []Tip {
	for _, cat := range c.categories {
		if cat.Name == name {
			return append([]Tip{}, cat.Tips...)
		}
	}
	return []Tip{}
}

// Categories lists category names in order.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	return names
}
