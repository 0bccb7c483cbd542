// Package topics holds the catalog of topics a community post may be tagged with.
package topics

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed topics.yml
var catalogYAML []byte

// Topic is one catalog entry.
type Topic struct {
	Slug  string `yaml:"slug" json:"slug"`
	Label string `yaml:"label" json:"label"`
}

// Catalog is an immutable set of topics.
type Catalog struct {
	def    string
	topics []Topic
	index  map[string]Topic
}

type catalogFile struct {
	Default string  `yaml:"default"`
	Topics  []Topic `yaml:"topics"`
}

// Parse builds a catalog from YAML. Slugs are lowercased and must be unique;
// the default must be one of them.
func Parse(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse topic catalog: %w", err)
	}
	if len(f.Topics) == 0 {
		return nil, fmt.Errorf("topic catalog is empty")
	}

	c := &Catalog{
		def:   strings.ToLower(strings.TrimSpace(f.Default)),
		index: make(map[string]Topic, len(f.Topics)),
	}
	for _, t := range f.Topics {
		t.Slug = strings.ToLower(strings.TrimSpace(t.Slug))
		if t.Slug == "" {
			return nil, fmt.Errorf("topic with empty slug")
		}
		if _, dup := c.index[t.Slug]; dup {
			return nil, fmt.Errorf("duplicate topic %q", t.Slug)
		}
		if t.Label == "" {
			t.Label = t.Slug
		}
		c.index[t.Slug] = t
		c.topics = append(c.topics, t)
	}
	if _, ok := c.index[c.def]; !ok {
		return nil, fmt.Errorf("default topic %q is not in the catalog", c.def)
	}
	return c, nil
}

// Default parses the embedded catalog. It panics if the embedded file is broken.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize lowercases and trims a slug as supplied by a client.
func Normalize(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// Valid reports whether slug names a catalog topic.
func (c *Catalog) Valid(slug string) bool {
	_, ok := c.index[Normalize(slug)]
	return ok
}

// All returns the topics in catalog order.
func (c *Catalog) All() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// DefaultSlug is the topic assigned to posts created without one.
func (c *Catalog) DefaultSlug() string {
	return c.def
}
