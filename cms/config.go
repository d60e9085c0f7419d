// Package cms translates CMS collection item field data through the
// node-preserving pipeline. Each collection declares which fields are
// translated and which are passed through unchanged.
package cms

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CollectionConfig describes one collection type's translation behaviour.
// Translate order is significant: it fixes the leaf order of the item
// projection, which the flat-text review surface depends on.
type CollectionConfig struct {
	Name           string   `yaml:"name"`
	DisplayName    string   `yaml:"displayName"`
	ItemIdentifier string   `yaml:"itemIdentifier"`
	Translate      []string `yaml:"translate"`
	Preserve       []string `yaml:"preserve"`
}

// Config holds the configured collection types.
type Config struct {
	Collections []CollectionConfig `yaml:"collections"`
}

// DefaultConfig returns the built-in collection configuration.
func DefaultConfig() Config {
	return Config{
		Collections: []CollectionConfig{
			{
				Name:           "Blog",
				DisplayName:    "Blog Post",
				ItemIdentifier: "name",
				Translate: []string{
					"disclaimer-2",
					"post",
					"summary",
					"name",
					"meta-description-2",
					"page-title",
				},
				Preserve: []string{"slug", "accumulators-option"},
			},
			{
				Name:           "Support Questions",
				DisplayName:    "Help Center Question",
				ItemIdentifier: "question",
				Translate:      []string{"answer", "name"},
				Preserve:       []string{"slug", "category-3", "order-number"},
			},
		},
	}
}

// LoadConfig reads a collection configuration file. A missing path returns
// the built-in defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("reading collection config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing collection config: %w", err)
	}
	if len(cfg.Collections) == 0 {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// Match finds the configuration for a collection by case-insensitive
// substring match on its display name ("Blog Posts 2024" matches "Blog").
func (c Config) Match(collectionName string) (CollectionConfig, bool) {
	lower := strings.ToLower(collectionName)
	for _, cc := range c.Collections {
		if strings.Contains(lower, strings.ToLower(cc.Name)) {
			return cc, true
		}
	}
	return CollectionConfig{}, false
}
