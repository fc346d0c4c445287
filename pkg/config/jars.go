package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Jar represents one jar of the six-jars budgeting method
type Jar struct {
	Key        string   `yaml:"key"`         // stable identifier (e.g. "necessities")
	Name       string   `yaml:"name"`        // display name
	Percent    float64  `yaml:"percent"`     // share of monthly income, 0..100
	Categories []string `yaml:"categories"`  // expense categories counted against this jar
}

// JarsConfig holds the jar allocation scheme and default category set
type JarsConfig struct {
	Jars              []Jar    `yaml:"jars"`
	DefaultCategories []string `yaml:"default_categories"`

	byKey map[string]*Jar
}

// LoadJarsConfig loads the jar allocation configuration from a YAML file
func LoadJarsConfig(path string) (*JarsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jars config file: %w", err)
	}

	var config JarsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse jars config: %w", err)
	}

	config.byKey = make(map[string]*Jar, len(config.Jars))
	for i := range config.Jars {
		jar := &config.Jars[i]
		config.byKey[jar.Key] = jar
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the jars configuration
func (c *JarsConfig) Validate() error {
	if len(c.Jars) == 0 {
		return fmt.Errorf("at least one jar must be configured")
	}

	seen := make(map[string]bool)
	total := 0.0
	for _, jar := range c.Jars {
		if jar.Key == "" {
			return fmt.Errorf("jar key is required")
		}
		if jar.Name == "" {
			return fmt.Errorf("jar name is required for key %s", jar.Key)
		}
		if jar.Percent <= 0 || jar.Percent > 100 {
			return fmt.Errorf("jar percent must be in (0, 100] for jar %s", jar.Key)
		}
		if seen[jar.Key] {
			return fmt.Errorf("duplicate jar key %s", jar.Key)
		}
		seen[jar.Key] = true
		total += jar.Percent
	}

	// Allow a small tolerance for non-integer splits
	if total < 99.99 || total > 100.01 {
		return fmt.Errorf("jar percentages must sum to 100, got %.2f", total)
	}

	return nil
}

// GetJar returns the jar configuration for a given key
func (c *JarsConfig) GetJar(key string) (*Jar, bool) {
	jar, ok := c.byKey[key]
	return jar, ok
}

// JarKeys returns all configured jar keys in declaration order
func (c *JarsConfig) JarKeys() []string {
	keys := make([]string, 0, len(c.Jars))
	for _, jar := range c.Jars {
		keys = append(keys, jar.Key)
	}
	return keys
}
