package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML configuration files.
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a provider reading the given file.
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// LoadConfig reads, parses, and validates the configuration file.
func (y *YAMLProvider) LoadConfig() (*Data, error) {
	raw, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", y.filename, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", y.filename, err)
	}
	return &data, nil
}
