package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// sourcesFile is the on-disk layout of the monitored feed list.
type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the monitored feed sources from a YAML file.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %v", err)
	}

	var parsed sourcesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %v", err)
	}

	enabled := make([]Source, 0, len(parsed.Sources))
	for _, s := range parsed.Sources {
		if s.Name == "" || s.URL == "" {
			continue
		}
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled, nil
}
