package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// runConfig is pqinspect's optional run-configuration file (spec's
// "file walker"/"benchmark harness" collaborators both need a settings
// file pointing at input trees and report destinations; pqinspect's own
// slice of that is one input file, one locale, one parser, one CSV
// destination). Every field has a flag equivalent; a flag explicitly
// passed on the command line overrides the same-named config field.
type runConfig struct {
	Locale string `yaml:"locale"`
	Parser string `yaml:"parser"`
	CSV    string `yaml:"csv"`
}

func loadRunConfig(path string) (runConfig, error) {
	if path == "" {
		return runConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, err
	}
	var cfg runConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return runConfig{}, err
	}
	return cfg, nil
}
