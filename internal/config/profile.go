package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the optional YAML file that pre-answers the interactive
// prompts. Any zero field is still asked for on stdin.
type Profile struct {
	Name     string  `yaml:"name,omitempty"`
	Input    string  `yaml:"input,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
	FPS      []int   `yaml:"fps,omitempty"`
	Workers  int     `yaml:"workers,omitempty"`
	Quality  int     `yaml:"quality,omitempty"`
	DPI      int     `yaml:"dpi,omitempty"`
	OutroURL string  `yaml:"outro_url,omitempty"`
}

// ReadProfile reads a profile from a YAML file.
func ReadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &p, nil
}

// WriteProfile writes a profile to a YAML file.
func WriteProfile(p *Profile, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the pipeline cannot work with. Zero values are
// fine, they just mean "ask interactively".
func (p *Profile) Validate() error {
	if p.Duration < 0 {
		return fmt.Errorf("duration must be positive, got %v", p.Duration)
	}
	for _, f := range p.FPS {
		if f <= 0 {
			return fmt.Errorf("fps values must be positive, got %d", f)
		}
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", p.Workers)
	}
	if p.DPI < 0 {
		return fmt.Errorf("dpi must be positive, got %d", p.DPI)
	}
	return nil
}
