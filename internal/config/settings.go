package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the tunables of the viewer. The zero value is not useful; start
// from DefaultSettings.
type Settings struct {
	PresentDuration    time.Duration `yaml:"present_duration"`
	DismissDuration    time.Duration `yaml:"dismiss_duration"`
	FadeDuration       time.Duration `yaml:"fade_duration"`
	SpringDamping      float32       `yaml:"spring_damping"`
	ChromeOffset       float32       `yaml:"chrome_offset"`
	DismissThreshold   float32       `yaml:"dismiss_threshold"`
	MaxZoom            float32       `yaml:"max_zoom"`
	CopyRevertDelay    time.Duration `yaml:"copy_revert_delay"`
	DragToCopyDistance float32       `yaml:"drag_to_copy_distance"`
}

// DefaultSettings returns the stock tunables.
func DefaultSettings() Settings {
	return Settings{
		PresentDuration:    500 * time.Millisecond,
		DismissDuration:    300 * time.Millisecond,
		FadeDuration:       200 * time.Millisecond,
		SpringDamping:      0.8,
		ChromeOffset:       200,
		DismissThreshold:   0.25,
		MaxZoom:            3,
		CopyRevertDelay:    1500 * time.Millisecond,
		DragToCopyDistance: 40,
	}
}

// ParseSettings reads YAML on top of the defaults. Keys that are absent keep
// their default value.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// LoadSettings reads settings from path. An empty path yields the defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	return ParseSettings(data)
}

// Validate rejects values the viewer cannot work with.
func (s Settings) Validate() error {
	if s.PresentDuration < 0 || s.DismissDuration < 0 || s.FadeDuration < 0 || s.CopyRevertDelay < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if s.SpringDamping <= 0 {
		return fmt.Errorf("spring_damping must be positive, got %v", s.SpringDamping)
	}
	if s.MaxZoom < 1 {
		return fmt.Errorf("max_zoom must be at least 1, got %v", s.MaxZoom)
	}
	if s.DismissThreshold < 0 {
		return fmt.Errorf("dismiss_threshold must not be negative, got %v", s.DismissThreshold)
	}
	return nil
}
