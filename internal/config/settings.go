package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds user preferences read from config.yaml
type Settings struct {
	LogLevel             string `yaml:"log_level"`
	WatchFiles           bool   `yaml:"watch_files"`
	JournalEnabled       bool   `yaml:"journal_enabled"`
	StatusTimeoutSeconds int    `yaml:"status_timeout_seconds"`
	DefaultExtension     string `yaml:"default_extension"`
}

// DefaultSettings returns the settings used when config.yaml is missing or partial
func DefaultSettings() Settings {
	return Settings{
		LogLevel:             "info",
		WatchFiles:           true,
		JournalEnabled:       true,
		StatusTimeoutSeconds: 4,
		DefaultExtension:     ".md",
	}
}

// LoadSettings reads settings from path. A missing file yields the defaults.
// Keys absent from the file keep their default values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings file: %w", err)
	}

	settings.normalize()
	return settings, nil
}

// SaveSettings writes settings to path as YAML
func SaveSettings(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// StatusTimeout returns how long transient status messages stay visible
func (s Settings) StatusTimeout() time.Duration {
	return time.Duration(s.StatusTimeoutSeconds) * time.Second
}

func (s *Settings) normalize() {
	defaults := DefaultSettings()

	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.LogLevel == "" {
		s.LogLevel = defaults.LogLevel
	}
	if s.StatusTimeoutSeconds < 0 {
		s.StatusTimeoutSeconds = 0
	}
	if s.DefaultExtension != "" && !strings.HasPrefix(s.DefaultExtension, ".") {
		s.DefaultExtension = "." + s.DefaultExtension
	}
}
