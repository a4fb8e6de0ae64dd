package keybinds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Unbound is the action value that removes a default binding
const Unbound = "none"

// Config represents the user's keybinding configuration. Each section maps
// a key to an action name. Comments and trailing commas are allowed.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Editor  map[string]string `json:"editor,omitempty"`
	Find    map[string]string `json:"find,omitempty"`
	Prompt  map[string]string `json:"prompt,omitempty"`
	Confirm map[string]string `json:"confirm,omitempty"`
	Picker  map[string]string `json:"picker,omitempty"`
	Help    map[string]string `json:"help,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextEditor:  c.Editor,
		ContextFind:    c.Find,
		ContextPrompt:  c.Prompt,
		ContextConfirm: c.Confirm,
		ContextPicker:  c.Picker,
		ContextHelp:    c.Help,
	}
}

func (c *Config) section(context Context) map[string]string {
	switch context {
	case ContextGlobal:
		return c.Global
	case ContextEditor:
		return c.Editor
	case ContextFind:
		return c.Find
	case ContextPrompt:
		return c.Prompt
	case ContextConfirm:
		return c.Confirm
	case ContextPicker:
		return c.Picker
	case ContextHelp:
		return c.Help
	}
	return nil
}

// ParseConfig decodes a JSONC keybinding document
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}
	return &config, nil
}

// LoadConfig loads keybinding configuration from a JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for key, actionStr := range bindings {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("context '%s': %w", context, err)
			}
			if actionStr == Unbound {
				registry.Unregister(context, key)
				continue
			}
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("context '%s', key '%s': %w", context, key, err)
			}
			registry.Register(context, key, Action(actionStr))
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportConfig renders every binding of registry as a config document
func ExportConfig(registry *Registry) *Config {
	config := &Config{
		Version: "1.0",
		Global:  map[string]string{},
		Editor:  map[string]string{},
		Find:    map[string]string{},
		Prompt:  map[string]string{},
		Confirm: map[string]string{},
		Picker:  map[string]string{},
		Help:    map[string]string{},
	}

	for _, context := range Contexts {
		section := config.section(context)
		for _, b := range registry.ListBindings(context) {
			section[b.Key] = string(b.Action)
		}
	}
	return config
}

// ExportDefaults exports default keybindings as a config document
func ExportDefaults() *Config {
	return ExportConfig(NewDefaultRegistry())
}
