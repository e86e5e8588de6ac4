package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/quakeboy/qmd-search-obsidian/internal/eventbus"
)

// Defaults for every setting; blank or invalid values coerce back to these.
const (
	DefaultExecutable = "qmd"
	DefaultCollection = "obsidian"
	DefaultLimit      = 16
)

// Config represents the application configuration
type Config struct {
	Executable string `toml:"executable"` // qmd binary name or path
	Collection string `toml:"collection"` // qmd collection to search
	Vault      string `toml:"vault"`      // vault root directory
	Limit      int    `toml:"limit"`      // max results per search
	ExtraPath  string `toml:"extra_path"` // extra directory prepended to PATH
	Debug      bool   `toml:"debug"`      // verbose logging of qmd invocations
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "qmdgrip")
	os.MkdirAll(appDir, 0755)

	return &configService{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path.
// The config is normalized first so invalid values never reach disk.
func (cs *configService) SaveToPath(config *Config, path string) error {
	config.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Normalize coerces blank or out-of-range settings back to their defaults
func (c *Config) Normalize() {
	if c.Executable == "" {
		c.Executable = DefaultExecutable
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Limit < 1 {
		c.Limit = DefaultLimit
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Executable: DefaultExecutable,
		Collection: DefaultCollection,
		Limit:      DefaultLimit,
	}
}
