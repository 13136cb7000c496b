package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "genesis.yaml"

// Load loads the Genesis configuration.
// Search order: customPath -> ~/.genesis/configs/genesis.yaml -> ./configs/genesis.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultGenesisYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults, so partial files only
// override the keys they name, then validates the result.
func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Element.Radius <= 0 {
		errs = append(errs, errors.New("element.radius must be positive"))
	}
	if c.Element.SafeMargin < 0 {
		errs = append(errs, errors.New("element.safe_margin must not be negative"))
	}
	if c.Gesture.DoubleTapMS <= 0 {
		errs = append(errs, errors.New("gesture.double_tap_ms must be positive"))
	}
	if c.Placement.RingStepMin <= 0 && c.Placement.RingStepRatio <= 0 {
		errs = append(errs, errors.New("placement ring step must be positive"))
	}
	if c.Placement.MaxRingRatio <= 0 {
		errs = append(errs, errors.New("placement.max_ring_ratio must be positive"))
	}
	for _, class := range []DeviceClass{DevicePhone, DevicePad} {
		if c.Profile(class).Capacity <= 0 {
			errs = append(errs, fmt.Errorf("devices.%s.capacity must be positive", class))
		}
	}
	if c.Collection.FavoritesMax <= 0 {
		errs = append(errs, errors.New("collection.favorites_max must be positive"))
	}
	if c.Hint.DailyLimit < 0 {
		errs = append(errs, errors.New("hint.daily_limit must not be negative"))
	}
	if c.Persistence.Key == "" {
		errs = append(errs, errors.New("persistence.key must not be empty"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".genesis", "configs", filename)
}
