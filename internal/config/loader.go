package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "neonflip.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.neonflip/configs/neonflip.yaml -> ./configs/neonflip.yaml -> embedded default
// Files are decoded on top of the defaults, so partial files are allowed.
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
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the defaults and validates the result.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neonflip", "configs", filename)
}

// ApplyPreset modifies the difficulty section for a preset.
// Normal keeps the configured values.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.GapStep *= 0.5
		cfg.Autopilot.Threshold *= 0.8
	case DifficultyHard:
		cfg.Difficulty.BaseGap = cfg.Difficulty.MinGap + (cfg.Difficulty.BaseGap-cfg.Difficulty.MinGap)*0.6
		cfg.Difficulty.GapStep *= 1.5
		cfg.Physics.ObstacleSpeed *= 1.2
	case DifficultyFixed:
		cfg.Difficulty.GapStep = 0
	}
}
