package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBubbles loads the ambient bubble configuration.
// Search order: customPath -> ~/.codekriti/configs/bubbles.yaml -> ./configs/bubbles.yaml -> embedded default
func LoadBubbles(customPath string) (BubblesConfig, error) {
	cfg := DefaultBubblesConfig()
	if err := load("bubbles.yaml", customPath, defaultBubblesYAML, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadBrickBreaker loads the brick breaker configuration.
// Search order: customPath -> ~/.codekriti/configs/brickbreaker.yaml -> ./configs/brickbreaker.yaml -> embedded default
func LoadBrickBreaker(customPath string) (BrickBreakerConfig, error) {
	cfg := DefaultBrickBreakerConfig()
	if err := load("brickbreaker.yaml", customPath, defaultBrickBreakerYAML, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load decodes the first config found into out. out should already hold
// hardcoded defaults so partial files only override what they mention.
func load(filename, customPath string, embedded []byte, out any) error {
	// An explicit path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	// Optional locations are skipped silently when missing or broken
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	//nolint:errcheck // Hardcoded defaults already populate out if the embed is bad
	yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".codekriti", "configs", filename)
}

// ApplyBrickBreakerPreset modifies the config based on a difficulty preset.
// Normal (and the empty preset) leaves the config untouched.
func ApplyBrickBreakerPreset(cfg *BrickBreakerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 6
		cfg.Ball.PaddleBoost = 1.03
		cfg.Paddle.Width = 95
	case DifficultyHard:
		cfg.Gameplay.Lives = 3
		cfg.Ball.PaddleBoost = 1.08
		cfg.Paddle.Width = 60
	}
}
