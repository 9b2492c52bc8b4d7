package config

import (
	_ "embed"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// DefaultMemoryConfig returns the built-in memory game configuration.
// It matches defaults/memory.yaml and is used when the embed cannot be parsed.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Board: MemoryBoard{
			Pairs:   12,
			Columns: 4,
		},
		Timing: MemoryTiming{
			FlipMS:          900,
			MismatchHoldMS:  900,
			RevealStaggerMS: 70,
			RevealHoldMS:    1500,
			HideMS:          900,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "memory":
		return defaultMemoryYAML
	default:
		return nil
	}
}
