package config

import "strings"

// presetPairs maps difficulty presets to the number of pairs dealt.
var presetPairs = map[DifficultyPreset]int{
	DifficultyEasy:   6,
	DifficultyNormal: 12,
	DifficultyHard:   18,
}

// ParsePreset converts user input to a preset. Unknown or empty input
// returns false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	_, ok := presetPairs[p]
	return p, ok
}

// PairsForPreset returns the pair count for a preset, or 0 if unknown.
func PairsForPreset(preset DifficultyPreset) int {
	return presetPairs[preset]
}

// ApplyMemoryPreset overrides the pair count based on a difficulty preset.
// Unknown presets leave the config untouched.
func ApplyMemoryPreset(cfg *MemoryConfig, preset DifficultyPreset) {
	if pairs, ok := presetPairs[preset]; ok {
		cfg.Board.Pairs = pairs
	}
	// Hard also shortens the mismatch window.
	if preset == DifficultyHard && cfg.Timing.MismatchHoldMS > 600 {
		cfg.Timing.MismatchHoldMS = 600
	}
}
