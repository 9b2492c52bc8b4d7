// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MemoryConfig contains all configuration for the memory match game.
type MemoryConfig struct {
	Board  MemoryBoard  `yaml:"board"`
	Timing MemoryTiming `yaml:"timing"`
}

// MemoryBoard defines the table layout.
type MemoryBoard struct {
	Pairs   int `yaml:"pairs"`
	Columns int `yaml:"columns"`
}

// MemoryTiming defines animation and hold durations in milliseconds.
type MemoryTiming struct {
	FlipMS          int `yaml:"flip_ms"`
	MismatchHoldMS  int `yaml:"mismatch_hold_ms"`
	RevealStaggerMS int `yaml:"reveal_stagger_ms"`
	RevealHoldMS    int `yaml:"reveal_hold_ms"`
	HideMS          int `yaml:"hide_ms"`
}

// Flip returns the single-card flip duration.
func (t MemoryTiming) Flip() time.Duration { return ms(t.FlipMS) }

// MismatchHold returns how long a wrong pair stays face up.
func (t MemoryTiming) MismatchHold() time.Duration { return ms(t.MismatchHoldMS) }

// RevealStagger returns the offset between consecutive preview reveals.
func (t MemoryTiming) RevealStagger() time.Duration { return ms(t.RevealStaggerMS) }

// RevealHold returns the study phase duration.
func (t MemoryTiming) RevealHold() time.Duration { return ms(t.RevealHoldMS) }

// Hide returns the duration of the board-wide hide after the preview.
func (t MemoryTiming) Hide() time.Duration { return ms(t.HideMS) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Validate checks that the configuration describes a playable board.
func (c MemoryConfig) Validate() error {
	if c.Board.Pairs <= 0 {
		return fmt.Errorf("%w: board.pairs must be positive, got %d", ErrInvalidConfig, c.Board.Pairs)
	}
	if c.Board.Columns <= 0 {
		return fmt.Errorf("%w: board.columns must be positive, got %d", ErrInvalidConfig, c.Board.Columns)
	}

	timings := map[string]int{
		"flip_ms":           c.Timing.FlipMS,
		"mismatch_hold_ms":  c.Timing.MismatchHoldMS,
		"reveal_stagger_ms": c.Timing.RevealStaggerMS,
		"reveal_hold_ms":    c.Timing.RevealHoldMS,
		"hide_ms":           c.Timing.HideMS,
	}
	for name, v := range timings {
		if v < 0 {
			return fmt.Errorf("%w: timing.%s must not be negative, got %d", ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
