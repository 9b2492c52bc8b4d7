package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	assert.Equal(t, DefaultMemoryConfig(), embeddedMemory())
	assert.NotEmpty(t, GetDefaultYAML("memory"))
	assert.Nil(t, GetDefaultYAML("snake"))
}

func TestDefaultTimings(t *testing.T) {
	timing := DefaultMemoryConfig().Timing
	assert.Equal(t, 900*time.Millisecond, timing.Flip())
	assert.Equal(t, 900*time.Millisecond, timing.MismatchHold())
	assert.Equal(t, 70*time.Millisecond, timing.RevealStagger())
	assert.Equal(t, 1500*time.Millisecond, timing.RevealHold())
	assert.Equal(t, 900*time.Millisecond, timing.Hide())
}

func TestLoadMemoryCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  pairs: 8\n"), 0o644))

	cfg, err := LoadMemory(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Board.Pairs)
	assert.Equal(t, 4, cfg.Board.Columns, "unset values keep defaults")
	assert.Equal(t, 1500, cfg.Timing.RevealHoldMS)
}

func TestLoadMemoryCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMemory(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [unclosed"), 0o644))
	_, err = LoadMemory(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("board:\n  pairs: 0\n"), 0o644))
	_, err = LoadMemory(invalid)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MemoryConfig)
		ok     bool
	}{
		{"defaults", func(*MemoryConfig) {}, true},
		{"zero timings", func(c *MemoryConfig) { c.Timing = MemoryTiming{} }, true},
		{"no pairs", func(c *MemoryConfig) { c.Board.Pairs = 0 }, false},
		{"no columns", func(c *MemoryConfig) { c.Board.Columns = 0 }, false},
		{"negative flip", func(c *MemoryConfig) { c.Timing.FlipMS = -1 }, false},
		{"negative hold", func(c *MemoryConfig) { c.Timing.RevealHoldMS = -5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMemoryConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	p, ok := ParsePreset(" Hard ")
	require.True(t, ok)
	assert.Equal(t, DifficultyHard, p)

	_, ok = ParsePreset("nightmare")
	assert.False(t, ok)

	assert.Equal(t, 6, PairsForPreset(DifficultyEasy))
	assert.Equal(t, 12, PairsForPreset(DifficultyNormal))
	assert.Equal(t, 18, PairsForPreset(DifficultyHard))
	assert.Zero(t, PairsForPreset("unknown"))

	cfg := DefaultMemoryConfig()
	ApplyMemoryPreset(&cfg, DifficultyEasy)
	assert.Equal(t, 6, cfg.Board.Pairs)
	assert.Equal(t, 900, cfg.Timing.MismatchHoldMS)

	ApplyMemoryPreset(&cfg, DifficultyHard)
	assert.Equal(t, 18, cfg.Board.Pairs)
	assert.Equal(t, 600, cfg.Timing.MismatchHoldMS)

	before := cfg
	ApplyMemoryPreset(&cfg, "unknown")
	assert.Equal(t, before, cfg)
}

func TestResolveMemoryPath(t *testing.T) {
	assert.Equal(t, "/tmp/custom.yaml", ResolveMemoryPath("/tmp/custom.yaml"))
}

func TestWatchMemoryReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  pairs: 4\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type update struct {
		cfg MemoryConfig
		err error
	}
	updates := make(chan update, 8)
	done := make(chan error, 1)
	go func() {
		done <- WatchMemory(ctx, path, func(cfg MemoryConfig, err error) {
			updates <- update{cfg, err}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("board:\n  pairs: 9\n"), 0o644))

	select {
	case u := <-updates:
		require.NoError(t, u.err)
		assert.Equal(t, 9, u.cfg.Board.Pairs)
	case <-time.After(5 * time.Second):
		t.Fatal("no config update observed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchMemoryMissingDir(t *testing.T) {
	err := WatchMemory(context.Background(), filepath.Join(t.TempDir(), "nope", "memory.yaml"), func(MemoryConfig, error) {})
	assert.Error(t, err)
}
