package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carelink/brainarcade/internal/platform/tui"
	"github.com/carelink/brainarcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Deal a board and play it in this terminal.

Controls:
  Arrows/WASD/hjkl - Move the cursor
  Space/Enter      - Flip the card under the cursor
  Mouse click      - Flip a card or press a footer button
  G                - Start the study preview
  R                - Deal again
  P                - Pause
  B/Esc, Q         - Quit

Difficulty options (standard board only):
  easy   - 6 pairs
  normal - 12 pairs
  hard   - 18 pairs, shorter mismatch hold

Examples:
  brainarcade play
  brainarcade play memory_easy
  brainarcade play --difficulty hard
  brainarcade play --config ./memory.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "memory"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q; run 'brainarcade list' to see available boards", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating board: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	rec := tui.NewRecorder(store, nil, logger).ForPlayer(playerName())
	if err := tui.Run(game, rec, runtimeConfig()); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
