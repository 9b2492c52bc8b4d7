package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carelink/brainarcade/internal/games/memory"
	"github.com/carelink/brainarcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every registered board with its pair count.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := len("ID")
	maxTitleLen := len("Title")
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Pairs")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, g := range games {
		pairs := "-"
		if cfg, ok := memory.PresetConfig(g.ID); ok {
			pairs = fmt.Sprintf("%d", cfg.Board.Pairs)
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, pairs)
	}

	fmt.Println()
	fmt.Println("Run 'brainarcade play <id>' to play a board.")
}
