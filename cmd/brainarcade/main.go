// brainarcade is a terminal memory-match arcade: flip cards, find pairs,
// and keep your move count low.
//
// Usage:
//
//	brainarcade list              - List available boards
//	brainarcade play [board]      - Play a board (default: memory)
//	brainarcade menu              - Start menu to pick boards interactively
//	brainarcade serve             - Start SSH (and optional HTTP) server
//	brainarcade scores <board>    - Show the leaderboard for a board
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible deals
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom memory.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carelink/brainarcade/internal/config"
	"github.com/carelink/brainarcade/internal/core"
	"github.com/carelink/brainarcade/internal/games/memory"
	"github.com/carelink/brainarcade/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brainarcade",
	Short: "Brain Arcade - a memory match game for your terminal",
	Long: `Brain Arcade deals a shuffled board of face-down cards. Study them
during the preview, then find every pair in as few moves as you can.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker
  serve    - Start SSH server (and optional HTTP API) for remote play
  scores   - View the leaderboard

Examples:
  brainarcade play
  brainarcade play memory_hard
  brainarcade play --difficulty easy
  brainarcade serve --ssh :2222 --http :8080
  brainarcade scores memory`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom memory.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// logger is configured by setup before any command runs.
var logger = log.New(io.Discard)

// setup validates the global flags and installs the game configuration.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	// The terminal belongs to Bubble Tea while playing, so interactive
	// commands log to a file. serve keeps stderr.
	var out io.Writer = os.Stderr
	if name := cmd.Name(); name == "play" || name == "menu" {
		out = openLogFile()
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "brainarcade",
		Level:           level,
	})
	memory.SetLogger(logger)

	cfg, err := loadMemoryConfig()
	if err != nil {
		return err
	}
	memory.SetConfig(cfg)
	return nil
}

// loadMemoryConfig reads the YAML config and applies --difficulty on top.
func loadMemoryConfig() (config.MemoryConfig, error) {
	cfg, err := config.LoadMemory(flagConfig)
	if err != nil {
		return cfg, err
	}
	return withDifficulty(cfg)
}

func withDifficulty(cfg config.MemoryConfig) (config.MemoryConfig, error) {
	if flagDifficulty == "" {
		return cfg, nil
	}
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	config.ApplyMemoryPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

func openLogFile() io.Writer {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.Discard
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(filepath.Join(dir, "brainarcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard
	}
	return f
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failure is a warning: play goes on
// without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
