package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carelink/brainarcade/internal/core"
	"github.com/carelink/brainarcade/internal/games/memory"
	"github.com/carelink/brainarcade/internal/registry"
)

// resultReporter is implemented by games that can describe a finished
// round in more detail than core.GameState.
type resultReporter interface {
	Result() (memory.Result, bool)
}

// GameModel is the Bubble Tea model that runs one game: it forwards input
// every tick, renders the screen buffer and records each finished round once.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *Recorder
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitOnBack bool
	quitting   bool
	backToMenu bool
	recorded   bool
	loop       uint64
}

// NewGameModel creates a model for game. The recorder may be nil.
func NewGameModel(game registry.Game, rec *Recorder, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   rec,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loop:       nextLoop(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		// Layout follows the screen size on every render, so the round
		// survives a resize.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.recorded:
		m.record()
		m.recorded = true
	case !m.gameState.GameOver:
		m.recorded = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config, m.loop)
}

func (m *GameModel) record() {
	res := memory.Result{Moves: m.gameState.Moves, Score: m.gameState.Score}
	if rr, ok := m.game.(resultReporter); ok {
		if r, done := rr.Result(); done {
			res = r
		}
	}
	//nolint:errcheck // Recorder logs failures; play continues regardless
	m.recorder.Record(m.game.ID(), res)
}

// saveScreenshot writes the current screen as plain text under
// ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state observed on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the player quits or goes back.
// Back quits too, since there is no menu to return to.
func Run(game registry.Game, rec *Recorder, cfg core.RuntimeConfig) error {
	_, err := RunWithMenu(game, rec, cfg)
	return err
}

// RunWithMenu plays game and reports whether the player asked for the menu.
func RunWithMenu(game registry.Game, rec *Recorder, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, rec, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	gm, ok := final.(GameModel)
	if !ok {
		return false, nil
	}
	return gm.BackToMenu(), nil
}
