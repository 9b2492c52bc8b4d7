package memory

import (
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/carelink/brainarcade/internal/config"
	"github.com/carelink/brainarcade/internal/core"
	"github.com/carelink/brainarcade/internal/registry"
)

// Preset is a registered flavor of the game.
type Preset struct {
	ID         string
	Title      string
	Difficulty config.DifficultyPreset // empty keeps the configured pair count
	Columns    int                     // 0 keeps the configured column count
}

// Presets lists the registered game variants.
var Presets = []Preset{
	{ID: "memory", Title: "Brain Training"},
	{ID: "memory_easy", Title: "Brain Training (Easy)", Difficulty: config.DifficultyEasy},
	{ID: "memory_hard", Title: "Brain Training (Hard)", Difficulty: config.DifficultyHard, Columns: 6},
}

// Package-level configuration shared by every new game, following the
// arcade's setter pattern. Guarded because SSH sessions create games
// concurrently while the config watcher may swap the values.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultMemoryConfig()
	logger     = log.New(io.Discard)
)

// SetConfig replaces the configuration used by games created or reset
// afterwards.
func SetConfig(cfg config.MemoryConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// CurrentConfig returns the configuration new games will use.
func CurrentConfig() config.MemoryConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SetLogger sets the logger passed to new engines.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logger = l
}

func currentLogger() *log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return logger
}

// apply layers the preset over a base configuration.
func (p Preset) apply(mc config.MemoryConfig) config.MemoryConfig {
	if p.Difficulty != "" {
		config.ApplyMemoryPreset(&mc, p.Difficulty)
	}
	if p.Columns > 0 {
		mc.Board.Columns = p.Columns
	}
	return mc
}

// LookupPreset finds a registered preset by id.
func LookupPreset(id string) (Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetConfig returns the effective configuration of a preset under the
// current settings.
func PresetConfig(id string) (config.MemoryConfig, bool) {
	p, ok := LookupPreset(id)
	if !ok {
		return config.MemoryConfig{}, false
	}
	return p.apply(CurrentConfig()), true
}

func init() {
	for _, p := range Presets {
		registry.Register(p.ID, func() registry.Game {
			return NewWithPreset(p)
		})
	}
}

// Game adapts the engine to the arcade platform: a cursor over the grid,
// keyboard and pointer intents, and a fixed-tick clock.
type Game struct {
	preset Preset
	cfg    config.MemoryConfig
	engine *Engine

	tick    uint64
	runtime core.RuntimeConfig
	cursor  int
	paused  bool

	layout  layout
	buttons buttons
}

// New creates the standard game.
func New() *Game {
	return NewWithPreset(Presets[0])
}

// NewWithPreset creates a game for the given preset. The engine is built
// on Reset.
func NewWithPreset(p Preset) *Game {
	return &Game{preset: p}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.preset.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.preset.Title }

// Controls returns a one-line summary of the key bindings.
func (g *Game) Controls() string {
	return "Arrows/WASD move, Space/Enter flip, G start, R restart, P pause, B menu, Q quit"
}

// Reset deals a new round. Safe to call at any time: pending timers from
// the previous round belong to the old engine and never fire.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	mc := g.preset.apply(CurrentConfig())
	g.cfg = mc
	g.runtime = cfg
	g.tick = 0
	g.cursor = 0
	g.paused = false

	g.engine = NewEngine(
		WithPairs(mc.Board.Pairs),
		WithTiming(mc.Timing),
		WithRand(rand.New(rand.NewSource(cfg.Seed))),
		WithLogger(currentLogger().With("game", g.preset.ID)),
	)
	g.relayout()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}
	g.tick++

	if in.Has(core.ActionPause) && g.engine.Phase() != PhaseComplete {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleKeys(in)
	for _, t := range in.Taps {
		g.handleTap(t)
	}

	g.engine.Advance(g.runtime.TickDuration())
	return core.StepResult{State: g.State()}
}

func (g *Game) handleKeys(in core.InputFrame) {
	cols := g.layout.cols
	n := len(g.engine.deck)

	switch {
	case in.Has(core.ActionLeft):
		if g.cursor%cols > 0 {
			g.cursor--
		}
	case in.Has(core.ActionRight):
		if g.cursor%cols < cols-1 && g.cursor+1 < n {
			g.cursor++
		}
	case in.Has(core.ActionUp):
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case in.Has(core.ActionDown):
		if g.cursor+cols < n {
			g.cursor += cols
		}
	}

	if in.Has(core.ActionRestart) {
		g.engine.Restart()
		return
	}
	if in.Has(core.ActionStart) {
		g.engine.StartPreview()
	}
	if in.Has(core.ActionSelect) {
		g.activate(g.cursor)
	}
}

// activate is the shared path for Select and card taps. On an Idle board it
// starts the preview; on a finished board it deals again.
func (g *Game) activate(index int) {
	switch g.engine.Phase() {
	case PhaseIdle:
		g.engine.StartPreview()
	case PhaseComplete:
		g.engine.Restart()
	default:
		g.engine.SelectCard(index)
	}
}

func (g *Game) handleTap(t core.Tap) {
	switch {
	case g.buttons.start.Contains(t.X, t.Y):
		g.engine.StartPreview()
		return
	case g.buttons.restart.Contains(t.X, t.Y):
		g.engine.Restart()
		return
	}
	if i, ok := g.layout.cardAt(t.X, t.Y); ok && i < len(g.engine.deck) {
		g.cursor = i
		g.activate(i)
	}
}

// State returns the current game state. Score is provisional until the
// round is complete.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    Score(g.engine.Moves()),
		Moves:    g.engine.Moves(),
		GameOver: g.engine.Phase() == PhaseComplete,
		Paused:   g.paused,
	}
}

// Result returns the completion report of the current round.
func (g *Game) Result() (Result, bool) {
	if g.engine == nil {
		return Result{}, false
	}
	return g.engine.Result()
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Cursor returns the index of the highlighted card.
func (g *Game) Cursor() int {
	return g.cursor
}

// Config returns the effective configuration of the current round.
func (g *Game) Config() config.MemoryConfig {
	return g.cfg
}
