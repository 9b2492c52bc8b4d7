package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/brainarcade/internal/core"
	"github.com/carelink/brainarcade/internal/events"
	"github.com/carelink/brainarcade/internal/games/memory"
	"github.com/carelink/brainarcade/internal/storage"
)

// stubGame finishes a round whenever over is set and reports a fixed result.
type stubGame struct {
	resets int
	steps  int
	over   bool
	inputs []core.InputFrame
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Controls() string         { return "" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen)  { dst.Clear(); dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState {
	return core.GameState{GameOver: g.over, Score: 90, Moves: 10}
}
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Result() (memory.Result, bool) {
	if !g.over {
		return memory.Result{}, false
	}
	return memory.Result{Moves: 10, MatchedPairs: 6, Score: 90, Elapsed: 42 * time.Second}, true
}

type recordingConn struct{ subjects []string }

func (c *recordingConn) Publish(subject string, _ []byte) error {
	c.subjects = append(c.subjects, subject)
	return nil
}

func (c *recordingConn) Drain() error { return nil }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm, cmd
}

func tick(m GameModel) TickMsg {
	return TickMsg{At: time.Now(), Loop: m.loop}
}

func TestGameModelForwardsInputOnTick(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, nil, testConfig())
	require.NotNil(t, m.Init())
	assert.Equal(t, 1, game.resets)

	m, _ = update(t, m, runeKey("g"))
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, cmd := update(t, m, tick(m))
	require.NotNil(t, cmd)

	require.Len(t, game.inputs, 1)
	assert.True(t, game.inputs[0].Has(core.ActionStart))
	assert.Equal(t, []core.Tap{{X: 3, Y: 4}}, game.inputs[0].Taps)

	m, _ = update(t, m, tick(m))
	require.Len(t, game.inputs, 2)
	assert.True(t, game.inputs[1].Empty(), "input is cleared after each tick")
}

func TestGameModelIgnoresForeignTicks(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	m, cmd := update(t, m, TickMsg{At: time.Now(), Loop: m.loop + 1000})
	assert.Nil(t, cmd)
	assert.Zero(t, game.steps)
}

func TestGameModelResizeKeepsRound(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 1, game.resets)
	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 40, m.screen.Height())
	assert.Contains(t, m.View(), "stub")
}

func TestGameModelRecordsEachRoundOnce(t *testing.T) {
	store := openStore(t)
	conn := &recordingConn{}
	rec := NewRecorder(store, events.NewPublisher(conn), nil).ForPlayer("ana")

	game := &stubGame{}
	m := NewGameModel(game, rec, testConfig())
	m.Init()

	m, _ = update(t, m, tick(m))
	game.over = true
	for range 5 {
		m, _ = update(t, m, tick(m))
	}

	rows, err := store.TopScores("stub", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ana", rows[0].Player)
	assert.Equal(t, 90, rows[0].Score)
	assert.Equal(t, 10, rows[0].Moves)
	assert.Equal(t, 6, rows[0].Pairs)
	assert.Equal(t, 42*time.Second, rows[0].Duration)
	assert.Equal(t, []string{"brainarcade.results.stub"}, conn.subjects)

	// A restarted round that finishes again is a new record.
	game.over = false
	m, _ = update(t, m, tick(m))
	game.over = true
	m, _ = update(t, m, tick(m))

	rows, err = store.TopScores("stub", 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].RoundID, rows[1].RoundID)
}

func TestGameModelBackAndQuit(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig())
	m.Init()

	m, cmd := update(t, m, runeKey("b"))
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
	assert.Nil(t, cmd)

	standalone := NewGameModel(&stubGame{}, nil, testConfig())
	standalone.quitOnBack = true
	standalone, cmd = update(t, standalone, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, standalone.BackToMenu())
	assert.True(t, standalone.IsQuitting())
	assert.NotNil(t, cmd)

	quit := NewGameModel(&stubGame{}, nil, testConfig())
	quit, cmd = update(t, quit, runeKey("q"))
	assert.True(t, quit.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, quit.View())
}

func TestGameModelPlaysMemoryRound(t *testing.T) {
	store := openStore(t)
	game := memory.NewWithPreset(memory.Presets[1])
	m := NewGameModel(game, NewRecorder(store, nil, nil), testConfig())
	m.Init()

	m, _ = update(t, m, runeKey("g"))
	m, _ = update(t, m, tick(m))
	assert.Equal(t, memory.PhasePreviewing, game.Engine().Phase())

	// Drive the engine directly through the board with perfect recall, then
	// let the model observe the finished round.
	for game.Engine().Phase() != memory.PhasePlaying {
		m, _ = update(t, m, tick(m))
	}
	cards := game.Engine().Cards()
	partner := map[string]int{}
	for i, c := range cards {
		if j, ok := partner[c.PairKey]; ok {
			require.True(t, game.Engine().SelectCard(j))
			for game.Engine().Phase() != memory.PhasePlaying && game.Engine().Phase() != memory.PhaseComplete {
				m, _ = update(t, m, tick(m))
			}
			require.True(t, game.Engine().SelectCard(i))
			for game.Engine().Phase().Busy() {
				m, _ = update(t, m, tick(m))
			}
			continue
		}
		partner[c.PairKey] = i
	}
	m, _ = update(t, m, tick(m))

	require.True(t, m.State().GameOver)
	rows, err := store.TopScores(game.ID(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, len(cards)/2, rows[0].Moves)
	assert.Equal(t, memory.Score(len(cards)/2), rows[0].Score)
}

func memoryResult() memory.Result {
	return memory.Result{Moves: 12, MatchedPairs: 12, Score: 88, Elapsed: time.Minute}
}
