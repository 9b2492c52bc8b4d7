package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/brainarcade/internal/storage"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm, cmd
}

func TestMenuListsRegisteredBoards(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveResult(storage.Result{GameID: "memory_easy", Score: 93, Moves: 7})
	require.NoError(t, err)

	m := NewMenuModel(store, testConfig())
	ids := make([]string, 0, len(m.items))
	for _, it := range m.items {
		ids = append(ids, it.GameID)
	}
	assert.Equal(t, []string{"memory", "memory_easy", "memory_hard"}, ids)
	assert.Equal(t, 93, m.items[1].HighScore)

	view := m.View()
	assert.Contains(t, view, "Pick a board")
	assert.Contains(t, view, "(best 93)")
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	assert.Equal(t, 2, m.cursor, "cursor stops at the last item")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "memory_hard", m.Selected().GameID)
	assert.NotNil(t, cmd)
}

func TestSessionMenuGameMenu(t *testing.T) {
	rec := NewRecorder(openStore(t), nil, nil).ForPlayer("ana")
	m := NewSessionModel(rec, testConfig())

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, m.screen)
	require.NotNil(t, m.game)
	require.NotNil(t, cmd, "entering a game starts its tick loop")
	assert.Contains(t, m.View(), "Brain Training")

	loop := m.game.loop
	m, cmd = updateSession(t, m, TickMsg{At: time.Now(), Loop: loop})
	assert.NotNil(t, cmd)

	m, _ = updateSession(t, m, runeKey("b"))
	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.game)
	assert.False(t, m.quitting)

	// The abandoned loop's tick reaches the menu and goes nowhere.
	m, cmd = updateSession(t, m, TickMsg{At: time.Now(), Loop: loop})
	assert.Nil(t, cmd)
	assert.Equal(t, screenMenu, m.screen)
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveResult(storage.Result{GameID: "memory", Player: "ana", Score: 88, Moves: 12})
	require.NoError(t, err)

	m := NewSessionModel(NewRecorder(store, nil, nil), testConfig())
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScores, m.screen)

	view := m.View()
	assert.Contains(t, view, "LEADERBOARD")
	assert.Contains(t, view, "ana")
	assert.Contains(t, view, "Rounds: 1")

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)
	assert.False(t, m.quitting)
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig())
	m, cmd := updateSession(t, m, runeKey("q"))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestRecorderWithoutSinks(t *testing.T) {
	var rec *Recorder
	row, err := rec.Record("memory", memoryResult())
	require.NoError(t, err)
	assert.NotEmpty(t, row.RoundID)
	assert.Nil(t, rec.Store())
	assert.Nil(t, rec.ForPlayer("ana"))

	row, err = NewRecorder(nil, nil, nil).Record("memory", memoryResult())
	require.NoError(t, err)
	assert.Equal(t, 88, row.Score)
}

func TestRecorderReportsSaveFailure(t *testing.T) {
	rec := NewRecorder(openStore(t), nil, nil)
	_, err := rec.Record("", memoryResult())
	assert.Error(t, err)
}
