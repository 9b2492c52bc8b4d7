// Package tui runs arcade games in a terminal with Bubble Tea, either
// locally or per SSH session. It maps keys and mouse presses to input
// frames, drives the fixed-rate tick, and records finished rounds.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carelink/brainarcade/internal/core"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// game model that scheduled it; a model ignores ticks from other loops.
type TickMsg struct {
	At   time.Time
	Loop uint64
}

var loopSeq atomic.Uint64

func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd schedules the next tick of loop at the configured simulation rate.
func tickCmd(cfg core.RuntimeConfig, loop uint64) tea.Cmd {
	return tea.Tick(cfg.TickDuration(), func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
