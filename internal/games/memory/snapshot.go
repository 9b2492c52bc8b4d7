package memory

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Phase        Phase
	Moves        int
	MatchedPairs int
	Cursor       int
	Paused       bool
	Deck         []string // "id:token:state" per position
	Open         []int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Cursor: g.cursor,
		Paused: g.paused,
	}
	if g.engine == nil {
		return s
	}
	s.Phase = g.engine.Phase()
	s.Moves = g.engine.Moves()
	s.MatchedPairs = g.engine.MatchedPairs()
	s.Open = g.engine.OpenSelection()
	for _, c := range g.engine.deck {
		s.Deck = append(s.Deck, c.ID+":"+c.Token.Name+":"+c.State.String())
	}
	return s
}
