package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/carelink/brainarcade/internal/events"
	"github.com/carelink/brainarcade/internal/games/memory"
	"github.com/carelink/brainarcade/internal/storage"
)

// Recorder saves finished rounds and announces them.
// Both the store and the publisher are optional.
type Recorder struct {
	store  *storage.Store
	pub    *events.Publisher
	log    *log.Logger
	player string
}

// NewRecorder creates a recorder. A nil logger discards output.
func NewRecorder(store *storage.Store, pub *events.Publisher, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, pub: pub, log: logger}
}

// ForPlayer returns a copy that attributes rounds to player.
func (r *Recorder) ForPlayer(player string) *Recorder {
	if r == nil {
		return nil
	}
	cp := *r
	cp.player = player
	cp.log = r.log.With("player", player)
	return &cp
}

// Store returns the underlying store, which may be nil.
func (r *Recorder) Store() *storage.Store {
	if r == nil {
		return nil
	}
	return r.store
}

// Record saves and publishes one finished round under a fresh round id.
func (r *Recorder) Record(gameID string, res memory.Result) (storage.Result, error) {
	row := storage.Result{
		RoundID:   uuid.NewString(),
		GameID:    gameID,
		Score:     res.Score,
		Moves:     res.Moves,
		Pairs:     res.MatchedPairs,
		Duration:  res.Elapsed,
		CreatedAt: time.Now(),
	}
	if r == nil {
		return row, nil
	}
	row.Player = r.player

	r.log.Info("round complete", "round", row.RoundID, "game", gameID,
		"moves", res.Moves, "score", res.Score)

	var errs []error
	if r.store != nil {
		id, err := r.store.SaveResult(row)
		if err != nil {
			errs = append(errs, err)
		}
		row.ID = id
	}

	err := r.pub.Publish(events.CompletionEvent{
		RoundID:      row.RoundID,
		GameID:       gameID,
		Player:       row.Player,
		Moves:        res.Moves,
		MatchedPairs: res.MatchedPairs,
		Score:        res.Score,
		DurationMS:   res.Elapsed.Milliseconds(),
		FinishedAt:   row.CreatedAt.UTC(),
	})
	if err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		r.log.Error("record round", "round", row.RoundID, "err", err)
		return row, err
	}
	return row, nil
}
