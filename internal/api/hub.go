// Package api exposes memory-match rounds over a JSON HTTP interface so a
// remote client can drive a round while the server owns its state.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/carelink/brainarcade/internal/events"
	"github.com/carelink/brainarcade/internal/games/memory"
	"github.com/carelink/brainarcade/internal/storage"
)

var (
	// ErrRoundNotFound is returned for an unknown or expired round id.
	ErrRoundNotFound = errors.New("api: round not found")
	// ErrUnknownGame is returned when creating a round for an unregistered preset.
	ErrUnknownGame = errors.New("api: unknown game")
	// ErrNoStore is returned by score queries when persistence is disabled.
	ErrNoStore = errors.New("api: score storage unavailable")
)

// Store is the persistence the hub needs. *storage.Store implements it.
type Store interface {
	SaveResult(r storage.Result) (int64, error)
	TopScores(gameID string, limit int) ([]storage.Result, error)
}

type round struct {
	id       string
	gameID   string
	player   string
	engine   *memory.Engine
	lastSeen time.Time
}

type completion struct {
	round  *round
	gen    uint64
	result memory.Result
	at     time.Time
}

// Hub owns every live round. Request handlers and the ticker are
// serialized by one mutex, so each engine sees a single thread.
type Hub struct {
	mu     sync.Mutex
	rounds map[string]*round
	done   []completion

	store Store
	pub   *events.Publisher
	log   *log.Logger
	tick  time.Duration
	ttl   time.Duration
	now   func() time.Time
	seed  func() int64
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithStore saves completed rounds.
func WithStore(s Store) HubOption {
	return func(h *Hub) { h.store = s }
}

// WithPublisher publishes completed rounds.
func WithPublisher(p *events.Publisher) HubOption {
	return func(h *Hub) { h.pub = p }
}

// WithLogger sets the hub logger.
func WithLogger(l *log.Logger) HubOption {
	return func(h *Hub) { h.log = l }
}

// WithTick sets how often Run advances the engines.
func WithTick(d time.Duration) HubOption {
	return func(h *Hub) { h.tick = d }
}

// WithRoundTTL drops rounds untouched for longer than d.
func WithRoundTTL(d time.Duration) HubOption {
	return func(h *Hub) { h.ttl = d }
}

// WithClock replaces the wall clock used for expiry and timestamps.
func WithClock(now func() time.Time) HubOption {
	return func(h *Hub) { h.now = now }
}

// WithSeed fixes the deal of every new round. Used by tests.
func WithSeed(seed int64) HubOption {
	return func(h *Hub) { h.seed = func() int64 { return seed } }
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		rounds: make(map[string]*round),
		tick:   time.Second / 30,
		ttl:    30 * time.Minute,
		now:    time.Now,
		seed:   func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = log.New(io.Discard)
	}
	return h
}

// Create starts a new Idle round of the given preset.
func (h *Hub) Create(gameID, player string) (RoundView, error) {
	if gameID == "" {
		gameID = memory.Presets[0].ID
	}
	cfg, ok := memory.PresetConfig(gameID)
	if !ok {
		return RoundView{}, fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r := &round{
		id:       uuid.NewString(),
		gameID:   gameID,
		player:   player,
		lastSeen: h.now(),
	}
	r.engine = memory.NewEngine(
		memory.WithPairs(cfg.Board.Pairs),
		memory.WithTiming(cfg.Timing),
		memory.WithRand(rand.New(rand.NewSource(h.seed()))),
		memory.WithLogger(h.log.With("round", r.id)),
		memory.WithCompletionHandler(func(res memory.Result) {
			// Runs inside Step with h.mu held.
			h.done = append(h.done, completion{round: r, gen: r.engine.Generation(), result: res, at: h.now()})
		}),
	)
	h.rounds[r.id] = r
	h.log.Info("round created", "round", r.id, "game", gameID, "player", player)
	return newRoundView(r), nil
}

// with runs fn on the round under the hub lock.
func (h *Hub) with(id string, fn func(r *round) bool) (RoundView, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rounds[id]
	if !ok {
		return RoundView{}, false, ErrRoundNotFound
	}
	r.lastSeen = h.now()
	accepted := fn(r)
	return newRoundView(r), accepted, nil
}

// Start begins the study preview. The bool is false when the round is busy
// or already started.
func (h *Hub) Start(id string) (RoundView, bool, error) {
	return h.with(id, func(r *round) bool { return r.engine.StartPreview() })
}

// Restart deals again and starts the preview. The bool is false while a
// preview, flip or resolution is in flight.
func (h *Hub) Restart(id string) (RoundView, bool, error) {
	return h.with(id, func(r *round) bool { return r.engine.Restart() })
}

// Select flips the card at index. The bool is false when the intent was
// rejected.
func (h *Hub) Select(id string, index int) (RoundView, bool, error) {
	return h.with(id, func(r *round) bool { return r.engine.SelectCard(index) })
}

// Get returns the current view of a round.
func (h *Hub) Get(id string) (RoundView, error) {
	v, _, err := h.with(id, func(*round) bool { return true })
	return v, err
}

// Delete drops a round.
func (h *Hub) Delete(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rounds[id]; !ok {
		return ErrRoundNotFound
	}
	delete(h.rounds, id)
	return nil
}

// Count returns the number of live rounds.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rounds)
}

// IDs returns the live round ids, sorted.
func (h *Hub) IDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, 0, len(h.rounds))
	for id := range h.rounds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TopScores returns the best stored results of a game.
func (h *Hub) TopScores(gameID string, limit int) ([]storage.Result, error) {
	if h.store == nil {
		return nil, ErrNoStore
	}
	return h.store.TopScores(gameID, limit)
}

// Step advances every round by d, drops expired rounds and records the
// rounds that completed.
func (h *Hub) Step(d time.Duration) {
	h.mu.Lock()
	now := h.now()
	for id, r := range h.rounds {
		r.engine.Advance(d)
		if h.ttl > 0 && now.Sub(r.lastSeen) > h.ttl {
			delete(h.rounds, id)
			h.log.Debug("round expired", "round", id)
		}
	}
	done := h.done
	h.done = nil
	h.mu.Unlock()

	// Storage and NATS calls happen outside the lock.
	for _, c := range done {
		h.record(c)
	}
}

func (h *Hub) record(c completion) {
	roundID := fmt.Sprintf("%s-%d", c.round.id, c.gen)
	h.log.Info("round complete",
		"round", roundID, "game", c.round.gameID,
		"moves", c.result.Moves, "score", c.result.Score)

	if h.store != nil {
		_, err := h.store.SaveResult(storage.Result{
			RoundID:  roundID,
			GameID:   c.round.gameID,
			Player:   c.round.player,
			Score:    c.result.Score,
			Moves:    c.result.Moves,
			Pairs:    c.result.MatchedPairs,
			Duration: c.result.Elapsed,
		})
		if err != nil {
			h.log.Error("save result", "round", roundID, "err", err)
		}
	}

	err := h.pub.Publish(events.CompletionEvent{
		RoundID:      roundID,
		GameID:       c.round.gameID,
		Player:       c.round.player,
		Moves:        c.result.Moves,
		MatchedPairs: c.result.MatchedPairs,
		Score:        c.result.Score,
		DurationMS:   c.result.Elapsed.Milliseconds(),
		FinishedAt:   c.at.UTC(),
	})
	if err != nil {
		h.log.Error("publish result", "round", roundID, "err", err)
	}
}

// Run advances the hub in real time until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			h.Step(t.Sub(last))
			last = t
		}
	}
}
