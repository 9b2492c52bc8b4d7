// Package memory implements Brain Training, a timed memory-match game:
// a scripted study preview of the full board followed by two-card flips
// that either match or are shown briefly and hidden again.
package memory

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/carelink/brainarcade/internal/config"
)

// DefaultPairs is the number of pairs dealt when no count is configured.
const DefaultPairs = 12

// scoreBase is the score of a zero-move round; each move costs one point.
const scoreBase = 100

// Phase is the coarse state of a round. Previewing, Flipping and Resolving
// are busy phases: they have a timed transition in flight and reject input.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreviewing
	PhasePlaying
	PhaseFlipping
	PhaseResolving
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreviewing:
		return "previewing"
	case PhasePlaying:
		return "playing"
	case PhaseFlipping:
		return "flipping"
	case PhaseResolving:
		return "resolving"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Busy reports whether a timed transition is in flight.
func (p Phase) Busy() bool {
	return p == PhasePreviewing || p == PhaseFlipping || p == PhaseResolving
}

// Result is the completion report of a round.
type Result struct {
	Moves        int
	MatchedPairs int
	Score        int
	Elapsed      time.Duration // from the end of the preview to the last match
}

// Score returns max(0, 100 - moves).
func Score(moves int) int {
	return max(0, scoreBase-moves)
}

// Option configures an Engine.
type Option func(*Engine)

// WithPairs sets the pair count of the first deal.
func WithPairs(n int) Option {
	return func(e *Engine) { e.pairCount = n }
}

// WithTiming overrides the animation and hold durations.
func WithTiming(t config.MemoryTiming) Option {
	return func(e *Engine) { e.timing = t }
}

// WithRand sets the source of randomness for dealing.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithTokens replaces the token pool. Used by tests to force small pools.
func WithTokens(pool []Token) Option {
	return func(e *Engine) { e.pool = append([]Token(nil), pool...) }
}

// WithLogger sets the logger that receives intent traces at debug level.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCompletionHandler registers fn to receive the completion report.
// It is called exactly once per completed round, from inside Advance.
func WithCompletionHandler(fn func(Result)) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// Engine owns the deck and round state of one memory-match game.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	pool       []Token
	timing     config.MemoryTiming
	rng        *rand.Rand
	log        *log.Logger
	onComplete func(Result)
	clock      *Scheduler

	pairCount    int
	deck         []Card
	anims        []Animation
	moves        int
	matchedPairs int
	open         []int
	phase        Phase
	generation   uint64

	playStart time.Duration
	result    *Result
}

// NewEngine creates an engine and deals the first deck. The round starts
// Idle; call StartPreview to begin.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		pool:      tokenPool,
		timing:    config.DefaultMemoryConfig().Timing,
		pairCount: DefaultPairs,
		clock:     NewScheduler(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	e.NewGame(e.pairCount)
	return e
}

// NewGame deals a fresh deck of pairCount pairs and resets the round to
// Idle. It is accepted in any phase: timers of the previous round are
// invalidated by the generation bump and will not touch the new round.
func (e *Engine) NewGame(pairCount int) {
	e.generation++
	e.pairCount = clampPairs(pairCount, len(e.pool))
	e.deck = BuildDeck(e.rng, e.pool, e.pairCount)
	e.anims = make([]Animation, len(e.deck))
	e.moves = 0
	e.matchedPairs = 0
	e.open = e.open[:0]
	e.phase = PhaseIdle
	e.playStart = 0
	e.result = nil
	e.log.Debug("new game", "pairs", e.pairCount, "generation", e.generation)
}

// StartPreview reveals the whole board with a staggered animation, holds
// it for the study phase, hides it again and moves the round to Playing.
// Returns false if the round is not Idle.
func (e *Engine) StartPreview() bool {
	if e.phase != PhaseIdle {
		e.log.Debug("start rejected", "phase", e.phase)
		return false
	}

	e.phase = PhasePreviewing
	now := e.clock.Now()
	flip := e.timing.Flip()
	stagger := e.timing.RevealStagger()
	for i := range e.deck {
		e.deck[i].State = CardRevealed
		e.anims[i] = Animation{
			Kind:     AnimReveal,
			Start:    now + time.Duration(i)*stagger,
			Duration: flip,
			Easing:   EaseOutCubic,
		}
	}

	revealed := time.Duration(len(e.deck)-1)*stagger + flip
	gen := e.generation
	e.clock.After(revealed+e.timing.RevealHold(), func() {
		if gen != e.generation {
			return
		}
		start := e.clock.Now()
		for i := range e.deck {
			e.anims[i] = Animation{
				Kind:     AnimHide,
				Start:    start,
				Duration: e.timing.Hide(),
				Easing:   EaseInOutCubic,
			}
		}
		e.clock.After(e.timing.Hide(), func() {
			if gen != e.generation {
				return
			}
			for i := range e.deck {
				e.deck[i].State = CardHidden
				e.anims[i] = Animation{}
			}
			e.phase = PhasePlaying
			e.playStart = e.clock.Now()
			e.log.Debug("preview finished")
		})
	})

	e.log.Debug("preview started", "cards", len(e.deck))
	return true
}

// SelectCard flips the card at index. It is rejected, with no change,
// unless the round is Playing, the index is on the board, the card is
// Hidden and fewer than two cards are open.
func (e *Engine) SelectCard(index int) bool {
	switch {
	case e.phase != PhasePlaying:
		e.log.Debug("select rejected", "index", index, "phase", e.phase)
		return false
	case index < 0 || index >= len(e.deck):
		e.log.Debug("select rejected", "index", index, "reason", "out of range")
		return false
	case e.deck[index].State != CardHidden:
		e.log.Debug("select rejected", "index", index, "state", e.deck[index].State)
		return false
	case len(e.open) >= 2:
		e.log.Debug("select rejected", "index", index, "reason", "resolution pending")
		return false
	}

	e.phase = PhaseFlipping
	e.anims[index] = Animation{
		Kind:     AnimReveal,
		Start:    e.clock.Now(),
		Duration: e.timing.Flip(),
		Easing:   EaseInOutCubic,
	}

	gen := e.generation
	e.clock.After(e.timing.Flip(), func() {
		if gen != e.generation {
			return
		}
		e.deck[index].State = CardRevealed
		e.anims[index] = Animation{}
		e.open = append(e.open, index)
		if len(e.open) > 2 {
			panic("memory: more than two cards open")
		}
		if len(e.open) < 2 {
			e.phase = PhasePlaying
			return
		}
		e.resolve()
	})

	e.log.Debug("card selected", "index", index, "id", e.deck[index].ID)
	return true
}

// resolve compares the two open cards. A match is applied immediately;
// a mismatch holds both cards face up, then hides them.
func (e *Engine) resolve() {
	e.moves++
	a, b := e.open[0], e.open[1]

	if e.deck[a].PairKey == e.deck[b].PairKey {
		e.deck[a].State = CardMatched
		e.deck[b].State = CardMatched
		e.matchedPairs++
		e.open = e.open[:0]
		e.log.Debug("match", "pair", e.deck[a].PairKey, "moves", e.moves)

		if e.matchedPairs == e.pairCount {
			e.complete()
			return
		}
		e.phase = PhasePlaying
		return
	}

	e.phase = PhaseResolving
	e.log.Debug("mismatch", "a", e.deck[a].ID, "b", e.deck[b].ID, "moves", e.moves)

	gen := e.generation
	e.clock.After(e.timing.MismatchHold(), func() {
		if gen != e.generation {
			return
		}
		start := e.clock.Now()
		for _, i := range []int{a, b} {
			e.anims[i] = Animation{
				Kind:     AnimHide,
				Start:    start,
				Duration: e.timing.Flip(),
				Easing:   EaseInOutCubic,
			}
		}
		e.clock.After(e.timing.Flip(), func() {
			if gen != e.generation {
				return
			}
			for _, i := range []int{a, b} {
				e.deck[i].State = CardHidden
				e.anims[i] = Animation{}
			}
			e.open = e.open[:0]
			e.phase = PhasePlaying
		})
	})
}

func (e *Engine) complete() {
	e.phase = PhaseComplete
	r := Result{
		Moves:        e.moves,
		MatchedPairs: e.matchedPairs,
		Score:        Score(e.moves),
		Elapsed:      e.clock.Now() - e.playStart,
	}
	e.result = &r
	e.log.Debug("round complete", "moves", r.Moves, "score", r.Score)
	if e.onComplete != nil {
		e.onComplete(r)
	}
}

// Restart deals a new deck with the current pair count and starts the
// preview. Returns false while a preview, flip or resolution is in flight.
func (e *Engine) Restart() bool {
	if e.phase.Busy() {
		e.log.Debug("restart rejected", "phase", e.phase)
		return false
	}
	e.NewGame(e.pairCount)
	return e.StartPreview()
}

// Advance moves the engine clock forward and applies due transitions.
func (e *Engine) Advance(d time.Duration) {
	e.clock.Advance(d)
}

// Now returns the engine's virtual time.
func (e *Engine) Now() time.Duration {
	return e.clock.Now()
}

// Phase returns the current round phase.
func (e *Engine) Phase() Phase { return e.phase }

// Moves returns the number of completed two-card attempts.
func (e *Engine) Moves() int { return e.moves }

// MatchedPairs returns the number of resolved pairs.
func (e *Engine) MatchedPairs() int { return e.matchedPairs }

// PairCount returns the number of pairs on the board.
func (e *Engine) PairCount() int { return e.pairCount }

// Generation identifies the current deal.
func (e *Engine) Generation() uint64 { return e.generation }

// Timing returns the durations in use.
func (e *Engine) Timing() config.MemoryTiming { return e.timing }

// OpenSelection returns a copy of the indices awaiting resolution.
func (e *Engine) OpenSelection() []int {
	return append([]int(nil), e.open...)
}

// Cards returns a copy of the deck.
func (e *Engine) Cards() []Card {
	return append([]Card(nil), e.deck...)
}

// Result returns the completion report once the round is Complete.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}
