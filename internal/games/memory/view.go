package memory

import "time"

// AnimKind is the direction of a card flip animation.
type AnimKind int

const (
	AnimNone AnimKind = iota
	AnimReveal
	AnimHide
)

func (k AnimKind) String() string {
	switch k {
	case AnimReveal:
		return "reveal"
	case AnimHide:
		return "hide"
	default:
		return "none"
	}
}

// Easing selects the curve applied to animation progress.
type Easing int

const (
	EaseLinear Easing = iota
	EaseOutCubic
	EaseInOutCubic
)

// Apply maps linear progress t in [0, 1] onto the curve.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseOutCubic:
		u := 1 - t
		return 1 - u*u*u
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		return t
	}
}

// Animation is an instruction for the surface: flip a card over Duration,
// starting at Start on the engine clock.
type Animation struct {
	Kind     AnimKind
	Start    time.Duration
	Duration time.Duration
	Easing   Easing
}

// Active reports whether the animation describes a flip.
func (a Animation) Active() bool {
	return a.Kind != AnimNone
}

// Progress returns the linear progress at now, clamped to [0, 1].
func (a Animation) Progress(now time.Duration) float64 {
	if !a.Active() || now >= a.Start+a.Duration {
		return 1
	}
	if now <= a.Start {
		return 0
	}
	return float64(now-a.Start) / float64(a.Duration)
}

// CardView is what a surface needs to draw one card.
type CardView struct {
	Index     int
	ID        string
	PairKey   string
	Token     Token
	State     CardState
	Animation Animation
	// Face is how far the card is turned toward its face: 0 shows the
	// back, 1 shows the face, 0.5 is edge-on.
	Face float64
}

// FaceUp reports whether the face side is the visible one.
func (c CardView) FaceUp() bool {
	return c.Face >= 0.5
}

// View is an immutable snapshot of a round for rendering.
type View struct {
	Phase         Phase
	Moves         int
	MatchedPairs  int
	PairCount     int
	OpenSelection []int
	Cards         []CardView
	Now           time.Duration
	Generation    uint64
}

// View returns a snapshot of the round at the current engine time.
func (e *Engine) View() View {
	now := e.clock.Now()
	cards := make([]CardView, len(e.deck))
	for i, c := range e.deck {
		anim := e.anims[i]
		cards[i] = CardView{
			Index:     i,
			ID:        c.ID,
			PairKey:   c.PairKey,
			Token:     c.Token,
			State:     c.State,
			Animation: anim,
			Face:      faceAt(c.State, anim, now),
		}
	}
	return View{
		Phase:         e.phase,
		Moves:         e.moves,
		MatchedPairs:  e.matchedPairs,
		PairCount:     e.pairCount,
		OpenSelection: e.OpenSelection(),
		Cards:         cards,
		Now:           now,
		Generation:    e.generation,
	}
}

func faceAt(state CardState, anim Animation, now time.Duration) float64 {
	switch anim.Kind {
	case AnimReveal:
		return anim.Easing.Apply(anim.Progress(now))
	case AnimHide:
		return 1 - anim.Easing.Apply(anim.Progress(now))
	}
	if state == CardHidden {
		return 0
	}
	return 1
}
