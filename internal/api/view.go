package api

import (
	"github.com/carelink/brainarcade/internal/games/memory"
)

// RoundView is the JSON form of a round.
type RoundView struct {
	ID           string      `json:"id"`
	GameID       string      `json:"game_id"`
	Player       string      `json:"player,omitempty"`
	Phase        string      `json:"phase"`
	Busy         bool        `json:"busy"`
	Moves        int         `json:"moves"`
	MatchedPairs int         `json:"matched_pairs"`
	PairCount    int         `json:"pair_count"`
	Open         []int       `json:"open"`
	Cards        []CardView  `json:"cards"`
	Result       *ResultView `json:"result,omitempty"`
}

// CardView is the JSON form of a card. Token and Label are omitted while
// the card is face down and not turning up.
type CardView struct {
	Index     int            `json:"index"`
	ID        string         `json:"id"`
	State     string         `json:"state"`
	Token     string         `json:"token,omitempty"`
	Label     string         `json:"label,omitempty"`
	Face      float64        `json:"face"`
	Animation *AnimationView `json:"animation,omitempty"`
}

// AnimationView tells the client how to animate a card. StartMS is relative
// to the moment the view was taken and is negative once the animation runs.
type AnimationView struct {
	Kind       string `json:"kind"`
	StartMS    int64  `json:"start_ms"`
	DurationMS int64  `json:"duration_ms"`
}

// ResultView is the completion report.
type ResultView struct {
	Moves        int   `json:"moves"`
	MatchedPairs int   `json:"matched_pairs"`
	Score        int   `json:"score"`
	ElapsedMS    int64 `json:"elapsed_ms"`
}

func newRoundView(r *round) RoundView {
	v := r.engine.View()
	out := RoundView{
		ID:           r.id,
		GameID:       r.gameID,
		Player:       r.player,
		Phase:        v.Phase.String(),
		Busy:         v.Phase.Busy(),
		Moves:        v.Moves,
		MatchedPairs: v.MatchedPairs,
		PairCount:    v.PairCount,
		Open:         v.OpenSelection,
		Cards:        make([]CardView, len(v.Cards)),
	}
	if out.Open == nil {
		out.Open = []int{}
	}

	for i, c := range v.Cards {
		cv := CardView{
			Index: c.Index,
			ID:    c.ID,
			State: c.State.String(),
			Face:  c.Face,
		}
		if c.State != memory.CardHidden || c.Animation.Kind == memory.AnimReveal {
			cv.Token = c.Token.Name
			cv.Label = c.Token.Label
		}
		if c.Animation.Active() {
			cv.Animation = &AnimationView{
				Kind:       c.Animation.Kind.String(),
				StartMS:    (c.Animation.Start - v.Now).Milliseconds(),
				DurationMS: c.Animation.Duration.Milliseconds(),
			}
		}
		out.Cards[i] = cv
	}

	if res, ok := r.engine.Result(); ok {
		out.Result = &ResultView{
			Moves:        res.Moves,
			MatchedPairs: res.MatchedPairs,
			Score:        res.Score,
			ElapsedMS:    res.Elapsed.Milliseconds(),
		}
	}
	return out
}
