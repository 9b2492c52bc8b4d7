package memory

import (
	"fmt"
	"math/rand"
)

// CardState is the logical face of a card.
type CardState int

const (
	CardHidden CardState = iota
	CardRevealed
	CardMatched
)

func (s CardState) String() string {
	switch s {
	case CardHidden:
		return "hidden"
	case CardRevealed:
		return "revealed"
	case CardMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card is one placed instance on the board.
type Card struct {
	ID      string // stable for the round, e.g. "k3-b"
	PairKey string // shared by exactly two cards, e.g. "k3"
	Token   Token
	State   CardState
}

// BuildDeck picks pairs distinct tokens from pool without repetition, lays
// out two cards per token and shuffles the whole sequence with Fisher-Yates.
// pairs is clamped to [1, len(pool)].
func BuildDeck(rng *rand.Rand, pool []Token, pairs int) []Card {
	pairs = clampPairs(pairs, len(pool))

	// Partial Fisher-Yates over a copy of the pool picks without repetition.
	src := append([]Token(nil), pool...)
	for i := 0; i < pairs; i++ {
		j := i + rng.Intn(len(src)-i)
		src[i], src[j] = src[j], src[i]
	}

	deck := make([]Card, 0, pairs*2)
	for i, tok := range src[:pairs] {
		key := fmt.Sprintf("k%d", i)
		deck = append(deck,
			Card{ID: key + "-a", PairKey: key, Token: tok},
			Card{ID: key + "-b", PairKey: key, Token: tok},
		)
	}

	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

func clampPairs(pairs, poolSize int) int {
	if pairs < 1 {
		return 1
	}
	if pairs > poolSize {
		return poolSize
	}
	return pairs
}
