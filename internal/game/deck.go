package game

import (
	"errors"
	"math/rand"
)

// palette holds the symbols a deck draws from. A board of k pairs uses the
// first k symbols, so the largest supported board is len(palette) pairs.
var palette = []string{"🥑", "🤪", "🌟", "🍀", "🦄", "🎯", "🚀", "🐱", "🍕", "🏀", "🌈", "🎵"}

var ErrInvalidBoardSize = errors.New("invalid_board_size")

type Card struct {
	ID     int    `json:"id"`
	Value  string `json:"value"`
	FaceUp bool   `json:"face_up"`
}

// NewDeck returns 2*pairs face-down cards, each symbol appearing exactly
// twice, uniformly shuffled. IDs are assigned after the shuffle so a card's
// id reveals nothing about its value.
func NewDeck(pairs int) ([]Card, error) {
	if pairs < 1 || pairs > len(palette) {
		return nil, ErrInvalidBoardSize
	}
	values := make([]string, 0, pairs*2)
	for _, v := range palette[:pairs] {
		values = append(values, v, v)
	}
	rand.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	cards := make([]Card, len(values))
	for i, v := range values {
		cards[i] = Card{ID: i, Value: v}
	}
	return cards, nil
}

// MaxPairs is the largest board the palette can back.
func MaxPairs() int { return len(palette) }
