package game

import "testing"

func TestNewDeckComposition(t *testing.T) {
	cards, err := NewDeck(4)
	if err != nil {
		t.Fatalf("NewDeck(4) error = %v", err)
	}
	if len(cards) != 8 {
		t.Fatalf("len(cards) = %d, want 8", len(cards))
	}
	counts := map[string]int{}
	for i, c := range cards {
		if c.ID != i {
			t.Fatalf("cards[%d].ID = %d, want %d", i, c.ID, i)
		}
		if c.FaceUp {
			t.Fatalf("cards[%d] starts face up", i)
		}
		counts[c.Value]++
	}
	if len(counts) != 4 {
		t.Fatalf("distinct values = %d, want 4", len(counts))
	}
	for v, n := range counts {
		if n != 2 {
			t.Fatalf("value %q appears %d times, want 2", v, n)
		}
	}
}

func TestNewDeckMaxBoard(t *testing.T) {
	cards, err := NewDeck(MaxPairs())
	if err != nil {
		t.Fatalf("NewDeck(MaxPairs()) error = %v", err)
	}
	if len(cards) != MaxPairs()*2 {
		t.Fatalf("len(cards) = %d, want %d", len(cards), MaxPairs()*2)
	}
}

func TestNewDeckInvalidBoardSize(t *testing.T) {
	for _, pairs := range []int{0, -1, MaxPairs() + 1} {
		if _, err := NewDeck(pairs); err != ErrInvalidBoardSize {
			t.Fatalf("NewDeck(%d) error = %v, want ErrInvalidBoardSize", pairs, err)
		}
	}
}
