package game

import "sort"

type Phase string

const (
	PhaseFirstFlip  Phase = "awaiting_first_flip"
	PhaseSecondFlip Phase = "awaiting_second_flip"
	PhaseResolving  Phase = "resolving"
	PhaseFinished   Phase = "finished"
)

// State is the authoritative board for one room. It is not self-locking:
// the session coordinator serializes every caller, one mutation in flight
// per room.
type State struct {
	Cards    []Card
	Revealed []int
	Matched  map[int]bool
	Players  [2]string
	Turn     string
	Scores   map[string]int
	Phase    Phase

	MatchPoints int
}

// NewState builds the initial state for a fresh pairing. The first player
// holds the opening turn.
func NewState(cards []Card, player1, player2 string, matchPoints int) *State {
	return &State{
		Cards:       cards,
		Matched:     map[int]bool{},
		Players:     [2]string{player1, player2},
		Turn:        player1,
		Scores:      map[string]int{player1: 0, player2: 0},
		Phase:       PhaseFirstFlip,
		MatchPoints: matchPoints,
	}
}

// Snapshot is the wire form of State, sent to both members after every
// state-affecting transition.
type Snapshot struct {
	Cards    []Card         `json:"cards"`
	Revealed []int          `json:"revealed"`
	Matched  []int          `json:"matched"`
	Players  []string       `json:"players"`
	Turn     string         `json:"turn"`
	Scores   map[string]int `json:"scores"`
	Phase    Phase          `json:"phase"`
}

func (s *State) Snapshot() Snapshot {
	cards := make([]Card, len(s.Cards))
	copy(cards, s.Cards)
	revealed := make([]int, len(s.Revealed))
	copy(revealed, s.Revealed)
	matched := make([]int, 0, len(s.Matched))
	for id := range s.Matched {
		matched = append(matched, id)
	}
	sort.Ints(matched)
	scores := make(map[string]int, len(s.Scores))
	for p, sc := range s.Scores {
		scores[p] = sc
	}
	return Snapshot{
		Cards:    cards,
		Revealed: revealed,
		Matched:  matched,
		Players:  []string{s.Players[0], s.Players[1]},
		Turn:     s.Turn,
		Scores:   scores,
		Phase:    s.Phase,
	}
}

// Opponent returns the member that is not p. Falls back to p itself if p is
// not a member, which never happens for coordinator-routed events.
func (s *State) Opponent(p string) string {
	if s.Players[0] == p {
		return s.Players[1]
	}
	if s.Players[1] == p {
		return s.Players[0]
	}
	return p
}
