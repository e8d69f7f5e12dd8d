package game

// FlipOutcome reports what a flip attempt did to the board.
type FlipOutcome int

const (
	// FlipRejected means the attempt violated a flip rule and mutated
	// nothing. Rejections are deliberate no-ops, not errors: a buggy or
	// hostile client can only be ignored, never corrupt shared state.
	FlipRejected FlipOutcome = iota
	FlipFirst
	FlipSecond
)

// Flip applies one flip attempt by player against cardID. A FlipSecond
// outcome moves the board into PhaseResolving; the caller owns scheduling
// the delayed Resolve. matched is meaningful only for FlipSecond.
func (s *State) Flip(player string, cardID int) (outcome FlipOutcome, matched bool) {
	if s.Phase != PhaseFirstFlip && s.Phase != PhaseSecondFlip {
		return FlipRejected, false
	}
	if player != s.Turn {
		return FlipRejected, false
	}
	if cardID < 0 || cardID >= len(s.Cards) {
		return FlipRejected, false
	}
	if s.Matched[cardID] {
		return FlipRejected, false
	}
	for _, id := range s.Revealed {
		if id == cardID {
			return FlipRejected, false
		}
	}

	s.Revealed = append(s.Revealed, cardID)
	s.Cards[cardID].FaceUp = true

	if len(s.Revealed) < 2 {
		s.Phase = PhaseSecondFlip
		return FlipFirst, false
	}

	first, second := s.Revealed[0], s.Revealed[1]
	if s.Cards[first].Value == s.Cards[second].Value {
		s.Matched[first] = true
		s.Matched[second] = true
		s.Scores[s.Turn] += s.MatchPoints
		matched = true
	}
	s.Phase = PhaseResolving
	return FlipSecond, matched
}

// Resolve ends the reveal window opened by the second flip: unmatched
// pending cards return face down, the turn passes on a mismatch (the
// matcher keeps playing otherwise), and a fully matched board finishes the
// game. Returns true once the board is finished.
func (s *State) Resolve() bool {
	if s.Phase != PhaseResolving {
		return false
	}

	mismatch := false
	for _, id := range s.Revealed {
		if !s.Matched[id] {
			s.Cards[id].FaceUp = false
			mismatch = true
		}
	}
	s.Revealed = nil

	if mismatch {
		s.Turn = s.Opponent(s.Turn)
	}

	if len(s.Matched) == len(s.Cards) {
		s.Phase = PhaseFinished
		return true
	}
	s.Phase = PhaseFirstFlip
	return false
}

// ForceFinish ends the game without a result, used when a member walks away
// from a live room. Any later flip is rejected.
func (s *State) ForceFinish() {
	s.Phase = PhaseFinished
}

func (s *State) Finished() bool {
	return s.Phase == PhaseFinished
}

// Result holds the terminal outcome. A tie leaves Winner and Loser empty.
type Result struct {
	Winner string
	Loser  string
	Scores map[string]int
}

// Result compares the two scores on a finished board. Higher score wins;
// equal scores tie.
func (s *State) Result() Result {
	p1, p2 := s.Players[0], s.Players[1]
	res := Result{Scores: map[string]int{p1: s.Scores[p1], p2: s.Scores[p2]}}
	switch {
	case s.Scores[p1] > s.Scores[p2]:
		res.Winner, res.Loser = p1, p2
	case s.Scores[p2] > s.Scores[p1]:
		res.Winner, res.Loser = p2, p1
	}
	return res
}
