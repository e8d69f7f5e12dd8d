package ws

import "memory-arena/internal/game"

type JoinMessage struct {
	Type       string `json:"type"`
	PlayerName string `json:"player_name"`
}

type FlipMessage struct {
	Type   string `json:"type"`
	CardID int    `json:"card_id"`
}

// Notice carries the payload-free server events: "waiting" and
// "game_started".
type Notice struct {
	Type string `json:"type"`
}

type StateMessage struct {
	Type  string        `json:"type"`
	State game.Snapshot `json:"state"`
}

type OpponentLeftMessage struct {
	Type       string `json:"type"`
	PlayerName string `json:"player_name"`
}

// GameOverMessage reports the terminal outcome once per room. Winner and
// Loser are null on a tie.
type GameOverMessage struct {
	Type   string         `json:"type"`
	Winner *string        `json:"winner"`
	Loser  *string        `json:"loser"`
	Scores map[string]int `json:"scores"`
}

func stateMessage(s game.Snapshot) StateMessage {
	return StateMessage{Type: "state", State: s}
}

func gameOverMessage(res game.Result) GameOverMessage {
	msg := GameOverMessage{Type: "game_over", Scores: res.Scores}
	if res.Winner != "" {
		msg.Winner = &res.Winner
		msg.Loser = &res.Loser
	}
	return msg
}
