package main

import (
	"encoding/json"
	"net/http"

	"memory-arena/internal/ws"
)

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}

func statusHandler(coord *ws.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := coord.Status()
		writeJSON(w, http.StatusOK, map[string]any{
			"active_rooms":    st.ActiveRooms,
			"waiting_players": st.WaitingPlayers,
		})
	}
}

type startGameRequest struct {
	PlayerName1 string `json:"player_name_1"`
	PlayerName2 string `json:"player_name_2"`
}

// startGameHandler pairs two specifically named waiting players, skipping
// queue order. Both must already hold a live waiting connection.
func startGameHandler(coord *ws.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if req.PlayerName1 == "" || req.PlayerName2 == "" || req.PlayerName1 == req.PlayerName2 {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		gameID, ok := coord.StartNamedGame(req.PlayerName1, req.PlayerName2)
		if !ok {
			writeHTTPError(w, http.StatusNotFound, "player_not_waiting")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"game_id": gameID})
	}
}
