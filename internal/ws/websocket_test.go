package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"memory-arena/internal/config"
	"memory-arena/internal/game"
)

func dialTestServer(t *testing.T, url, playerName string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := conn.WriteJSON(JoinMessage{Type: "join", PlayerName: playerName}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (string, []byte) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &base); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return base.Type, msg
}

func TestWebSocketRoundTrip(t *testing.T) {
	s, err := NewServer(config.ServerConfig{BoardPairs: 2, RevealDelayMS: 10, MatchPoints: 100})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(s.HandleWS))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	alice := dialTestServer(t, url, "alice")
	if typ, _ := readEnvelope(t, alice); typ != "waiting" {
		t.Fatalf("first message = %q, want waiting", typ)
	}

	bob := dialTestServer(t, url, "bob")
	if typ, _ := readEnvelope(t, alice); typ != "game_started" {
		t.Fatalf("alice got %q, want game_started", typ)
	}
	if typ, _ := readEnvelope(t, bob); typ != "game_started" {
		t.Fatalf("bob got %q, want game_started", typ)
	}

	var st StateMessage
	_, raw := readEnvelope(t, alice)
	if err := json.Unmarshal(raw, &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if st.State.Turn != "alice" {
		t.Fatalf("Turn = %q, want alice", st.State.Turn)
	}
	if typ, _ := readEnvelope(t, bob); typ != "state" {
		t.Fatalf("bob got %q, want state", typ)
	}

	// A garbage frame is skipped, not fatal.
	if err := alice.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	if err := alice.WriteJSON(FlipMessage{Type: "flip", CardID: 0}); err != nil {
		t.Fatalf("write flip: %v", err)
	}
	for _, conn := range []*websocket.Conn{alice, bob} {
		typ, raw := readEnvelope(t, conn)
		if typ != "state" {
			t.Fatalf("after flip got %q, want state", typ)
		}
		if err := json.Unmarshal(raw, &st); err != nil {
			t.Fatalf("unmarshal state: %v", err)
		}
		if !st.State.Cards[0].FaceUp {
			t.Fatal("card 0 not face up in broadcast")
		}
		if st.State.Phase != game.PhaseSecondFlip {
			t.Fatalf("Phase = %q, want awaiting_second_flip", st.State.Phase)
		}
	}

	// Closing bob's transport requeues alice.
	_ = bob.Close()
	if typ, _ := readEnvelope(t, alice); typ != "opponent_left" {
		t.Fatalf("alice got %q, want opponent_left", typ)
	}
	if typ, _ := readEnvelope(t, alice); typ != "waiting" {
		t.Fatalf("alice got %q, want waiting", typ)
	}
}
