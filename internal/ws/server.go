package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"memory-arena/internal/config"
	"memory-arena/internal/game"
)

// Client is one live session. The transport goroutines own conn; the
// coordinator only ever touches the send channel and the fields it guards
// with its own mutex.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	player string // display name once joined, identity key in inSession
	room   *Room
}

// Server is the session coordinator: it owns the matchmaking queue, the
// in-session name set and the room registry, and serializes every
// connection event (join, flip, leave, disconnect, timer resolution) under
// one mutex so no two mutations interleave against the same board.
type Server struct {
	boardPairs  int
	matchPoints int
	revealDelay time.Duration

	upgrader websocket.Upgrader

	mu        sync.Mutex
	waiting   []*Client // FIFO, head is paired first
	inSession map[string]bool
	rooms     map[string]*Room
}

func NewServer(cfg config.ServerConfig) (*Server, error) {
	// Surface a bad board size at bootstrap instead of on the first pairing.
	if _, err := game.NewDeck(cfg.BoardPairs); err != nil {
		return nil, err
	}
	return &Server{
		boardPairs:  cfg.BoardPairs,
		matchPoints: cfg.MatchPoints,
		revealDelay: cfg.RevealDelay(),
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		inSession:   map[string]bool{},
		rooms:       map[string]*Room{},
	}, nil
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{id: newID(), conn: conn, send: make(chan []byte, 16)}

	go s.writeLoop(client)
	s.readLoop(client)
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		s.disconnect(c)
		_ = c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}
		switch base.Type {
		case "join":
			var join JoinMessage
			if err := json.Unmarshal(msg, &join); err != nil {
				continue
			}
			s.handleJoin(c, join.PlayerName)
		case "flip":
			var flip FlipMessage
			if err := json.Unmarshal(msg, &flip); err != nil {
				continue
			}
			s.handleFlip(c, flip.CardID)
		case "leave":
			s.handleLeave(c)
		}
	}
}

func (s *Server) writeLoop(c *Client) {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// handleJoin enters matchmaking: pair with the longest-waiting player, or
// queue at the tail. Duplicate identities are dropped without a reply.
func (s *Server) handleJoin(c *Client, playerName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if playerName == "" || c.player != "" {
		return
	}
	if s.inSession[playerName] {
		log.Debug().Str("player", playerName).Msg("duplicate join dropped")
		return
	}
	c.player = playerName
	s.inSession[playerName] = true

	if len(s.waiting) > 0 {
		opponent := s.waiting[0]
		s.waiting = s.waiting[1:]
		if _, err := s.createRoomLocked(opponent, c); err != nil {
			log.Error().Err(err).Msg("room creation failed")
		}
		return
	}

	s.waiting = append(s.waiting, c)
	safeSend(c.send, encode(Notice{Type: "waiting"}))
	log.Info().Str("player", playerName).Str("conn_id", c.id).Msg("player waiting")
}

// createRoomLocked builds a fresh board, registers the room and announces
// the pairing to both members. The first member holds the opening turn.
func (s *Server) createRoomLocked(a, b *Client) (*Room, error) {
	deck, err := game.NewDeck(s.boardPairs)
	if err != nil {
		return nil, err
	}
	room := &Room{
		id:      newID(),
		members: [2]*Client{a, b},
		state:   game.NewState(deck, a.player, b.player, s.matchPoints),
	}
	a.room = room
	b.room = room
	s.rooms[room.id] = room

	room.broadcast(Notice{Type: "game_started"})
	room.broadcast(stateMessage(room.state.Snapshot()))
	log.Info().
		Str("room_id", room.id).
		Str("player_1", a.player).
		Str("player_2", b.player).
		Msg("game_started")
	return room, nil
}

// handleFlip forwards a flip to the turn engine and broadcasts the new
// state. The second flip of a turn opens the reveal window and schedules
// the delayed resolution.
func (s *Server) handleFlip(c *Client, cardID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := c.room
	if room == nil {
		return
	}
	outcome, matched := room.state.Flip(c.player, cardID)
	if outcome == game.FlipRejected {
		return
	}
	log.Debug().
		Str("room_id", room.id).
		Str("player", c.player).
		Int("card_id", cardID).
		Bool("matched", matched).
		Msg("card_flipped")

	room.broadcast(stateMessage(room.state.Snapshot()))

	if outcome == game.FlipSecond {
		roomID := room.id
		room.resolve = time.AfterFunc(s.revealDelay, func() {
			s.resolveRoom(roomID)
		})
	}
}

// resolveRoom fires after the reveal delay. The room may have been
// destroyed while the timer was pending; looking it up again under the
// mutex makes the stale callback a no-op.
func (s *Server) resolveRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	room.stopResolveTimer()
	if room.state.Phase != game.PhaseResolving {
		// A leave raced the timer and forfeited the board first.
		return
	}

	finished := room.state.Resolve()
	room.broadcast(stateMessage(room.state.Snapshot()))
	if !finished {
		return
	}

	res := room.state.Result()
	room.broadcast(gameOverMessage(res))
	log.Info().
		Str("room_id", roomID).
		Str("winner", res.Winner).
		Interface("scores", res.Scores).
		Msg("game_over")
	s.destroyRoomLocked(room)
}

// handleLeave is the voluntary exit. The survivor keeps an over room until
// they leave or disconnect themselves; nobody is matched into it again.
func (s *Server) handleLeave(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeWaitingLocked(c)

	if room := c.room; room != nil {
		c.room = nil
		survivor := room.drop(c)
		if survivor == nil {
			s.destroyRoomLocked(room)
		} else {
			room.stopResolveTimer()
			room.state.ForceFinish()
			safeSend(survivor.send, encode(OpponentLeftMessage{Type: "opponent_left", PlayerName: c.player}))
		}
		log.Info().Str("room_id", room.id).Str("player", c.player).Msg("player left")
	}

	if c.player != "" {
		delete(s.inSession, c.player)
		c.player = ""
	}
}

// disconnect is the transport-level session end. A roomed survivor is told
// their opponent left and re-enters matchmaking at the tail of the queue.
func (s *Server) disconnect(c *Client) {
	s.mu.Lock()
	s.removeWaitingLocked(c)
	if c.player != "" {
		delete(s.inSession, c.player)
	}

	if room := c.room; room != nil {
		c.room = nil
		survivor := room.drop(c)
		s.destroyRoomLocked(room)
		if survivor != nil {
			safeSend(survivor.send, encode(OpponentLeftMessage{Type: "opponent_left", PlayerName: c.player}))
			s.waiting = append(s.waiting, survivor)
			safeSend(survivor.send, encode(Notice{Type: "waiting"}))
			log.Info().
				Str("room_id", room.id).
				Str("player", survivor.player).
				Msg("survivor requeued")
		}
	}
	s.mu.Unlock()

	safeClose(c.send)
}

// destroyRoomLocked removes the room, cancels any pending resolution and
// drops the remaining member references. It never closes a connection; the
// transport owns connection lifetime.
func (s *Server) destroyRoomLocked(room *Room) {
	room.stopResolveTimer()
	delete(s.rooms, room.id)
	for _, m := range room.members {
		if m != nil && m.room == room {
			m.room = nil
		}
	}
}

func (s *Server) removeWaitingLocked(c *Client) {
	for i, w := range s.waiting {
		if w == c {
			s.waiting = append(s.waiting[:i], s.waiting[i+1:]...)
			return
		}
	}
}

// Status is the read-only snapshot behind GET /api/status.
type Status struct {
	ActiveRooms    int
	WaitingPlayers int
}

func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{ActiveRooms: len(s.rooms), WaitingPlayers: len(s.waiting)}
}

// StartNamedGame pairs two specific waiting players out of queue order, the
// convenience behind POST /api/games. Both must currently be waiting.
func (s *Server) StartNamedGame(playerName1, playerName2 string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c1 := s.findWaitingLocked(playerName1)
	c2 := s.findWaitingLocked(playerName2)
	if c1 == nil || c2 == nil || c1 == c2 {
		return "", false
	}
	s.removeWaitingLocked(c1)
	s.removeWaitingLocked(c2)
	room, err := s.createRoomLocked(c1, c2)
	if err != nil {
		return "", false
	}
	return room.id, true
}

func (s *Server) findWaitingLocked(playerName string) *Client {
	for _, w := range s.waiting {
		if w.player == playerName {
			return w
		}
	}
	return nil
}

func encode(v any) []byte {
	msg, _ := json.Marshal(v)
	return msg
}

func safeSend(ch chan []byte, msg []byte) {
	defer func() {
		_ = recover()
	}()
	select {
	case ch <- msg:
	default:
		// Slow consumer: drop the frame rather than block the coordinator.
	}
}

func safeClose(ch chan []byte) {
	defer func() {
		_ = recover()
	}()
	close(ch)
}
