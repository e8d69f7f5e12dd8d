package ws

import (
	"time"

	"memory-arena/internal/game"
)

// Room pairs exactly two live connections with their shared board. Rooms
// live in the Server registry and every field is guarded by the Server
// mutex; the board itself is only ever mutated through coordinator events.
type Room struct {
	id      string
	members [2]*Client
	state   *game.State
	resolve *time.Timer // pending reveal resolution, nil outside Resolving
}

func (r *Room) other(c *Client) *Client {
	if r.members[0] == c {
		return r.members[1]
	}
	if r.members[1] == c {
		return r.members[0]
	}
	return nil
}

// drop removes c from membership and reports the remaining member, if any.
func (r *Room) drop(c *Client) *Client {
	for i, m := range r.members {
		if m == c {
			r.members[i] = nil
		}
	}
	if r.members[0] != nil {
		return r.members[0]
	}
	return r.members[1]
}

// broadcast marshals once and fans the frame out to each live member
// individually; there is no reliance on transport-level group sends.
func (r *Room) broadcast(v any) {
	msg := encode(v)
	for _, m := range r.members {
		if m != nil {
			safeSend(m.send, msg)
		}
	}
}

func (r *Room) stopResolveTimer() {
	if r.resolve != nil {
		r.resolve.Stop()
		r.resolve = nil
	}
}
