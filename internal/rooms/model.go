package rooms

import (
	"aimtrainer/internal/broadcast"
	"aimtrainer/internal/gamedata"
	"aimtrainer/internal/wshub"
	"context"
	"sync/atomic"
	"time"
)

// Room is one private training session: a game, its event fan-out and the
// sockets watching it.
type Room struct {
	Code        string
	Game        *gamedata.Game
	Broadcaster *broadcast.Broadcaster
	Hub         *wshub.Hub
	CreatedAt   time.Time
	OwnerID     string

	lastActive atomic.Int64
	cancel     context.CancelFunc
}

// Touch marks the room as in use so the stale sweep keeps it.
func (r *Room) Touch() {
	r.lastActive.Store(time.Now().UnixNano())
}

func (r *Room) LastActive() time.Time {
	return time.Unix(0, r.lastActive.Load())
}
