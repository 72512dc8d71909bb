package events

import (
	"aimtrainer/internal/analytics"
	"log"
)

type Kind string

const (
	KindPhase     = Kind("phase")
	KindTick      = Kind("tick")
	KindShot      = Kind("shot")
	KindRespawn   = Kind("respawn")
	KindExhausted = Kind("exhausted")
	KindResult    = Kind("result")
	KindSettings  = Kind("settings")
)

// Event is a snapshot of the round counters taken at the moment something
// changed. Hit is only meaningful for KindShot; Requested and Placed only for
// KindRespawn and KindExhausted; Badges and Result only for KindResult.
type Event struct {
	Kind          Kind     `json:"kind"`
	Phase         string   `json:"phase"`
	Score         int      `json:"score"`
	ShotsFired    int      `json:"shotsFired"`
	TimeRemaining int      `json:"timeRemaining"`
	Accuracy      float64  `json:"accuracy"`
	Hit           bool     `json:"hit,omitempty"`
	Requested     int      `json:"requested,omitempty"`
	Placed        int      `json:"placed,omitempty"`
	Badges        []string `json:"badges,omitempty"`

	Result *analytics.RoundSummary `json:"-"`
}

const busBuffer = 64

type Bus struct {
	Changes chan Event
}

func NewBus() *Bus {
	return &Bus{
		Changes: make(chan Event, busBuffer),
	}
}

// Publish queues ev without blocking. When the buffer is full the event is
// dropped; consumers re-read full state from the game on the next event.
func (b *Bus) Publish(ev Event) bool {
	select {
	case b.Changes <- ev:
		return true
	default:
		log.Printf("[Events] bus full, dropped %s event", ev.Kind)
		return false
	}
}
