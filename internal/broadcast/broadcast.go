package broadcast

import (
	"aimtrainer/internal/events"
	"context"
	"sync"
)

const subscriberBuffer = 16

type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan events.Event]bool
	closed  bool
}

// NewBroadcaster forwards every bus event to all subscribers until ctx is
// cancelled, then closes the subscriber channels.
func NewBroadcaster(ctx context.Context, bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan events.Event]bool),
	}
	go func() {
		defer b.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-bus.Changes:
				b.Broadcast(ev)
			}
		}
	}()
	return b
}

// Subscribe returns a channel of future events. After Close it returns an
// already closed channel.
func (b *Broadcaster) Subscribe() chan events.Event {
	ch := make(chan events.Event, subscriberBuffer)
	b.Mu.Lock()
	defer b.Mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.Clients[ch] = true
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan events.Event) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	if b.Clients[ch] {
		delete(b.Clients, ch)
		close(ch)
	}
}

func (b *Broadcaster) Broadcast(ev events.Event) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- ev:
		default:
			// skip clients with full data channels
		}
	}
}

func (b *Broadcaster) Close() {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.Clients {
		close(ch)
	}
	b.Clients = make(map[chan events.Event]bool)
}
