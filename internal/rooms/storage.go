package rooms

import (
	"aimtrainer/internal/broadcast"
	"aimtrainer/internal/config"
	"aimtrainer/internal/events"
	"aimtrainer/internal/gamedata"
	"aimtrainer/internal/metrics"
	"aimtrainer/internal/wshub"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var ErrRoomNotFound = errors.New("room not found")

type Options struct {
	Game          gamedata.Config
	Settings      config.Settings
	TTL           time.Duration
	SweepInterval time.Duration
	Metrics       *metrics.Metrics
}

func DefaultOptions() Options {
	return Options{
		Game:          gamedata.DefaultConfig(),
		Settings:      config.DefaultSettings(),
		TTL:           time.Hour,
		SweepInterval: 5 * time.Minute,
	}
}

type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
	opts  Options
}

// NewStore starts the stale-room sweep, which runs until ctx is done. A zero
// TTL or sweep interval takes the default.
func NewStore(ctx context.Context, opts Options) *Store {
	defaults := DefaultOptions()
	if opts.TTL <= 0 {
		opts.TTL = defaults.TTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaults.SweepInterval
	}
	s := &Store{
		rooms: make(map[string]*Room),
		opts:  opts,
	}
	go s.sweepStale(ctx)
	return s
}

func (s *Store) Create(ownerID string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}

		ctx, cancel := context.WithCancel(context.Background())
		bus := events.NewBus()
		room := &Room{
			Code:        code,
			Game:        gamedata.NewGame(bus, s.opts.Game, s.opts.Settings, nil),
			Broadcaster: broadcast.NewBroadcaster(ctx, bus),
			Hub:         wshub.NewHub(),
			CreatedAt:   time.Now(),
			OwnerID:     ownerID,
			cancel:      cancel,
		}
		room.Game.SetObserver(roomObserver{room: room, metrics: s.opts.Metrics})
		room.Touch()
		go s.bridge(room, room.Broadcaster.Subscribe())

		s.rooms[code] = room
		s.opts.Metrics.RoomOpened()
		log.Printf("[Rooms] created %s for %s", code, ownerID)
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after 10 attempts")
}

// roomObserver runs inside the game lock for every event, so counters and
// the round result never depend on the lossy bus.
type roomObserver struct {
	room    *Room
	metrics *metrics.Metrics
}

func (o roomObserver) Observe(ev events.Event) {
	o.metrics.Observe(ev)
	if ev.Kind == events.KindResult && ev.Result != nil {
		o.room.Hub.Broadcast(wshub.ResultMessage(ev.Result))
	}
}

// bridge turns game events into state pushes. Dropped events only delay the
// next snapshot. It ends when the room's broadcaster closes.
func (s *Store) bridge(room *Room, ch chan events.Event) {
	for ev := range ch {
		switch ev.Kind {
		case events.KindSettings:
			room.Hub.Broadcast(wshub.SettingsMessage(room.Game.Settings()))
		}
		room.Hub.Broadcast(wshub.StateMessage(room.Game.Get()))
	}
}

func (s *Store) Get(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := NormalizeCode(code)
	if !ok {
		return nil
	}
	return s.rooms[code]
}

// Delete removes the room, stops its timers and disconnects its sockets.
func (s *Store) Delete(code string) error {
	key, _ := NormalizeCode(code)
	s.mu.Lock()
	room, ok := s.rooms[key]
	delete(s.rooms, key)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("deleting %s: %w", code, ErrRoomNotFound)
	}
	s.teardown(room)
	return nil
}

func (s *Store) teardown(room *Room) {
	room.Game.Stop()
	room.cancel()
	room.Hub.CloseAll("room closed")
	s.opts.Metrics.RoomClosed()
	log.Printf("[Rooms] closed %s", room.Code)
}

func (s *Store) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

func (s *Store) sweepStale(ctx context.Context) {
	ticker := time.NewTicker(s.opts.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// Sweep closes every room idle for longer than the TTL and reports how many
// it closed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	var stale []*Room
	for code, room := range s.rooms {
		if now.Sub(room.LastActive()) > s.opts.TTL {
			stale = append(stale, room)
			delete(s.rooms, code)
		}
	}
	s.mu.Unlock()

	for _, room := range stale {
		s.teardown(room)
	}
	return len(stale)
}
