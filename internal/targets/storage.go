package targets

import (
	"aimtrainer/internal/utility"
	"sort"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Store is the live target set.
type Store struct {
	mu      sync.Mutex
	targets map[int]*Target
	nextID  int
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		targets: make(map[int]*Target),
		nextID:  1,
		now:     time.Now,
	}
}

// SetClock replaces the spawn-time source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Add(pos mgl64.Vec3, radius float64) *Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(pos, radius)
}

func (s *Store) addLocked(pos mgl64.Vec3, radius float64) *Target {
	id := s.nextID
	s.nextID++
	target := &Target{
		ID:        id,
		Position:  pos,
		Radius:    radius,
		Color:     utility.RandomColorHex(),
		SpawnedAt: s.now(),
	}
	s.targets[id] = target
	return target
}

func (s *Store) Get(id int) *Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targets[id]
}

// Remove deletes a live target and reports whether it was present.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.targets[id]; !ok {
		return false
	}
	delete(s.targets, id)
	return true
}

// GetList returns the live targets ordered by ID.
func (s *Store) GetList() []*Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

func (s *Store) listLocked() []*Target {
	targetList := make([]*Target, 0, len(s.targets))
	for _, t := range s.targets {
		targetList = append(targetList, t)
	}
	sort.Slice(targetList, func(i, j int) bool { return targetList[i].ID < targetList[j].ID })
	return targetList
}

func (s *Store) Positions() []mgl64.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionsLocked()
}

func (s *Store) positionsLocked() []mgl64.Vec3 {
	positions := make([]mgl64.Vec3, 0, len(s.targets))
	for _, t := range s.listLocked() {
		positions = append(positions, t.Position)
	}
	return positions
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.targets)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = make(map[int]*Target)
}

// Spawn places count more targets around the ones already live.
func (s *Store) Spawn(p *Placer, count int, params Params) ([]*Target, Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	positions, rep := p.Place(count, params, s.positionsLocked())
	added := make([]*Target, 0, len(positions))
	for _, pos := range positions {
		added = append(added, s.addLocked(pos, params.Radius))
	}
	return added, rep
}

// Respawn replaces the whole live set with count fresh targets.
func (s *Store) Respawn(p *Placer, count int, params Params) ([]*Target, Report) {
	s.Clear()
	return s.Spawn(p, count, params)
}
