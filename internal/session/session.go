package session

import (
	"aimtrainer/internal/scene"
	"aimtrainer/internal/targets"
	"errors"
	"math"
	"time"
)

type Phase string

const (
	PhaseIdle    = Phase("idle")
	PhaseRunning = Phase("running")
	PhaseEnded   = Phase("ended")
)

var ErrCannotStart = errors.New("round cannot start yet")

type Config struct {
	RoundDuration int // seconds
	TargetCount   int
}

func DefaultConfig() Config {
	return Config{
		RoundDuration: 60,
		TargetCount:   6,
	}
}

// ShotResult is the outcome of one click. Accepted is false when no round is
// running; nothing is counted in that case.
type ShotResult struct {
	Accepted    bool
	Hit         *targets.Target
	Distance    float64
	Replacement *targets.Target
	Report      targets.Report
}

type Result struct {
	Score    int
	Accuracy float64
	Stats    RoundStats
}

type RoundStats struct {
	Score          int     `json:"score" msgpack:"score"`
	ShotsFired     int     `json:"shotsFired" msgpack:"shotsFired"`
	Accuracy       float64 `json:"accuracy" msgpack:"accuracy"`
	AvgReactionMs  float64 `json:"avgReactionMs" msgpack:"avgReactionMs"`
	BestReactionMs int     `json:"bestReactionMs" msgpack:"bestReactionMs"`
	ShotsPerSecond float64 `json:"shotsPerSecond" msgpack:"shotsPerSecond"`
}

// Session is the round state machine. It is not safe for concurrent use;
// callers serialise access (one goroutine or a lock).
type Session struct {
	Phase         Phase
	Score         int
	ShotsFired    int
	TimeRemaining int
	Live          *targets.Store
	LastResult    *Result

	cfg         Config
	params      targets.Params
	placer      *targets.Placer
	intersector targets.Intersector
	reactions   []time.Duration
	now         func() time.Time
}

func New(cfg Config, params targets.Params, placer *targets.Placer, intersector targets.Intersector) *Session {
	if placer == nil {
		placer = targets.NewPlacer(nil)
	}
	if intersector == nil {
		intersector = targets.RayCaster{}
	}
	return &Session{
		Phase:       PhaseIdle,
		Live:        targets.NewStore(),
		cfg:         cfg,
		params:      params,
		placer:      placer,
		intersector: intersector,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for reaction times.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
	s.Live.SetClock(now)
}

func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) Params() targets.Params {
	return s.params
}

func (s *Session) CanStart() bool {
	return s.Phase == PhaseIdle
}

// Start begins a new round and seeds the live set.
func (s *Session) Start() (targets.Report, error) {
	if !s.CanStart() {
		return targets.Report{}, ErrCannotStart
	}
	s.Phase = PhaseRunning
	s.Score = 0
	s.ShotsFired = 0
	s.TimeRemaining = s.cfg.RoundDuration
	s.reactions = s.reactions[:0]
	_, rep := s.Live.Respawn(s.placer, s.cfg.TargetCount, s.params)
	return rep, nil
}

// SetParams swaps the placement parameters. A running round gets a fresh set
// of targets built with them; the returned report covers that respawn.
func (s *Session) SetParams(params targets.Params) (targets.Report, bool) {
	s.params = params
	if s.Phase != PhaseRunning {
		return targets.Report{}, false
	}
	_, rep := s.Live.Respawn(s.placer, s.cfg.TargetCount, s.params)
	return rep, true
}

// ResolveShot counts a shot and tests the ray against the live set. A hit
// removes the nearest target, scores it and places one replacement.
func (s *Session) ResolveShot(ray scene.Ray) ShotResult {
	if s.Phase != PhaseRunning {
		return ShotResult{}
	}
	s.ShotsFired++
	res := ShotResult{Accepted: true}

	hit, dist, ok := s.intersector.Intersect(ray, s.Live.GetList())
	if !ok || !s.Live.Remove(hit.ID) {
		return res
	}
	s.Score++
	s.reactions = append(s.reactions, s.now().Sub(hit.SpawnedAt))

	res.Hit = hit
	res.Distance = dist
	added, rep := s.Live.Spawn(s.placer, 1, s.params)
	res.Report = rep
	if len(added) > 0 {
		res.Replacement = added[0]
	}
	return res
}

// Tick advances the countdown by one second and reports whether that ended
// the round.
func (s *Session) Tick() bool {
	if s.Phase != PhaseRunning {
		return false
	}
	s.TimeRemaining--
	if s.TimeRemaining > 0 {
		return false
	}
	s.TimeRemaining = 0
	s.end()
	return true
}

func (s *Session) end() {
	s.Phase = PhaseEnded
	s.Live.Clear()
	stats := s.stats()
	s.LastResult = &Result{
		Score:    stats.Score,
		Accuracy: stats.Accuracy,
		Stats:    stats,
	}
}

// FinishCooldown re-opens the start gate after a round has ended.
func (s *Session) FinishCooldown() bool {
	if s.Phase != PhaseEnded {
		return false
	}
	s.Phase = PhaseIdle
	return true
}

func (s *Session) Accuracy() float64 {
	return Accuracy(s.Score, s.ShotsFired)
}

func (s *Session) stats() RoundStats {
	st := RoundStats{
		Score:      s.Score,
		ShotsFired: s.ShotsFired,
		Accuracy:   s.Accuracy(),
	}
	if len(s.reactions) > 0 {
		var total time.Duration
		best := s.reactions[0]
		for _, r := range s.reactions {
			total += r
			if r < best {
				best = r
			}
		}
		st.AvgReactionMs = float64(total.Milliseconds()) / float64(len(s.reactions))
		st.BestReactionMs = int(best.Milliseconds())
	}
	if s.cfg.RoundDuration > 0 {
		st.ShotsPerSecond = float64(s.ShotsFired) / float64(s.cfg.RoundDuration)
	}
	return st
}

// Accuracy is hits over shots as a percentage rounded to one decimal place,
// or 0 before the first shot.
func Accuracy(score, shotsFired int) float64 {
	if shotsFired <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(shotsFired)*1000) / 10
}
