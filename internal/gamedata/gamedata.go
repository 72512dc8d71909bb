package gamedata

import (
	"aimtrainer/internal/analytics"
	"aimtrainer/internal/config"
	"aimtrainer/internal/events"
	"aimtrainer/internal/scene"
	"aimtrainer/internal/session"
	"aimtrainer/internal/targets"
	"context"
	"log"
	"sync"
	"time"
)

type Config struct {
	RoundDuration int // seconds
	TargetCount   int
	Cooldown      time.Duration
	TickInterval  time.Duration
	WallWidth     float64
	WallHeight    float64
	EyeHeight     float64
	FOV           float64
}

func DefaultConfig() Config {
	return Config{
		RoundDuration: 60,
		TargetCount:   6,
		Cooldown:      time.Second,
		TickInterval:  time.Second,
		WallWidth:     30,
		WallHeight:    12,
		EyeHeight:     1.6,
		FOV:           75,
	}
}

// ConfigFrom maps the process configuration onto a game config.
func ConfigFrom(c config.Config) Config {
	cfg := DefaultConfig()
	cfg.RoundDuration = c.RoundDuration
	cfg.TargetCount = c.TargetCount
	cfg.Cooldown = c.RestartCooldown
	cfg.WallWidth = c.WallWidth
	cfg.WallHeight = c.WallHeight
	cfg.EyeHeight = c.EyeHeight
	cfg.FOV = c.FOV
	return cfg
}

// GameData is a point-in-time copy of everything a view needs to draw one
// frame. Targets are copies; Result is never mutated once set.
type GameData struct {
	Phase         session.Phase
	Score         int
	ShotsFired    int
	TimeRemaining int
	Accuracy      float64
	CanStart      bool
	Targets       []targets.Target
	Yaw           float64
	Pitch         float64
	Settings      config.Settings
	Wall          scene.Wall
	Result        *analytics.RoundSummary
}

// Observer sees every event synchronously, under the game lock, before it
// is offered to the bus. Unlike bus consumers it never misses one. It must not
// call back into the Game.
type Observer interface {
	Observe(ev events.Event)
}

// Game serialises every access to one session. The countdown ticker and the
// restart cooldown are the only timers, and both live here.
type Game struct {
	mu       sync.Mutex
	sess     *session.Session
	camera   *scene.Camera
	settings config.Settings
	result   *analytics.RoundSummary
	round    int
	cancel   context.CancelFunc
	cooldown *time.Timer
	observer Observer
	Events   *events.Bus
	Config   Config
}

// NewGame builds an idle game. A nil placer uses a time-seeded one.
func NewGame(bus *events.Bus, cfg Config, settings config.Settings, placer *targets.Placer) *Game {
	g := &Game{
		camera:   scene.NewCamera(cfg.EyeHeight, cfg.FOV),
		settings: settings,
		Events:   bus,
		Config:   cfg,
	}
	g.sess = session.New(session.Config{
		RoundDuration: cfg.RoundDuration,
		TargetCount:   cfg.TargetCount,
	}, g.params(), placer, nil)
	return g
}

func (g *Game) params() targets.Params {
	return targets.Params{
		WallWidth:    g.Config.WallWidth,
		WallHeight:   g.Config.WallHeight,
		WallDistance: g.settings.WallDistance,
		Radius:       g.settings.TargetRadius,
	}
}

// SetObserver installs o for every later event. A nil o removes it.
func (g *Game) SetObserver(o Observer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observer = o
}

// SetClock replaces the time source used for reaction times.
func (g *Game) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sess.SetClock(now)
}

// Start begins a round when the gate is open and launches its countdown.
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	rep, err := g.sess.Start()
	if err != nil {
		return err
	}
	g.round++
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	go g.runTicker(ctx, g.round)

	log.Printf("[Game] round %d started with %d/%d targets", g.round, rep.Placed, rep.Requested)
	g.publishLocked(events.KindPhase)
	g.reportPlacementLocked(rep)
	return nil
}

func (g *Game) runTicker(ctx context.Context, round int) {
	ticker := time.NewTicker(g.Config.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if g.tick(round) {
				return
			}
		}
	}
}

// tick applies one countdown step for the given round. It reports true when
// the ticker should stop.
func (g *Game) tick(round int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if round != g.round || g.sess.Phase != session.PhaseRunning {
		return true
	}
	if !g.sess.Tick() {
		g.publishLocked(events.KindTick)
		return false
	}
	g.endLocked()
	return true
}

func (g *Game) endLocked() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	summary := analytics.Summarize(*g.sess.LastResult)
	g.result = &summary
	log.Printf("[Game] round %d ended: score=%d accuracy=%.1f%% badges=%d",
		g.round, summary.Score, summary.Accuracy, len(summary.Badges))

	g.publishLocked(events.KindPhase)
	ev := g.eventLocked(events.KindResult)
	ev.Badges = analytics.BadgeIDs(summary.Badges)
	ev.Result = g.result
	g.emitLocked(ev)

	round := g.round
	g.cooldown = time.AfterFunc(g.Config.Cooldown, func() { g.finishCooldown(round) })
}

func (g *Game) finishCooldown(round int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if round != g.round {
		return
	}
	g.cooldown = nil
	if g.sess.FinishCooldown() {
		g.publishLocked(events.KindPhase)
	}
}

// Look rotates the camera by a relative mouse movement.
func (g *Game) Look(dx, dy float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.camera.Look(dx, dy, g.settings.Sensitivity)
}

// Shoot fires the centre ray of the current view.
func (g *Game) Shoot() session.ShotResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := g.sess.ResolveShot(g.camera.CenterRay())
	if !res.Accepted {
		return res
	}
	ev := g.eventLocked(events.KindShot)
	ev.Hit = res.Hit != nil
	g.emitLocked(ev)
	if res.Hit != nil {
		g.reportPlacementLocked(res.Report)
	}
	return res
}

// ApplySettings merges raw UI values into the live settings. Values that do
// not parse keep their previous setting. A changed wall distance or radius
// respawns the targets of a running round.
func (g *Game) ApplySettings(patch config.SettingsPatch) config.Settings {
	g.mu.Lock()
	defer g.mu.Unlock()

	prev := g.params()
	g.settings = g.settings.Apply(patch)
	g.publishLocked(events.KindSettings)

	if next := g.params(); next != prev {
		if rep, respawned := g.sess.SetParams(next); respawned {
			ev := g.eventLocked(events.KindRespawn)
			ev.Requested, ev.Placed = rep.Requested, rep.Placed
			g.emitLocked(ev)
			g.reportPlacementLocked(rep)
		}
	}
	return g.settings
}

// View returns the camera orientation without copying the target set.
func (g *Game) View() (yaw, pitch float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.camera.Yaw, g.camera.Pitch
}

func (g *Game) Settings() config.Settings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings
}

func (g *Game) Phase() session.Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess.Phase
}

func (g *Game) CanStart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess.CanStart()
}

// Result returns the summary of the last finished round, or nil before the
// first one ends.
func (g *Game) Result() *analytics.RoundSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

func (g *Game) Get() GameData {
	g.mu.Lock()
	defer g.mu.Unlock()

	live := g.sess.Live.GetList()
	ts := make([]targets.Target, 0, len(live))
	for _, t := range live {
		ts = append(ts, *t)
	}
	return GameData{
		Phase:         g.sess.Phase,
		Score:         g.sess.Score,
		ShotsFired:    g.sess.ShotsFired,
		TimeRemaining: g.sess.TimeRemaining,
		Accuracy:      g.sess.Accuracy(),
		CanStart:      g.sess.CanStart(),
		Targets:       ts,
		Yaw:           g.camera.Yaw,
		Pitch:         g.camera.Pitch,
		Settings:      g.settings,
		Wall: scene.Wall{
			Width:    g.Config.WallWidth,
			Height:   g.Config.WallHeight,
			Distance: g.settings.WallDistance,
		},
		Result: g.result,
	}
}

// Stop cancels the countdown and any pending cooldown. The game stays usable
// for reads but no timer touches it afterwards.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.round++
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	if g.cooldown != nil {
		g.cooldown.Stop()
		g.cooldown = nil
	}
}

func (g *Game) reportPlacementLocked(rep targets.Report) {
	if !rep.Exhausted() {
		return
	}
	log.Printf("[Game] warning: %v", rep.Err())
	ev := g.eventLocked(events.KindExhausted)
	ev.Requested, ev.Placed = rep.Requested, rep.Placed
	g.emitLocked(ev)
}

func (g *Game) eventLocked(kind events.Kind) events.Event {
	return events.Event{
		Kind:          kind,
		Phase:         string(g.sess.Phase),
		Score:         g.sess.Score,
		ShotsFired:    g.sess.ShotsFired,
		TimeRemaining: g.sess.TimeRemaining,
		Accuracy:      g.sess.Accuracy(),
	}
}

func (g *Game) publishLocked(kind events.Kind) {
	g.emitLocked(g.eventLocked(kind))
}

func (g *Game) emitLocked(ev events.Event) {
	if g.observer != nil {
		g.observer.Observe(ev)
	}
	g.Events.Publish(ev)
}
