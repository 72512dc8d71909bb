package desktop

import (
	"aimtrainer/internal/analytics"
	"aimtrainer/internal/config"
	"aimtrainer/internal/gamedata"
	"aimtrainer/internal/scene"
	"aimtrainer/internal/session"
	"aimtrainer/internal/targets"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	sensitivityStep  = 0.1
	radiusStep       = 0.1
	wallDistanceStep = 5.0

	// statusFrames is how long a status line stays on screen.
	statusFrames = 120
)

var reticleColors = []string{"#ff3b30", "#34c759", "#0a84ff", "#ffd60a", "#ffffff"}

// action is one discrete key command.
type action int

const (
	actionNone action = iota
	actionSensitivityDown
	actionSensitivityUp
	actionRadiusDown
	actionRadiusUp
	actionDistanceDown
	actionDistanceUp
	actionReticleColor
	actionCopyResult
)

var keyActions = map[ebiten.Key]action{
	ebiten.KeyMinus:        actionSensitivityDown,
	ebiten.KeyEqual:        actionSensitivityUp,
	ebiten.KeyBracketLeft:  actionRadiusDown,
	ebiten.KeyBracketRight: actionRadiusUp,
	ebiten.KeyComma:        actionDistanceDown,
	ebiten.KeyPeriod:       actionDistanceUp,
	ebiten.KeyR:            actionReticleColor,
	ebiten.KeyC:            actionCopyResult,
}

// input is everything one frame of Update reads from the devices.
type input struct {
	start   bool
	click   bool
	release bool
	dx, dy  float64
	actions []action
}

// Game runs one local session on the ebiten update loop. Everything happens on
// that goroutine, so the session needs no lock.
type Game struct {
	width  int
	height int

	cfg      gamedata.Config
	sess     *session.Session
	camera   *scene.Camera
	settings config.Settings
	result   *analytics.RoundSummary
	audio    *audio

	tps            int
	frames         int
	cooldownFrames int

	captured  bool
	cursorSet bool
	cursorX   int
	cursorY   int
	prevKeys  map[ebiten.Key]bool

	status       string
	statusFrames int

	// copyText writes the result line somewhere the player can paste it.
	copyText func(string) error
}

func New(cfg config.Config) *Game {
	gcfg := gamedata.ConfigFrom(cfg)
	g := &Game{
		width:    screenWidth,
		height:   screenHeight,
		cfg:      gcfg,
		camera:   scene.NewCamera(gcfg.EyeHeight, gcfg.FOV),
		settings: cfg.Settings,
		tps:      ebiten.DefaultTPS,
		prevKeys: make(map[ebiten.Key]bool),
		copyText: clipboard.WriteAll,
	}
	g.sess = session.New(session.Config{
		RoundDuration: gcfg.RoundDuration,
		TargetCount:   gcfg.TargetCount,
	}, g.params(), nil, nil)
	return g
}

// Run opens the window and blocks until it is closed.
func Run() error {
	cfg := config.Load()
	g := New(cfg)
	g.audio = newAudio()

	ebiten.SetWindowTitle("Aim Trainer")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	log.Printf("[Desktop] starting: %ds rounds, %d targets", cfg.RoundDuration, cfg.TargetCount)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}

func (g *Game) params() targets.Params {
	return targets.Params{
		WallWidth:    g.cfg.WallWidth,
		WallHeight:   g.cfg.WallHeight,
		WallDistance: g.settings.WallDistance,
		Radius:       g.settings.TargetRadius,
	}
}

func (g *Game) Update() error {
	in := g.readInput()
	wasCaptured := g.captured
	g.step(in)
	if g.captured != wasCaptured {
		if g.captured {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
	}
	return nil
}

func (g *Game) readInput() input {
	var in input
	currentKeys := make(map[ebiten.Key]bool, len(keyActions)+2)
	for k, a := range keyActions {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		if currentKeys[k] && !g.prevKeys[k] {
			in.actions = append(in.actions, a)
		}
	}
	for _, k := range []ebiten.Key{ebiten.KeyEnter, ebiten.KeyEscape} {
		currentKeys[k] = ebiten.IsKeyPressed(k)
	}
	in.start = currentKeys[ebiten.KeyEnter] && !g.prevKeys[ebiten.KeyEnter]
	in.release = currentKeys[ebiten.KeyEscape] && !g.prevKeys[ebiten.KeyEscape]
	g.prevKeys = currentKeys

	in.click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	mx, my := ebiten.CursorPosition()
	if g.cursorSet && g.captured {
		in.dx = float64(mx - g.cursorX)
		in.dy = float64(my - g.cursorY)
	}
	g.cursorX, g.cursorY, g.cursorSet = mx, my, true
	return in
}

// step applies one frame: input first, then the countdown and cooldown.
func (g *Game) step(in input) {
	if in.release {
		g.captured = false
	}
	switch {
	case in.start:
		if g.sess.CanStart() {
			g.captured = true
		}
		g.start()
	case in.click && !g.captured:
		g.captured = true
		if g.sess.CanStart() {
			g.start()
		}
	case in.click:
		g.shoot()
	}
	if g.captured && (in.dx != 0 || in.dy != 0) {
		g.camera.Look(in.dx, in.dy, g.settings.Sensitivity)
	}
	for _, a := range in.actions {
		g.apply(a)
	}

	g.advance()
	if g.statusFrames > 0 {
		g.statusFrames--
	}
}

func (g *Game) start() {
	if g.sess.Phase == session.PhaseRunning {
		return
	}
	rep, err := g.sess.Start()
	if err != nil {
		g.setStatus("Wait for the cooldown")
		return
	}
	g.frames = 0
	log.Printf("[Desktop] round started with %d/%d targets", rep.Placed, rep.Requested)
	g.reportPlacement(rep)
}

func (g *Game) shoot() {
	res := g.sess.ResolveShot(g.camera.CenterRay())
	if !res.Accepted {
		return
	}
	if res.Hit == nil {
		g.audio.play(soundMiss)
		return
	}
	g.audio.play(soundHit)
	g.reportPlacement(res.Report)
}

// advance counts frames into whole seconds for the round clock, and counts
// down the restart cooldown after a round ends.
func (g *Game) advance() {
	switch g.sess.Phase {
	case session.PhaseRunning:
		g.frames++
		if g.frames < g.tps {
			return
		}
		g.frames = 0
		if g.sess.Tick() {
			g.end()
		}
	case session.PhaseEnded:
		if g.cooldownFrames > 0 {
			g.cooldownFrames--
		}
		if g.cooldownFrames == 0 {
			g.sess.FinishCooldown()
		}
	}
}

func (g *Game) end() {
	summary := analytics.Summarize(*g.sess.LastResult)
	g.result = &summary
	g.cooldownFrames = int(g.cfg.Cooldown.Seconds() * float64(g.tps))
	g.captured = false
	g.audio.play(soundRoundEnd)
	log.Printf("[Desktop] round ended: score=%d accuracy=%.1f%% badges=%d",
		summary.Score, summary.Accuracy, len(summary.Badges))
}

func (g *Game) apply(a action) {
	var patch config.SettingsPatch
	s := g.settings
	switch a {
	case actionSensitivityDown:
		patch.Sensitivity = formatFloat(s.Sensitivity - sensitivityStep)
	case actionSensitivityUp:
		patch.Sensitivity = formatFloat(s.Sensitivity + sensitivityStep)
	case actionRadiusDown:
		patch.TargetRadius = formatFloat(s.TargetRadius - radiusStep)
	case actionRadiusUp:
		patch.TargetRadius = formatFloat(s.TargetRadius + radiusStep)
	case actionDistanceDown:
		patch.WallDistance = formatFloat(s.WallDistance - wallDistanceStep)
	case actionDistanceUp:
		patch.WallDistance = formatFloat(s.WallDistance + wallDistanceStep)
	case actionReticleColor:
		patch.ReticleColor = nextReticleColor(s.ReticleColor)
	case actionCopyResult:
		g.copyResult()
		return
	default:
		return
	}
	g.applySettings(patch)
}

func (g *Game) applySettings(patch config.SettingsPatch) {
	prev := g.params()
	g.settings = g.settings.Apply(patch)
	g.setStatus(fmt.Sprintf("sensitivity %.1f  radius %.1f  distance %.0f",
		g.settings.Sensitivity, g.settings.TargetRadius, g.settings.WallDistance))

	if next := g.params(); next != prev {
		if rep, respawned := g.sess.SetParams(next); respawned {
			g.reportPlacement(rep)
		}
	}
}

func (g *Game) copyResult() {
	if g.result == nil {
		g.setStatus("No finished round to copy")
		return
	}
	if err := g.copyText(resultText(*g.result)); err != nil {
		log.Printf("[Desktop] clipboard: %v", err)
		g.setStatus("Clipboard unavailable")
		return
	}
	g.setStatus("Result copied")
}

func (g *Game) reportPlacement(rep targets.Report) {
	if !rep.Exhausted() {
		return
	}
	log.Printf("[Desktop] warning: %v", rep.Err())
	g.setStatus(fmt.Sprintf("Only %d of %d targets fit on the wall", rep.Placed, rep.Requested))
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusFrames = statusFrames
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// resultText is the one-line summary put on the clipboard.
func resultText(r analytics.RoundSummary) string {
	line := fmt.Sprintf("Aim Trainer: %d hits, %.1f%% accuracy", r.Score, r.Accuracy)
	if len(r.Badges) == 0 {
		return line
	}
	names := make([]string, 0, len(r.Badges))
	for _, b := range r.Badges {
		names = append(names, b.Name)
	}
	return line + " [" + strings.Join(names, ", ") + "]"
}

func nextReticleColor(current string) string {
	for i, c := range reticleColors {
		if c == current {
			return reticleColors[(i+1)%len(reticleColors)]
		}
	}
	return reticleColors[0]
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
