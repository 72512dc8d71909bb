package desktop

import (
	"aimtrainer/internal/scene"
	"aimtrainer/internal/session"
	"aimtrainer/internal/utility"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	skyColor     = color.RGBA{R: 135, G: 190, B: 235, A: 255}
	groundColor  = color.RGBA{R: 58, G: 74, B: 58, A: 255}
	wallColor    = color.RGBA{R: 220, G: 220, B: 225, A: 255}
	wallEdge     = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	hudColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	panelColor   = color.RGBA{R: 10, G: 12, B: 18, A: 210}
	panelBorder  = color.RGBA{R: 255, G: 255, B: 255, A: 90}
	dimColor     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	fallbackTint = color.RGBA{R: 255, G: 59, B: 48, A: 255}
)

// projector maps world points onto the window for one camera pose.
type projector struct {
	view   mgl64.Mat4
	proj   mgl64.Mat4
	focal  float64
	width  int
	height int
}

func newProjector(cam *scene.Camera, width, height int) projector {
	return projector{
		view:   cam.View(),
		proj:   cam.Projection(float64(width) / float64(height)),
		focal:  cam.FocalLength(float64(height)),
		width:  width,
		height: height,
	}
}

// eye moves a world point into camera space, where the view looks down -Z.
func (p projector) eye(v mgl64.Vec3) mgl64.Vec3 {
	return p.view.Mul4x1(v.Vec4(1)).Vec3()
}

// screen maps a camera-space point in front of the near plane to pixels.
func (p projector) screen(e mgl64.Vec3) (float32, float32) {
	d := -e.Z()
	x := float64(p.width)/2 + p.focal*e.X()/d
	y := float64(p.height)/2 - p.focal*e.Y()/d
	return float32(x), float32(y)
}

// point projects a world point. ok is false when it lies behind the near plane.
func (p projector) point(v mgl64.Vec3) (x, y float32, depth float64, ok bool) {
	e := p.eye(v)
	depth = -e.Z()
	if depth <= scene.NearPlane {
		return 0, 0, 0, false
	}
	win := mgl64.Project(v, p.view, p.proj, 0, 0, p.width, p.height)
	return float32(win.X()), float32(float64(p.height) - win.Y()), depth, true
}

// horizon is the screen row where the ground plane meets the sky.
func (p projector) horizon(pitch float64) float32 {
	y := float64(p.height)/2 + p.focal*math.Tan(pitch)
	return float32(math.Max(0, math.Min(float64(p.height), y)))
}

// clipNear cuts a camera-space polygon against the near plane.
func clipNear(poly []mgl64.Vec3) []mgl64.Vec3 {
	z := -scene.NearPlane
	out := make([]mgl64.Vec3, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn, prevIn := cur.Z() <= z, prev.Z() <= z
		if curIn != prevIn {
			t := (z - prev.Z()) / (cur.Z() - prev.Z())
			out = append(out, prev.Add(cur.Sub(prev).Mul(t)))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

func (g *Game) Draw(screen *ebiten.Image) {
	p := newProjector(g.camera, g.width, g.height)
	w, h := float32(g.width), float32(g.height)

	horizon := p.horizon(g.camera.Pitch)
	vector.FillRect(screen, 0, 0, w, horizon, skyColor, false)
	vector.FillRect(screen, 0, horizon, w, h-horizon, groundColor, false)

	g.drawWall(screen, p)
	g.drawTargets(screen, p)
	g.drawReticle(screen)
	g.drawHUD(screen)
	if g.sess.Phase != session.PhaseRunning {
		g.drawPanel(screen)
	}
}

func (g *Game) drawWall(screen *ebiten.Image, p projector) {
	wall := scene.Wall{Width: g.cfg.WallWidth, Height: g.cfg.WallHeight, Distance: g.settings.WallDistance}
	corners := wall.Corners()
	eye := make([]mgl64.Vec3, 0, len(corners))
	for _, c := range corners {
		eye = append(eye, p.eye(c))
	}
	poly := clipNear(eye)
	if len(poly) < 3 {
		return
	}

	var path vector.Path
	pts := make([][2]float32, 0, len(poly))
	for i, e := range poly {
		x, y := p.screen(e)
		pts = append(pts, [2]float32{x, y})
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(wallColor)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)

	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 2, wallEdge, true)
	}
}

type projectedTarget struct {
	x, y   float32
	r      float32
	depth  float64
	colour color.RGBA
}

func (g *Game) drawTargets(screen *ebiten.Image, p projector) {
	live := g.sess.Live.GetList()
	visible := make([]projectedTarget, 0, len(live))
	for _, t := range live {
		x, y, depth, ok := p.point(t.Position)
		if !ok {
			continue
		}
		c, ok := utility.ParseColorHex(t.Color)
		if !ok {
			c = fallbackTint
		}
		visible = append(visible, projectedTarget{
			x:      x,
			y:      y,
			r:      float32(t.Radius * p.focal / depth),
			depth:  depth,
			colour: c,
		})
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].depth > visible[j].depth })

	for _, t := range visible {
		vector.FillCircle(screen, t.x, t.y, t.r, t.colour, true)
		hl := color.RGBA{R: 255, G: 255, B: 255, A: 70}
		vector.FillCircle(screen, t.x-t.r*0.3, t.y-t.r*0.3, t.r*0.35, hl, true)
	}
}

func (g *Game) drawReticle(screen *ebiten.Image) {
	c, ok := utility.ParseColorHex(g.settings.ReticleColor)
	if !ok {
		c = fallbackTint
	}
	cx, cy := float32(g.width)/2, float32(g.height)/2
	size := float32(g.settings.ReticleSize)
	vector.StrokeLine(screen, cx-size, cy, cx+size, cy, 2, c, true)
	vector.StrokeLine(screen, cx, cy-size, cx, cy+size, 2, c, true)
	vector.FillCircle(screen, cx, cy, 1.5, c, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	vector.FillRect(screen, 8, 8, 230, 64, panelColor, false)
	drawText(screen, fmt.Sprintf("Score     %d", g.sess.Score), 18, 26, hudColor)
	drawText(screen, fmt.Sprintf("Time      %ds", g.sess.TimeRemaining), 18, 44, hudColor)
	drawText(screen, fmt.Sprintf("Accuracy  %.1f%%", g.sess.Accuracy()), 18, 62, hudColor)

	help := "Enter/click: start  Esc: release  -/= sens  [/] size  ,/. distance  R reticle  C copy"
	drawText(screen, help, 10, g.height-10, dimColor)

	if g.statusFrames > 0 && g.status != "" {
		drawText(screen, g.status, g.width/2-len(g.status)*7/2, g.height-40, hudColor)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	const pw, ph = 360, 220
	px := float32(g.width-pw) / 2
	py := float32(g.height-ph) / 2
	vector.FillRect(screen, px, py, pw, ph, panelColor, false)
	vector.StrokeRect(screen, px, py, pw, ph, 1, panelBorder, false)

	x, y := int(px)+20, int(py)+30
	if g.result == nil {
		drawText(screen, "AIM TRAINER", x, y, hudColor)
		drawText(screen, fmt.Sprintf("Hit as many targets as you can in %ds.", g.cfg.RoundDuration), x, y+30, dimColor)
		drawText(screen, "Press Enter or click to start.", x, y+50, dimColor)
		return
	}

	drawText(screen, "ROUND OVER", x, y, hudColor)
	drawText(screen, fmt.Sprintf("Final score  %d", g.result.Score), x, y+26, hudColor)
	drawText(screen, fmt.Sprintf("Accuracy     %.1f%%", g.result.Accuracy), x, y+44, hudColor)
	line := y + 72
	for _, b := range g.result.Badges {
		drawText(screen, "* "+b.Name+": "+b.Description, x, line, dimColor)
		line += 18
	}
	if g.sess.CanStart() {
		drawText(screen, "Enter to play again, C to copy", x, int(py)+ph-16, hudColor)
	}
}

func drawText(img *ebiten.Image, s string, x, y int, col color.Color) {
	text.Draw(img, s, basicfont.Face7x13, x, y, col)
}
