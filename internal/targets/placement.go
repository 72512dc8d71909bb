package targets

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	MaxAttempts   = 100
	SpacingMargin = 0.2
	// WallOffset keeps targets just in front of the wall face.
	WallOffset = 0.1
)

var ErrPlacementExhausted = errors.New("placement attempts exhausted")

// Report describes how a placement request went. Fewer placed than requested
// is not a failure of the round, only a sparser target set.
type Report struct {
	Requested int
	Placed    int
}

func (r Report) Exhausted() bool {
	return r.Placed < r.Requested
}

func (r Report) Err() error {
	if !r.Exhausted() {
		return nil
	}
	return fmt.Errorf("placed %d of %d targets: %w", r.Placed, r.Requested, ErrPlacementExhausted)
}

// Add merges two reports, e.g. an initial seed and a later refill.
func (r Report) Add(o Report) Report {
	return Report{Requested: r.Requested + o.Requested, Placed: r.Placed + o.Placed}
}

type Placer struct {
	rng      *rand.Rand
	Attempts int
}

// NewPlacer uses rng for all draws; a nil rng gets a time-seeded source.
func NewPlacer(rng *rand.Rand) *Placer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Placer{rng: rng, Attempts: MaxAttempts}
}

// MinSpacing is the smallest allowed centre-to-centre distance between targets.
func MinSpacing(radius float64) float64 {
	return 2*radius + SpacingMargin
}

// Bounds returns the sampling box for target centres. The horizontal band is
// half the wall width, centred; the vertical band runs from 30% to 80% of the
// wall height. Both are inset by the radius.
func Bounds(p Params) (xMin, xMax, yMin, yMax, z float64) {
	usable := p.WallWidth * 0.5
	xMin = -usable/2 + p.Radius
	xMax = usable/2 - p.Radius
	yMin = p.WallHeight*0.3 + p.Radius
	yMax = p.WallHeight*0.8 - p.Radius
	z = -p.WallDistance + WallOffset
	return
}

// Place draws up to count new positions by rejection sampling. Every accepted
// position keeps MinSpacing from the existing positions and from the others in
// this batch. A slot whose attempts run out is skipped.
func (p *Placer) Place(count int, params Params, existing []mgl64.Vec3) ([]mgl64.Vec3, Report) {
	rep := Report{Requested: count}
	if count <= 0 {
		rep.Requested = 0
		return nil, rep
	}

	xMin, xMax, yMin, yMax, z := Bounds(params)
	spacing := MinSpacing(params.Radius)

	taken := make([]mgl64.Vec3, len(existing), len(existing)+count)
	copy(taken, existing)
	placed := make([]mgl64.Vec3, 0, count)

	for i := 0; i < count; i++ {
		for attempt := 0; attempt < p.Attempts; attempt++ {
			candidate := mgl64.Vec3{
				p.rng.Float64()*(xMax-xMin) + xMin,
				p.rng.Float64()*(yMax-yMin) + yMin,
				z,
			}
			if spaced(candidate, taken, spacing) {
				taken = append(taken, candidate)
				placed = append(placed, candidate)
				break
			}
		}
	}
	rep.Placed = len(placed)
	return placed, rep
}

func spaced(candidate mgl64.Vec3, taken []mgl64.Vec3, spacing float64) bool {
	for _, pos := range taken {
		if candidate.Sub(pos).Len() < spacing {
			return false
		}
	}
	return true
}
