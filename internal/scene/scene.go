package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// LookScale converts raw mouse deltas into radians before sensitivity.
	LookScale      = 0.01
	PitchLimit     = math.Pi/2 - 0.01
	MinSensitivity = 0.1
	MaxSensitivity = 2.0

	NearPlane = 0.1
	FarPlane  = 1000.0
)

type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// RaySphere returns the nearest positive distance at which the ray enters (or,
// from inside, leaves) the sphere. The ray direction does not need to be normalised.
func RaySphere(ray Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	dirLen := ray.Dir.Len()
	if dirLen == 0 || radius <= 0 {
		return 0, false
	}
	dir := ray.Dir.Mul(1 / dirLen)
	oc := ray.Origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t <= 1e-9 {
		t = -b + sq
	}
	if t <= 1e-9 {
		return 0, false
	}
	return t, true
}

// Wall is the target backdrop. Its face sits at z = -Distance and it stands on
// the floor (y = 0), centred on x = 0.
type Wall struct {
	Width    float64
	Height   float64
	Distance float64
}

// Corners returns the face corners counter-clockwise from bottom-left.
func (w Wall) Corners() [4]mgl64.Vec3 {
	hw := w.Width / 2
	z := -w.Distance
	return [4]mgl64.Vec3{
		{-hw, 0, z},
		{hw, 0, z},
		{hw, w.Height, z},
		{-hw, w.Height, z},
	}
}

func ClampSensitivity(v float64) float64 {
	return math.Min(math.Max(v, MinSensitivity), MaxSensitivity)
}
