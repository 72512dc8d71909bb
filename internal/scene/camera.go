package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a first-person perspective camera with yaw/pitch orientation and no
// roll. FOV is the vertical field of view in degrees.
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
	FOV      float64
}

func NewCamera(eyeHeight, fov float64) *Camera {
	return &Camera{
		Position: mgl64.Vec3{0, eyeHeight, 0},
		FOV:      fov,
	}
}

// Look applies a relative mouse movement. Positive dx turns the view right and
// positive dy looks down; pitch stops just short of straight up or down.
func (c *Camera) Look(dx, dy, sensitivity float64) {
	sensitivity = ClampSensitivity(sensitivity)
	c.Yaw -= dx * sensitivity * LookScale
	c.Pitch -= dy * sensitivity * LookScale
	c.Pitch = math.Max(-PitchLimit, math.Min(PitchLimit, c.Pitch))
}

func (c *Camera) Reset() {
	c.Yaw = 0
	c.Pitch = 0
}

// Forward is the unit viewing direction: pitch about X first, then yaw about Y,
// applied to the default -Z look direction.
func (c *Camera) Forward() mgl64.Vec3 {
	rot := mgl64.Rotate3DY(c.Yaw).Mul3(mgl64.Rotate3DX(c.Pitch))
	return rot.Mul3x1(mgl64.Vec3{0, 0, -1}).Normalize()
}

// CenterRay is the ray through the exact centre of the viewport. The reticle
// never follows the cursor, so every shot uses this ray.
func (c *Camera) CenterRay() Ray {
	return Ray{Origin: c.Position, Dir: c.Forward()}
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl64.Vec3{0, 1, 0})
}

func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, NearPlane, FarPlane)
}

// FocalLength returns the distance, in pixels, from the eye to a screen of the
// given height for this camera's field of view.
func (c *Camera) FocalLength(screenHeight float64) float64 {
	return (screenHeight / 2) / math.Tan(mgl64.DegToRad(c.FOV)/2)
}
