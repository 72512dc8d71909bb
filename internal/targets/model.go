package targets

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type Target struct {
	ID        int
	Position  mgl64.Vec3
	Radius    float64
	Color     string
	SpawnedAt time.Time
}

// Params are the placement inputs owned by the session settings.
type Params struct {
	WallWidth    float64
	WallHeight   float64
	WallDistance float64
	Radius       float64
}
