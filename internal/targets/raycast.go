package targets

import "aimtrainer/internal/scene"

// Intersector finds the target a ray hits first.
type Intersector interface {
	Intersect(ray scene.Ray, candidates []*Target) (*Target, float64, bool)
}

// RayCaster tests every candidate as a sphere. The smallest positive distance
// wins; on equal distances the earlier candidate is kept.
type RayCaster struct{}

func (RayCaster) Intersect(ray scene.Ray, candidates []*Target) (*Target, float64, bool) {
	var (
		nearest *Target
		best    float64
	)
	for _, t := range candidates {
		d, ok := scene.RaySphere(ray, t.Position, t.Radius)
		if !ok {
			continue
		}
		if nearest == nil || d < best {
			nearest, best = t, d
		}
	}
	return nearest, best, nearest != nil
}
