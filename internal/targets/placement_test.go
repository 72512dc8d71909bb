package targets

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// roomyParams has space for far more than six unit targets.
func roomyParams() Params {
	return Params{WallWidth: 30, WallHeight: 12, WallDistance: 30, Radius: 1}
}

func assertSpaced(t *testing.T, positions []mgl64.Vec3, radius float64) {
	t.Helper()
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if d := positions[i].Sub(positions[j]).Len(); d < MinSpacing(radius) {
				t.Errorf("targets %d and %d are %.3f apart, want >= %.3f", i, j, d, MinSpacing(radius))
			}
		}
	}
}

func TestPlace_SixUnitTargets(t *testing.T) {
	p := NewPlacer(rand.New(rand.NewSource(1)))
	params := roomyParams()

	positions, rep := p.Place(6, params, nil)

	if len(positions) != 6 {
		t.Fatalf("placed %d targets, want 6", len(positions))
	}
	if rep.Exhausted() || rep.Err() != nil {
		t.Errorf("report = %+v, err = %v, want no exhaustion", rep, rep.Err())
	}
	assertSpaced(t, positions, params.Radius)
}

func TestPlace_WithinBounds(t *testing.T) {
	p := NewPlacer(rand.New(rand.NewSource(2)))
	params := roomyParams()
	xMin, xMax, yMin, yMax, z := Bounds(params)

	for round := 0; round < 50; round++ {
		positions, _ := p.Place(6, params, nil)
		for _, pos := range positions {
			if pos.X() < xMin || pos.X() > xMax {
				t.Errorf("x = %v outside [%v, %v]", pos.X(), xMin, xMax)
			}
			if pos.Y() < yMin || pos.Y() > yMax {
				t.Errorf("y = %v outside [%v, %v]", pos.Y(), yMin, yMax)
			}
			if pos.Z() != z {
				t.Errorf("z = %v, want %v", pos.Z(), z)
			}
		}
	}
}

func TestBounds_MatchesWallFace(t *testing.T) {
	xMin, xMax, yMin, yMax, z := Bounds(Params{WallWidth: 6, WallHeight: 4, WallDistance: 30, Radius: 0.2})
	want := []float64{-1.3, 1.3, 1.4, 3.0, -29.9}
	got := []float64{xMin, xMax, yMin, yMax, z}
	for i := range want {
		if d := got[i] - want[i]; d > 1e-9 || d < -1e-9 {
			t.Errorf("Bounds()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlace_SpacingInvariantAcrossSeeds(t *testing.T) {
	params := Params{WallWidth: 12, WallHeight: 8, WallDistance: 20, Radius: 0.6}
	for seed := int64(0); seed < 40; seed++ {
		p := NewPlacer(rand.New(rand.NewSource(seed)))
		positions, rep := p.Place(10, params, nil)
		if rep.Placed != len(positions) {
			t.Errorf("seed %d: report placed %d, got %d positions", seed, rep.Placed, len(positions))
		}
		assertSpaced(t, positions, params.Radius)
	}
}

func TestPlace_RespectsExisting(t *testing.T) {
	p := NewPlacer(rand.New(rand.NewSource(4)))
	params := roomyParams()
	existing, _ := p.Place(4, params, nil)

	more, _ := p.Place(4, params, existing)

	assertSpaced(t, append(append([]mgl64.Vec3{}, existing...), more...), params.Radius)
}

func TestPlace_ExhaustedIsReportedNotFatal(t *testing.T) {
	// On a 6x4 wall the x band is one unit wide and the y band collapses to a
	// line, so no two unit targets can ever be 2.2 apart.
	p := NewPlacer(rand.New(rand.NewSource(5)))
	params := Params{WallWidth: 6, WallHeight: 4, WallDistance: 30, Radius: 1}

	positions, rep := p.Place(7, params, nil)

	if len(positions) != 1 {
		t.Errorf("placed %d targets, want 1", len(positions))
	}
	if rep.Requested != 7 || rep.Placed != 1 {
		t.Errorf("report = %+v, want {7 1}", rep)
	}
	if !errors.Is(rep.Err(), ErrPlacementExhausted) {
		t.Errorf("Err() = %v, want ErrPlacementExhausted", rep.Err())
	}
}

func TestPlace_FullWallLeavesNoRoom(t *testing.T) {
	p := NewPlacer(rand.New(rand.NewSource(6)))
	params := Params{WallWidth: 6, WallHeight: 4, WallDistance: 30, Radius: 1}
	existing := []mgl64.Vec3{{0, 2.2, -29.9}}

	positions, rep := p.Place(1, params, existing)

	if len(positions) != 0 || rep.Placed != 0 {
		t.Errorf("placed %d, want 0 when no slot remains", len(positions))
	}
}

func TestPlace_ZeroCount(t *testing.T) {
	p := NewPlacer(nil)
	positions, rep := p.Place(0, roomyParams(), nil)
	if len(positions) != 0 || rep.Exhausted() {
		t.Errorf("Place(0) = %v, %+v", positions, rep)
	}
}

func TestReport_Add(t *testing.T) {
	r := Report{Requested: 6, Placed: 6}.Add(Report{Requested: 1, Placed: 0})
	if r.Requested != 7 || r.Placed != 6 || !r.Exhausted() {
		t.Errorf("Add() = %+v", r)
	}
}
