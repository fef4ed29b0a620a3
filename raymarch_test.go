package volume

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var allStyles = []RenderingStyle{
	MinimumIntensityProjection,
	MaximumIntensityProjection,
	AverageIntensityProjection,
}

// halfSampler is 1 for u < 0.5 and 0 elsewhere.
type halfSampler struct{}

func (halfSampler) Sample(u, _, _ float32) float32 {
	if u < 0.5 {
		return 1
	}
	return 0
}

// rampSampler grows linearly along w.
type rampSampler struct{}

func (rampSampler) Sample(_, _, w float32) float32 { return w }

func TestIntersectBox(t *testing.T) {
	size := mgl32.Vec3{2, 2, 2}
	tests := []struct {
		name             string
		ray              Ray
		wantHit          bool
		wantNear, wantEx float32
	}{
		{"head on", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, true, 4, 6},
		{"inside", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}}, true, -1, 1},
		{"miss parallel", Ray{mgl32.Vec3{2, 0, 5}, mgl32.Vec3{0, 0, -1}}, false, 0, 0},
		{"miss diagonal", Ray{mgl32.Vec3{0, 3, 5}, mgl32.Vec3{1, 0, 0}}, false, 0, 0},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, true, -6, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tNear, tExit, hit := IntersectBox(tt.ray, size)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if !hit {
				return
			}
			if !near(tNear, tt.wantNear, 1e-5) || !near(tExit, tt.wantEx, 1e-5) {
				t.Errorf("t = [%v, %v], want [%v, %v]", tNear, tExit, tt.wantNear, tt.wantEx)
			}
		})
	}
}

func TestProjectMissIsDiscarded(t *testing.T) {
	g := uniformGrid(t, 4, 1)
	r := Ray{Origin: mgl32.Vec3{5, 5, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	for _, s := range allStyles {
		p := Project(g, g.Size, r, s, DefaultStepCount)
		if p.Hit || p.Alpha() != 0 {
			t.Errorf("%v: miss produced %+v", s, p)
		}
	}
}

func TestProjectBoxBehindCamera(t *testing.T) {
	g := uniformGrid(t, 4, 1)
	r := Ray{Origin: mgl32.Vec3{0, 0, 3}, Direction: mgl32.Vec3{0, 0, 1}}
	for _, s := range allStyles {
		if p := Project(g, g.Size, r, s, DefaultStepCount); p.Hit {
			t.Errorf("%v: box behind origin should be discarded, got %+v", s, p)
		}
	}
}

func TestProjectUniformDensity(t *testing.T) {
	for _, d := range []float32{0, 0.25, 0.8, 1} {
		g := uniformGrid(t, 8, d)
		r := Ray{Origin: mgl32.Vec3{0.1, -0.2, 3}, Direction: mgl32.Vec3{0, 0, -1}}
		for _, s := range allStyles {
			p := Project(g, g.Size, r, s, DefaultStepCount)
			if !p.Hit || p.Alpha() != 1 {
				t.Fatalf("%v: expected hit, got %+v", s, p)
			}
			if !near(p.Value, d, 1e-4) {
				t.Errorf("density %v, %v: value = %v", d, s, p.Value)
			}
		}
	}
}

func TestProjectBinaryVolume(t *testing.T) {
	// The ray crosses the box along x, half through density 1, half through 0.
	r := Ray{Origin: mgl32.Vec3{-2, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	size := mgl32.Vec3{1, 1, 1}

	maxP := Project(halfSampler{}, size, r, MaximumIntensityProjection, 64)
	minP := Project(halfSampler{}, size, r, MinimumIntensityProjection, 64)
	avgP := Project(halfSampler{}, size, r, AverageIntensityProjection, 64)

	if maxP.Value != 1 {
		t.Errorf("max = %v, want 1", maxP.Value)
	}
	if minP.Value != 0 {
		t.Errorf("min = %v, want 0", minP.Value)
	}
	if avgP.Value <= minP.Value || avgP.Value >= maxP.Value {
		t.Errorf("avg = %v, want strictly between min and max", avgP.Value)
	}
	if !near(avgP.Value, 0.5, 1e-5) {
		t.Errorf("avg = %v, want 0.5", avgP.Value)
	}
}

func TestProjectAverageConverges(t *testing.T) {
	// The mean of w over the segment is 0.5; midpoint sampling of a linear
	// ramp is exact for any step count.
	r := Ray{Origin: mgl32.Vec3{0, 0, 4}, Direction: mgl32.Vec3{0, 0, -1}}
	size := mgl32.Vec3{1, 1, 1}
	for _, steps := range []int{1, 10, 200, 1000} {
		p := Project(rampSampler{}, size, r, AverageIntensityProjection, steps)
		if !near(p.Value, 0.5, 1e-4) {
			t.Errorf("steps %d: avg = %v, want 0.5", steps, p.Value)
		}
	}

	// Max over a ramp approaches the exit value as steps grow.
	prev := float32(0)
	for _, steps := range []int{2, 20, 200, 2000} {
		p := Project(rampSampler{}, size, r, MaximumIntensityProjection, steps)
		if p.Value < prev {
			t.Errorf("steps %d: max %v decreased from %v", steps, p.Value, prev)
		}
		prev = p.Value
	}
	if !near(prev, 1, 1e-3) {
		t.Errorf("max did not converge to 1: %v", prev)
	}
}

func TestProjectCameraInsideBox(t *testing.T) {
	g := uniformGrid(t, 4, 0.6)
	r := Ray{Origin: mgl32.Vec3{0, 0, 0.1}, Direction: mgl32.Vec3{0, 0, -1}}
	p := Project(g, g.Size, r, MaximumIntensityProjection, DefaultStepCount)
	if !p.Hit {
		t.Fatal("ray from inside the box should hit")
	}
	if p.TNear != 0 {
		t.Errorf("TNear = %v, want 0 for an origin inside the box", p.TNear)
	}
	if !near(p.TExit, 0.6, 1e-5) {
		t.Errorf("TExit = %v, want 0.6", p.TExit)
	}
	if !near(p.Value, 0.6, 1e-5) {
		t.Errorf("Value = %v, want 0.6", p.Value)
	}
}

func TestProjectNonPositiveSteps(t *testing.T) {
	g := uniformGrid(t, 2, 0.4)
	r := Ray{Origin: mgl32.Vec3{0, 0, 3}, Direction: mgl32.Vec3{0, 0, -1}}
	for _, steps := range []int{0, -5} {
		p := Project(g, g.Size, r, AverageIntensityProjection, steps)
		if !p.Hit || !near(p.Value, 0.4, 1e-5) {
			t.Errorf("steps %d: %+v", steps, p)
		}
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{1, 2, 3}, Direction: mgl32.Vec3{0, 0, -2}}
	if got := r.At(1.5); got != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("At(1.5) = %v", got)
	}
}

func TestGreyscaleTransfer(t *testing.T) {
	if got := GreyscaleTransfer(0.3); got != (mgl32.Vec3{0.3, 0.3, 0.3}) {
		t.Errorf("GreyscaleTransfer(0.3) = %v", got)
	}
}

func TestProjectOutOfRangeStyleAverages(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{-2, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	size := mgl32.Vec3{1, 1, 1}

	avg := Project(halfSampler{}, size, r, AverageIntensityProjection, 64)
	for _, s := range []RenderingStyle{3, 42} {
		p := Project(halfSampler{}, size, r, s, 64)
		if !p.Hit || p.Value != avg.Value {
			t.Errorf("style %d: value = %v, want average %v", uint32(s), p.Value, avg.Value)
		}
		if p.Value < 0 || p.Value > MaxDensity {
			t.Errorf("style %d: value %v out of range", uint32(s), p.Value)
		}
	}
}
