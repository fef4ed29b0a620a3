package volume

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewVoxelGrid(t *testing.T) {
	g, err := NewVoxelGrid(3, 4, 5, mgl32.Vec3{1, 2, 3})
	if err != nil {
		t.Fatalf("NewVoxelGrid: %v", err)
	}
	if len(g.Data) != 60 {
		t.Errorf("len(Data) = %d, want 60", len(g.Data))
	}
	for i, d := range g.Data {
		if d != 0 {
			t.Fatalf("Data[%d] = %v, want 0", i, d)
		}
	}
}

func TestNewVoxelGridErrors(t *testing.T) {
	tests := []struct {
		name    string
		w, h, d int
		size    mgl32.Vec3
		wantErr error
	}{
		{"zero width", 0, 1, 1, mgl32.Vec3{1, 1, 1}, ErrInvalidGridDimensions},
		{"negative depth", 1, 1, -2, mgl32.Vec3{1, 1, 1}, ErrInvalidGridDimensions},
		{"zero size", 2, 2, 2, mgl32.Vec3{1, 0, 1}, ErrInvalidGridSize},
		{"negative size", 2, 2, 2, mgl32.Vec3{1, 1, -1}, ErrInvalidGridSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVoxelGrid(tt.w, tt.h, tt.d, tt.size)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVoxelGridValidate(t *testing.T) {
	tests := []struct {
		name    string
		grid    VoxelGrid
		wantErr error
	}{
		{"ok", VoxelGrid{Width: 1, Height: 1, Depth: 2, Data: []float32{0, 1}, Size: mgl32.Vec3{1, 1, 1}}, nil},
		{"empty", VoxelGrid{Width: 1, Height: 1, Depth: 1, Size: mgl32.Vec3{1, 1, 1}}, ErrEmptyGrid},
		{"short", VoxelGrid{Width: 2, Height: 2, Depth: 2, Data: []float32{1, 2, 3}, Size: mgl32.Vec3{1, 1, 1}}, ErrGridDataSize},
		{"long", VoxelGrid{Width: 1, Height: 1, Depth: 1, Data: []float32{1, 2}, Size: mgl32.Vec3{1, 1, 1}}, ErrGridDataSize},
		{"zero dims", VoxelGrid{Data: []float32{1}, Size: mgl32.Vec3{1, 1, 1}}, ErrInvalidGridDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVoxelGridFromFuncCoordinates(t *testing.T) {
	g, err := NewVoxelGridFromFunc(2, 2, 2, mgl32.Vec3{1, 1, 1}, func(x, y, z float32) float32 {
		return x + 10*y + 100*z
	})
	if err != nil {
		t.Fatal(err)
	}
	// Voxel centers of a 2-wide axis are 0.25 and 0.75.
	if got, want := g.At(0, 0, 0), float32(0.25+2.5+25); !near(got, want, 1e-5) {
		t.Errorf("At(0,0,0) = %v, want %v", got, want)
	}
	if got, want := g.At(1, 0, 1), float32(0.75+2.5+75); !near(got, want, 1e-5) {
		t.Errorf("At(1,0,1) = %v, want %v", got, want)
	}
}

func TestVoxelGridSetAt(t *testing.T) {
	g, _ := NewVoxelGrid(3, 3, 3, mgl32.Vec3{1, 1, 1})
	g.Set(2, 1, 0, 0.5)
	if g.At(2, 1, 0) != 0.5 {
		t.Errorf("At after Set = %v, want 0.5", g.At(2, 1, 0))
	}
	// x varies fastest.
	if g.Data[1*3+2] != 0.5 {
		t.Error("Set wrote the wrong index")
	}
}

func TestVoxelGridSample(t *testing.T) {
	g, _ := NewVoxelGrid(2, 1, 1, mgl32.Vec3{1, 1, 1})
	g.Set(0, 0, 0, 0)
	g.Set(1, 0, 0, 1)

	tests := []struct {
		u    float32
		want float32
	}{
		{-1, 0},   // clamped to edge
		{0, 0},    // before first center
		{0.25, 0}, // first center
		{0.5, 0.5},
		{0.75, 1}, // second center
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := g.Sample(tt.u, 0.5, 0.5); !near(got, tt.want, 1e-6) {
			t.Errorf("Sample(%v) = %v, want %v", tt.u, got, tt.want)
		}
	}
}

func TestVoxelGridMinMax(t *testing.T) {
	g := &VoxelGrid{Width: 4, Height: 1, Depth: 1, Data: []float32{0.3, -1, 2, 0.5}, Size: mgl32.Vec3{1, 1, 1}}
	lo, hi := g.MinMax()
	if lo != -1 || hi != 2 {
		t.Errorf("MinMax() = %v, %v, want -1, 2", lo, hi)
	}
}

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}
