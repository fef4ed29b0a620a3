package volume

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewTexture3D(t *testing.T) {
	ctx := newTestContext(t)
	grid, err := NewVoxelGrid(4, 3, 2, mgl32.Vec3{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	tex, err := NewTexture3D(ctx, grid)
	if err != nil {
		t.Fatalf("NewTexture3D: %v", err)
	}
	if w, h, d := tex.Dimensions(); w != 4 || h != 3 || d != 2 {
		t.Errorf("Dimensions = %dx%dx%d, want 4x3x2", w, h, d)
	}
	if !tex.OnGPU() {
		t.Error("OnGPU() = false for an uploaded texture")
	}
	if tex.Grid() != grid {
		t.Error("Grid() should return the source grid")
	}
	if tex.RefCount() != 1 {
		t.Errorf("RefCount = %d, want 1", tex.RefCount())
	}

	tex.Release()
	if !tex.Released() || tex.OnGPU() {
		t.Error("texture should be destroyed by the last Release")
	}
}

func TestNewTexture3DErrors(t *testing.T) {
	ctx := newTestContext(t)
	tests := []struct {
		name    string
		ctx     *Context
		grid    *VoxelGrid
		wantErr error
	}{
		{"nil context", nil, &VoxelGrid{Width: 1, Height: 1, Depth: 1, Data: []float32{0}, Size: mgl32.Vec3{1, 1, 1}}, ErrNilContext},
		{"nil grid", ctx, nil, ErrEmptyGrid},
		{"zero dims", ctx, &VoxelGrid{Size: mgl32.Vec3{1, 1, 1}}, ErrInvalidGridDimensions},
		{"no data", ctx, &VoxelGrid{Width: 2, Height: 2, Depth: 2, Size: mgl32.Vec3{1, 1, 1}}, ErrEmptyGrid},
		{"short data", ctx, &VoxelGrid{Width: 2, Height: 2, Depth: 2, Data: make([]float32, 7), Size: mgl32.Vec3{1, 1, 1}}, ErrGridDataSize},
		{"bad size", ctx, &VoxelGrid{Width: 1, Height: 1, Depth: 1, Data: []float32{0}}, ErrInvalidGridSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTexture3D(tt.ctx, tt.grid)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTexture3DRefCount(t *testing.T) {
	tex := newHostTexture(t, 0.5)

	holders := 5
	for range holders {
		tex.Retain()
	}
	if tex.RefCount() != holders+1 {
		t.Fatalf("RefCount = %d, want %d", tex.RefCount(), holders+1)
	}

	var wg sync.WaitGroup
	for range holders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tex.Release()
		}()
	}
	wg.Wait()

	if tex.Released() {
		t.Fatal("released while the creator still holds a reference")
	}
	tex.Release()
	if !tex.Released() || tex.RefCount() != 0 {
		t.Errorf("RefCount = %d after last Release", tex.RefCount())
	}

	// Extra releases are ignored.
	tex.Release()
	if tex.RefCount() != 0 {
		t.Errorf("RefCount = %d after extra Release, want 0", tex.RefCount())
	}
}

func TestHostTexture3D(t *testing.T) {
	if _, err := NewHostTexture3D(nil); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("nil grid: error = %v", err)
	}
	tex := newHostTexture(t, 0)
	if tex.OnGPU() {
		t.Error("host texture reports GPU resources")
	}
}

func TestQuantize(t *testing.T) {
	got := quantize([]float32{-1, 0, 0.5, 1, 3})
	want := []byte{0, 0, 128, 255, 255}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("quantize[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
