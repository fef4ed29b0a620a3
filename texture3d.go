package volume

import (
	"fmt"
	"sync/atomic"

	"github.com/chewxy/math32"

	"github.com/gogpu/volume/internal/gpu"
)

// Texture3D is a shared handle to a 3-D density texture.
//
// The handle is reference counted. The creator holds the first reference;
// every additional holder calls Retain and every holder calls Release when
// done. GPU resources are destroyed as soon as the last reference is
// released, independent of garbage collection.
//
// A Texture3D created with NewHostTexture3D has no GPU resources and is
// only usable by the software renderer.
type Texture3D struct {
	refs  atomic.Int32
	label string
	gpu   *gpu.VolumeTexture
	grid  *VoxelGrid
}

// NewTexture3D validates grid and uploads its densities into a newly
// allocated R8Unorm 3-D texture. The returned handle holds one reference.
func NewTexture3D(ctx *Context, grid *VoxelGrid) (*Texture3D, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if grid == nil {
		return nil, ErrEmptyGrid
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	label := fmt.Sprintf("volume_%dx%dx%d", grid.Width, grid.Height, grid.Depth)
	vt, err := gpu.NewVolumeTexture(ctx.device, ctx.queue, label,
		uint32(grid.Width), uint32(grid.Height), uint32(grid.Depth), //nolint:gosec // validated >= 1
		quantize(grid.Data))
	if err != nil {
		return nil, fmt.Errorf("volume: upload texture: %w", err)
	}

	t := &Texture3D{label: label, gpu: vt, grid: grid}
	t.refs.Store(1)
	Logger().Debug("volume: texture created", "label", label)
	return t, nil
}

// NewHostTexture3D wraps a validated grid in a handle without GPU
// resources. Programs ignore such textures; the software renderer samples
// the grid directly.
func NewHostTexture3D(grid *VoxelGrid) (*Texture3D, error) {
	if grid == nil {
		return nil, ErrEmptyGrid
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	t := &Texture3D{
		label: fmt.Sprintf("host_volume_%dx%dx%d", grid.Width, grid.Height, grid.Depth),
		grid:  grid,
	}
	t.refs.Store(1)
	return t, nil
}

// Retain adds a reference and returns t for chaining.
func (t *Texture3D) Retain() *Texture3D {
	t.refs.Add(1)
	return t
}

// Release drops a reference. The GPU texture is destroyed when the last
// reference is dropped. Releasing an already released texture is a no-op.
func (t *Texture3D) Release() {
	for {
		n := t.refs.Load()
		if n <= 0 {
			Logger().Warn("volume: texture released past zero", "label", t.label)
			return
		}
		if t.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				t.destroy()
			}
			return
		}
	}
}

// RefCount returns the number of live references.
func (t *Texture3D) RefCount() int {
	return int(t.refs.Load())
}

// Released reports whether every reference has been dropped.
func (t *Texture3D) Released() bool {
	return t.refs.Load() <= 0
}

// Grid returns the source grid. The grid must be treated as read-only.
func (t *Texture3D) Grid() *VoxelGrid {
	return t.grid
}

// Dimensions returns the texture resolution in voxels.
func (t *Texture3D) Dimensions() (width, height, depth int) {
	return t.grid.Width, t.grid.Height, t.grid.Depth
}

// OnGPU reports whether the texture owns live GPU resources.
func (t *Texture3D) OnGPU() bool {
	return t.gpu != nil && !t.Released()
}

func (t *Texture3D) destroy() {
	if t.gpu != nil {
		t.gpu.Destroy()
		t.gpu = nil
	}
	Logger().Debug("volume: texture destroyed", "label", t.label)
}

// quantize converts densities to unsigned normalized bytes, clamping to [0, 1].
func quantize(data []float32) []byte {
	out := make([]byte, len(data))
	for i, d := range data {
		d = math32.Max(0, math32.Min(1, d))
		out[i] = uint8(math32.Round(d * 255)) //nolint:gosec // clamped to [0, 255]
	}
	return out
}
