package volume

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// VoxelGrid is a CPU-resident, axis-aligned 3-D scalar density field.
//
// Data holds one density sample per voxel, x varying fastest, then y, then z.
// Densities are nominally in [0, 1]; values outside that range are clamped
// when the grid is uploaded to an 8-bit texture.
//
// Size is the world-space extent the grid covers. A grid must not be
// modified after it has been uploaded with NewTexture3D.
type VoxelGrid struct {
	Width, Height, Depth int
	Data                 []float32
	Size                 mgl32.Vec3
}

// NewVoxelGrid allocates a zero-density grid.
func NewVoxelGrid(width, height, depth int, size mgl32.Vec3) (*VoxelGrid, error) {
	if width < 1 || height < 1 || depth < 1 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidGridDimensions, width, height, depth)
	}
	g := &VoxelGrid{
		Width:  width,
		Height: height,
		Depth:  depth,
		Data:   make([]float32, width*height*depth),
		Size:   size,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewVoxelGridFromFunc allocates a grid and fills every voxel with
// fn(x, y, z), where x, y and z are the voxel center in normalized [0, 1]
// texture coordinates.
func NewVoxelGridFromFunc(width, height, depth int, size mgl32.Vec3, fn func(x, y, z float32) float32) (*VoxelGrid, error) {
	g, err := NewVoxelGrid(width, height, depth, size)
	if err != nil {
		return nil, err
	}
	for z := 0; z < depth; z++ {
		w := (float32(z) + 0.5) / float32(depth)
		for y := 0; y < height; y++ {
			v := (float32(y) + 0.5) / float32(height)
			for x := 0; x < width; x++ {
				u := (float32(x) + 0.5) / float32(width)
				g.Data[g.index(x, y, z)] = fn(u, v, w)
			}
		}
	}
	return g, nil
}

// Validate reports whether the grid is well formed.
func (g *VoxelGrid) Validate() error {
	if g.Width < 1 || g.Height < 1 || g.Depth < 1 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidGridDimensions, g.Width, g.Height, g.Depth)
	}
	if len(g.Data) == 0 {
		return ErrEmptyGrid
	}
	if want := g.Width * g.Height * g.Depth; len(g.Data) != want {
		return fmt.Errorf("%w: have %d, want %d", ErrGridDataSize, len(g.Data), want)
	}
	if g.Size.X() <= 0 || g.Size.Y() <= 0 || g.Size.Z() <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidGridSize, g.Size)
	}
	return nil
}

func (g *VoxelGrid) index(x, y, z int) int {
	return (z*g.Height+y)*g.Width + x
}

// At returns the density of voxel (x, y, z). It panics if out of range.
func (g *VoxelGrid) At(x, y, z int) float32 {
	return g.Data[g.index(x, y, z)]
}

// Set sets the density of voxel (x, y, z). It panics if out of range.
func (g *VoxelGrid) Set(x, y, z int, v float32) {
	g.Data[g.index(x, y, z)] = v
}

// Sample returns the trilinearly filtered density at normalized texture
// coordinates (u, v, w). Coordinates outside [0, 1] clamp to the edge
// voxels, as a linear clamp-to-edge GPU sampler does.
func (g *VoxelGrid) Sample(u, v, w float32) float32 {
	x0, x1, fx := texelSpan(u, g.Width)
	y0, y1, fy := texelSpan(v, g.Height)
	z0, z1, fz := texelSpan(w, g.Depth)

	c00 := lerp(g.At(x0, y0, z0), g.At(x1, y0, z0), fx)
	c10 := lerp(g.At(x0, y1, z0), g.At(x1, y1, z0), fx)
	c01 := lerp(g.At(x0, y0, z1), g.At(x1, y0, z1), fx)
	c11 := lerp(g.At(x0, y1, z1), g.At(x1, y1, z1), fx)

	c0 := lerp(c00, c10, fy)
	c1 := lerp(c01, c11, fy)
	return lerp(c0, c1, fz)
}

// MinMax returns the smallest and largest density in the grid.
func (g *VoxelGrid) MinMax() (lo, hi float32) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for _, d := range g.Data {
		lo = math32.Min(lo, d)
		hi = math32.Max(hi, d)
	}
	return lo, hi
}

// texelSpan maps a normalized coordinate to the two neighbouring texel
// indices and the interpolation weight between them. Texel centers sit at
// (i + 0.5) / n.
func texelSpan(t float32, n int) (i0, i1 int, f float32) {
	x := t*float32(n) - 0.5
	if x <= 0 {
		return 0, 0, 0
	}
	if x >= float32(n-1) {
		return n - 1, n - 1, 0
	}
	fl := math32.Floor(x)
	i0 = int(fl)
	return i0, i0 + 1, x - fl
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
