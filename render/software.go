// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image/color"
	"runtime"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/volume"
	"github.com/gogpu/volume/internal/parallel"
)

// SoftwareRenderer evaluates materials on the CPU.
//
// Every pixel casts one ray through its center. Materials are composited
// over the target in SortMaterials order with the blend of their
// RenderStates; depth is not tracked. Tiles are shaded in parallel.
//
// Example:
//
//	r := render.NewSoftwareRenderer(render.WithWorkers(4))
//	defer r.Close()
//	err := r.Render(target, camera, lights, material)
type SoftwareRenderer struct {
	pool *parallel.WorkerPool
}

// SoftwareOption configures a SoftwareRenderer.
type SoftwareOption func(*softwareOptions)

type softwareOptions struct {
	workers int
}

// WithWorkers sets the number of shading goroutines. Values <= 0 use
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) SoftwareOption {
	return func(o *softwareOptions) {
		o.workers = n
	}
}

// NewSoftwareRenderer creates a new CPU-based renderer.
func NewSoftwareRenderer(opts ...SoftwareOption) *SoftwareRenderer {
	o := softwareOptions{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	return &SoftwareRenderer{pool: parallel.NewWorkerPool(o.workers)}
}

// Workers returns the number of shading goroutines.
func (r *SoftwareRenderer) Workers() int {
	return r.pool.Workers()
}

// Render draws the materials to the target.
//
// Returns ErrNotCPUShader, before touching any pixel, if a material does
// not implement volume.CPUShader.
func (r *SoftwareRenderer) Render(target RenderTarget, camera *volume.Camera, lights []volume.Light, materials ...volume.Material) error {
	if target == nil {
		return ErrNilTarget
	}
	if camera == nil {
		return ErrNilCamera
	}
	pixels := target.Pixels()
	if pixels == nil {
		return ErrNoCPUAccess
	}
	if f := target.Format(); f != gputypes.TextureFormatRGBA8Unorm {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}

	ordered := SortMaterials(materials)
	if len(ordered) == 0 {
		return nil
	}
	passes := make([]pass, len(ordered))
	for i, m := range ordered {
		shader, ok := m.(volume.CPUShader)
		if !ok {
			return fmt.Errorf("%w: %v", ErrNotCPUShader, m.ID())
		}
		passes[i] = pass{shader: shader, blend: m.RenderStates().Blend}
	}

	width, height, stride := target.Width(), target.Height(), target.Stride()
	tiles := parallel.SplitTiles(width, height)
	volume.Logger().Debug("render: software frame",
		"width", width, "height", height,
		"materials", len(passes), "tiles", len(tiles))

	work := make([]func(), len(tiles))
	for i, tile := range tiles {
		work[i] = func() {
			shadeTile(pixels, stride, tile, camera, lights, passes)
		}
	}
	r.pool.ExecuteAll(work)
	return nil
}

// Flush is a no-op; Render is synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// Close stops the shading goroutines. The renderer shades inline afterwards.
func (r *SoftwareRenderer) Close() {
	r.pool.Close()
}

// Ensure SoftwareRenderer implements Renderer.
var _ Renderer = (*SoftwareRenderer)(nil)

type pass struct {
	shader volume.CPUShader
	blend  volume.Blend
}

func shadeTile(pixels []byte, stride int, tile parallel.Tile, camera *volume.Camera, lights []volume.Light, passes []pass) {
	for y := tile.Y0; y < tile.Y1; y++ {
		row := y * stride
		for x := tile.X0; x < tile.X1; x++ {
			ray := camera.Ray(float32(x)+0.5, float32(y)+0.5)
			px := pixels[row+4*x : row+4*x+4 : row+4*x+4]
			for _, p := range passes {
				c, ok := p.shader.ShadeRay(ray, camera, lights)
				if !ok {
					continue
				}
				blendPixel(px, c, p.blend)
			}
		}
	}
}

// blendPixel composites a straight-alpha source over a premultiplied RGBA
// destination pixel.
func blendPixel(dst []byte, src color.NRGBA, blend volume.Blend) {
	a := float32(src.A) / 255
	s := [3]float32{float32(src.R), float32(src.G), float32(src.B)}

	switch blend {
	case volume.BlendTransparency:
		inv := 1 - a
		for i := range 3 {
			dst[i] = clampByte(s[i]*a + float32(dst[i])*inv)
		}
		dst[3] = clampByte(float32(src.A) + float32(dst[3])*inv)
	case volume.BlendAdd:
		for i := range 3 {
			dst[i] = clampByte(float32(dst[i]) + s[i]*a)
		}
	default:
		for i := range 3 {
			dst[i] = clampByte(s[i] * a)
		}
		dst[3] = src.A
	}
}

func clampByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
