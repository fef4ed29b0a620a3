// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/volume"
)

// ErrRendererDestroyed is returned by a GPURenderer after Destroy.
var ErrRendererDestroyed = errors.New("render: renderer destroyed")

// GPURenderer prepares materials for drawing on the host's GPU device.
//
// For every material it compiles the fragment source generated for the
// current lights and caches the program by material id and source text.
// Materials sharing a source share the compiled module, but each material
// gets its own uniform buffers and texture slots, so two volumes in one
// frame keep their own size, style and texture. Pipeline creation and draw
// submission belong to the host, which reads the program module, its
// bindings and the material's render states from the returned Draw values.
//
// Materials are identified by interface equality; use pointer materials.
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    if renderer == nil {
//	        renderer, _ = render.NewGPURenderer(app.GPUContextProvider())
//	    }
//	    draws, err := renderer.PrepareFrame(camera, lights, materials...)
//	    // build pipelines from draws and record the pass
//	})
type GPURenderer struct {
	handle   DeviceHandle
	ctx      *volume.Context
	programs map[programKey]*volume.ShaderProgram
	bound    map[volume.Material]boundProgram

	// softwareFallback draws to CPU targets.
	softwareFallback *SoftwareRenderer
}

// Draw is one prepared material draw, in frame order.
type Draw struct {
	Material volume.Material
	Program  *volume.ShaderProgram
	States   volume.RenderStates
}

type programKey struct {
	id     volume.MaterialID
	source string
}

// boundProgram is a material's binding instance of a cached program.
type boundProgram struct {
	key     programKey
	program *volume.ShaderProgram
}

// NewGPURenderer creates a renderer on the host application's device.
//
// The renderer does NOT create its own GPU device. Returns an error if the
// handle does not expose HAL objects.
func NewGPURenderer(handle DeviceHandle) (*GPURenderer, error) {
	ctx, err := NewContext(handle)
	if err != nil {
		return nil, err
	}
	r := NewGPURendererWithContext(ctx)
	r.handle = handle
	return r, nil
}

// NewGPURendererWithContext creates a renderer on an existing material
// context.
func NewGPURendererWithContext(ctx *volume.Context) *GPURenderer {
	return &GPURenderer{
		ctx:              ctx,
		programs:         make(map[programKey]*volume.ShaderProgram),
		bound:            make(map[volume.Material]boundProgram),
		softwareFallback: NewSoftwareRenderer(),
	}
}

// Context returns the material context the renderer compiles on.
func (r *GPURenderer) Context() *volume.Context {
	return r.ctx
}

// DeviceHandle returns the host device handle, or nil when the renderer was
// created from a context.
func (r *GPURenderer) DeviceHandle() DeviceHandle {
	return r.handle
}

// Program returns the cached program for the material and lights, compiling
// it on first use. The returned program is shared by every material with
// the same id and source; Prepare binds uniforms on a per-material instance.
func (r *GPURenderer) Program(m volume.Material, lights []volume.Light) (*volume.ShaderProgram, error) {
	if r.programs == nil {
		return nil, ErrRendererDestroyed
	}
	return r.program(programKey{id: m.ID(), source: m.FragmentShaderSource(lights)}, len(lights))
}

func (r *GPURenderer) program(key programKey, lights int) (*volume.ShaderProgram, error) {
	if p, ok := r.programs[key]; ok {
		return p, nil
	}

	p, err := r.ctx.Compile(key.id.String(), key.source)
	if err != nil {
		return nil, err
	}
	r.programs[key] = p
	volume.Logger().Debug("render: compiled material program",
		"material", key.id, "lights", lights, "bindings", len(p.Bindings()))
	return p, nil
}

// Prepare compiles (or reuses) the material's program and binds the
// material's uniforms for viewer and lights on the material's own binding
// instance. A material whose source changed, for example because the lights
// changed, gets a fresh instance and its old one is destroyed.
func (r *GPURenderer) Prepare(m volume.Material, viewer volume.Viewer, lights []volume.Light) (Draw, error) {
	if r.programs == nil {
		return Draw{}, ErrRendererDestroyed
	}
	key := programKey{id: m.ID(), source: m.FragmentShaderSource(lights)}

	b, ok := r.bound[m]
	if !ok || b.key != key {
		shared, err := r.program(key, len(lights))
		if err != nil {
			return Draw{}, err
		}
		if ok {
			b.program.Destroy()
		}
		b = boundProgram{key: key, program: shared.Instance()}
		r.bound[m] = b
	}

	m.UseUniforms(b.program, viewer, lights)
	return Draw{Material: m, Program: b.program, States: m.RenderStates()}, nil
}

// Evict destroys the uniform buffers bound for m. Call it when a material
// leaves the scene; compiled programs stay cached.
func (r *GPURenderer) Evict(m volume.Material) {
	if b, ok := r.bound[m]; ok {
		b.program.Destroy()
		delete(r.bound, m)
	}
}

// PrepareFrame prepares every material in SortMaterials order.
func (r *GPURenderer) PrepareFrame(viewer volume.Viewer, lights []volume.Light, materials ...volume.Material) ([]Draw, error) {
	ordered := SortMaterials(materials)
	draws := make([]Draw, 0, len(ordered))
	for _, m := range ordered {
		d, err := r.Prepare(m, viewer, lights)
		if err != nil {
			return nil, fmt.Errorf("render: prepare %v: %w", m.ID(), err)
		}
		draws = append(draws, d)
	}
	return draws, nil
}

// Programs returns the number of cached programs.
func (r *GPURenderer) Programs() int {
	return len(r.programs)
}

// Bound returns the number of materials holding binding instances.
func (r *GPURenderer) Bound() int {
	return len(r.bound)
}

// Render draws to CPU targets through the software path. GPU targets are
// drawn by the host from PrepareFrame.
func (r *GPURenderer) Render(target RenderTarget, camera *volume.Camera, lights []volume.Light, materials ...volume.Material) error {
	if target == nil {
		return ErrNilTarget
	}
	if r.programs == nil {
		return ErrRendererDestroyed
	}
	return r.softwareFallback.Render(target, camera, lights, materials...)
}

// Flush is a no-op; uniform writes are queued on the host queue.
func (r *GPURenderer) Flush() error {
	return nil
}

// Destroy releases every binding instance and cached program. The device
// is not touched.
func (r *GPURenderer) Destroy() {
	for m, b := range r.bound {
		b.program.Destroy()
		delete(r.bound, m)
	}
	r.bound = nil
	for key, p := range r.programs {
		p.Destroy()
		delete(r.programs, key)
	}
	r.programs = nil
	if r.softwareFallback != nil {
		r.softwareFallback.Close()
		r.softwareFallback = nil
	}
}

// Ensure GPURenderer implements Renderer.
var _ Renderer = (*GPURenderer)(nil)
