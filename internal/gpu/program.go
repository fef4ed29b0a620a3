// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Program is a compiled fragment module together with the bindings it
// declares.
//
// Resource values live in BindingSets, not in the Program. Every draw that
// needs its own uniforms creates a set with NewBindingSet; the host renderer
// assembles bind groups from Bindings and the set's UniformBuffer,
// TextureView and Sampler.
//
// Program is NOT safe for concurrent use.
type Program struct {
	device hal.Device
	queue  hal.Queue
	label  string

	module   hal.ShaderModule
	bindings []Binding
	byName   map[string]int
}

// NewProgram compiles source with naga and creates the shader module.
func NewProgram(device hal.Device, queue hal.Queue, label, source string) (*Program, error) {
	spirv, err := CompileWGSL(source)
	if err != nil {
		return nil, err
	}
	bindings, err := ReflectBindings(source)
	if err != nil {
		return nil, err
	}

	module, err := createShaderModule(device, label, spirv)
	if err != nil {
		return nil, fmt.Errorf("create shader module %q: %w", label, err)
	}

	byName := make(map[string]int, len(bindings))
	for i, b := range bindings {
		byName[b.Name] = i
	}

	slogger().Debug("gpu: program compiled",
		"label", label,
		"spirv_words", len(spirv),
		"bindings", len(bindings),
	)

	return &Program{
		device:   device,
		queue:    queue,
		label:    label,
		module:   module,
		bindings: bindings,
		byName:   byName,
	}, nil
}

// Module returns the compiled shader module.
func (p *Program) Module() hal.ShaderModule {
	return p.module
}

// Label returns the debug label given at creation.
func (p *Program) Label() string {
	return p.label
}

// Binding returns the reflected binding with the given name.
func (p *Program) Binding(name string) (Binding, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Binding{}, false
	}
	return p.bindings[i], true
}

// Bindings returns a copy of all reflected bindings ordered by group and binding.
func (p *Program) Bindings() []Binding {
	out := make([]Binding, len(p.bindings))
	copy(out, p.bindings)
	return out
}

// NewBindingSet returns an empty set of resources for this program's
// bindings. Uniform buffers are created lazily on first write.
func (p *Program) NewBindingSet() *BindingSet {
	return &BindingSet{
		program:  p,
		buffers:  make(map[string]hal.Buffer),
		values:   make(map[string][]byte),
		views:    make(map[string]hal.TextureView),
		samplers: make(map[string]hal.Sampler),
	}
}

// Destroy releases the shader module. Binding sets created from the program
// must be destroyed separately.
func (p *Program) Destroy() {
	if p.device == nil || p.module == nil {
		return
	}
	p.device.DestroyShaderModule(p.module)
	p.module = nil
}

// BindingSet holds the uniform buffers and texture slots of one draw of a
// Program.
//
// BindingSet is NOT safe for concurrent use.
type BindingSet struct {
	program *Program

	buffers  map[string]hal.Buffer
	values   map[string][]byte
	views    map[string]hal.TextureView
	samplers map[string]hal.Sampler
}

// Program returns the program the set was created from.
func (s *BindingSet) Program() *Program {
	return s.program
}

// WriteUniform uploads data to the uniform buffer bound to name.
// Data shorter than the binding size is zero padded. Returns false if the
// program declares no uniform with that name.
func (s *BindingSet) WriteUniform(name string, data []byte) bool {
	p := s.program
	b, ok := p.Binding(name)
	if !ok || b.Kind != BindingUniform {
		slogger().Warn("gpu: unknown uniform", "program", p.label, "name", name)
		return false
	}
	size := b.Size
	if size == 0 {
		size = alignUniform(uint64(len(data)))
	}
	if uint64(len(data)) > size {
		slogger().Warn("gpu: uniform value larger than binding",
			"program", p.label, "name", name, "bytes", len(data), "size", size)
		return false
	}

	buf, ok := s.buffers[name]
	if !ok {
		var err error
		buf, err = p.device.CreateBuffer(&hal.BufferDescriptor{
			Label: p.label + "_" + name,
			Size:  size,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			slogger().Warn("gpu: create uniform buffer failed", "name", name, "err", err)
			return false
		}
		s.buffers[name] = buf
	}

	padded := make([]byte, size)
	copy(padded, data)
	p.queue.WriteBuffer(buf, 0, padded)
	s.values[name] = padded
	return true
}

// UniformData returns the last bytes written to the named uniform, or nil.
func (s *BindingSet) UniformData(name string) []byte {
	return s.values[name]
}

// UniformBuffer returns the GPU buffer backing the named uniform, or nil.
func (s *BindingSet) UniformBuffer(name string) hal.Buffer {
	return s.buffers[name]
}

// SetTexture binds a texture view to the named texture binding. A sampler
// declared as "<name>Sampler" receives the given sampler. Returns false if
// the program declares no texture with that name.
func (s *BindingSet) SetTexture(name string, view hal.TextureView, sampler hal.Sampler) bool {
	p := s.program
	b, ok := p.Binding(name)
	if !ok || b.Kind != BindingTexture {
		slogger().Warn("gpu: unknown texture", "program", p.label, "name", name)
		return false
	}
	s.views[name] = view
	if sb, ok := p.Binding(name + "Sampler"); ok && sb.Kind == BindingSampler {
		s.samplers[sb.Name] = sampler
	}
	return true
}

// TextureView returns the view bound to the named texture, or nil.
func (s *BindingSet) TextureView(name string) hal.TextureView {
	return s.views[name]
}

// Sampler returns the sampler bound to the named sampler binding, or nil.
func (s *BindingSet) Sampler(name string) hal.Sampler {
	return s.samplers[name]
}

// Destroy releases the set's uniform buffers. Textures and samplers are
// borrowed and are not destroyed.
func (s *BindingSet) Destroy() {
	device := s.program.device
	for name, buf := range s.buffers {
		if buf != nil && device != nil {
			device.DestroyBuffer(buf)
		}
		delete(s.buffers, name)
	}
	clear(s.views)
	clear(s.samplers)
	clear(s.values)
}
