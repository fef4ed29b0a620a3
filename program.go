package volume

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/volume/internal/gpu"
)

// Program is the GPU program interface materials bind against.
//
// Values are addressed by the names the shader source declares. Binding a
// name the program does not declare is not an error; it is logged and
// ignored, since program/material correspondence is the caller's contract.
type Program interface {
	// UseUniform uploads a uniform value. Supported values are float32,
	// float64, int, int32, uint32, bool and the mgl32 Vec2, Vec3, Vec4 and
	// Mat4 types.
	UseUniform(name string, value any)

	// UseTexture3D binds a 3-D texture and its sampler.
	UseTexture3D(name string, texture *Texture3D)
}

// Binding describes a resource declared by a compiled program.
type Binding = gpu.Binding

// BindingKind classifies a Binding.
type BindingKind = gpu.BindingKind

// Binding kinds.
const (
	BindingUniform = gpu.BindingUniform
	BindingTexture = gpu.BindingTexture
	BindingSampler = gpu.BindingSampler
)

// ShaderProgram is a Program compiled on a Context.
//
// A ShaderProgram pairs a compiled module with one set of uniform buffers
// and texture slots. Instance adds further sets over the same module, one
// per draw that needs its own values.
//
// ShaderProgram is NOT safe for concurrent use.
type ShaderProgram struct {
	impl   *gpu.Program
	set    *gpu.BindingSet
	source string
	shared bool
}

// Instance returns a program that shares p's compiled module but has its own
// uniform buffers and texture slots. Instances must be destroyed before the
// program they were created from.
func (p *ShaderProgram) Instance() *ShaderProgram {
	return &ShaderProgram{
		impl:   p.impl,
		set:    p.impl.NewBindingSet(),
		source: p.source,
		shared: true,
	}
}

// SharesModule reports whether p and q draw with the same compiled module.
func (p *ShaderProgram) SharesModule(q *ShaderProgram) bool {
	return q != nil && p.impl == q.impl
}

// UseUniform implements Program.
func (p *ShaderProgram) UseUniform(name string, value any) {
	data, err := EncodeUniform(value)
	if err != nil {
		Logger().Warn("volume: uniform not set", "name", name, "err", err)
		return
	}
	p.set.WriteUniform(name, data)
}

// UseTexture3D implements Program. Host-only textures and released
// textures are skipped.
func (p *ShaderProgram) UseTexture3D(name string, texture *Texture3D) {
	if texture == nil || !texture.OnGPU() {
		Logger().Warn("volume: texture has no GPU resources", "name", name)
		return
	}
	p.set.SetTexture(name, texture.gpu.View(), texture.gpu.Sampler())
}

// Source returns the WGSL source the program was compiled from.
func (p *ShaderProgram) Source() string { return p.source }

// Module returns the compiled shader module.
func (p *ShaderProgram) Module() hal.ShaderModule { return p.impl.Module() }

// Bindings returns the resources declared by the program.
func (p *ShaderProgram) Bindings() []Binding { return p.impl.Bindings() }

// UniformData returns the bytes last uploaded for a uniform, or nil.
func (p *ShaderProgram) UniformData(name string) []byte { return p.set.UniformData(name) }

// UniformBuffer returns the buffer backing a uniform, or nil before the
// first upload.
func (p *ShaderProgram) UniformBuffer(name string) hal.Buffer { return p.set.UniformBuffer(name) }

// TextureView returns the view bound to a texture name, or nil.
func (p *ShaderProgram) TextureView(name string) hal.TextureView { return p.set.TextureView(name) }

// Sampler returns the sampler bound to a sampler name, or nil.
func (p *ShaderProgram) Sampler(name string) hal.Sampler { return p.set.Sampler(name) }

// Destroy releases the program's uniform buffers, and the shader module
// unless p is an Instance. Bound textures are not affected.
func (p *ShaderProgram) Destroy() {
	p.set.Destroy()
	if !p.shared {
		p.impl.Destroy()
	}
}

// EncodeUniform returns the little-endian WGSL host-shareable encoding of v.
func EncodeUniform(v any) ([]byte, error) {
	switch x := v.(type) {
	case float32:
		return appendF32(nil, x), nil
	case float64:
		return appendF32(nil, float32(x)), nil
	case uint32:
		return binary.LittleEndian.AppendUint32(nil, x), nil
	case int32:
		return binary.LittleEndian.AppendUint32(nil, uint32(x)), nil //nolint:gosec // two's complement bit pattern
	case int:
		return binary.LittleEndian.AppendUint32(nil, uint32(int32(x))), nil //nolint:gosec // truncation to i32 intended
	case bool:
		var b uint32
		if x {
			b = 1
		}
		return binary.LittleEndian.AppendUint32(nil, b), nil
	case RenderingStyle:
		return binary.LittleEndian.AppendUint32(nil, uint32(x)), nil
	case mgl32.Vec2:
		return appendF32(nil, x[:]...), nil
	case mgl32.Vec3:
		return appendF32(nil, x[:]...), nil
	case mgl32.Vec4:
		return appendF32(nil, x[:]...), nil
	case mgl32.Mat4:
		// mgl32 matrices are column-major, as WGSL expects.
		return appendF32(nil, x[:]...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedUniform, v)
	}
}

func appendF32(b []byte, vs ...float32) []byte {
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}
