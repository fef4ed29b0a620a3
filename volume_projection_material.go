package volume

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// VolumeProjectionMaterial renders the intensity projection of a voxel
// volume. Each fragment's view ray is marched through a box of extent Size
// centered at the origin, the red channel of Voxels is read as density and
// the densities are reduced according to RenderingStyle.
//
// Apply the material to a cube centered at the origin whose extent matches
// Size. The material is transparent: fragments whose ray misses the box
// are discarded.
//
// Fields may be replaced freely between frames. VolumeProjectionMaterial is
// NOT safe for concurrent use.
type VolumeProjectionMaterial struct {
	// Voxels is the shared density texture.
	Voxels *Texture3D
	// Size is the world-space extent the texture is stretched across.
	Size mgl32.Vec3
	// RenderingStyle selects the reduction along each ray.
	RenderingStyle RenderingStyle
	// StepCount is the number of samples ShadeRay takes per ray. Zero
	// selects DefaultStepCount, which the shader always uses.
	StepCount int
}

var (
	_ Material  = (*VolumeProjectionMaterial)(nil)
	_ CPUShader = (*VolumeProjectionMaterial)(nil)
)

// NewVolumeProjectionMaterial assembles a material from an existing
// texture. The material takes over one reference to voxels; callers that
// keep using the texture themselves must Retain it first.
func NewVolumeProjectionMaterial(voxels *Texture3D, size mgl32.Vec3, opts ...MaterialOption) *VolumeProjectionMaterial {
	o := defaultMaterialOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &VolumeProjectionMaterial{
		Voxels:         voxels,
		Size:           size,
		RenderingStyle: o.style,
		StepCount:      o.steps,
	}
}

// NewVolumeProjectionMaterialFromGrid uploads grid into a new texture held
// only by the returned material, copies grid.Size and selects
// MaximumIntensityProjection. Malformed grids are rejected here.
func NewVolumeProjectionMaterialFromGrid(ctx *Context, grid *VoxelGrid) (*VolumeProjectionMaterial, error) {
	tex, err := NewTexture3D(ctx, grid)
	if err != nil {
		return nil, err
	}
	return &VolumeProjectionMaterial{
		Voxels:         tex,
		Size:           grid.Size,
		RenderingStyle: MaximumIntensityProjection,
	}, nil
}

// ID implements Material.
func (m *VolumeProjectionMaterial) ID() MaterialID {
	return MaterialIDVolumeProjection
}

// FragmentShaderSource implements Material. The source is lights, tone
// mapping, color mapping and the projection body, in that order. It does
// not depend on RenderingStyle, so every style shares one program.
func (m *VolumeProjectionMaterial) FragmentShaderSource(lights []Light) string {
	return AssembleFragmentSource(
		LightsShaderSource(lights),
		ToneMappingShaderSource(),
		ColorMappingShaderSource(),
		VolumeProjectionShaderSource(),
	)
}

// UseUniforms implements Material.
func (m *VolumeProjectionMaterial) UseUniforms(program Program, viewer Viewer, lights []Light) {
	viewer.ToneMapping().UseUniforms(program)
	viewer.ColorMapping().UseUniforms(program)
	for i, l := range lights {
		l.UseUniforms(program, i)
	}
	program.UseUniform(UniformCameraPosition, viewer.Position())
	program.UseUniform(UniformSize, m.Size)
	if !m.RenderingStyle.Valid() {
		Logger().Warn("volume: rendering style out of range, reducing as average",
			"style", uint32(m.RenderingStyle))
	}
	program.UseUniform(UniformRenderingStyle, uint32(m.RenderingStyle))
	program.UseTexture3D(TextureVoxels, m.Voxels)
}

// RenderStates implements Material.
func (m *VolumeProjectionMaterial) RenderStates() RenderStates {
	s := DefaultRenderStates()
	s.Blend = BlendTransparency
	return s
}

// MaterialType implements Material.
func (m *VolumeProjectionMaterial) MaterialType() MaterialType {
	return MaterialTypeTransparent
}

// ShadeRay implements CPUShader by running the projection on the
// texture's source grid with StepCount steps.
func (m *VolumeProjectionMaterial) ShadeRay(ray Ray, viewer Viewer, lights []Light) (color.NRGBA, bool) {
	if m.Voxels == nil || m.Voxels.Grid() == nil {
		return color.NRGBA{}, false
	}
	steps := m.StepCount
	if steps == 0 {
		steps = DefaultStepCount
	}
	p := Project(m.Voxels.Grid(), m.Size, ray, m.RenderingStyle, steps)
	if !p.Hit {
		return color.NRGBA{}, false
	}

	surface := GreyscaleTransfer(p.Value)
	back := ray.Direction.Mul(-1)
	c := ShadeLights(lights, surface, back, back)
	c = viewer.ToneMapping().Apply(c)
	c = viewer.ColorMapping().Apply(c)
	return toNRGBA(c, p.Alpha()), true
}

// Clone returns a copy sharing the same texture. The copy holds its own
// reference.
func (m *VolumeProjectionMaterial) Clone() *VolumeProjectionMaterial {
	c := *m
	if c.Voxels != nil {
		c.Voxels.Retain()
	}
	return &c
}

// Release drops the material's texture reference. Call it when the
// material goes out of scope so GPU memory is freed without waiting for
// the garbage collector. The material must not be drawn afterwards.
func (m *VolumeProjectionMaterial) Release() {
	if m.Voxels != nil {
		m.Voxels.Release()
		m.Voxels = nil
	}
}

func toNRGBA(c mgl32.Vec3, alpha float32) color.NRGBA {
	return color.NRGBA{
		R: unorm8(c[0]),
		G: unorm8(c[1]),
		B: unorm8(c[2]),
		A: unorm8(alpha),
	}
}

func unorm8(x float32) uint8 {
	return uint8(clamp01(x)*255 + 0.5) //nolint:gosec // clamped to [0, 255.5)
}
