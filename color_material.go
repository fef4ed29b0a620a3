package volume

import (
	_ "embed"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/color_material.wgsl
var colorMaterialShaderSource string

// ColorMaterial is an unlit material of one flat color. Lights are ignored.
// It is opaque unless the color is translucent.
type ColorMaterial struct {
	Color color.NRGBA
}

var (
	_ Material  = (*ColorMaterial)(nil)
	_ CPUShader = (*ColorMaterial)(nil)
)

// ID implements Material.
func (m *ColorMaterial) ID() MaterialID { return MaterialIDColor }

// FragmentShaderSource implements Material.
func (m *ColorMaterial) FragmentShaderSource([]Light) string {
	return AssembleFragmentSource(
		ToneMappingShaderSource(),
		ColorMappingShaderSource(),
		colorMaterialShaderSource,
	)
}

// UseUniforms implements Material.
func (m *ColorMaterial) UseUniforms(program Program, viewer Viewer, _ []Light) {
	viewer.ToneMapping().UseUniforms(program)
	viewer.ColorMapping().UseUniforms(program)
	program.UseUniform("surfaceColor", m.linear())
}

// RenderStates implements Material.
func (m *ColorMaterial) RenderStates() RenderStates {
	s := DefaultRenderStates()
	if m.Color.A < 255 {
		s.Blend = BlendTransparency
	}
	return s
}

// MaterialType implements Material.
func (m *ColorMaterial) MaterialType() MaterialType {
	if m.Color.A < 255 {
		return MaterialTypeTransparent
	}
	return MaterialTypeOpaque
}

// ShadeRay implements CPUShader. Every ray is covered.
func (m *ColorMaterial) ShadeRay(_ Ray, viewer Viewer, _ []Light) (color.NRGBA, bool) {
	c := m.linear()
	rgb := viewer.ColorMapping().Apply(viewer.ToneMapping().Apply(c.Vec3()))
	return toNRGBA(rgb, c.W()), true
}

func (m *ColorMaterial) linear() mgl32.Vec4 {
	return mgl32.Vec4{
		float32(m.Color.R) / 255,
		float32(m.Color.G) / 255,
		float32(m.Color.B) / 255,
		float32(m.Color.A) / 255,
	}
}
