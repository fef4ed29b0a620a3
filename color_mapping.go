package volume

import (
	_ "embed"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/color_mapping.wgsl
var colorMappingShaderSource string

// ColorMapping converts the tone mapped linear color into the color space
// of the render target. The numeric values are the ones uploaded to
// colorMappingType.
type ColorMapping uint32

const (
	// ColorMappingNone writes linear color, for linear or sRGB-format targets.
	ColorMappingNone ColorMapping = iota
	// ColorMappingSRGB applies the sRGB transfer function.
	ColorMappingSRGB
)

// String returns the color mapping name.
func (m ColorMapping) String() string {
	switch m {
	case ColorMappingNone:
		return "None"
	case ColorMappingSRGB:
		return "sRGB"
	default:
		return fmt.Sprintf("ColorMapping(%d)", uint32(m))
	}
}

// ColorMappingShaderSource returns the WGSL segment declaring color_mapping.
// The text is the same for every color mapping; the mapping is a uniform.
func ColorMappingShaderSource() string {
	return colorMappingShaderSource
}

// UseUniforms uploads colorMappingType.
func (m ColorMapping) UseUniforms(program Program) {
	program.UseUniform("colorMappingType", uint32(m))
}

// Apply is the CPU evaluation of color_mapping.
func (m ColorMapping) Apply(c mgl32.Vec3) mgl32.Vec3 {
	if m != ColorMappingSRGB {
		return c
	}
	return mapVec(c, linearToSRGB)
}

func linearToSRGB(c float32) float32 {
	x := clamp01(c)
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math32.Pow(x, 1/2.4) - 0.055
}
