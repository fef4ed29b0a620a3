package volume

import (
	_ "embed"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/tone_mapping.wgsl
var toneMappingShaderSource string

// ToneMapping maps linear HDR color into the displayable [0, 1] range.
// The numeric values are the ones uploaded to toneMappingType.
type ToneMapping uint32

const (
	ToneMappingNone ToneMapping = iota
	ToneMappingReinhard
	ToneMappingACES
	ToneMappingFilmic
)

// String returns the tone mapping name.
func (t ToneMapping) String() string {
	switch t {
	case ToneMappingNone:
		return "None"
	case ToneMappingReinhard:
		return "Reinhard"
	case ToneMappingACES:
		return "ACES"
	case ToneMappingFilmic:
		return "Filmic"
	default:
		return fmt.Sprintf("ToneMapping(%d)", uint32(t))
	}
}

// ToneMappingShaderSource returns the WGSL segment declaring tone_mapping.
// The text is the same for every tone mapping; the operator is a uniform.
func ToneMappingShaderSource() string {
	return toneMappingShaderSource
}

// UseUniforms uploads toneMappingType.
func (t ToneMapping) UseUniforms(program Program) {
	program.UseUniform("toneMappingType", uint32(t))
}

// Apply is the CPU evaluation of tone_mapping.
func (t ToneMapping) Apply(c mgl32.Vec3) mgl32.Vec3 {
	switch t {
	case ToneMappingReinhard:
		return mapVec(c, func(x float32) float32 { return x / (x + 1) })
	case ToneMappingACES:
		return mapVec(c, func(x float32) float32 {
			x = math32.Max(x, 0)
			return clamp01((x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14))
		})
	case ToneMappingFilmic:
		white := hable(11.2)
		return mapVec(c, func(x float32) float32 {
			return clamp01(hable(2*math32.Max(x, 0)) / white)
		})
	default:
		return c
	}
}

// hable is John Hable's filmic curve.
func hable(x float32) float32 {
	const (
		a = 0.15
		b = 0.50
		c = 0.10
		d = 0.20
		e = 0.02
		f = 0.30
	)
	return ((x*(a*x+c*b) + d*e) / (x*(a*x+b) + d*f)) - e/f
}

func mapVec(v mgl32.Vec3, fn func(float32) float32) mgl32.Vec3 {
	return mgl32.Vec3{fn(v[0]), fn(v[1]), fn(v[2])}
}

func clamp01(x float32) float32 {
	return math32.Max(0, math32.Min(1, x))
}
