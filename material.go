package volume

import (
	"fmt"
	"image/color"
)

// MaterialID identifies a material kind. The renderer batches and sorts
// draws by it and caches compiled programs per id and source text.
type MaterialID uint16

const (
	// MaterialIDColor is the unlit color material.
	MaterialIDColor MaterialID = 0x8000 + iota
	// MaterialIDVolumeProjection is the volume projection material.
	MaterialIDVolumeProjection
)

// String returns the id name.
func (id MaterialID) String() string {
	switch id {
	case MaterialIDColor:
		return "ColorMaterial"
	case MaterialIDVolumeProjection:
		return "VolumeProjectionMaterial"
	default:
		return fmt.Sprintf("MaterialID(%#x)", uint16(id))
	}
}

// MaterialType partitions draws: transparent materials are drawn after all
// opaque ones, back to front.
type MaterialType uint8

const (
	MaterialTypeOpaque MaterialType = iota
	MaterialTypeTransparent
)

// String returns the type name.
func (t MaterialType) String() string {
	if t == MaterialTypeTransparent {
		return "Transparent"
	}
	return "Opaque"
}

// Material pairs fragment shader generation with per-draw uniform binding.
//
// New materials are added by implementing this interface; the renderer
// never switches over concrete material kinds.
type Material interface {
	// ID returns the material kind.
	ID() MaterialID

	// FragmentShaderSource returns the complete WGSL fragment source for
	// the given lights. It has no side effects and returns identical text
	// for identical material state and light configuration.
	FragmentShaderSource(lights []Light) string

	// UseUniforms uploads every uniform and texture the source references.
	// program must have been compiled from FragmentShaderSource(lights)
	// for the same light configuration.
	UseUniforms(program Program, viewer Viewer, lights []Light)

	// RenderStates returns the fixed-function state to draw with.
	RenderStates() RenderStates

	// MaterialType returns the draw-order class.
	MaterialType() MaterialType
}

// CPUShader is implemented by materials the software renderer can evaluate.
// ShadeRay returns the color for one view ray and false when the ray
// contributes nothing (the fragment is discarded).
type CPUShader interface {
	ShadeRay(ray Ray, viewer Viewer, lights []Light) (color.NRGBA, bool)
}
