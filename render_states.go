package volume

import "github.com/gogpu/gputypes"

// Blend selects how fragment output is combined with the target.
type Blend uint8

const (
	// BlendDisabled writes the fragment color over the target.
	BlendDisabled Blend = iota
	// BlendTransparency is straight-alpha "over" compositing.
	BlendTransparency
	// BlendAdd adds the alpha-weighted fragment color to the target.
	BlendAdd
)

// String returns the blend name.
func (b Blend) String() string {
	switch b {
	case BlendDisabled:
		return "Disabled"
	case BlendTransparency:
		return "Transparency"
	case BlendAdd:
		return "Add"
	default:
		return "Unknown"
	}
}

// BlendState returns the WebGPU blend state, or nil when blending is disabled.
func (b Blend) BlendState() *gputypes.BlendState {
	switch b {
	case BlendTransparency:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case BlendAdd:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorZero,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	default:
		return nil
	}
}

// DepthTest is the depth comparison applied before a fragment is written.
type DepthTest uint8

const (
	// DepthTestLess passes fragments closer than the stored depth.
	DepthTestLess DepthTest = iota
	// DepthTestLessEqual passes fragments at or closer than the stored depth.
	DepthTestLessEqual
	// DepthTestGreater passes fragments farther than the stored depth.
	DepthTestGreater
	// DepthTestAlways passes every fragment.
	DepthTestAlways
)

// CompareFunction returns the WebGPU compare function.
func (d DepthTest) CompareFunction() gputypes.CompareFunction {
	switch d {
	case DepthTestLessEqual:
		return gputypes.CompareFunctionLessEqual
	case DepthTestGreater:
		return gputypes.CompareFunctionGreater
	case DepthTestAlways:
		return gputypes.CompareFunctionAlways
	default:
		return gputypes.CompareFunctionLess
	}
}

// Cull selects which triangle faces are discarded.
type Cull uint8

const (
	CullNone Cull = iota
	CullBack
	CullFront
)

// CullMode returns the WebGPU cull mode.
func (c Cull) CullMode() gputypes.CullMode {
	switch c {
	case CullBack:
		return gputypes.CullModeBack
	case CullFront:
		return gputypes.CullModeFront
	default:
		return gputypes.CullModeNone
	}
}

// WriteMask selects which outputs a draw writes.
type WriteMask struct {
	Red, Green, Blue, Alpha bool
	Depth                   bool
}

// WriteMaskColorDepth writes every color channel and depth.
var WriteMaskColorDepth = WriteMask{Red: true, Green: true, Blue: true, Alpha: true, Depth: true}

// ColorWriteMask returns the WebGPU color write mask.
func (w WriteMask) ColorWriteMask() gputypes.ColorWriteMask {
	var m gputypes.ColorWriteMask
	if w.Red {
		m |= gputypes.ColorWriteMaskRed
	}
	if w.Green {
		m |= gputypes.ColorWriteMaskGreen
	}
	if w.Blue {
		m |= gputypes.ColorWriteMaskBlue
	}
	if w.Alpha {
		m |= gputypes.ColorWriteMaskAlpha
	}
	return m
}

// RenderStates is the fixed-function state a material draws with.
type RenderStates struct {
	Write WriteMask
	Depth DepthTest
	Blend Blend
	Cull  Cull
}

// DefaultRenderStates writes color and depth, tests depth with Less, does
// not blend and does not cull.
func DefaultRenderStates() RenderStates {
	return RenderStates{
		Write: WriteMaskColorDepth,
		Depth: DepthTestLess,
		Blend: BlendDisabled,
		Cull:  CullNone,
	}
}

// ColorTarget returns the color target state for a pipeline rendering into
// the given format.
func (s RenderStates) ColorTarget(format gputypes.TextureFormat) gputypes.ColorTargetState {
	return gputypes.ColorTargetState{
		Format:    format,
		Blend:     s.Blend.BlendState(),
		WriteMask: s.Write.ColorWriteMask(),
	}
}

// Primitive returns triangle-list primitive state with the cull mode applied.
func (s RenderStates) Primitive() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		CullMode: s.Cull.CullMode(),
	}
}
