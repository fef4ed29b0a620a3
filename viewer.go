package volume

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Viewer is what a material needs to know about the camera.
type Viewer interface {
	// Position returns the eye position in world space.
	Position() mgl32.Vec3
	// ToneMapping returns the tone mapping applied to lit color.
	ToneMapping() ToneMapping
	// ColorMapping returns the mapping into the target color space.
	ColorMapping() ColorMapping
}

// Camera is a perspective camera. It implements Viewer.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	// FovY is the vertical field of view in radians.
	FovY      float32
	Near, Far float32

	// Width and Height are the viewport size in pixels.
	Width, Height int

	Tone  ToneMapping
	Color ColorMapping
}

// NewCamera returns a camera at eye looking at target with a 45 degree
// vertical field of view, ACES tone mapping and sRGB output.
func NewCamera(eye, target mgl32.Vec3, width, height int) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   mgl32.DegToRad(45),
		Near:   0.01,
		Far:    100,
		Width:  width,
		Height: height,
		Tone:   ToneMappingACES,
		Color:  ColorMappingSRGB,
	}
}

// Position implements Viewer.
func (c *Camera) Position() mgl32.Vec3 { return c.Eye }

// ToneMapping implements Viewer.
func (c *Camera) ToneMapping() ToneMapping { return c.Tone }

// ColorMapping implements Viewer.
func (c *Camera) ColorMapping() ColorMapping { return c.Color }

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the view-to-clip matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = float32(c.Width) / float32(c.Height)
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Ray returns the world-space ray from the eye through viewport position
// (px, py), measured in pixels from the top-left corner. Pixel centers are
// at half-integer coordinates.
func (c *Camera) Ray(px, py float32) Ray {
	ndcX := 2*px/float32(c.Width) - 1
	ndcY := 1 - 2*py/float32(c.Height)

	inv := c.ViewProjection().Inv()
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	target := far.Vec3().Mul(1 / far.W())

	return Ray{Origin: c.Eye, Direction: target.Sub(c.Eye).Normalize()}
}
