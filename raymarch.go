package volume

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultStepCount is the number of samples the projection shader takes
// per ray. Fewer steps are faster but show banding.
const DefaultStepCount = 200

// MaxDensity is the largest representable density, the start value of a
// minimum reduction.
const MaxDensity float32 = 1

// parallelEpsilon is the direction component below which a ray is treated
// as parallel to a slab.
const parallelEpsilon = 1e-8

// Ray is a half-line in world space. Direction must be non-zero; it is
// normally unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// DensitySampler returns the density at normalized texture coordinates.
// *VoxelGrid implements it.
type DensitySampler interface {
	Sample(u, v, w float32) float32
}

// IntersectBox intersects r with the axis-aligned box of extent size
// centered at the origin using the slab method. tNear may be negative when
// the origin is inside the box. hit is false when the ray misses.
func IntersectBox(r Ray, size mgl32.Vec3) (tNear, tExit float32, hit bool) {
	tNear = math32.Inf(-1)
	tExit = math32.Inf(1)
	for axis := 0; axis < 3; axis++ {
		half := size[axis] / 2
		origin := r.Origin[axis]
		dir := r.Direction[axis]

		if math32.Abs(dir) < parallelEpsilon {
			if origin < -half || origin > half {
				return 0, 0, false
			}
			continue
		}

		inv := 1 / dir
		t0 := (-half - origin) * inv
		t1 := (half - origin) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tNear = math32.Max(tNear, t0)
		tExit = math32.Min(tExit, t1)
		if tExit < tNear {
			return 0, 0, false
		}
	}
	return tNear, tExit, true
}

// Projection is the result of marching one ray.
type Projection struct {
	// Value is the reduced density. Zero when Hit is false.
	Value float32
	// Hit is false when the fragment is discarded.
	Hit bool
	// TNear and TExit bound the marched segment, with TNear >= 0.
	TNear, TExit float32
}

// Alpha returns 1 for a hit and 0 for a discarded fragment.
func (p Projection) Alpha() float32 {
	if p.Hit {
		return 1
	}
	return 0
}

// Project marches r through the box of extent size, sampling the density
// at the midpoints of steps equal segments between the clamped entry and
// the exit, and reduces the samples according to style. steps below 1 is
// treated as 1. Styles outside the defined set reduce like
// AverageIntensityProjection, as the shader does.
//
// A ray that misses the box, or whose box lies entirely behind the origin,
// produces a discarded Projection; no reduction over zero samples happens.
func Project(sampler DensitySampler, size mgl32.Vec3, r Ray, style RenderingStyle, steps int) Projection {
	tNear, tExit, hit := IntersectBox(r, size)
	if !hit {
		return Projection{}
	}
	tNear = math32.Max(tNear, 0)
	if tExit <= tNear {
		return Projection{}
	}
	if steps < 1 {
		steps = 1
	}

	dt := (tExit - tNear) / float32(steps)
	var acc float32
	if style == MinimumIntensityProjection {
		acc = MaxDensity
	}
	for i := 0; i < steps; i++ {
		p := r.At(tNear + (float32(i)+0.5)*dt)
		d := sampler.Sample(p[0]/size[0]+0.5, p[1]/size[1]+0.5, p[2]/size[2]+0.5)
		switch style {
		case MinimumIntensityProjection:
			acc = math32.Min(acc, d)
		case MaximumIntensityProjection:
			acc = math32.Max(acc, d)
		default:
			acc += d
		}
	}
	if style >= AverageIntensityProjection {
		acc /= float32(steps)
	}

	return Projection{Value: acc, Hit: true, TNear: tNear, TExit: tExit}
}

// TransferFunction maps a reduced density to a linear RGB color.
type TransferFunction func(value float32) mgl32.Vec3

// GreyscaleTransfer replicates the value into every channel. It is the
// transfer the projection shader uses.
func GreyscaleTransfer(value float32) mgl32.Vec3 {
	return mgl32.Vec3{value, value, value}
}
