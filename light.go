package volume

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Light contributes a WGSL segment and its uniforms to a material's
// program. Lights are indexed 0..N-1 in the order the material receives
// them; every symbol a light declares carries its index so segments never
// collide.
type Light interface {
	// ShaderSource returns the light's declarations and a function
	//   fn calculate_light_<index>(surface: vec3<f32>, position: vec3<f32>,
	//       normal: vec3<f32>, view_dir: vec3<f32>) -> vec3<f32>
	ShaderSource(index int) string

	// UseUniforms uploads the uniforms declared by ShaderSource(index).
	UseUniforms(program Program, index int)

	// Shade is the CPU evaluation of calculate_light_<index>.
	Shade(surface, normal, viewDir mgl32.Vec3) mgl32.Vec3
}

// lightBindingsPerLight is the number of group(1) binding slots reserved
// for each light.
const lightBindingsPerLight = 2

// LightsShaderSource returns every light's segment followed by
// calculate_lighting, which sums the light contributions. Without lights
// calculate_lighting returns the surface color unchanged.
func LightsShaderSource(lights []Light) string {
	var sb strings.Builder
	for i, l := range lights {
		sb.WriteString(l.ShaderSource(i))
		sb.WriteString("\n")
	}

	sb.WriteString("fn calculate_lighting(surface: vec3<f32>, position: vec3<f32>, normal: vec3<f32>, view_dir: vec3<f32>) -> vec3<f32> {\n")
	if len(lights) == 0 {
		sb.WriteString("    return surface;\n")
	} else {
		sb.WriteString("    var color = vec3<f32>(0.0);\n")
		for i := range lights {
			fmt.Fprintf(&sb, "    color = color + calculate_light_%d(surface, position, normal, view_dir);\n", i)
		}
		sb.WriteString("    return color;\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// ShadeLights is the CPU evaluation of calculate_lighting.
func ShadeLights(lights []Light, surface, normal, viewDir mgl32.Vec3) mgl32.Vec3 {
	if len(lights) == 0 {
		return surface
	}
	var c mgl32.Vec3
	for _, l := range lights {
		c = c.Add(l.Shade(surface, normal, viewDir))
	}
	return c
}

// AmbientLight lights every direction equally.
type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

// NewAmbientLight returns a white ambient light.
func NewAmbientLight(intensity float32) *AmbientLight {
	return &AmbientLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: intensity}
}

// ShaderSource implements Light.
func (l *AmbientLight) ShaderSource(index int) string {
	return fmt.Sprintf(`@group(1) @binding(%[2]d) var<uniform> ambientColor%[1]d: vec3<f32>;

fn calculate_light_%[1]d(surface: vec3<f32>, position: vec3<f32>, normal: vec3<f32>, view_dir: vec3<f32>) -> vec3<f32> {
    return surface * ambientColor%[1]d;
}
`, index, index*lightBindingsPerLight)
}

// UseUniforms implements Light.
func (l *AmbientLight) UseUniforms(program Program, index int) {
	program.UseUniform(fmt.Sprintf("ambientColor%d", index), l.Color.Mul(l.Intensity))
}

// Shade implements Light.
func (l *AmbientLight) Shade(surface, _, _ mgl32.Vec3) mgl32.Vec3 {
	return mulElem(surface, l.Color.Mul(l.Intensity))
}

// DirectionalLight is a light infinitely far away shining along Direction.
type DirectionalLight struct {
	Color     mgl32.Vec3
	Intensity float32
	Direction mgl32.Vec3
}

// NewDirectionalLight returns a white directional light.
func NewDirectionalLight(intensity float32, direction mgl32.Vec3) *DirectionalLight {
	return &DirectionalLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: intensity, Direction: direction}
}

// ShaderSource implements Light.
func (l *DirectionalLight) ShaderSource(index int) string {
	return fmt.Sprintf(`@group(1) @binding(%[2]d) var<uniform> directionalColor%[1]d: vec3<f32>;
@group(1) @binding(%[3]d) var<uniform> directionalDirection%[1]d: vec3<f32>;

fn calculate_light_%[1]d(surface: vec3<f32>, position: vec3<f32>, normal: vec3<f32>, view_dir: vec3<f32>) -> vec3<f32> {
    let to_light = normalize(-directionalDirection%[1]d);
    let diffuse = max(dot(normal, to_light), 0.0);
    return surface * directionalColor%[1]d * diffuse;
}
`, index, index*lightBindingsPerLight, index*lightBindingsPerLight+1)
}

// UseUniforms implements Light.
func (l *DirectionalLight) UseUniforms(program Program, index int) {
	program.UseUniform(fmt.Sprintf("directionalColor%d", index), l.Color.Mul(l.Intensity))
	program.UseUniform(fmt.Sprintf("directionalDirection%d", index), l.Direction)
}

// Shade implements Light.
func (l *DirectionalLight) Shade(surface, normal, _ mgl32.Vec3) mgl32.Vec3 {
	toLight := l.Direction.Mul(-1)
	if toLight.Len() == 0 {
		return mgl32.Vec3{}
	}
	diffuse := math32.Max(normal.Dot(toLight.Normalize()), 0)
	return mulElem(surface, l.Color.Mul(l.Intensity*diffuse))
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
