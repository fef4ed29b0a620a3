package volume

import (
	_ "embed"
	"strings"
)

// VolumeProjectionShaderVersion identifies the embedded projection body.
// It changes whenever the body's uniform names or bindings change.
const VolumeProjectionShaderVersion = 2

//go:embed shaders/volume_projection.wgsl
var volumeProjectionShaderSource string

// Uniform and texture names declared by the projection body.
const (
	UniformCameraPosition = "cameraPosition"
	UniformSize           = "size"
	UniformRenderingStyle = "renderingStyle"
	TextureVoxels         = "tex"
)

// VolumeProjectionShaderSource returns the embedded ray-marching body.
func VolumeProjectionShaderSource() string {
	return volumeProjectionShaderSource
}

// AssembleFragmentSource joins shader segments in the given order, each
// followed by a newline. Segments are never reordered or deduplicated;
// later segments may use symbols declared by earlier ones.
func AssembleFragmentSource(segments ...string) string {
	n := 0
	for _, s := range segments {
		n += len(s) + 1
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, s := range segments {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return sb.String()
}
