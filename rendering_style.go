package volume

import (
	"fmt"
	"strings"
)

// RenderingStyle selects how the densities met along a ray are reduced to
// one value. The numeric values are the ones uploaded to the shader's
// renderingStyle uniform.
type RenderingStyle uint32

const (
	// MinimumIntensityProjection keeps the smallest density on the ray.
	MinimumIntensityProjection RenderingStyle = iota
	// MaximumIntensityProjection keeps the largest density on the ray.
	MaximumIntensityProjection
	// AverageIntensityProjection averages the densities on the ray.
	AverageIntensityProjection
)

// String returns the style name.
func (s RenderingStyle) String() string {
	switch s {
	case MinimumIntensityProjection:
		return "MinimumIntensityProjection"
	case MaximumIntensityProjection:
		return "MaximumIntensityProjection"
	case AverageIntensityProjection:
		return "AverageIntensityProjection"
	default:
		return fmt.Sprintf("RenderingStyle(%d)", uint32(s))
	}
}

// Valid reports whether s is one of the defined styles.
func (s RenderingStyle) Valid() bool {
	return s <= AverageIntensityProjection
}

// ParseRenderingStyle parses a style name. Besides the full names it
// accepts "min", "max", "mip", "avg" and "average", case-insensitively.
func ParseRenderingStyle(name string) (RenderingStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "min", "minip", "minimum", "minimumintensityprojection":
		return MinimumIntensityProjection, nil
	case "max", "mip", "maximum", "maximumintensityprojection":
		return MaximumIntensityProjection, nil
	case "avg", "aip", "average", "averageintensityprojection":
		return AverageIntensityProjection, nil
	default:
		return 0, fmt.Errorf("volume: unknown rendering style %q", name)
	}
}
