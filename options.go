package volume

// MaterialOption configures a material during creation.
//
// Example:
//
//	m := volume.NewVolumeProjectionMaterial(tex, size,
//	    volume.WithRenderingStyle(volume.AverageIntensityProjection))
type MaterialOption func(*materialOptions)

// materialOptions holds optional configuration for material creation.
type materialOptions struct {
	style RenderingStyle
	steps int
}

// defaultMaterialOptions returns the default material options.
func defaultMaterialOptions() materialOptions {
	return materialOptions{
		style: MaximumIntensityProjection,
	}
}

// WithRenderingStyle sets the reduction applied along each ray.
// Invalid styles are ignored.
func WithRenderingStyle(style RenderingStyle) MaterialOption {
	return func(o *materialOptions) {
		if style.Valid() {
			o.style = style
		}
	}
}

// WithStepCount sets the number of samples the CPU path takes per ray.
// Values below 1 are ignored.
func WithStepCount(steps int) MaterialOption {
	return func(o *materialOptions) {
		if steps >= 1 {
			o.steps = steps
		}
	}
}
