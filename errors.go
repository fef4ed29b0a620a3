package volume

import "errors"

// Construction errors for voxel grids. Malformed grids are rejected when a
// grid is created or uploaded, never at render time.
var (
	// ErrInvalidGridDimensions is returned when any grid dimension is below 1.
	ErrInvalidGridDimensions = errors.New("volume: voxel grid dimensions must be at least 1")

	// ErrEmptyGrid is returned when a grid has no samples.
	ErrEmptyGrid = errors.New("volume: voxel grid has no samples")

	// ErrGridDataSize is returned when the sample count does not match the
	// declared resolution.
	ErrGridDataSize = errors.New("volume: voxel grid sample count does not match resolution")

	// ErrInvalidGridSize is returned when a world-space extent component is
	// not strictly positive.
	ErrInvalidGridSize = errors.New("volume: voxel grid size must be positive")
)

var (
	// ErrNilDevice is returned when a Context is created without a device or queue.
	ErrNilDevice = errors.New("volume: nil device or queue")

	// ErrNilContext is returned by operations that need a GPU context.
	ErrNilContext = errors.New("volume: nil context")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HAL device and queue handles.
	ErrNoHALProvider = errors.New("volume: provider does not expose HAL device and queue")

	// ErrShaderCompile wraps every shader compilation failure. It is fatal
	// for the program being built; nothing is retried.
	ErrShaderCompile = errors.New("volume: shader compilation failed")

	// ErrUnsupportedUniform is returned when a uniform value has no WGSL encoding.
	ErrUnsupportedUniform = errors.New("volume: unsupported uniform value type")
)
