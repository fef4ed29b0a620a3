// Package volume provides materials for a WebGPU scene renderer, centred on
// a volume projection material that renders minimum, maximum or average
// intensity projections of 3-D density grids.
//
// # Overview
//
// A material produces a WGSL fragment source for the active lights and
// uploads the uniforms and textures that source declares. The host renderer
// owns meshes, pipelines and draw order; volume owns shader assembly,
// uniform binding and the GPU resources of its textures.
//
// # Quick Start
//
//	ctx, err := volume.NewContext(device, queue)
//	grid, _ := volume.NewVoxelGridFromFunc(64, 64, 64, mgl32.Vec3{1, 1, 1}, density)
//
//	mat, err := volume.NewVolumeProjectionMaterialFromGrid(ctx, grid)
//	defer mat.Release()
//	mat.RenderingStyle = volume.AverageIntensityProjection
//
//	prog, err := ctx.Compile("volume", mat.FragmentShaderSource(lights))
//	mat.UseUniforms(prog, camera, lights)
//
// # Shader assembly
//
// The fragment source is the concatenation of, in order, the lights
// segment, the tone mapping segment, the color mapping segment and the
// material body. Segments declare their own bindings: group 0 belongs to
// the material, group 1 to lights and group 2 to tone and color mapping.
// The projection body is identical for every rendering style; the style is
// the renderingStyle uniform, so all styles share one compiled program.
//
// # Resources
//
// Texture3D is reference counted and released explicitly. Every holder
// calls Release when done; the GPU texture is destroyed with the last
// reference, never by a finalizer.
//
// # CPU evaluation
//
// Project, IntersectBox and the Apply methods of ToneMapping and
// ColorMapping mirror the WGSL code exactly. The render package uses them
// to draw materials without a GPU.
package volume
