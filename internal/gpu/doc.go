// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu owns the HAL objects behind volume materials.
//
// It is an internal package used by the volume library. It compiles WGSL
// with naga, reflects the resource bindings a source declares, uploads
// uniforms by name and allocates 3-D density textures on a device borrowed
// from the host application.
//
// # Programs
//
// NewProgram compiles a complete fragment source into a shader module and
// records the resource bindings of its module-scope variables, read from
// naga's IR. A BindingSet holds the values of one draw: uniform buffers are
// created the first time a uniform is written and sized from the declared
// WGSL type, rounded up to 16 bytes. The host renderer builds bind groups
// from Bindings and the set's UniformBuffer, TextureView and Sampler.
//
// # Textures
//
// VolumeTexture is an R8Unorm 3-D texture with a linear clamp-to-edge
// sampler. Its lifetime is explicit: Destroy releases the texture, view
// and sampler.
//
// # Logging
//
// The package logs through SetLogger, configured from volume.SetLogger.
package gpu
