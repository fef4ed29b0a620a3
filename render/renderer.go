// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/volume"
)

var (
	// ErrNilTarget is returned when Render is called without a target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNoCPUAccess is returned when the target has no pixel memory.
	ErrNoCPUAccess = errors.New("render: target does not support CPU rendering")

	// ErrUnsupportedFormat is returned for target formats other than RGBA8.
	ErrUnsupportedFormat = errors.New("render: unsupported target format")

	// ErrNilCamera is returned when Render is called without a camera.
	ErrNilCamera = errors.New("render: nil camera")

	// ErrNotCPUShader is returned when a material cannot be evaluated on
	// the CPU.
	ErrNotCPUShader = errors.New("render: material does not implement volume.CPUShader")
)

// Renderer draws materials to a render target.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be used
// from a single goroutine, or external synchronization must be used.
type Renderer interface {
	// Render draws every material, in SortMaterials order, over the
	// current contents of target as seen from camera.
	Render(target RenderTarget, camera *volume.Camera, lights []volume.Light, materials ...volume.Material) error

	// Flush ensures all pending rendering operations are complete.
	Flush() error
}

// SortMaterials returns the draw order: opaque materials first, then
// transparent ones. The order within each class is preserved.
func SortMaterials(materials []volume.Material) []volume.Material {
	out := make([]volume.Material, 0, len(materials))
	for _, m := range materials {
		if m != nil && m.MaterialType() == volume.MaterialTypeOpaque {
			out = append(out, m)
		}
	}
	for _, m := range materials {
		if m != nil && m.MaterialType() == volume.MaterialTypeTransparent {
			out = append(out, m)
		}
	}
	return out
}
