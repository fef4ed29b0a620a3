// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws volume materials into render targets.
//
// The package receives its GPU device from the host application through a
// DeviceHandle; it never creates one. Two paths are provided:
//
//   - SoftwareRenderer evaluates materials on the CPU with the same ray
//     marching and color pipeline as the generated WGSL. Materials must
//     implement volume.CPUShader.
//   - GPURenderer compiles each material's fragment source once per light
//     configuration, caches the program and binds the material's uniforms
//     before every draw. Pipelines and draw calls stay with the host.
//
// # Draw order
//
// Both renderers partition materials with SortMaterials: opaque materials
// first, then transparent ones, each group in submission order.
//
// # Usage
//
//	target := render.NewPixmapTarget(512, 512)
//	target.Clear(color.Black)
//
//	r := render.NewSoftwareRenderer()
//	defer r.Close()
//
//	if err := r.Render(target, camera, lights, material); err != nil {
//	    log.Fatal(err)
//	}
//	_ = target.SavePNG("volume.png")
package render
