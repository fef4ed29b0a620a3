// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrTextureDataSize is returned when the voxel payload does not match the
// requested extent.
var ErrTextureDataSize = errors.New("gpu: texture data size does not match extent")

// VolumeTexture is a single-channel 3-D texture with its view and a linear
// clamp-to-edge sampler.
type VolumeTexture struct {
	device hal.Device

	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	width, height, depth uint32
}

// NewVolumeTexture creates an R8Unorm 3-D texture and uploads data, one
// byte per voxel with x varying fastest, then y, then z.
func NewVolumeTexture(device hal.Device, queue hal.Queue, label string, width, height, depth uint32, data []byte) (*VolumeTexture, error) {
	if uint64(len(data)) != uint64(width)*uint64(height)*uint64(depth) {
		return nil, fmt.Errorf("%w: %d bytes for %dx%dx%d", ErrTextureDataSize, len(data), width, height, depth)
	}

	vt := &VolumeTexture{
		device: device,
		width:  width,
		height: height,
		depth:  depth,
	}

	size := hal.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: depth,
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension3D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create volume texture: %w", err)
	}
	vt.texture = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatR8Unorm,
		Dimension:     gputypes.TextureViewDimension3D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		vt.Destroy()
		return nil, fmt.Errorf("create volume texture view: %w", err)
	}
	vt.view = view

	// Linear filtering between voxels, clamped so the box faces do not
	// wrap around to the opposite side of the volume.
	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		vt.Destroy()
		return nil, fmt.Errorf("create volume sampler: %w", err)
	}
	vt.sampler = sampler

	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width,
			RowsPerImage: height,
		},
		&size,
	)

	slogger().Debug("gpu: volume texture uploaded",
		"label", label,
		"width", width,
		"height", height,
		"depth", depth,
	)
	return vt, nil
}

// Texture returns the HAL texture.
func (vt *VolumeTexture) Texture() hal.Texture { return vt.texture }

// View returns the 3-D texture view.
func (vt *VolumeTexture) View() hal.TextureView { return vt.view }

// Sampler returns the linear clamp-to-edge sampler.
func (vt *VolumeTexture) Sampler() hal.Sampler { return vt.sampler }

// Size returns the texture extent in voxels.
func (vt *VolumeTexture) Size() (width, height, depth uint32) {
	return vt.width, vt.height, vt.depth
}

// Destroy releases the sampler, view and texture. Safe to call more than once.
func (vt *VolumeTexture) Destroy() {
	if vt.device == nil {
		return
	}
	if vt.sampler != nil {
		vt.device.DestroySampler(vt.sampler)
		vt.sampler = nil
	}
	if vt.view != nil {
		vt.device.DestroyTextureView(vt.view)
		vt.view = nil
	}
	if vt.texture != nil {
		vt.device.DestroyTexture(vt.texture)
		vt.texture = nil
	}
}
