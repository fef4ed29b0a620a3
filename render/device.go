// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/volume"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (for example gogpu.App) implements DeviceHandle and passes it
// to the renderer, which shares the device instead of creating its own.
// To be usable by GPURenderer the handle must also expose the HAL objects
// through HalDevice() any and HalQueue() any.
type DeviceHandle = gpucontext.DeviceProvider

// NewContext builds the material context from a host device handle.
func NewContext(handle DeviceHandle) (*volume.Context, error) {
	if handle == nil {
		return nil, volume.ErrNilDevice
	}
	return volume.NewContextFromProvider(handle)
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports an unknown adapter for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
