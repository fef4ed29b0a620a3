package volume

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/volume/internal/gpu"
)

// Context is the GPU device and queue materials allocate resources on.
//
// The context is borrowed from the host application: volume never creates
// or destroys the device. All calls that use a Context must happen on the
// thread that owns the device.
type Context struct {
	device hal.Device
	queue  hal.Queue
}

// NewContext wraps a HAL device and queue owned by the caller.
func NewContext(device hal.Device, queue hal.Queue) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Context{device: device, queue: queue}, nil
}

// NewContextFromProvider extracts the HAL device and queue from a host
// device provider. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewContextFromProvider(provider gpucontext.DeviceProvider) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return NewContext(device, queue)
}

// Device returns the HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// Compile compiles a complete WGSL fragment source, typically the output of
// Material.FragmentShaderSource, into a program whose uniforms can be set
// by name. Any failure wraps ErrShaderCompile.
func (c *Context) Compile(label, source string) (*ShaderProgram, error) {
	if c == nil {
		return nil, ErrNilContext
	}
	p, err := gpu.NewProgram(c.device, c.queue, label, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, label, err)
	}
	return &ShaderProgram{impl: p, set: p.NewBindingSet(), source: source}, nil
}
