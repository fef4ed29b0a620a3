package volume

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a noop HAL device that is destroyed when the test ends.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	device, queue := createNoopDevice(t)
	ctx, err := NewContext(device, queue)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx
}

func uniformGrid(t *testing.T, n int, density float32) *VoxelGrid {
	t.Helper()
	g, err := NewVoxelGridFromFunc(n, n, n, mgl32.Vec3{1, 1, 1}, func(_, _, _ float32) float32 {
		return density
	})
	if err != nil {
		t.Fatalf("NewVoxelGridFromFunc: %v", err)
	}
	return g
}

func newHostTexture(t *testing.T, density float32) *Texture3D {
	t.Helper()
	tex, err := NewHostTexture3D(uniformGrid(t, 2, density))
	if err != nil {
		t.Fatalf("NewHostTexture3D: %v", err)
	}
	return tex
}

// skipUnsupported skips when naga cannot compile the shader yet.
func skipUnsupported(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") ||
		strings.Contains(msg, "unsupported") {
		t.Skipf("Skipping: naga feature not yet implemented: %v", err)
	}
}

// uniformCall is one recorded Program call.
type uniformCall struct {
	name  string
	value any
}

// recordingProgram records every uniform and texture bound to it.
type recordingProgram struct {
	calls []uniformCall
}

func (p *recordingProgram) UseUniform(name string, value any) {
	p.calls = append(p.calls, uniformCall{name: name, value: value})
}

func (p *recordingProgram) UseTexture3D(name string, texture *Texture3D) {
	p.calls = append(p.calls, uniformCall{name: name, value: texture})
}

func (p *recordingProgram) names() []string {
	out := make([]string, len(p.calls))
	for i, c := range p.calls {
		out[i] = c.name
	}
	return out
}

func (p *recordingProgram) value(name string) (any, bool) {
	for _, c := range p.calls {
		if c.name == name {
			return c.value, true
		}
	}
	return nil, false
}
