package ggframe

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Host is the embedding side of the frame lifecycle. A windowing
// application implements it once and forwards its lifecycle callbacks to
// [Driver.Notify]; the driver calls back into the host for sizing and
// frame delivery.
//
// The host owns the GPU context and the tick cadence. It must guarantee
// that Notify calls never overlap; the driver runs everything on the
// caller's goroutine and spawns none of its own.
type Host interface {
	// DeviceProvider returns the host's shared GPU context. The driver
	// never creates a device of its own; setup fails with
	// [ErrDeviceUnavailable] when the provider does not expose usable
	// HAL handles.
	DeviceProvider() gpucontext.DeviceProvider

	// RenderSize returns the current render area in pixels. Called once
	// per tick before rendering; a zero dimension skips the tick.
	RenderSize() (width, height uint32)

	// Present delivers a finished frame. In direct mode the frame
	// carries a texture view the host composites; in readback mode it
	// carries pixels. Either is valid only until the next tick.
	Present(frame Frame)

	// RequestRedraw asks the host to schedule another tick. The driver
	// calls it at the end of every non-skipped tick to keep continuous
	// animation going on hosts that only repaint on demand.
	RequestRedraw()
}

// Frame is one rendered frame as delivered to [Host.Present].
type Frame struct {
	// View is the texture view the frame was rendered into. In direct
	// mode the host composites it; the driver will not draw over it
	// before the next Present.
	View hal.TextureView

	// Pixels holds tight RGBA rows in readback mode, nil in direct
	// mode. The slice is reused; copy it to keep it past the tick.
	Pixels []byte

	// Width and Height are the frame dimensions in pixels.
	Width  uint32
	Height uint32
}

// halFromProvider extracts the wgpu HAL device and queue from a shared
// GPU context. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func halFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, fmt.Errorf("%w: nil provider", ErrDeviceUnavailable)
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: provider does not expose HAL types", ErrDeviceUnavailable)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrDeviceUnavailable)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrDeviceUnavailable)
	}
	return device, queue, nil
}
