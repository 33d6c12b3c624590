package ggframe

import "errors"

// Sentinel errors for the frame lifecycle. Setup errors are fatal and
// surface through [Driver.Notify]; per-tick render errors are logged and
// the tick is skipped instead.
var (
	// ErrDeviceUnavailable is returned from setup when the host cannot
	// supply a usable GPU device and queue.
	ErrDeviceUnavailable = errors.New("ggframe: graphics device unavailable")

	// ErrRendererInit is returned from setup when the scene renderer
	// fails to initialize against the acquired device.
	ErrRendererInit = errors.New("ggframe: renderer initialization failed")

	// ErrRenderFailed wraps a scene renderer failure on a single tick.
	// The driver logs it and drops the frame rather than returning it.
	ErrRenderFailed = errors.New("ggframe: render failed")

	// ErrReadbackAborted is returned when a pixel readback cannot
	// complete, either because the GPU wait failed or because the
	// pipeline was destroyed.
	ErrReadbackAborted = errors.New("ggframe: readback aborted")

	// ErrNotReady is returned when a frame is requested before setup
	// has run or after teardown.
	ErrNotReady = errors.New("ggframe: driver not set up")
)
