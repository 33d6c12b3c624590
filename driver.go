package ggframe

import (
	"fmt"
	"time"

	"github.com/gogpu/gg/scene"
	"github.com/gogpu/wgpu/hal"
)

// Driver runs the frame lifecycle for one embedded render area. It is
// driven entirely by [Driver.Notify]: the host forwards its lifecycle
// callbacks and the driver acquires the device, sizes the surfaces,
// rebuilds the scene, renders, and hands frames back through
// [Host.Present].
//
// The driver spawns no goroutines and holds no locks. All methods must
// run on the host's tick goroutine, which the [Host] contract already
// guarantees never overlaps itself.
type Driver struct {
	host  Host
	build SceneFunc
	opts  driverOptions

	device   hal.Device
	queue    hal.Queue
	renderer SceneRenderer
	surfaces *SurfaceSet
	sc       *scene.Scene

	start time.Time
	fps   fpsCounter
	ready bool

	frames  uint64
	dropped uint64
}

// NewDriver creates a driver for the given host. The build function is
// invoked every tick to populate the scene. No GPU work happens until
// the host delivers [PhaseSetup].
func NewDriver(host Host, build SceneFunc, opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Driver{
		host:  host,
		build: build,
		opts:  o,
	}
}

// Notify advances the lifecycle for one host callback. Setup errors are
// fatal and returned; per-tick render failures are logged, counted in
// [Driver.Dropped], and absorbed so one bad frame never ends the
// session. Phases the driver does not act on are ignored.
func (d *Driver) Notify(phase Phase) error {
	switch phase {
	case PhaseSetup:
		return d.setup()
	case PhaseBeforeRender:
		return d.beforeRender()
	case PhaseTeardown:
		d.teardown()
		return nil
	default:
		return nil
	}
}

// setup acquires the device from the host, initializes the renderer, and
// allocates the surfaces. A repeated setup tears the previous state down
// first, so a host may cycle its rendering context freely.
func (d *Driver) setup() error {
	if d.ready {
		d.teardown()
	}

	device, queue, err := halFromProvider(d.host.DeviceProvider())
	if err != nil {
		return err
	}
	d.device = device
	d.queue = queue

	renderer := d.opts.renderer
	if renderer == nil {
		pr := NewPixmapRenderer()
		pr.SetClearColor(d.opts.clear)
		renderer = pr
	}
	if err := renderer.Init(device, queue); err != nil {
		d.device = nil
		d.queue = nil
		return fmt.Errorf("%w: %w", ErrRendererInit, err)
	}
	d.renderer = renderer

	width, height := d.host.RenderSize()
	surfaces, err := NewSurfaceSet(device, queue, width, height, d.opts.mode)
	if err != nil {
		d.renderer.Destroy()
		d.renderer = nil
		d.device = nil
		d.queue = nil
		return fmt.Errorf("create surfaces: %w", err)
	}
	d.surfaces = surfaces

	d.sc = scene.NewScene()
	d.start = time.Now()
	d.fps.reset()
	d.ready = true

	Logger().Info("frame driver ready",
		"mode", d.opts.mode.String(),
		"width", width,
		"height", height)
	return nil
}

// beforeRender runs one tick: size check, resize, scene rebuild, render,
// present. Render and resize failures drop the tick instead of failing
// the session; another redraw is still requested so the next tick can
// recover.
func (d *Driver) beforeRender() error {
	if !d.ready {
		return ErrNotReady
	}

	width, height := d.host.RenderSize()
	if width == 0 || height == 0 {
		Logger().Debug("skipping tick for zero-size render area")
		return nil
	}

	// Resize before building the scene so shapes see final dimensions.
	if err := d.surfaces.Resize(width, height); err != nil {
		Logger().Warn("surface resize failed, dropping tick", "error", err)
		d.dropped++
		d.host.RequestRedraw()
		return nil
	}

	d.sc.Reset()
	d.build(d.sc, time.Since(d.start), width, height)

	frame, err := d.surfaces.Render(d.renderer, d.sc)
	if err != nil {
		Logger().Warn("render failed, dropping tick", "error", err)
		d.dropped++
		d.host.RequestRedraw()
		return nil
	}

	d.host.Present(frame)
	d.frames++

	if fps, ok := d.fps.Tick(time.Now()); ok {
		Logger().Debug("frame rate", "fps", fps)
		if d.opts.fpsFunc != nil {
			d.opts.fpsFunc(fps)
		}
	}

	d.host.RequestRedraw()
	return nil
}

// teardown drops all GPU state. Safe before setup and safe to repeat;
// the shared device and queue belong to the host and are not destroyed.
func (d *Driver) teardown() {
	if d.renderer != nil {
		d.renderer.Destroy()
		d.renderer = nil
	}
	if d.surfaces != nil {
		d.surfaces.Destroy()
		d.surfaces = nil
	}
	d.sc = nil
	d.device = nil
	d.queue = nil
	if d.ready {
		Logger().Info("frame driver torn down",
			"frames", d.frames,
			"dropped", d.dropped)
	}
	d.ready = false
}

// Frames returns the number of frames presented since creation.
func (d *Driver) Frames() uint64 { return d.frames }

// Dropped returns the number of ticks lost to render or resize failures.
func (d *Driver) Dropped() uint64 { return d.dropped }
