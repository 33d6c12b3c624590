package ggframe

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/backend"
	"github.com/gogpu/gg/scene"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/colornames"
)

// SceneRenderer turns a scene description into pixels on a target surface.
// The driver owns the lifecycle: Init once at setup with the host's device
// and queue, Render once per tick, Destroy at teardown.
//
// Implementations must not retain the scene between ticks; the driver
// resets and rebuilds it every frame.
type SceneRenderer interface {
	// Init prepares GPU resources against the host's device. A failure
	// here is fatal for setup.
	Init(device hal.Device, queue hal.Queue) error

	// Render draws the scene into the target surface. A failure here is
	// not fatal; the driver logs it and skips the tick.
	Render(sc *scene.Scene, target *Surface) error

	// Destroy releases renderer resources. Called at teardown, before
	// the surfaces are dropped.
	Destroy()
}

// SceneFunc builds the scene for one tick. The driver resets the scene,
// then calls the function with the time elapsed since setup and the
// current render size so animations can scale to the window.
type SceneFunc func(sc *scene.Scene, elapsed time.Duration, width, height uint32)

// DefaultClearColor is the background painted before each scene when no
// other clear color is configured.
var DefaultClearColor = gg.FromColor(colornames.Darkslateblue)

// PixmapRenderer is the bundled SceneRenderer. It rasterizes scenes on
// the CPU through the registered gg backend and uploads the pixmap to the
// target surface with a queue texture write.
//
// The pixmap is reused across ticks and recreated only when the target
// size changes, so the steady state allocates nothing.
type PixmapRenderer struct {
	queue   hal.Queue
	backend backend.RenderBackend
	pixmap  *gg.Pixmap
	clear   gg.RGBA
}

// NewPixmapRenderer creates a renderer that clears to [DefaultClearColor].
func NewPixmapRenderer() *PixmapRenderer {
	return &PixmapRenderer{clear: DefaultClearColor}
}

// SetClearColor replaces the background color painted before each scene.
func (r *PixmapRenderer) SetClearColor(c gg.RGBA) {
	r.clear = c
}

// Init selects the best available gg backend. The device is unused; this
// renderer rasterizes on the CPU and only needs the queue for uploads.
func (r *PixmapRenderer) Init(_ hal.Device, queue hal.Queue) error {
	b, err := backend.InitDefault()
	if err != nil {
		return fmt.Errorf("init render backend: %w", err)
	}
	r.backend = b
	r.queue = queue
	return nil
}

// Render rasterizes the scene into the pixmap and uploads it to the
// target surface.
func (r *PixmapRenderer) Render(sc *scene.Scene, target *Surface) error {
	if r.backend == nil {
		return ErrNotReady
	}

	w := int(target.Width())
	h := int(target.Height())
	if r.pixmap == nil || r.pixmap.Width() != w || r.pixmap.Height() != h {
		r.pixmap = gg.NewPixmap(w, h)
	}

	r.pixmap.Clear(r.clear)
	if err := r.backend.RenderScene(r.pixmap, sc); err != nil {
		return fmt.Errorf("render scene: %w", err)
	}

	r.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  target.Texture(),
			MipLevel: 0,
		},
		r.pixmap.Data(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  target.Width() * surfaceBytesPerPixel,
			RowsPerImage: target.Height(),
		},
		&hal.Extent3D{Width: target.Width(), Height: target.Height(), DepthOrArrayLayers: 1},
	)
	return nil
}

// Destroy closes the backend and drops the pixmap.
func (r *PixmapRenderer) Destroy() {
	if r.backend != nil {
		r.backend.Close()
		r.backend = nil
	}
	r.pixmap = nil
	r.queue = nil
}
