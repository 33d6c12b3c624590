package ggframe

import "github.com/gogpu/gg"

// Option configures a Driver during creation.
// Use functional options to customize driver behavior.
//
// Example:
//
//	// Default direct rendering
//	d := ggframe.NewDriver(host, buildScene)
//
//	// CPU pixel delivery with an FPS report
//	d := ggframe.NewDriver(host, buildScene,
//		ggframe.WithReadback(),
//		ggframe.WithFPSFunc(func(fps int) { log.Printf("fps: %d", fps) }))
type Option func(*driverOptions)

// driverOptions holds optional configuration for Driver creation.
type driverOptions struct {
	renderer SceneRenderer
	mode     RenderMode
	clear    gg.RGBA
	fpsFunc  func(fps int)
}

// defaultOptions returns the default driver options.
func defaultOptions() driverOptions {
	return driverOptions{
		renderer: nil, // Will be set to PixmapRenderer if nil
		mode:     RenderModeDirect,
		clear:    DefaultClearColor,
	}
}

// WithRenderer sets a custom scene renderer for the Driver.
// Use this for dependency injection of GPU or custom renderers.
//
// Example:
//
//	customRenderer := mypackage.NewRenderer()
//	d := ggframe.NewDriver(host, buildScene, ggframe.WithRenderer(customRenderer))
func WithRenderer(r SceneRenderer) Option {
	return func(o *driverOptions) {
		o.renderer = r
	}
}

// WithReadback switches the driver to readback mode: every frame is
// copied to CPU pixels and delivered through [Frame.Pixels] instead of a
// texture view. Use this when the host presents raw RGBA data.
func WithReadback() Option {
	return func(o *driverOptions) {
		o.mode = RenderModeReadback
	}
}

// WithClearColor sets the background color painted before each scene.
// Only the bundled [PixmapRenderer] honors it; a renderer injected with
// [WithRenderer] manages its own background.
func WithClearColor(c gg.RGBA) Option {
	return func(o *driverOptions) {
		o.clear = c
	}
}

// WithFPSFunc installs a callback that receives the rendered frame count
// once per second. The callback runs on the host's tick goroutine, so it
// must return quickly.
//
// Example:
//
//	d := ggframe.NewDriver(host, buildScene,
//		ggframe.WithFPSFunc(func(fps int) { fmt.Println("FPS:", fps) }))
func WithFPSFunc(f func(fps int)) Option {
	return func(o *driverOptions) {
		o.fpsFunc = f
	}
}
