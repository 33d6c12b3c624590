// Package ggframe embeds gg scene rendering in a host GUI's frame loop.
//
// # Overview
//
// ggframe manages the render-surface lifecycle for applications that
// redraw a gg scene every frame inside an existing windowing host. The
// host keeps ownership of the window, the GPU device, and the tick
// cadence; ggframe owns the surfaces, the per-tick resize and rebuild,
// frame pacing statistics, and delivery of finished frames back to the
// host.
//
// # Quick Start
//
//	import "github.com/gogpu/ggframe"
//
//	// Build the scene every tick. Elapsed time drives animation.
//	build := func(sc *scene.Scene, elapsed time.Duration, w, h uint32) {
//		sc.Fill(scene.FillNonZero, scene.IdentityAffine(),
//			scene.SolidBrush(gg.RGB(0.95, 0.55, 0.66)),
//			scene.NewCircleShape(float32(w)/2, float32(h)/2, 120))
//	}
//
//	d := ggframe.NewDriver(host, build)
//
//	// Forward host lifecycle callbacks:
//	//   context ready      -> d.Notify(ggframe.PhaseSetup)
//	//   each frame         -> d.Notify(ggframe.PhaseBeforeRender)
//	//   context lost/close -> d.Notify(ggframe.PhaseTeardown)
//
// # Delivery Modes
//
// Direct mode (default) alternates between two GPU surfaces and hands
// the host a texture view each tick; nothing crosses the GPU/CPU
// boundary. Readback mode ([WithReadback]) renders to a single surface
// and delivers tight RGBA pixels instead, for hosts that composite from
// CPU memory.
//
// # Threading
//
// The driver spawns no goroutines. Every method runs on the goroutine
// that calls [Driver.Notify], and the [Host] contract guarantees ticks
// never overlap.
//
// # Errors
//
// Setup failures (no usable device, renderer init) are fatal and
// returned from Notify. Per-tick render failures are logged through the
// package logger, counted, and skipped, so one bad frame never tears
// down the session.
package ggframe
