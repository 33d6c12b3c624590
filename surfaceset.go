package ggframe

import (
	"fmt"

	"github.com/gogpu/gg/scene"
	"github.com/gogpu/wgpu/hal"
)

// RenderMode controls how a SurfaceSet delivers rendered frames to the host.
type RenderMode int

const (
	// RenderModeDirect alternates between two surfaces and hands the host
	// a texture view each tick. The host composites the view while the
	// next tick renders into the other surface. No pixels cross the
	// GPU/CPU boundary.
	RenderModeDirect RenderMode = iota

	// RenderModeReadback renders into a single surface and copies the
	// result to CPU pixels after every tick. Use this when the host
	// consumes raw RGBA data instead of texture views.
	RenderModeReadback
)

// String returns a human-readable mode name for logging.
func (m RenderMode) String() string {
	switch m {
	case RenderModeReadback:
		return "readback"
	default:
		return "direct"
	}
}

// SurfaceSet owns the render target surfaces for one frame driver.
//
// In direct mode it holds two surfaces and flips between them before each
// render, so the view handed out on tick N stays untouched while tick N+1
// draws. In readback mode it holds one readable surface and a [Readback]
// that drains it after every render.
type SurfaceSet struct {
	device hal.Device
	mode   RenderMode

	surfaces [2]*Surface
	current  int

	readback *Readback
}

// NewSurfaceSet allocates the surfaces for the given mode at the given
// size. Zero dimensions are clamped to 1x1, matching [NewSurface].
func NewSurfaceSet(device hal.Device, queue hal.Queue, width, height uint32, mode RenderMode) (*SurfaceSet, error) {
	set := &SurfaceSet{
		device: device,
		mode:   mode,
	}
	switch mode {
	case RenderModeReadback:
		s, err := NewSurface(device, width, height, true, "frame_surface")
		if err != nil {
			return nil, err
		}
		set.surfaces[0] = s
		rb, err := NewReadback(device, queue, width, height, "frame_readback")
		if err != nil {
			set.Destroy()
			return nil, err
		}
		set.readback = rb
	default:
		for i := range set.surfaces {
			s, err := NewSurface(device, width, height, false, fmt.Sprintf("frame_surface%d", i))
			if err != nil {
				set.Destroy()
				return nil, err
			}
			set.surfaces[i] = s
		}
	}
	return set, nil
}

// Render advances to the next target surface, invokes the scene renderer
// on it, and returns the finished frame.
//
// In direct mode the flip happens before rendering, so the previously
// returned frame's view is never drawn over while the host still holds
// it. In readback mode the returned frame carries pixels owned by the
// set's readback buffer, valid until the next Render or Resize.
func (set *SurfaceSet) Render(r SceneRenderer, sc *scene.Scene) (Frame, error) {
	target := set.surfaces[0]
	if set.mode == RenderModeDirect {
		set.current = (set.current + 1) % len(set.surfaces)
		target = set.surfaces[set.current]
	}

	if err := r.Render(sc, target); err != nil {
		return Frame{}, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	frame := Frame{
		View:   target.View(),
		Width:  target.Width(),
		Height: target.Height(),
	}
	if set.mode == RenderModeReadback {
		pixels, err := set.readback.Read(target)
		if err != nil {
			return Frame{}, err
		}
		frame.Pixels = pixels
	}
	return frame, nil
}

// Resize recreates every surface (and the readback staging buffer) at the
// new size. The alternation index is preserved so direct-mode flipping
// continues its cadence across resizes.
func (set *SurfaceSet) Resize(width, height uint32) error {
	for _, s := range set.surfaces {
		if s == nil {
			continue
		}
		if err := s.Resize(width, height); err != nil {
			return err
		}
	}
	if set.readback != nil {
		if err := set.readback.Resize(width, height); err != nil {
			return err
		}
	}
	return nil
}

// Mode returns the delivery mode the set was created with.
func (set *SurfaceSet) Mode() RenderMode { return set.mode }

// Index returns the index of the surface the last Render drew into.
func (set *SurfaceSet) Index() int { return set.current }

// Width returns the current surface width in pixels.
func (set *SurfaceSet) Width() uint32 { return set.surfaces[0].Width() }

// Height returns the current surface height in pixels.
func (set *SurfaceSet) Height() uint32 { return set.surfaces[0].Height() }

// Destroy releases all surfaces and the readback pipeline. Safe to call
// more than once.
func (set *SurfaceSet) Destroy() {
	if set.readback != nil {
		set.readback.Destroy()
		set.readback = nil
	}
	for i := len(set.surfaces) - 1; i >= 0; i-- {
		if set.surfaces[i] != nil {
			set.surfaces[i].Destroy()
			set.surfaces[i] = nil
		}
	}
}
