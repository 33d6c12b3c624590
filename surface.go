package ggframe

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SurfaceFormat is the pixel format of every render surface. RGBA8Unorm
// matches the byte order of [gg.Pixmap] data, so pixmap uploads and
// readback output need no channel swizzling.
const SurfaceFormat = gputypes.TextureFormatRGBA8Unorm

// surfaceBytesPerPixel is the per-pixel size of SurfaceFormat.
const surfaceBytesPerPixel = 4

// Surface is a GPU texture sized to the host's render area, together with
// its view. Scene renderers draw into the view; hosts composite it or read
// it back through a [Readback].
//
// A Surface is always a 2D single-sample texture with one mip level.
// Zero requested dimensions are clamped to 1x1 so texture creation never
// fails on a collapsed host window; the per-tick size check in [Driver]
// skips rendering in that state anyway.
type Surface struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView

	width  uint32
	height uint32
	usage  gputypes.TextureUsage
	label  string
}

// NewSurface allocates a surface of the given size. The usage always
// permits render attachment, sampling, and pixmap upload; withReadback
// additionally permits copies into a staging buffer.
//
// The label distinguishes GPU debug labels between surfaces of a set.
func NewSurface(device hal.Device, width, height uint32, withReadback bool, label string) (*Surface, error) {
	usage := gputypes.TextureUsageRenderAttachment |
		gputypes.TextureUsageTextureBinding |
		gputypes.TextureUsageCopyDst
	if withReadback {
		usage |= gputypes.TextureUsageCopySrc
	}
	s := &Surface{
		device: device,
		usage:  usage,
		label:  label,
	}
	if err := s.create(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// create allocates the texture and view at the given size, clamping zero
// dimensions to 1. The caller must have destroyed any previous texture.
func (s *Surface) create(width, height uint32) error {
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}

	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         s.label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        SurfaceFormat,
		Usage:         s.usage,
	})
	if err != nil {
		return fmt.Errorf("create surface texture: %w", err)
	}
	s.texture = tex

	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: s.label + "_view",
	})
	if err != nil {
		s.Destroy()
		return fmt.Errorf("create surface view: %w", err)
	}
	s.view = view

	s.width = width
	s.height = height
	return nil
}

// Resize recreates the texture at the new size. If the clamped dimensions
// match the current size this is a no-op and the existing texture survives,
// so per-tick resize checks are cheap.
func (s *Surface) Resize(width, height uint32) error {
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}
	if s.width == width && s.height == height && s.texture != nil {
		return nil
	}
	s.Destroy()
	return s.create(width, height)
}

// Texture returns the underlying texture for copy encoding.
func (s *Surface) Texture() hal.Texture { return s.texture }

// View returns the texture view scene renderers draw into.
func (s *Surface) View() hal.TextureView { return s.view }

// Width returns the current texture width in pixels.
func (s *Surface) Width() uint32 { return s.width }

// Height returns the current texture height in pixels.
func (s *Surface) Height() uint32 { return s.height }

// Readable reports whether the surface was created with readback support.
func (s *Surface) Readable() bool {
	return s.usage&gputypes.TextureUsageCopySrc != 0
}

// Destroy releases the texture and view. Safe to call more than once.
func (s *Surface) Destroy() {
	if s.view != nil {
		s.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.texture != nil {
		s.device.DestroyTexture(s.texture)
		s.texture = nil
	}
	s.width = 0
	s.height = 0
}
