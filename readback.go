package ggframe

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row pitch required by texture-to-buffer copies.
// WebGPU (and DX12) require BytesPerRow aligned to 256 bytes.
const copyPitchAlignment = 256

// alignedRowBytes returns the staging-buffer row pitch for a surface of the
// given width: width*4 rounded up to the copy pitch alignment.
func alignedRowBytes(width uint32) uint32 {
	return (width*surfaceBytesPerPixel + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// Readback copies a rendered surface into CPU-visible pixels. It owns a
// staging buffer sized for one frame at the current dimensions, reused
// across ticks so the steady state allocates nothing on the GPU.
//
// Read blocks until the GPU signals the copy fence. The wait has no
// overall deadline; a slow frame finishes late rather than failing. Only
// a device error, or a Read after Destroy, aborts with
// [ErrReadbackAborted].
type Readback struct {
	device hal.Device
	queue  hal.Queue

	staging hal.Buffer
	raw     []byte // aligned staging contents, alignedRow*height
	pixels  []byte // tight RGBA output, width*4*height

	width      uint32
	height     uint32
	alignedRow uint32
	label      string
}

// NewReadback allocates a readback pipeline for surfaces of the given size.
func NewReadback(device hal.Device, queue hal.Queue, width, height uint32, label string) (*Readback, error) {
	r := &Readback{
		device: device,
		queue:  queue,
		label:  label,
	}
	if err := r.create(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// create allocates the staging buffer and scratch slices at the given size,
// clamping zero dimensions to 1 to match [Surface].
func (r *Readback) create(width, height uint32) error {
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}

	alignedRow := alignedRowBytes(width)
	size := uint64(alignedRow) * uint64(height)

	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.label + "_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}

	r.staging = staging
	r.raw = make([]byte, size)
	r.pixels = make([]byte, uint64(width)*surfaceBytesPerPixel*uint64(height))
	r.width = width
	r.height = height
	r.alignedRow = alignedRow
	return nil
}

// Resize recreates the staging buffer for the new surface size. A no-op
// when the clamped dimensions already match.
func (r *Readback) Resize(width, height uint32) error {
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}
	if r.width == width && r.height == height && r.staging != nil {
		return nil
	}
	r.Destroy()
	return r.create(width, height)
}

// Read copies the surface into the staging buffer, waits for the GPU, and
// returns tight RGBA pixels with the per-row alignment padding stripped.
//
// The returned slice is owned by the Readback and valid until the next
// Read or Resize. The surface must match the readback dimensions and must
// have been created with readback support.
func (r *Readback) Read(s *Surface) ([]byte, error) {
	if r.staging == nil {
		return nil, ErrReadbackAborted
	}
	if s.Width() != r.width || s.Height() != r.height {
		return nil, fmt.Errorf("ggframe: readback size %dx%d does not match surface %dx%d",
			r.width, r.height, s.Width(), s.Height())
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: r.label + "_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(r.label + "_copy"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// VK-LAYOUT-001: after rendering the texture is in attachment layout.
	// CopyTextureToBuffer requires a transfer-source layout. No-op on
	// Metal, GLES, software, and noop backends.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.Texture(),
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(s.Texture(), r.staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: r.alignedRow, RowsPerImage: r.height},
		TextureBase:  hal.ImageCopyTexture{Texture: s.Texture(), MipLevel: 0},
		Size:         hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
	}})

	// Transition back so the next tick's render pass sees the texture in
	// attachment layout again.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.Texture(),
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	// Submit and wait. The fence is the one-shot completion signal for
	// this copy; each Read creates and destroys its own.
	fence, err := r.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	for {
		ok, err := r.device.Wait(fence, 1, 5*time.Second)
		if err != nil {
			return nil, fmt.Errorf("%w: wait for GPU: %w", ErrReadbackAborted, err)
		}
		if ok {
			break
		}
	}

	if err := r.queue.ReadBuffer(r.staging, 0, r.raw); err != nil {
		return nil, fmt.Errorf("%w: read staging buffer: %w", ErrReadbackAborted, err)
	}

	rowBytes := r.width * surfaceBytesPerPixel
	if r.alignedRow == rowBytes {
		// No padding, fast path.
		copy(r.pixels, r.raw)
		return r.pixels, nil
	}
	for row := uint32(0); row < r.height; row++ {
		srcOff := int(row) * int(r.alignedRow)
		dstOff := int(row) * int(rowBytes)
		copy(r.pixels[dstOff:dstOff+int(rowBytes)], r.raw[srcOff:srcOff+int(rowBytes)])
	}
	return r.pixels, nil
}

// Width returns the current readback width in pixels.
func (r *Readback) Width() uint32 { return r.width }

// Height returns the current readback height in pixels.
func (r *Readback) Height() uint32 { return r.height }

// Destroy releases the staging buffer. Safe to call more than once; a
// later Read returns [ErrReadbackAborted].
func (r *Readback) Destroy() {
	if r.staging != nil {
		r.device.DestroyBuffer(r.staging)
		r.staging = nil
	}
	r.raw = nil
	r.pixels = nil
	r.width = 0
	r.height = 0
}
