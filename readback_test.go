package ggframe

import (
	"errors"
	"testing"
)

func TestAlignedRowBytes(t *testing.T) {
	tests := []struct {
		width uint32
		want  uint32
	}{
		{1, 256},
		{64, 256},
		{65, 512},
		{100, 512},
		{128, 512},
		{640, 2560},
		{641, 2816},
	}
	for _, tt := range tests {
		if got := alignedRowBytes(tt.width); got != tt.want {
			t.Errorf("alignedRowBytes(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestNewReadback(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	rb, err := NewReadback(device, queue, 100, 50, "test_readback")
	if err != nil {
		t.Fatalf("NewReadback failed: %v", err)
	}
	defer rb.Destroy()

	if rb.Width() != 100 || rb.Height() != 50 {
		t.Errorf("expected size (100, 50), got (%d, %d)", rb.Width(), rb.Height())
	}
	if rb.staging == nil {
		t.Error("expected non-nil staging buffer")
	}
	// 100 px rows need padding: 400 bytes rounds up to 512.
	if rb.alignedRow != 512 {
		t.Errorf("expected aligned row 512, got %d", rb.alignedRow)
	}
	if len(rb.raw) != 512*50 {
		t.Errorf("expected raw buffer of %d bytes, got %d", 512*50, len(rb.raw))
	}
	if len(rb.pixels) != 100*4*50 {
		t.Errorf("expected pixel buffer of %d bytes, got %d", 100*4*50, len(rb.pixels))
	}
}

func TestReadbackRead(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewSurface(device, 100, 50, true, "test_surface")
	if err != nil {
		t.Fatalf("NewSurface failed: %v", err)
	}
	defer s.Destroy()

	rb, err := NewReadback(device, queue, 100, 50, "test_readback")
	if err != nil {
		t.Fatalf("NewReadback failed: %v", err)
	}
	defer rb.Destroy()

	// The noop backend signals the fence and returns zeroed data, so the
	// full encode, submit, wait, read sequence must succeed.
	pixels, err := rb.Read(s)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(pixels) != 100*4*50 {
		t.Errorf("expected %d tight pixels, got %d", 100*4*50, len(pixels))
	}
}

func TestReadbackReadAlignedWidth(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	// 64 px rows are exactly 256 bytes, exercising the no-padding path.
	s, err := NewSurface(device, 64, 64, true, "test_surface")
	if err != nil {
		t.Fatalf("NewSurface failed: %v", err)
	}
	defer s.Destroy()

	rb, err := NewReadback(device, queue, 64, 64, "test_readback")
	if err != nil {
		t.Fatalf("NewReadback failed: %v", err)
	}
	defer rb.Destroy()

	if rb.alignedRow != 64*4 {
		t.Fatalf("expected no row padding for width 64, aligned row = %d", rb.alignedRow)
	}

	pixels, err := rb.Read(s)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(pixels) != 64*4*64 {
		t.Errorf("expected %d pixels, got %d", 64*4*64, len(pixels))
	}
}

func TestReadbackReadSizeMismatch(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewSurface(device, 200, 200, true, "test_surface")
	if err != nil {
		t.Fatalf("NewSurface failed: %v", err)
	}
	defer s.Destroy()

	rb, err := NewReadback(device, queue, 100, 100, "test_readback")
	if err != nil {
		t.Fatalf("NewReadback failed: %v", err)
	}
	defer rb.Destroy()

	if _, err := rb.Read(s); err == nil {
		t.Error("expected error for mismatched surface size")
	}
}

func TestReadbackResize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	rb, err := NewReadback(device, queue, 100, 100, "test_readback")
	if err != nil {
		t.Fatalf("NewReadback failed: %v", err)
	}
	defer rb.Destroy()

	origStaging := rb.staging

	// Same size is a no-op.
	if err := rb.Resize(100, 100); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if rb.staging != origStaging {
		t.Error("staging buffer was recreated unnecessarily")
	}

	// New size recreates the buffer and scratch slices.
	if err := rb.Resize(300, 200); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if rb.Width() != 300 || rb.Height() != 200 {
		t.Errorf("expected size (300, 200), got (%d, %d)", rb.Width(), rb.Height())
	}
	if rb.staging == origStaging {
		t.Error("expected a new staging buffer after resize")
	}
	if len(rb.pixels) != 300*4*200 {
		t.Errorf("expected pixel buffer of %d bytes, got %d", 300*4*200, len(rb.pixels))
	}
}

func TestReadbackClampsZeroSize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	rb, err := NewReadback(device, queue, 0, 0, "test_readback")
	if err != nil {
		t.Fatalf("NewReadback failed: %v", err)
	}
	defer rb.Destroy()

	if rb.Width() != 1 || rb.Height() != 1 {
		t.Errorf("expected clamped size (1, 1), got (%d, %d)", rb.Width(), rb.Height())
	}
}

func TestReadbackReadAfterDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewSurface(device, 64, 64, true, "test_surface")
	if err != nil {
		t.Fatalf("NewSurface failed: %v", err)
	}
	defer s.Destroy()

	rb, err := NewReadback(device, queue, 64, 64, "test_readback")
	if err != nil {
		t.Fatalf("NewReadback failed: %v", err)
	}

	rb.Destroy()

	_, err = rb.Read(s)
	if !errors.Is(err, ErrReadbackAborted) {
		t.Errorf("Read after Destroy = %v, want ErrReadbackAborted", err)
	}

	// Double-destroy should be safe.
	rb.Destroy()
}
