// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software provides an in-memory backend.
//
// Textures live in CPU memory and support readback, which makes this backend
// suitable for headless rendering, CI and tests. Importing the package
// registers it under backend.NameSoftware.
package software

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggsurface/backend"
)

func init() {
	backend.Register(backend.NameSoftware, func() backend.Backend {
		return New()
	})
}

// Backend is the software backend.
type Backend struct{}

// New creates a software backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.NameSoftware
}

// OpenDevice creates a new in-memory device. It never fails.
func (b *Backend) OpenDevice() (backend.Device, error) {
	return &Device{}, nil
}

// Device is an in-memory device.
//
// Device is NOT safe for concurrent use.
type Device struct {
	viewportW int
	viewportH int
	flushes   int
	live      int
	released  bool
}

// CreateTexture allocates a CPU-backed texture.
func (d *Device) CreateTexture(desc backend.TextureDescriptor) (backend.Texture, error) {
	if d.released {
		return nil, backend.ErrReleased
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", backend.ErrInvalidDimensions, desc.Width, desc.Height)
	}
	if bpp := bytesPerPixel(desc.Format); bpp != 4 {
		return nil, fmt.Errorf("software: unsupported texture format %s", desc.Format)
	}
	d.live++
	return &Texture{
		device: d,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
		pixels: make([]byte, desc.Width*desc.Height*4),
	}, nil
}

// SetViewport records the output viewport.
func (d *Device) SetViewport(width, height int) {
	d.viewportW, d.viewportH = width, height
}

// Viewport returns the last viewport set.
func (d *Device) Viewport() (width, height int) {
	return d.viewportW, d.viewportH
}

// Flush counts a queue submission. Uploads are already synchronous.
func (d *Device) Flush() error {
	if d.released {
		return backend.ErrReleased
	}
	d.flushes++
	return nil
}

// Flushes returns the number of Flush calls.
func (d *Device) Flushes() int {
	return d.flushes
}

// LiveTextures returns the number of textures not yet released.
func (d *Device) LiveTextures() int {
	return d.live
}

// Info describes the software adapter.
func (d *Device) Info() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "ggsurface software", Type: gpucontext.AdapterTypeSoftware}
}

// Release marks the device released. Release is idempotent.
func (d *Device) Release() {
	d.released = true
}

// Texture is a CPU memory texture.
type Texture struct {
	device   *Device
	width    int
	height   int
	format   gputypes.TextureFormat
	pixels   []byte
	updates  int
	released bool
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// UpdateData replaces the texture contents.
func (t *Texture) UpdateData(data []byte) error {
	if t.released {
		return backend.ErrReleased
	}
	if len(data) != len(t.pixels) {
		return fmt.Errorf("%w: got %d bytes, want %d", backend.ErrDataSize, len(data), len(t.pixels))
	}
	copy(t.pixels, data)
	t.updates++
	return nil
}

// Pixels returns the texture contents in the texture byte order.
func (t *Texture) Pixels() []byte {
	return t.pixels
}

// Updates returns the number of successful UpdateData calls.
func (t *Texture) Updates() int {
	return t.updates
}

// Released reports whether Release has been called.
func (t *Texture) Released() bool {
	return t.released
}

// Release frees the pixel buffer. Release is idempotent.
func (t *Texture) Release() {
	if t.released {
		return
	}
	t.released = true
	t.pixels = nil
	t.device.live--
}

func bytesPerPixel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return 4
	default:
		return 0
	}
}

var (
	_ backend.Backend    = (*Backend)(nil)
	_ backend.Device     = (*Device)(nil)
	_ backend.Texture    = (*Texture)(nil)
	_ backend.Readbacker = (*Texture)(nil)
)
