// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoAdapter is returned when no compatible hardware adapter exists.
	ErrNoAdapter = errors.New("backend: no compatible GPU adapter")

	// ErrReleased is returned when a released device or texture is used.
	ErrReleased = errors.New("backend: resource released")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("backend: invalid dimensions")

	// ErrDataSize is returned when uploaded pixel data has the wrong length.
	ErrDataSize = errors.New("backend: pixel data size mismatch")
)

// SharedTextureFormat is the fixed pixel format of shared render targets:
// four 8-bit channels in BGRA order.
const SharedTextureFormat = gputypes.TextureFormatBGRA8Unorm

// SharedTextureUsage marks a texture as writable render target and readable
// by the host compositor, which is how WebGPU expresses a shareable surface.
const SharedTextureUsage = gputypes.TextureUsageRenderAttachment |
	gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst

// TextureDescriptor describes a shared texture allocation.
type TextureDescriptor struct {
	Label  string
	Width  int
	Height int
	Format gputypes.TextureFormat
	Usage  gputypes.TextureUsage
}

// SharedTextureDescriptor returns the descriptor used for shared render targets.
func SharedTextureDescriptor(width, height int) TextureDescriptor {
	return TextureDescriptor{
		Label:  "ggsurface-shared-texture",
		Width:  width,
		Height: height,
		Format: SharedTextureFormat,
		Usage:  SharedTextureUsage,
	}
}

// Texture is a GPU-resident 2D image owned by a Device.
//
// Texture satisfies gpucontext.Texture so it can be handed directly to hosts
// that consume gpucontext types, and gpucontext.TextureUpdater so drawn
// frames can be uploaded into it.
type Texture interface {
	gpucontext.Texture
	gpucontext.TextureUpdater

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// Release frees the GPU memory. Release is idempotent.
	Release()
}

// Readbacker is implemented by textures whose contents can be read on the CPU.
// The returned slice is in the texture's byte order and must not be modified.
type Readbacker interface {
	Pixels() []byte
}

// Device is a GPU command-submission context.
//
// All textures created by a Device must be released before the Device.
type Device interface {
	// CreateTexture allocates a 2D texture.
	CreateTexture(desc TextureDescriptor) (Texture, error)

	// SetViewport sets the device output viewport in pixels.
	SetViewport(width, height int)

	// Flush submits all pending queue work.
	Flush() error

	// Info describes the adapter backing this device.
	Info() gpucontext.AdapterInfo

	// Release destroys the device. Release is idempotent.
	Release()
}

// Backend opens devices for one graphics implementation.
type Backend interface {
	// Name returns the backend identifier (e.g., "wgpu", "software").
	Name() string

	// OpenDevice creates a new device. It fails with an error wrapping
	// ErrNoAdapter if no compatible adapter exists.
	OpenDevice() (Device, error)
}
