// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package draw2d binds gg drawing contexts to shared GPU textures.
//
// A Target couples a texture with a CPU staging pixmap of the same size.
// gg renders into the pixmap; Present converts the premultiplied RGBA
// pixels to the texture's byte order and uploads them. A Factory creates
// contexts for targets of one pixel format.
//
// Typical lifecycle:
//
//	target, _ := draw2d.NewTarget(tex)
//	factory, _ := draw2d.NewFactory(target.Format())
//	dc, _ := factory.NewContext(target)
//	// draw with dc ...
//	_ = target.Present()
//	factory.Release()
//	target.Release()
package draw2d

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Errors returned by Factory and Target.
var (
	// ErrUnsupportedFormat is returned for formats other than 4-channel 8-bit.
	ErrUnsupportedFormat = errors.New("draw2d: unsupported pixel format")

	// ErrNilTexture is returned when a Target is created without a texture.
	ErrNilTexture = errors.New("draw2d: nil texture")

	// ErrReleased is returned when a released Factory or Target is used.
	ErrReleased = errors.New("draw2d: released")

	// ErrFormatMismatch is returned when a Target's format differs from
	// the Factory's.
	ErrFormatMismatch = errors.New("draw2d: target format does not match factory")
)

// AlphaMode is the alpha interpretation of every target. gg pixmaps hold
// premultiplied color.
const AlphaMode = gputypes.CompositeAlphaModePremultiplied

// Supported reports whether format can back a drawing target.
func Supported(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// IsBGRA reports whether format stores blue before red.
func IsBGRA(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatBGRA8Unorm || format == gputypes.TextureFormatBGRA8UnormSrgb
}

// Factory creates drawing contexts for targets of one pixel format.
//
// Factory is NOT safe for concurrent use.
type Factory struct {
	format   gputypes.TextureFormat
	contexts []*gg.Context
	released bool
}

// NewFactory creates a factory for the given format.
func NewFactory(format gputypes.TextureFormat) (*Factory, error) {
	if !Supported(format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return &Factory{format: format}, nil
}

// Format returns the pixel format of the factory's targets.
func (f *Factory) Format() gputypes.TextureFormat {
	return f.format
}

// AlphaMode returns the alpha mode of the factory's targets.
func (f *Factory) AlphaMode() gputypes.CompositeAlphaMode {
	return AlphaMode
}

// NewContext returns a gg context that renders into the target's pixmap.
// Extra options are applied before the pixmap binding.
func (f *Factory) NewContext(t *Target, opts ...gg.ContextOption) (*gg.Context, error) {
	if f.released {
		return nil, ErrReleased
	}
	if t == nil || t.released {
		return nil, fmt.Errorf("draw2d: new context: %w", ErrReleased)
	}
	if t.Format() != f.format {
		return nil, fmt.Errorf("%w: target %v, factory %v", ErrFormatMismatch, t.Format(), f.format)
	}

	opts = append(opts, gg.WithPixmap(t.pixmap))
	dc := gg.NewContext(t.Width(), t.Height(), opts...)
	f.contexts = append(f.contexts, dc)
	return dc, nil
}

// Release closes every context created by the factory. Release is
// idempotent.
func (f *Factory) Release() {
	if f.released {
		return
	}
	f.released = true
	for _, dc := range f.contexts {
		_ = dc.Close()
	}
	f.contexts = nil
}
