// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw2d

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Texture is the GPU texture a Target presents into.
type Texture interface {
	gpucontext.Texture
	gpucontext.TextureUpdater
	Format() gputypes.TextureFormat
}

// Target is the drawing surface view of a texture.
//
// The target does not own the texture; release the Target before the
// texture.
type Target struct {
	tex      Texture
	pixmap   *gg.Pixmap
	staging  []byte
	released bool
}

// NewTarget derives a drawing target from tex.
func NewTarget(tex Texture) (*Target, error) {
	if tex == nil {
		return nil, ErrNilTexture
	}
	if !Supported(tex.Format()) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, tex.Format())
	}
	w, h := tex.Width(), tex.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("draw2d: invalid texture size %dx%d", w, h)
	}

	t := &Target{
		tex:    tex,
		pixmap: gg.NewPixmap(w, h),
	}
	if IsBGRA(tex.Format()) {
		t.staging = make([]byte, w*h*4)
	}
	return t, nil
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.pixmap.Width() }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.pixmap.Height() }

// Format returns the texture pixel format.
func (t *Target) Format() gputypes.TextureFormat { return t.tex.Format() }

// Texture returns the backing texture.
func (t *Target) Texture() Texture { return t.tex }

// Pixmap returns the staging pixmap gg renders into.
func (t *Target) Pixmap() *gg.Pixmap { return t.pixmap }

// Present uploads the pixmap to the texture, converting from RGBA to the
// texture byte order.
func (t *Target) Present() error {
	if t.released {
		return ErrReleased
	}
	data := t.pixmap.Data()
	if t.staging != nil {
		SwizzleRB(t.staging, data)
		data = t.staging
	}
	if err := t.tex.UpdateData(data); err != nil {
		return fmt.Errorf("draw2d: present: %w", err)
	}
	return nil
}

// Release drops the staging buffers. The texture is left to its owner.
// Release is idempotent.
func (t *Target) Release() {
	if t.released {
		return
	}
	t.released = true
	t.staging = nil
}

// SwizzleRB copies src to dst swapping the first and third byte of every
// pixel, converting RGBA to BGRA and back. dst must be at least len(src).
func SwizzleRB(dst, src []byte) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
