// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw2d

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// mockTexture records uploads for testing.
type mockTexture struct {
	w, h    int
	format  gputypes.TextureFormat
	data    []byte
	updates int
	err     error
}

func (m *mockTexture) Width() int                     { return m.w }
func (m *mockTexture) Height() int                    { return m.h }
func (m *mockTexture) Format() gputypes.TextureFormat { return m.format }
func (m *mockTexture) UpdateData(data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.updates++
	m.data = append(m.data[:0], data...)
	return nil
}

func TestNewFactoryFormats(t *testing.T) {
	tests := []struct {
		name    string
		format  gputypes.TextureFormat
		wantErr bool
	}{
		{"BGRA8", gputypes.TextureFormatBGRA8Unorm, false},
		{"BGRA8 sRGB", gputypes.TextureFormatBGRA8UnormSrgb, false},
		{"RGBA8", gputypes.TextureFormatRGBA8Unorm, false},
		{"RGBA8 sRGB", gputypes.TextureFormatRGBA8UnormSrgb, false},
		{"RGBA16F", gputypes.TextureFormatRGBA16Float, true},
		{"undefined", gputypes.TextureFormatUndefined, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFactory(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("NewFactory() error = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFactory() error = %v", err)
			}
			if f.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", f.Format(), tt.format)
			}
			if f.AlphaMode() != gputypes.CompositeAlphaModePremultiplied {
				t.Errorf("AlphaMode() = %v, want premultiplied", f.AlphaMode())
			}
		})
	}
}

func TestNewTargetErrors(t *testing.T) {
	if _, err := NewTarget(nil); !errors.Is(err, ErrNilTexture) {
		t.Errorf("NewTarget(nil) error = %v, want ErrNilTexture", err)
	}
	tex := &mockTexture{w: 4, h: 4, format: gputypes.TextureFormatRGBA16Float}
	if _, err := NewTarget(tex); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("NewTarget(RGBA16F) error = %v, want ErrUnsupportedFormat", err)
	}
	tex = &mockTexture{w: 0, h: 4, format: gputypes.TextureFormatBGRA8Unorm}
	if _, err := NewTarget(tex); err == nil {
		t.Error("NewTarget(0x4) error = nil, want error")
	}
}

func TestPresentBGRA(t *testing.T) {
	tex := &mockTexture{w: 3, h: 2, format: gputypes.TextureFormatBGRA8Unorm}
	target, err := NewTarget(tex)
	if err != nil {
		t.Fatalf("NewTarget() error = %v", err)
	}
	f, err := NewFactory(target.Format())
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	dc, err := f.NewContext(target)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	if dc.Width() != 3 || dc.Height() != 2 {
		t.Fatalf("context size = %dx%d, want 3x2", dc.Width(), dc.Height())
	}
	if dc.ResizeTarget() != target.Pixmap() {
		t.Fatal("context does not render into the target pixmap")
	}

	dc.ClearWithColor(gg.RGB(1, 0, 0))
	if err := target.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	if tex.updates != 1 {
		t.Errorf("updates = %d, want 1", tex.updates)
	}
	if len(tex.data) != 3*2*4 {
		t.Fatalf("uploaded %d bytes, want %d", len(tex.data), 3*2*4)
	}
	// Red in BGRA order.
	if got := tex.data[:4]; got[0] != 0 || got[1] != 0 || got[2] != 255 || got[3] != 255 {
		t.Errorf("first pixel = %v, want [0 0 255 255]", got)
	}
	// The pixmap itself stays RGBA.
	if px := target.Pixmap().Data(); px[0] != 255 || px[2] != 0 {
		t.Errorf("pixmap pixel = %v, want RGBA red", px[:4])
	}

	f.Release()
	f.Release()
	target.Release()
	if err := target.Present(); !errors.Is(err, ErrReleased) {
		t.Errorf("Present() after Release = %v, want ErrReleased", err)
	}
}

func TestPresentRGBAPassThrough(t *testing.T) {
	tex := &mockTexture{w: 1, h: 1, format: gputypes.TextureFormatRGBA8Unorm}
	target, _ := NewTarget(tex)
	f, _ := NewFactory(target.Format())
	dc, _ := f.NewContext(target)

	dc.ClearWithColor(gg.RGB(0, 0, 1))
	if err := target.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if got := tex.data; got[0] != 0 || got[2] != 255 {
		t.Errorf("pixel = %v, want RGBA blue", got)
	}
}

func TestPresentUploadError(t *testing.T) {
	uploadErr := errors.New("device lost")
	tex := &mockTexture{w: 1, h: 1, format: gputypes.TextureFormatBGRA8Unorm, err: uploadErr}
	target, _ := NewTarget(tex)
	if err := target.Present(); !errors.Is(err, uploadErr) {
		t.Errorf("Present() error = %v, want wrapped upload error", err)
	}
}

func TestNewContextChecks(t *testing.T) {
	bgra, _ := NewTarget(&mockTexture{w: 1, h: 1, format: gputypes.TextureFormatBGRA8Unorm})
	f, _ := NewFactory(gputypes.TextureFormatRGBA8Unorm)
	if _, err := f.NewContext(bgra); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("NewContext() mismatch error = %v, want ErrFormatMismatch", err)
	}

	f.Release()
	if _, err := f.NewContext(bgra); !errors.Is(err, ErrReleased) {
		t.Errorf("NewContext() after Release = %v, want ErrReleased", err)
	}
}

func TestSwizzleRB(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, len(src))
	SwizzleRB(dst, src)
	want := []byte{3, 2, 1, 4, 7, 6, 5, 8}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("SwizzleRB() = %v, want %v", dst, want)
		}
	}
	SwizzleRB(nil, nil) // must not panic
}
