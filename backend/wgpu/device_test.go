// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"bytes"
	"testing"

	"github.com/gogpu/ggsurface/backend"
)

func openDevice(t *testing.T) backend.Device {
	t.Helper()
	dev, err := New().OpenDevice()
	if err != nil {
		t.Skipf("no GPU adapter: %v", err)
	}
	t.Cleanup(dev.Release)
	return dev
}

func TestTexturePixelsBeforeUpload(t *testing.T) {
	tex := &Texture{width: 1, height: 1}
	if px := tex.Pixels(); px != nil {
		t.Errorf("Pixels() = %v, want nil before upload", px)
	}
}

func TestTextureReadback(t *testing.T) {
	dev := openDevice(t)
	tex, err := dev.CreateTexture(backend.SharedTextureDescriptor(2, 1))
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	defer tex.Release()

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := tex.UpdateData(data); err != nil {
		t.Fatalf("UpdateData() error = %v", err)
	}
	data[0] = 99 // the texture keeps its own copy

	rb, ok := tex.(backend.Readbacker)
	if !ok {
		t.Fatal("wgpu texture does not implement Readbacker")
	}
	if got := rb.Pixels(); !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("Pixels() = %v, want last upload", got)
	}
	if err := tex.UpdateData([]byte{1}); err == nil {
		t.Error("UpdateData(short) error = nil")
	}
	if got := rb.Pixels(); len(got) != 8 {
		t.Errorf("Pixels() after failed upload = %v, want previous frame", got)
	}

	tex.Release()
	if rb.Pixels() != nil {
		t.Error("Pixels() after Release != nil")
	}
}
