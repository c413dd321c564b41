// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggsurface/integration/headless"
	"github.com/gogpu/ggsurface/internal/config"
	"github.com/gogpu/ggsurface/resources"
)

func TestSceneAdvances(t *testing.T) {
	cache := resources.New(0)
	s := newScene(cache)
	dc := gg.NewContext(200, 150)
	defer dc.Close()

	s.Render(dc)
	s.Render(dc)
	if s.frame != 2 {
		t.Errorf("frame = %d, want 2", s.frame)
	}
	if cache.Len() == 0 {
		t.Error("scene did not use the brush cache")
	}
}

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	cfgPath := filepath.Join(dir, "demo.toml")
	if err := os.WriteFile(cfgPath, []byte("width = 160\nheight = 120\nframes = 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := run([]string{"-config", cfgPath, "-backend", "software", "-output", out})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Errorf("image size = %dx%d, want 160x120", b.Dx(), b.Dy())
	}
}

// TestRunHeadlessDefaultBackend runs without -backend: the preferred
// backend is used when it activates, software otherwise, and either way a
// frame is written.
func TestRunHeadlessDefaultBackend(t *testing.T) {
	out := filepath.Join(t.TempDir(), "default.png")
	if err := run([]string{"-width", "120", "-height", "100", "-frames", "2", "-output", out}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 100 {
		t.Errorf("image size = %dx%d, want 120x100", b.Dx(), b.Dy())
	}
	// The scene background is an opaque gradient.
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0xffff {
		t.Errorf("corner alpha = %#x, want opaque", a)
	}
}

func TestActivateNamedBackendDoesNotFallBack(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "missing"
	host := headless.New()
	_, err := activate(cfg, newScene(resources.New(0)), host, host, cfg.Options())
	if err == nil {
		t.Error("activate() with unknown named backend error = nil")
	}
}

func TestRunBadFlags(t *testing.T) {
	if err := run([]string{"-width", "-3", "-frames", "0", "-backend", "nope"}); err == nil {
		t.Error("run() with unknown backend error = nil")
	}
}
