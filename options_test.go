// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggsurface/pacer"
)

func apply(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TestDefaultOptions tests the values New uses without options.
func TestDefaultOptions(t *testing.T) {
	o := apply()
	if o.frameRate != DefaultTargetFrameRate {
		t.Errorf("frameRate = %v, want %v", o.frameRate, DefaultTargetFrameRate)
	}
	if o.minWidth != DefaultMinWidth || o.minHeight != DefaultMinHeight {
		t.Errorf("min size = %dx%d, want %dx%d", o.minWidth, o.minHeight, DefaultMinWidth, DefaultMinHeight)
	}
	if _, ok := o.cache.(nopCache); !ok {
		t.Errorf("cache = %T, want nopCache", o.cache)
	}
	if o.backend != nil || o.backendName != "" {
		t.Error("backend selected by default")
	}
}

func TestWithMinSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"both", 320, 200, 320, 200},
		{"width only", 64, 0, 64, DefaultMinHeight},
		{"negative ignored", -1, -1, DefaultMinWidth, DefaultMinHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := apply(WithMinSize(tt.w, tt.h))
			if o.minWidth != tt.wantW || o.minHeight != tt.wantH {
				t.Errorf("min size = %dx%d, want %dx%d", o.minWidth, o.minHeight, tt.wantW, tt.wantH)
			}
		})
	}
}

// TestWithResourceCacheNil tests that a nil cache keeps the no-op cache.
func TestWithResourceCacheNil(t *testing.T) {
	o := apply(WithResourceCache(nil))
	if _, ok := o.cache.(nopCache); !ok {
		t.Errorf("cache = %T, want nopCache", o.cache)
	}
}

func TestOptionsAccumulate(t *testing.T) {
	clock := pacer.SystemClock{}
	o := apply(
		WithTargetFrameRate(24),
		WithBackend("software"),
		WithClock(clock),
		WithContextOptions(gg.WithPipelineMode(gg.PipelineModeRenderPass)),
		WithContextOptions(gg.WithPipelineMode(gg.PipelineModeAuto)),
	)
	if o.frameRate != 24 {
		t.Errorf("frameRate = %v, want 24", o.frameRate)
	}
	if o.backendName != "software" {
		t.Errorf("backendName = %q, want software", o.backendName)
	}
	if o.clock != clock {
		t.Error("clock not set")
	}
	if len(o.contextOpts) != 2 {
		t.Errorf("len(contextOpts) = %d, want 2", len(o.contextOpts))
	}
}
