// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/ggsurface/backend"
	"github.com/gogpu/ggsurface/pacer"
)

// Defaults applied by New.
const (
	// DefaultTargetFrameRate is the frame rate used when none is configured.
	DefaultTargetFrameRate = pacer.DefaultFrameRate

	// DefaultMinWidth and DefaultMinHeight bound the shared texture size from
	// below. Degenerate layout sizes (including 0x0) are clamped to them.
	DefaultMinWidth  = 100
	DefaultMinHeight = 100
)

// Option configures a Surface during creation.
//
// Example:
//
//	s, err := ggsurface.New(renderer, image, frames,
//	    ggsurface.WithTargetFrameRate(30),
//	    ggsurface.WithBackend("software"),
//	)
type Option func(*options)

// options holds optional configuration for Surface creation.
type options struct {
	frameRate   float64
	minWidth    int
	minHeight   int
	backendName string
	backend     backend.Backend
	cache       ResourceCache
	clock       pacer.Clock
	contextOpts []gg.ContextOption
}

func defaultOptions() options {
	return options{
		frameRate: DefaultTargetFrameRate,
		minWidth:  DefaultMinWidth,
		minHeight: DefaultMinHeight,
		cache:     nopCache{},
	}
}

// WithTargetFrameRate sets the initial target frame rate in frames per
// second. Non-positive values select DefaultTargetFrameRate at frame time.
func WithTargetFrameRate(fps float64) Option {
	return func(o *options) {
		o.frameRate = fps
	}
}

// WithMinSize sets the minimum shared texture size. Non-positive values
// keep the defaults.
func WithMinSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.minWidth = width
		}
		if height > 0 {
			o.minHeight = height
		}
	}
}

// WithBackend selects a registered backend by name (see backend.Available).
// The empty name selects the highest-priority registered backend.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backendName = name
	}
}

// WithBackendInstance uses b directly instead of a registered backend.
func WithBackendInstance(b backend.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithResourceCache couples a resource cache to the drawing context
// lifecycle.
func WithResourceCache(c ResourceCache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithClock sets the clock used by the frame pacer.
func WithClock(c pacer.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithContextOptions passes options to every gg.Context the surface creates.
//
// Example:
//
//	ggsurface.WithContextOptions(gg.WithPipelineMode(gg.PipelineModeRenderPass))
func WithContextOptions(opts ...gg.ContextOption) Option {
	return func(o *options) {
		o.contextOpts = append(o.contextOpts, opts...)
	}
}
