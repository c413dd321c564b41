// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggsurface/backend"
	"github.com/gogpu/ggsurface/device"
	"github.com/gogpu/ggsurface/draw2d"
	"github.com/gogpu/ggsurface/pacer"
)

// Surface renders gg content into a shared GPU texture on the host's frame
// cadence.
//
// All methods except SetTargetFrameRate and TargetFrameRate must be called
// on the host goroutine that delivers frame callbacks.
type Surface struct {
	renderer Renderer
	image    ImageSource
	frames   FrameNotifier
	cache    ResourceCache
	opts     options
	logger   *slog.Logger

	dev   *device.Manager
	pacer *pacer.Pacer
	bound *binding

	frameRate atomic.Uint64 // math.Float64bits

	state       LoopState
	unsubscribe func()
	activated   bool
	frontBuffer bool

	framesRendered uint64
	rebinds        uint64
}

// Stats describes a surface's activity.
type Stats struct {
	State          LoopState
	FramesRendered uint64
	Rebinds        uint64
	Width          int
	Height         int
	LastInterval   time.Duration
	LiveTextures   int
}

// New creates a Surface. Nothing is allocated on the GPU until Activate.
//
// If image implements FrontBufferNotifier, its front buffer signal is
// wired to SetFrontBufferAvailable.
func New(renderer Renderer, img ImageSource, frames FrameNotifier, opts ...Option) (*Surface, error) {
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	if img == nil {
		return nil, ErrNilImageSource
	}
	if frames == nil {
		return nil, ErrNilFrameNotifier
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := o.backend
	if b == nil {
		var err error
		if b, err = backend.Lookup(o.backendName); err != nil {
			return nil, fmt.Errorf("ggsurface: backend %q: %w", o.backendName, err)
		}
	}

	logger := Logger()
	dev, err := device.NewManager(b, logger)
	if err != nil {
		return nil, fmt.Errorf("ggsurface: %w", err)
	}

	s := &Surface{
		renderer:    renderer,
		image:       img,
		frames:      frames,
		cache:       o.cache,
		opts:        o,
		logger:      logger,
		dev:         dev,
		pacer:       pacer.New(o.clock),
		frontBuffer: true,
	}
	s.SetTargetFrameRate(o.frameRate)

	if n, ok := img.(FrontBufferNotifier); ok {
		n.OnFrontBufferAvailableChanged(s.SetFrontBufferAvailable)
	}
	return s, nil
}

func (s *Surface) log() *slog.Logger {
	return s.logger
}

// Activate opens the device, binds a texture of the given size (clamped to
// the minimum size) and starts the render loop if the front buffer is
// available. On error the device is released and no backing surface is set.
func (s *Surface) Activate(width, height int) error {
	if s.activated {
		return ErrAlreadyActivated
	}
	if err := s.dev.Activate(); err != nil {
		return fmt.Errorf("ggsurface: %w", err)
	}
	if p := s.dev.Provider(); p != nil {
		if err := gg.SetAcceleratorDeviceProvider(p); err != nil {
			s.log().Debug("ggsurface: accelerator device sharing unavailable", "err", err)
		}
	}

	if err := s.bind(width, height); err != nil {
		s.releaseBinding()
		s.image.SetBackingSurface(nil)
		if derr := s.dev.Deactivate(); derr != nil {
			s.log().Warn("ggsurface: deactivate after bind failure", "err", derr)
		}
		return err
	}

	s.activated = true
	if s.frontBuffer {
		s.Start()
	}
	return nil
}

// Deactivate stops the loop, detaches the texture from the image and
// releases the context, the texture and the device, in that order. Without
// an activation it only stops the loop.
func (s *Surface) Deactivate() error {
	s.Stop()
	if !s.activated {
		return nil
	}
	s.image.SetBackingSurface(nil)
	s.releaseBinding()
	s.activated = false
	if err := s.dev.Deactivate(); err != nil {
		return fmt.Errorf("ggsurface: %w", err)
	}
	return nil
}

// Activated reports whether the surface holds a device.
func (s *Surface) Activated() bool {
	return s.activated
}

// Resize rebinds the shared texture at the new size. Resizing to the size
// already bound, after clamping, does nothing.
func (s *Surface) Resize(width, height int) error {
	if !s.activated {
		return ErrNotActivated
	}
	w, h := s.clamp(width, height)
	if s.bound != nil && s.bound.width == w && s.bound.height == h {
		return nil
	}
	return s.bind(width, height)
}

// AttachEvents follows resize events from a gpucontext event source.
// Resize errors are logged.
func (s *Surface) AttachEvents(events gpucontext.EventSource) {
	events.OnResize(func(width, height int) {
		if !s.activated {
			return
		}
		if err := s.Resize(width, height); err != nil {
			s.log().Warn("ggsurface: resize", "width", width, "height", height, "err", err)
		}
	})
}

// SetTargetFrameRate sets the target frame rate. It may be called from any
// goroutine and takes effect on the next frame.
func (s *Surface) SetTargetFrameRate(fps float64) {
	s.frameRate.Store(math.Float64bits(fps))
}

// TargetFrameRate returns the target frame rate.
func (s *Surface) TargetFrameRate() float64 {
	return math.Float64frombits(s.frameRate.Load())
}

// Size returns the bound texture size, or 0, 0 when unbound.
func (s *Surface) Size() (width, height int) {
	if s.bound == nil {
		return 0, 0
	}
	return s.bound.width, s.bound.height
}

// Context returns the bound drawing context, or nil when unbound.
func (s *Surface) Context() *gg.Context {
	if s.bound == nil {
		return nil
	}
	return s.bound.dc
}

// Texture returns the shared texture, or nil when unbound.
func (s *Surface) Texture() backend.Texture {
	if s.bound == nil {
		return nil
	}
	return s.bound.tex
}

// Stats returns a snapshot of the surface counters.
func (s *Surface) Stats() Stats {
	w, h := s.Size()
	return Stats{
		State:          s.state,
		FramesRendered: s.framesRendered,
		Rebinds:        s.rebinds,
		Width:          w,
		Height:         h,
		LastInterval:   s.pacer.LastInterval(),
		LiveTextures:   s.dev.LiveTextures(),
	}
}

// Snapshot returns the last presented frame. It returns nil when nothing
// is bound or the backend cannot read textures back.
func (s *Surface) Snapshot() *image.RGBA {
	if s.bound == nil {
		return nil
	}
	rb, ok := s.bound.tex.(backend.Readbacker)
	if !ok {
		return nil
	}
	px := rb.Pixels()
	if len(px) == 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, s.bound.width, s.bound.height))
	if draw2d.IsBGRA(s.bound.tex.Format()) {
		draw2d.SwizzleRB(img.Pix, px)
	} else {
		copy(img.Pix, px)
	}
	return img
}
