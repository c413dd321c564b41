// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggsurface/backend"
	"github.com/gogpu/ggsurface/draw2d"
)

// binding is the set of size-dependent resources. The drawing context
// exists exactly as long as the texture it renders into.
type binding struct {
	tex     backend.Texture
	target  *draw2d.Target
	factory *draw2d.Factory
	dc      *gg.Context
	width   int
	height  int
}

// release frees resources in reverse creation order.
func (b *binding) release() {
	if b.factory != nil {
		b.factory.Release()
	}
	if b.target != nil {
		b.target.Release()
	}
	if b.tex != nil {
		b.tex.Release()
	}
}

// clamp applies the minimum texture size.
func (s *Surface) clamp(width, height int) (int, int) {
	return max(width, s.opts.minWidth), max(height, s.opts.minHeight)
}

// bind rebuilds the shared texture and drawing context for a new size.
// On error no binding and no backing surface remain.
func (s *Surface) bind(width, height int) error {
	w, h := s.clamp(width, height)

	s.image.SetBackingSurface(nil)
	s.releaseBinding()

	tex, err := s.dev.CreateSharedTexture(w, h)
	if err != nil {
		return fmt.Errorf("ggsurface: bind %dx%d: %w", w, h, err)
	}
	b := &binding{tex: tex, width: w, height: h}

	if b.target, err = draw2d.NewTarget(tex); err != nil {
		b.release()
		return fmt.Errorf("ggsurface: bind %dx%d: %w", w, h, err)
	}
	if b.factory, err = draw2d.NewFactory(b.target.Format()); err != nil {
		b.release()
		return fmt.Errorf("ggsurface: bind %dx%d: %w", w, h, err)
	}
	if b.dc, err = b.factory.NewContext(b.target, s.opts.contextOpts...); err != nil {
		b.release()
		return fmt.Errorf("ggsurface: bind %dx%d: %w", w, h, err)
	}
	s.bound = b

	s.cache.ContextChanged(b.dc)
	s.image.SetBackingSurface(tex)
	s.dev.SetViewport(w, h)

	s.rebinds++
	s.log().Debug("ggsurface: bound", "width", w, "height", h, "format", b.target.Format())
	return nil
}

// releaseBinding drops the current binding, if any.
func (s *Surface) releaseBinding() {
	if s.bound == nil {
		return
	}
	s.bound.release()
	s.bound = nil
}
