// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

// Renderer draws one frame. The context is bound to the shared texture for
// the duration of the call and must not be retained.
type Renderer interface {
	Render(dc *gg.Context)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(dc *gg.Context)

// Render calls f(dc).
func (f RendererFunc) Render(dc *gg.Context) { f(dc) }

// ImageSource is the host image element that displays the shared texture.
//
// SetBackingSurface(nil) detaches the current texture. Invalidate asks the
// host to recomposite the image after a frame has been presented.
type ImageSource interface {
	SetBackingSurface(tex gpucontext.Texture)
	Invalidate()
}

// FrontBufferNotifier is implemented by image sources that report whether
// their front buffer can currently be presented (for example, false while
// the window is minimized or the session is locked).
//
// New registers Surface.SetFrontBufferAvailable automatically when the
// ImageSource implements this interface.
type FrontBufferNotifier interface {
	OnFrontBufferAvailableChanged(fn func(available bool))
}

// FrameNotifier delivers the host's per-frame tick on the host goroutine.
// Subscribe returns a function that removes the subscription.
type FrameNotifier interface {
	Subscribe(fn func()) (unsubscribe func())
}

// ResourceCache holds brushes and other context-dependent resources.
// ContextChanged is called every time a new drawing context is bound; the
// cache must drop everything created against the previous context.
type ResourceCache interface {
	ContextChanged(dc *gg.Context)
}

type nopCache struct{}

func (nopCache) ContextChanged(*gg.Context) {}
