// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenhost shows a ggsurface in an Ebitengine window.
//
// Host is an ebiten.Game that acts as the surface's frame notifier, image
// source and event source. Every Update delivers one frame; Draw copies the
// backing texture to the screen; window layout changes are reported as
// resize events; minimizing the window makes the front buffer unavailable.
//
//	host := ebitenhost.New()
//	s, _ := ggsurface.New(renderer, host, host, ggsurface.WithBackend("software"))
//	s.AttachEvents(host)
//	_ = s.Activate(640, 480)
//	err := host.Run("demo", 640, 480)
package ebitenhost

import (
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/ggsurface"
	"github.com/gogpu/ggsurface/backend"
	"github.com/gogpu/ggsurface/draw2d"
)

// Host is an ebiten.Game hosting one surface.
//
// All callbacks run on the ebiten game goroutine.
type Host struct {
	subs   map[uint64]func()
	nextID uint64

	backing   gpucontext.Texture
	dirty     bool
	frontFns  []func(bool)
	resizeFns []func(int, int)

	minimized bool
	width     int
	height    int

	img  *ebiten.Image
	rgba []byte

	warnOnce sync.Once

	gpucontext.NullEventSource
}

// New creates a host.
func New() *Host {
	return &Host{subs: make(map[uint64]func())}
}

// Run opens a resizable window and blocks until it is closed.
func (h *Host) Run(title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(h)
}

// Subscribe registers a frame callback, called once per Update.
func (h *Host) Subscribe(fn func()) (unsubscribe func()) {
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() { delete(h.subs, id) }
}

// SetBackingSurface sets the texture shown by Draw.
func (h *Host) SetBackingSurface(tex gpucontext.Texture) {
	h.backing = tex
	h.dirty = tex != nil
}

// Invalidate marks the backing texture for upload on the next Draw.
func (h *Host) Invalidate() {
	h.dirty = true
}

// OnFrontBufferAvailableChanged registers a front buffer callback.
func (h *Host) OnFrontBufferAvailableChanged(fn func(bool)) {
	h.frontFns = append(h.frontFns, fn)
}

// OnResize registers a resize callback.
func (h *Host) OnResize(fn func(width, height int)) {
	h.resizeFns = append(h.resizeFns, fn)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	h.setMinimized(ebiten.IsWindowMinimized())
	h.tick()
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.backing == nil {
		return
	}
	if h.dirty {
		if !h.upload() {
			return
		}
		h.dirty = false
	}
	if h.img != nil {
		screen.DrawImage(h.img, nil)
	}
}

// Layout implements ebiten.Game. The screen follows the window size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (h *Host) tick() {
	for _, fn := range h.subs {
		fn()
	}
}

func (h *Host) setMinimized(minimized bool) {
	if minimized == h.minimized {
		return
	}
	h.minimized = minimized
	for _, fn := range h.frontFns {
		fn(!minimized)
	}
}

func (h *Host) layout(width, height int) {
	if width == h.width && height == h.height {
		return
	}
	h.width, h.height = width, height
	for _, fn := range h.resizeFns {
		fn(width, height)
	}
}

// upload copies the backing texture into the screen image. It returns
// false while the texture has no readable frame.
func (h *Host) upload() bool {
	px, ok := h.pixels()
	if !ok {
		h.warnOnce.Do(func() {
			ggsurface.Logger().Warn("ebitenhost: backing texture has no readable frame")
		})
		return false
	}

	w, hh := h.backing.Width(), h.backing.Height()
	if h.img == nil || h.img.Bounds().Dx() != w || h.img.Bounds().Dy() != hh {
		if h.img != nil {
			h.img.Deallocate()
		}
		h.img = ebiten.NewImage(w, hh)
	}
	h.img.WritePixels(px)
	return true
}

// pixels returns the backing texture contents in RGBA order.
func (h *Host) pixels() ([]byte, bool) {
	rb, ok := h.backing.(backend.Readbacker)
	if !ok {
		return nil, false
	}
	px := rb.Pixels()
	if len(px) != h.backing.Width()*h.backing.Height()*4 {
		return nil, false
	}
	if f, ok := h.backing.(interface{ Format() gputypes.TextureFormat }); ok && draw2d.IsBGRA(f.Format()) {
		if len(h.rgba) != len(px) {
			h.rgba = make([]byte, len(px))
		}
		draw2d.SwizzleRB(h.rgba, px)
		return h.rgba, true
	}
	return px, true
}

var _ ebiten.Game = (*Host)(nil)
var _ gpucontext.EventSource = (*Host)(nil)
