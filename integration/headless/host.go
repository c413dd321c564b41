// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless provides a windowless host for ggsurface.
//
// Host implements the frame notifier, the image source and the front
// buffer signal in memory. Frames are delivered by Tick, or on a ticker by
// Run. It is used by command-line rendering and by tests.
//
// Example:
//
//	host := headless.New()
//	s, _ := ggsurface.New(renderer, host, host, ggsurface.WithBackend("software"))
//	_ = s.Activate(800, 600)
//	for range 60 {
//	    host.Tick()
//	}
//	img := s.Snapshot()
package headless

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
)

// ErrRunning is returned by Run when the host is already running.
var ErrRunning = errors.New("headless: already running")

// Host is an in-memory host. Tick, Resize and SetFrontBufferAvailable must
// not be called concurrently with each other or with Run.
type Host struct {
	mu          sync.Mutex
	subs        map[uint64]func()
	nextID      uint64
	backing     gpucontext.Texture
	invalidated uint64
	frontBuffer []func(bool)
	resize      []func(int, int)
	running     bool

	gpucontext.NullEventSource
}

// New creates a host with no subscribers.
func New() *Host {
	return &Host{subs: make(map[uint64]func())}
}

// Subscribe registers a frame callback.
func (h *Host) Subscribe(fn func()) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Subscribers returns the number of frame callbacks.
func (h *Host) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Tick delivers one frame to every subscriber, in subscription order.
func (h *Host) Tick() {
	h.mu.Lock()
	ids := make([]uint64, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	slices.Sort(ids)

	for _, id := range ids {
		h.mu.Lock()
		fn, ok := h.subs[id]
		h.mu.Unlock()
		if ok {
			fn()
		}
	}
}

// Run calls Tick at the given interval until ctx is done.
func (h *Host) Run(ctx context.Context, interval time.Duration) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return ErrRunning
	}
	h.running = true
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.Tick()
		}
	}
}

// SetBackingSurface records the texture presented by the surface.
func (h *Host) SetBackingSurface(tex gpucontext.Texture) {
	h.mu.Lock()
	h.backing = tex
	h.mu.Unlock()
}

// BackingSurface returns the current texture, or nil.
func (h *Host) BackingSurface() gpucontext.Texture {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.backing
}

// Invalidate counts a presented frame.
func (h *Host) Invalidate() {
	h.mu.Lock()
	h.invalidated++
	h.mu.Unlock()
}

// Invalidations returns the number of Invalidate calls.
func (h *Host) Invalidations() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.invalidated
}

// OnFrontBufferAvailableChanged registers a front buffer callback.
func (h *Host) OnFrontBufferAvailableChanged(fn func(bool)) {
	h.mu.Lock()
	h.frontBuffer = append(h.frontBuffer, fn)
	h.mu.Unlock()
}

// SetFrontBufferAvailable simulates the front buffer being lost or
// regained.
func (h *Host) SetFrontBufferAvailable(available bool) {
	h.mu.Lock()
	fns := append([]func(bool){}, h.frontBuffer...)
	h.mu.Unlock()
	for _, fn := range fns {
		fn(available)
	}
}

// OnResize registers a resize callback. Host implements
// gpucontext.EventSource; all other events are never raised.
func (h *Host) OnResize(fn func(width, height int)) {
	h.mu.Lock()
	h.resize = append(h.resize, fn)
	h.mu.Unlock()
}

// Resize simulates a layout change.
func (h *Host) Resize(width, height int) {
	h.mu.Lock()
	fns := append([]func(int, int){}, h.resize...)
	h.mu.Unlock()
	for _, fn := range fns {
		fn(width, height)
	}
}

var _ gpucontext.EventSource = (*Host)(nil)
