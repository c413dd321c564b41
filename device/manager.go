// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package device owns the GPU device for one activation cycle.
//
// A Manager opens exactly one backend.Device per Activate and destroys it
// on Deactivate. Textures allocated through the Manager are tracked so that
// releasing the device while dependents are alive is reported instead of
// silently invalidating them.
package device

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggsurface/backend"
)

// Manager errors.
var (
	// ErrNilBackend is returned when a Manager is created without a backend.
	ErrNilBackend = errors.New("device: nil backend")

	// ErrAlreadyActive is returned by Activate when a device already exists.
	ErrAlreadyActive = errors.New("device: already active")

	// ErrNotActive is returned when a device operation runs before Activate.
	ErrNotActive = errors.New("device: not active")

	// ErrResourcesOutstanding is returned by Deactivate while textures
	// created through the manager are still alive.
	ErrResourcesOutstanding = errors.New("device: dependent resources still alive")
)

// Manager owns a backend.Device for one activate/deactivate cycle.
//
// Manager is NOT safe for concurrent use.
type Manager struct {
	backend backend.Backend
	dev     backend.Device
	live    int
	log     *slog.Logger
}

// NewManager creates a Manager that opens devices through b.
func NewManager(b backend.Backend, log *slog.Logger) (*Manager, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager{backend: b, log: log}, nil
}

// Activate opens the device. Failures are returned unchanged apart from
// wrapping; there is no retry.
func (m *Manager) Activate() error {
	if m.dev != nil {
		return ErrAlreadyActive
	}
	dev, err := m.backend.OpenDevice()
	if err != nil {
		return fmt.Errorf("device: activate %s: %w", m.backend.Name(), err)
	}
	m.dev = dev
	info := dev.Info()
	m.log.Info("device: activated", "backend", m.backend.Name(), "adapter", info.Name, "type", info.Type)
	return nil
}

// Deactivate releases the device. It is a no-op when inactive and fails
// with ErrResourcesOutstanding while shared textures are still alive.
func (m *Manager) Deactivate() error {
	if m.dev == nil {
		return nil
	}
	if m.live > 0 {
		return fmt.Errorf("%w: %d texture(s)", ErrResourcesOutstanding, m.live)
	}
	m.dev.Release()
	m.dev = nil
	m.log.Info("device: deactivated")
	return nil
}

// Active reports whether a device exists.
func (m *Manager) Active() bool {
	return m.dev != nil
}

// Device returns the current device, or nil when inactive.
func (m *Manager) Device() backend.Device {
	return m.dev
}

// Provider returns the device as a gpucontext.DeviceProvider when the
// backend supports device sharing, or nil otherwise.
func (m *Manager) Provider() gpucontext.DeviceProvider {
	if p, ok := m.dev.(gpucontext.DeviceProvider); ok {
		return p
	}
	return nil
}

// LiveTextures returns the number of tracked textures not yet released.
func (m *Manager) LiveTextures() int {
	return m.live
}

// CreateSharedTexture allocates a shared render target of the given size.
// The texture must be released before Deactivate.
func (m *Manager) CreateSharedTexture(width, height int) (backend.Texture, error) {
	if m.dev == nil {
		return nil, ErrNotActive
	}
	tex, err := m.dev.CreateTexture(backend.SharedTextureDescriptor(width, height))
	if err != nil {
		return nil, fmt.Errorf("device: shared texture: %w", err)
	}
	m.live++
	return &trackedTexture{Texture: tex, m: m}, nil
}

// SetViewport forwards to the device. It is a no-op when inactive.
func (m *Manager) SetViewport(width, height int) {
	if m.dev != nil {
		m.dev.SetViewport(width, height)
	}
}

// Flush submits pending device work.
func (m *Manager) Flush() error {
	if m.dev == nil {
		return ErrNotActive
	}
	return m.dev.Flush()
}

// trackedTexture decrements the manager's live count on first Release.
type trackedTexture struct {
	backend.Texture
	m        *Manager
	released bool
}

func (t *trackedTexture) Release() {
	if t.released {
		return
	}
	t.released = true
	t.Texture.Release()
	t.m.live--
}

// Pixels exposes readback when the wrapped texture supports it.
func (t *trackedTexture) Pixels() []byte {
	if rb, ok := t.Texture.(backend.Readbacker); ok {
		return rb.Pixels()
	}
	return nil
}

// Unwrap returns the backend texture.
func (t *trackedTexture) Unwrap() backend.Texture {
	return t.Texture
}
