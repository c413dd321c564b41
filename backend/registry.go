// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/gogpu/gpucontext"
)

// Backend name constants.
const (
	// NameWGPU is the Pure Go WebGPU backend (gogpu/wgpu).
	NameWGPU = "wgpu"
	// NameSoftware is the in-memory backend used headless and in tests.
	NameSoftware = "software"
)

// Factory creates a Backend instance.
type Factory func() Backend

// backends holds registered backends. Hardware backends are preferred.
var backends = gpucontext.NewRegistry[Backend](
	gpucontext.WithPriority(NameWGPU, NameSoftware),
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	backends.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the names of all registered backends.
func Available() []string {
	return backends.Available()
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	return backends.Has(name)
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Backend {
	return backends.Get(name)
}

// Default returns the highest-priority registered backend.
// Priority order: wgpu > software > anything else.
// Returns nil if no backends are registered.
func Default() Backend {
	return backends.Best()
}

// Lookup returns the named backend, or Default when name is empty.
// It returns ErrBackendNotAvailable when nothing matches.
func Lookup(name string) (Backend, error) {
	var b Backend
	if name == "" {
		b = Default()
	} else {
		b = Get(name)
	}
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	return b, nil
}
