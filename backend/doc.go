// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend defines the GPU device abstraction used by ggsurface.
//
// A Backend opens a Device; a Device allocates Textures. The shared render
// target handed to the host is always a BGRA8 texture created with
// SharedTextureDescriptor.
//
// # Backend Registration
//
// Backends register themselves from init() functions and are selected at
// runtime through a gpucontext.Registry:
//
//	import _ "github.com/gogpu/ggsurface/backend/wgpu"     // GPU via gogpu/wgpu
//	import _ "github.com/gogpu/ggsurface/backend/software" // in-memory fallback
//
// # Backend Selection
//
//	// Best available (wgpu > software)
//	b := backend.Default()
//
//	// Or by name
//	b, err := backend.Lookup("software")
//
// # Available Backends
//
//   - "wgpu": hardware device via gogpu/wgpu; rejects CPU adapters
//   - "software": CPU memory textures, always available
package backend
