// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu provides the hardware backend built on gogpu/wgpu.
//
// Importing the package registers the backend under backend.NameWGPU and
// pulls in all platform HAL backends (Vulkan, Metal, DX12, GLES):
//
//	import _ "github.com/gogpu/ggsurface/backend/wgpu"
//
// OpenDevice requests a high-performance adapter and refuses CPU adapters,
// so a machine without a GPU reports backend.ErrNoAdapter instead of
// silently rendering through a software rasterizer.
//
// Devices created here also implement gpucontext.DeviceProvider, which lets
// the gg GPU accelerator share the same device.
package wgpu
