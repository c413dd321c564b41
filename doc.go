// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggsurface renders gg 2D content into an off-screen GPU texture on
// a fixed cadence and hands that texture to a host image element.
//
// # Overview
//
// A Surface owns one GPU device for each Activate/Deactivate cycle. While
// activated it keeps exactly one shared texture with a gg drawing context
// bound to it. The host supplies three ports:
//
//   - ImageSource displays the texture and is invalidated after each frame.
//   - FrameNotifier delivers the host's per-frame tick.
//   - Renderer draws a frame into the bound *gg.Context.
//
// Each tick renders a frame, presents it into the texture, flushes the
// device, invalidates the image and then throttles to the target frame
// rate.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gg"
//	    "github.com/gogpu/ggsurface"
//	    _ "github.com/gogpu/ggsurface/backend/wgpu"
//	)
//
//	s, err := ggsurface.New(ggsurface.RendererFunc(func(dc *gg.Context) {
//	    dc.ClearWithColor(gg.White)
//	    dc.SetRGB(1, 0, 0)
//	    dc.DrawCircle(200, 200, 100)
//	    dc.Fill()
//	}), image, frames)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Activate(400, 400); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Deactivate()
//
// # Backends
//
// Backends register themselves on import. backend/wgpu opens a hardware
// adapter through gogpu/wgpu; backend/software keeps textures in memory and
// is used headless and in tests. WithBackend selects one by name; without
// it the highest-priority registered backend is used.
//
// # Hosts
//
// integration/headless ticks frames in memory for tools and tests;
// integration/ebitenhost shows the surface in an Ebitengine window.
//
// # Front buffer
//
// Hosts lose the ability to present while minimized or locked. Report it
// with SetFrontBufferAvailable, or implement FrontBufferNotifier on the
// ImageSource. The loop stops while the front buffer is unavailable and
// resumes when it returns.
//
// # Logging
//
// By default nothing is logged. See SetLogger.
package ggsurface
