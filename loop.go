// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

// LoopState is the render loop state.
type LoopState int

const (
	// Stopped means no frame callback is subscribed.
	Stopped LoopState = iota
	// Running means frames are rendered on every host tick.
	Running
)

// String returns the state name.
func (s LoopState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Running:
		return "Running"
	default:
		return "Unknown"
	}
}

// Start subscribes the frame callback. It is a no-op when the loop is
// already running.
func (s *Surface) Start() {
	if s.state == Running {
		return
	}
	s.unsubscribe = s.frames.Subscribe(s.onFrame)
	s.pacer.Timer().Start()
	s.state = Running
	s.log().Debug("ggsurface: loop started")
}

// Stop unsubscribes the frame callback. It is a no-op when the loop is
// already stopped.
func (s *Surface) Stop() {
	if s.state == Stopped {
		return
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.pacer.Timer().Stop()
	s.state = Stopped
	s.log().Debug("ggsurface: loop stopped")
}

// State returns the current loop state.
func (s *Surface) State() LoopState {
	return s.state
}

// SetFrontBufferAvailable follows the host's front buffer signal: the loop
// runs while the front buffer is available and stops otherwise. Before
// activation only the flag is recorded.
func (s *Surface) SetFrontBufferAvailable(available bool) {
	s.frontBuffer = available
	if !s.activated {
		return
	}
	if available {
		s.Start()
	} else {
		s.Stop()
	}
}

// onFrame renders one frame. Without a device it does nothing.
func (s *Surface) onFrame() {
	if !s.dev.Active() || s.bound == nil {
		return
	}
	b := s.bound

	b.dc.BeginGPUFrame()
	s.renderer.Render(b.dc)
	if err := b.dc.FlushGPU(); err != nil {
		s.log().Warn("ggsurface: gpu flush", "err", err)
	}
	if err := b.target.Present(); err != nil {
		s.log().Warn("ggsurface: present", "err", err)
	}
	if err := s.dev.Flush(); err != nil {
		s.log().Warn("ggsurface: device flush", "err", err)
	}
	s.image.Invalidate()
	s.framesRendered++

	s.pacer.Throttle(s.TargetFrameRate())
}
