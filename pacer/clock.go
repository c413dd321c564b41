// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pacer

import "time"

// Clock is the time source used by Stopwatch and Pacer.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the monotonic wall clock and sleeps with time.Sleep.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep calls time.Sleep.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Stopwatch measures elapsed time across Start/Stop intervals.
//
// The zero value is not usable; create one with NewStopwatch.
type Stopwatch struct {
	clock   Clock
	running bool
	started time.Time
	elapsed time.Duration
}

// NewStopwatch creates a stopped stopwatch at zero.
// A nil clock selects SystemClock.
func NewStopwatch(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Stopwatch{clock: clock}
}

// Start resumes measuring. It is a no-op when already running.
func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.started = s.clock.Now()
	s.running = true
}

// Stop freezes the elapsed time. It is a no-op when stopped.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.elapsed += s.clock.Now().Sub(s.started)
	s.running = false
}

// Reset stops the stopwatch and zeroes it.
func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = 0
}

// Restart zeroes the stopwatch and starts it.
func (s *Stopwatch) Restart() {
	s.elapsed = 0
	s.started = s.clock.Now()
	s.running = true
}

// Running reports whether the stopwatch is measuring.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the total measured time.
func (s *Stopwatch) Elapsed() time.Duration {
	if !s.running {
		return s.elapsed
	}
	return s.elapsed + s.clock.Now().Sub(s.started)
}
