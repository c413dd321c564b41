// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pacer approximates a target frame rate from inside a per-frame
// callback.
//
// Throttle sleeps for most of the frame interval and then busy-waits for the
// remainder. Sleep alone is only as accurate as the OS timer; the spin phase
// spends a bounded amount of CPU to land on the interval with sub-millisecond
// error. Hosts that offer a high-resolution wait can replace the Clock.
package pacer

import (
	"math"
	"time"
)

// DefaultFrameRate is used when a non-positive or non-finite rate is given.
const DefaultFrameRate = 60

// Slack is subtracted from the sleep phase and covered by spinning.
const Slack = 3 * time.Millisecond

// Interval returns the ideal time between frames at the given rate.
// Invalid rates fall back to DefaultFrameRate. Intervals too long for a
// time.Duration saturate at the maximum duration.
func Interval(targetFrameRate float64) time.Duration {
	if !(targetFrameRate > 0) || math.IsInf(targetFrameRate, 0) {
		targetFrameRate = DefaultFrameRate
	}
	d := float64(time.Second) / targetFrameRate
	if d >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(d)
}

// SleepDuration returns the cooperative sleep for one frame: the ideal
// interval truncated to whole milliseconds, minus Slack when at least Slack.
func SleepDuration(targetFrameRate float64) time.Duration {
	d := Interval(targetFrameRate).Truncate(time.Millisecond)
	if d >= Slack {
		d -= Slack
	}
	return d
}

// Pacer throttles a render loop to a target frame rate.
//
// Pacer is NOT safe for concurrent use.
type Pacer struct {
	clock Clock
	timer *Stopwatch
	last  time.Duration
}

// New creates a Pacer. A nil clock selects SystemClock.
func New(clock Clock) *Pacer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Pacer{clock: clock, timer: NewStopwatch(clock)}
}

// Timer returns the frame stopwatch. The render loop starts it when the
// loop starts and stops it when the loop stops.
func (p *Pacer) Timer() *Stopwatch {
	return p.timer
}

// LastInterval returns the frame interval measured by the last Throttle.
func (p *Pacer) LastInterval() time.Duration {
	return p.last
}

// Throttle blocks until one ideal interval has passed since the previous
// frame, then restarts the frame stopwatch. A stopped stopwatch is started
// first so the spin phase always terminates.
func (p *Pacer) Throttle(targetFrameRate float64) {
	ideal := Interval(targetFrameRate)
	if !p.timer.Running() {
		p.timer.Start()
	}

	if d := SleepDuration(targetFrameRate); d > 0 {
		p.clock.Sleep(d)
	}
	for p.timer.Elapsed() < ideal {
	}

	p.last = p.timer.Elapsed()
	p.timer.Restart()
}
