// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import "errors"

// Surface errors.
var (
	// ErrNilRenderer is returned by New when no Renderer is given.
	ErrNilRenderer = errors.New("ggsurface: nil renderer")

	// ErrNilImageSource is returned by New when no ImageSource is given.
	ErrNilImageSource = errors.New("ggsurface: nil image source")

	// ErrNilFrameNotifier is returned by New when no FrameNotifier is given.
	ErrNilFrameNotifier = errors.New("ggsurface: nil frame notifier")

	// ErrAlreadyActivated is returned by Activate on an activated surface.
	ErrAlreadyActivated = errors.New("ggsurface: already activated")

	// ErrNotActivated is returned by Resize before Activate.
	ErrNotActivated = errors.New("ggsurface: not activated")
)
