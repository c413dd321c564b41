// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the demo command's TOML settings and reloads them
// when the file changes.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/ggsurface"
)

// ErrInvalid is returned by Validate and Load for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config holds demo settings.
type Config struct {
	TargetFPS float64 `toml:"target_fps"`
	MinWidth  int     `toml:"min_width"`
	MinHeight int     `toml:"min_height"`
	Backend   string  `toml:"backend"`

	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Frames int    `toml:"frames"`
	Output string `toml:"output"`
	Window bool   `toml:"window"`
	Title  string `toml:"title"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TargetFPS: ggsurface.DefaultTargetFrameRate,
		MinWidth:  ggsurface.DefaultMinWidth,
		MinHeight: ggsurface.DefaultMinHeight,
		Width:     800,
		Height:    600,
		Frames:    60,
		Output:    "surface.png",
		Title:     "ggsurface",
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.TargetFPS <= 0:
		return fmt.Errorf("%w: target_fps = %v", ErrInvalid, c.TargetFPS)
	case c.MinWidth <= 0 || c.MinHeight <= 0:
		return fmt.Errorf("%w: min size %dx%d", ErrInvalid, c.MinWidth, c.MinHeight)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames = %d", ErrInvalid, c.Frames)
	}
	return nil
}

// Options converts the surface settings to ggsurface options.
func (c Config) Options() []ggsurface.Option {
	opts := []ggsurface.Option{
		ggsurface.WithTargetFrameRate(c.TargetFPS),
		ggsurface.WithMinSize(c.MinWidth, c.MinHeight),
	}
	if c.Backend != "" {
		opts = append(opts, ggsurface.WithBackend(c.Backend))
	}
	return opts
}

// Parse decodes TOML over the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for _, e := range strict.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return Config{}, fmt.Errorf("config: unknown keys %s", strings.Join(keys, ", "))
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Watch calls fn with the new settings each time the file at path is
// written with a valid configuration that differs from the last one seen.
// The watcher is set up before Watch returns and stops when ctx is done.
//
// The parent directory is watched so that editors which replace the file
// are handled.
func Watch(ctx context.Context, path string, fn func(Config)) error {
	path = filepath.Clean(path)
	last, err := Load(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

	log := ggsurface.Logger()
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.Warn("config: reload failed", "path", path, "err", err)
					continue
				}
				if cfg == last {
					continue
				}
				last = cfg
				log.Info("config: reloaded", "path", path)
				fn(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config: watcher error", "err", err)
			}
		}
	}()
	return nil
}
