// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command ggsurface-demo renders an animated scene through a ggsurface.
//
// Headless (default) it delivers a fixed number of frames and writes the
// last one to a PNG file. With -window it opens an ebiten window. A TOML
// file given with -config is watched and its target_fps applied live.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/gogpu/ggsurface"
	"github.com/gogpu/ggsurface/backend"
	_ "github.com/gogpu/ggsurface/backend/software"
	_ "github.com/gogpu/ggsurface/backend/wgpu"
	"github.com/gogpu/ggsurface/integration/ebitenhost"
	"github.com/gogpu/ggsurface/integration/headless"
	"github.com/gogpu/ggsurface/internal/config"
	"github.com/gogpu/ggsurface/resources"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ggsurface-demo:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("ggsurface-demo", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "TOML settings file, watched for changes")
		width      = fs.Int("width", 0, "surface width (overrides config)")
		height     = fs.Int("height", 0, "surface height (overrides config)")
		frames     = fs.Int("frames", -1, "frames to render headless (overrides config)")
		output     = fs.String("output", "", "PNG output file (overrides config)")
		window     = fs.Bool("window", false, "open a window instead of rendering headless")
		backendArg = fs.String("backend", "", "backend name (overrides config)")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	ggsurface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *frames >= 0 {
		cfg.Frames = *frames
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *backendArg != "" {
		cfg.Backend = *backendArg
	}
	cfg.Window = cfg.Window || *window
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := resources.New(0)
	scene := newScene(cache)
	opts := append(cfg.Options(), ggsurface.WithResourceCache(cache))

	if cfg.Window {
		return runWindow(ctx, cfg, *configPath, scene, opts)
	}
	return runHeadless(ctx, cfg, *configPath, scene, opts)
}

// activate creates and activates a surface. When no backend was named and
// the preferred one cannot be activated, it falls back to the software
// backend.
func activate(cfg config.Config, r ggsurface.Renderer, img ggsurface.ImageSource,
	frames ggsurface.FrameNotifier, opts []ggsurface.Option,
) (*ggsurface.Surface, error) {
	s, err := ggsurface.New(r, img, frames, opts...)
	if err == nil {
		if err = s.Activate(cfg.Width, cfg.Height); err == nil {
			return s, nil
		}
	}
	if cfg.Backend != "" {
		return nil, err
	}

	ggsurface.Logger().Warn("falling back to software backend", "err", err)
	opts = append(opts[:len(opts):len(opts)], ggsurface.WithBackend(backend.NameSoftware))
	s, err = ggsurface.New(r, img, frames, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Activate(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	return s, nil
}

func watch(ctx context.Context, path string, s *ggsurface.Surface) {
	if path == "" {
		return
	}
	err := config.Watch(ctx, path, func(c config.Config) {
		s.SetTargetFrameRate(c.TargetFPS)
	})
	if err != nil {
		ggsurface.Logger().Warn("config watch disabled", "err", err)
	}
}

func runHeadless(ctx context.Context, cfg config.Config, path string, scene *scene, opts []ggsurface.Option) error {
	host := headless.New()
	s, err := activate(cfg, scene, host, host, opts)
	if err != nil {
		return err
	}
	s.AttachEvents(host)
	defer func() { _ = s.Deactivate() }()
	watch(ctx, path, s)

	for range cfg.Frames {
		host.Tick()
	}
	st := s.Stats()
	ggsurface.Logger().Info("rendered", "frames", st.FramesRendered, "size", fmt.Sprintf("%dx%d", st.Width, st.Height))

	img := s.Snapshot()
	if img == nil {
		return errors.New("no frame was rendered")
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ggsurface.Logger().Info("saved", "path", cfg.Output)
	return nil
}

func runWindow(ctx context.Context, cfg config.Config, path string, scene *scene, opts []ggsurface.Option) error {
	host := ebitenhost.New()
	s, err := activate(cfg, scene, host, host, opts)
	if err != nil {
		return err
	}
	s.AttachEvents(host)
	defer func() { _ = s.Deactivate() }()
	watch(ctx, path, s)

	return host.Run(cfg.Title, cfg.Width, cfg.Height)
}
