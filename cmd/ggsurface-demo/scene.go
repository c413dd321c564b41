// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"

	"github.com/gogpu/ggsurface/resources"
)

var palette = []color.RGBA{
	colornames.Tomato,
	colornames.Mediumseagreen,
	colornames.Royalblue,
	colornames.Gold,
	colornames.Orchid,
}

// scene draws rotating shapes over a gradient. Every Render advances the
// animation by one frame.
type scene struct {
	cache *resources.Cache
	frame int
}

func newScene(cache *resources.Cache) *scene {
	return &scene{cache: cache}
}

func (s *scene) Render(dc *gg.Context) {
	w, h := float64(dc.Width()), float64(dc.Height())
	t := float64(s.frame) / 60
	s.frame++

	s.background(dc, w, h)
	s.ring(dc, w/2, h/2, math.Min(w, h)/3, t)
	s.wave(dc, w, h, t)
}

func (s *scene) background(dc *gg.Context, w, h float64) {
	bg, err := s.cache.LinearGradient(0, 0, 0, h, "#1e3a5f", "#0b1320", 8)
	if err != nil {
		dc.ClearWithColor(gg.Black)
		return
	}
	dc.SetFillBrush(bg)
	dc.DrawRectangle(0, 0, w, h)
	_ = dc.Fill()
}

func (s *scene) ring(dc *gg.Context, cx, cy, r, t float64) {
	n := len(palette)
	size := r / 3
	for i, col := range palette {
		angle := t + float64(i)*2*math.Pi/float64(n)
		dc.Push()
		dc.Translate(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
		dc.Rotate(angle * 2)
		dc.SetFillBrush(s.cache.Color(col))
		dc.DrawRoundedRectangle(-size/2, -size/2, size, size, size/5)
		_ = dc.Fill()
		dc.Pop()
	}

	dc.SetFillBrush(s.cache.Color(colornames.White))
	dc.DrawCircle(cx, cy, r/4*(1+0.1*math.Sin(t*3)))
	_ = dc.Fill()
}

func (s *scene) wave(dc *gg.Context, w, h, t float64) {
	stroke, err := s.cache.Solid("#7dd3fc")
	if err != nil {
		return
	}
	dc.SetStrokeBrush(stroke)
	dc.SetLineWidth(3)
	const steps = 64
	for i := 0; i <= steps; i++ {
		x := w * float64(i) / steps
		y := h*0.85 + h*0.05*math.Sin(t*2+x/40)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	_ = dc.Stroke()
}
