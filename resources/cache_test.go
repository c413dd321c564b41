// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package resources

import (
	"errors"
	"image/color"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/gogpu/gg"
)

func TestNew(t *testing.T) {
	c := New(0)
	if st := c.Stats(); st.Capacity != DefaultCapacity || st.Len != 0 {
		t.Errorf("New(0) stats = %+v, want empty cache with default capacity", st)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New(10)
	created := 0
	create := func() gg.Brush {
		created++
		return gg.SolidRGB(1, 0, 0)
	}

	c.GetOrCreate("red", create)
	c.GetOrCreate("red", create)
	if created != 1 {
		t.Errorf("create called %d times, want 1", created)
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", st.Hits, st.Misses)
	}
	if st.HitRate() != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", st.HitRate())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	mk := func() gg.Brush { return gg.SolidRGB(0, 0, 0) }

	c.GetOrCreate("a", mk)
	c.GetOrCreate("b", mk)
	c.GetOrCreate("a", mk) // a is now most recent
	c.GetOrCreate("c", mk) // evicts b

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}

	created := false
	c.GetOrCreate("a", func() gg.Brush { created = true; return mk() })
	if created {
		t.Error("a was evicted, want b evicted")
	}
	c.GetOrCreate("b", func() gg.Brush { created = true; return mk() })
	if !created {
		t.Error("b was still cached, want it evicted")
	}
}

func TestContextChangedPurges(t *testing.T) {
	c := New(10)
	if c.Context() != nil {
		t.Error("Context() before ContextChanged != nil")
	}
	if _, err := c.Solid("#ff0000"); err != nil {
		t.Fatalf("Solid() error = %v", err)
	}

	dc := gg.NewContext(10, 10)
	c.ContextChanged(dc)

	if c.Len() != 0 {
		t.Errorf("Len() after ContextChanged = %d, want 0", c.Len())
	}
	if c.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", c.Generation())
	}
	if c.Context() != dc {
		t.Error("Context() did not return the new context")
	}
}

func TestSolid(t *testing.T) {
	c := New(10)
	tests := []struct {
		hex     string
		want    gg.RGBA
		wantErr bool
	}{
		{"#ff0000", gg.RGB(1, 0, 0), false},
		{"#00f", gg.RGB(0, 0, 1), false},
		{"not-a-color", gg.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			b, err := c.Solid(tt.hex)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("Solid(%q) error = %v, want ErrInvalidColor", tt.hex, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Solid(%q) error = %v", tt.hex, err)
			}
			if got := b.ColorAt(0, 0); !near(got, tt.want) {
				t.Errorf("Solid(%q) color = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}

	// Equivalent spellings share one entry.
	before := c.Len()
	if _, err := c.Solid("#FF0000"); err != nil {
		t.Fatal(err)
	}
	if c.Len() != before {
		t.Errorf("Len() = %d, want %d (case-insensitive key)", c.Len(), before)
	}
}

func near(a, b gg.RGBA) bool {
	const eps = 1e-6
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestColor(t *testing.T) {
	c := New(10)
	b1 := c.Color(color.RGBA{R: 0, G: 255, B: 0, A: 255})
	b2 := c.Color(color.NRGBA{R: 0, G: 255, B: 0, A: 255})
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 for identical colors", c.Len())
	}
	if b1.ColorAt(0, 0) != b2.ColorAt(0, 0) {
		t.Error("identical colors produced different brushes")
	}
}

func TestLinearGradient(t *testing.T) {
	c := New(10)
	b, err := c.LinearGradient(0, 0, 100, 0, "#000000", "#ffffff", 5)
	if err != nil {
		t.Fatalf("LinearGradient() error = %v", err)
	}
	start := b.ColorAt(0, 0)
	end := b.ColorAt(100, 0)
	if start.R > 0.01 || end.R < 0.99 {
		t.Errorf("gradient endpoints = %+v .. %+v, want black .. white", start, end)
	}
	mid := b.ColorAt(50, 0)
	if mid.R <= start.R || mid.R >= end.R {
		t.Errorf("gradient midpoint R = %v, want between endpoints", mid.R)
	}

	if _, err := c.LinearGradient(0, 0, 1, 1, "#000", "bogus", 2); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("LinearGradient(bogus) error = %v, want ErrInvalidColor", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(64)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := strconv.Itoa((i * j) % 100)
				c.GetOrCreate(key, func() gg.Brush { return gg.SolidRGB(0, 0, 0) })
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 10 {
			c.ContextChanged(nil)
		}
	}()
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len() = %d, exceeds capacity", c.Len())
	}
}
