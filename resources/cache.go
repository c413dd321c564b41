// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package resources caches brushes for the drawing context bound to a
// surface.
//
// Brushes are cached per context: gradient geometry is expressed in the
// context's pixel space, so every entry is dropped when a new context is
// bound. Cache implements ggsurface.ResourceCache.
package resources

import (
	"container/list"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultCapacity is the default maximum number of cached brushes.
const DefaultCapacity = 256

// ErrInvalidColor is returned for colors that cannot be parsed.
var ErrInvalidColor = errors.New("resources: invalid color")

// Stats holds cache statistics.
type Stats struct {
	Len        int
	Capacity   int
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Generation uint64
}

// HitRate returns hits / (hits + misses), or 0 with no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is an LRU brush cache bound to one drawing context at a time.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	lru      *list.List
	dc       *gg.Context

	generation atomic.Uint64
	hits       atomic.Uint64
	misses     atomic.Uint64
	evictions  atomic.Uint64
}

type entry struct {
	key   string
	brush gg.Brush
}

// New creates a cache holding at most capacity brushes.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// ContextChanged drops every cached brush and records dc as the current
// context.
func (c *Cache) ContextChanged(dc *gg.Context) {
	c.mu.Lock()
	c.entries = make(map[string]*list.Element)
	c.lru.Init()
	c.dc = dc
	c.mu.Unlock()

	gen := c.generation.Add(1)
	gg.Logger().Debug("resources: context changed", "generation", gen)
}

// Context returns the current drawing context, or nil before the first
// ContextChanged.
func (c *Cache) Context() *gg.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc
}

// Generation returns the number of context changes seen.
func (c *Cache) Generation() uint64 {
	return c.generation.Load()
}

// GetOrCreate returns the brush cached under key, creating it with create
// on a miss. create runs with the cache lock held; keep it fast.
func (c *Cache) GetOrCreate(key string, create func() gg.Brush) gg.Brush {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.lru.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*entry).brush
	}
	c.misses.Add(1)

	b := create()
	for c.lru.Len() >= c.capacity {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
		c.evictions.Add(1)
	}
	c.entries[key] = c.lru.PushFront(&entry{key: key, brush: b})
	return b
}

// Solid returns a solid brush for a hex color such as "#3b82f6" or "#fff".
func (c *Cache) Solid(hex string) (gg.Brush, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return c.GetOrCreate("solid:"+col.Hex(), func() gg.Brush {
		return gg.SolidRGB(col.R, col.G, col.B)
	}), nil
}

// Color returns a solid brush for an arbitrary color.
func (c *Cache) Color(col color.Color) gg.Brush {
	r, g, b, a := col.RGBA()
	key := fmt.Sprintf("color:%04x%04x%04x%04x", r, g, b, a)
	return c.GetOrCreate(key, func() gg.Brush {
		return gg.Solid(gg.FromColor(col))
	})
}

// LinearGradient returns a linear gradient from one hex color to another
// between two points, with steps stops interpolated in CIE L*a*b* space.
// steps is raised to at least 2.
func (c *Cache) LinearGradient(x0, y0, x1, y1 float64, from, to string, steps int) (gg.Brush, error) {
	c0, err := colorful.Hex(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, from)
	}
	c1, err := colorful.Hex(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, to)
	}
	steps = max(steps, 2)

	key := fmt.Sprintf("linear:%g,%g,%g,%g:%s:%s:%d", x0, y0, x1, y1, c0.Hex(), c1.Hex(), steps)
	return c.GetOrCreate(key, func() gg.Brush {
		g := gg.NewLinearGradientBrush(x0, y0, x1, y1)
		for i := range steps {
			t := float64(i) / float64(steps-1)
			s := c0.BlendLab(c1, t).Clamped()
			g.AddColorStop(t, gg.RGB(s.R, s.G, s.B))
		}
		return g
	}), nil
}

// Len returns the number of cached brushes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Len:        c.Len(),
		Capacity:   c.capacity,
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Evictions:  c.evictions.Load(),
		Generation: c.generation.Load(),
	}
}
