// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	gowgpu "github.com/gogpu/wgpu"

	// Platform HAL backends.
	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/ggsurface/backend"
)

func init() {
	backend.Register(backend.NameWGPU, func() backend.Backend {
		return New()
	})
}

// loggerPtr is the logger used by this backend. Nil means silent.
var loggerPtr atomic.Pointer[slog.Logger]

func logger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// Backend opens hardware devices through gogpu/wgpu.
type Backend struct {
	backends gputypes.Backends
}

// New creates a wgpu backend using the primary platform APIs.
func New() *Backend {
	return &Backend{backends: gowgpu.BackendsPrimary}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.NameWGPU
}

// SetLogger configures logging for this backend and the wgpu stack.
func (b *Backend) SetLogger(l *slog.Logger) {
	loggerPtr.Store(l)
	gowgpu.SetLogger(l)
}

// OpenDevice creates an instance, selects a hardware adapter and opens a
// logical device with default limits.
func (b *Backend) OpenDevice() (backend.Device, error) {
	instance, err := gowgpu.CreateInstance(&gowgpu.InstanceDescriptor{
		Backends: b.backends,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapter, err := instance.RequestAdapter(&gowgpu.RequestAdapterOptions{
		PowerPreference: gowgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: %w", backend.ErrNoAdapter, err)
	}

	info := adapter.Info()
	if info.DeviceType == gputypes.DeviceTypeCPU {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: %s is a CPU adapter", backend.ErrNoAdapter, info.Name)
	}

	device, err := adapter.RequestDevice(&gowgpu.DeviceDescriptor{
		Label:          "ggsurface-device",
		RequiredLimits: gputypes.DefaultLimits(),
	})
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("wgpu: request device: %w", err)
	}

	logger().Info("wgpu: device opened",
		"adapter", info.Name,
		"backend", info.Backend,
		"type", info.DeviceType,
	)
	if info.Driver != "" {
		logger().Debug("wgpu: driver", "version", info.Driver)
	}

	return &Device{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    device.Queue(),
		info:     info,
	}, nil
}

// Device wraps a wgpu device and its queue.
//
// Device is NOT safe for concurrent use.
type Device struct {
	instance *gowgpu.Instance
	adapter  *gowgpu.Adapter
	device   *gowgpu.Device
	queue    *gowgpu.Queue
	info     gputypes.AdapterInfo

	viewportW int
	viewportH int
	released  bool
}

// CreateTexture allocates a 2D texture and its default view.
func (d *Device) CreateTexture(desc backend.TextureDescriptor) (backend.Texture, error) {
	if d.released {
		return nil, backend.ErrReleased
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", backend.ErrInvalidDimensions, desc.Width, desc.Height)
	}

	tex, err := d.device.CreateTexture(&gowgpu.TextureDescriptor{
		Label: desc.Label,
		Size: gowgpu.Extent3D{
			Width:              uint32(desc.Width),  //nolint:gosec // validated positive
			Height:             uint32(desc.Height), //nolint:gosec // validated positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gowgpu.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %dx%d: %w", desc.Width, desc.Height, err)
	}

	view, err := d.device.CreateTextureView(tex, nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}

	return &Texture{
		device: d,
		tex:    tex,
		view:   view,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
	}, nil
}

// SetViewport records the output viewport. Texture uploads always cover
// the full texture; the viewport is reported to hosts through Viewport.
func (d *Device) SetViewport(width, height int) {
	d.viewportW, d.viewportH = width, height
}

// Viewport returns the last viewport set.
func (d *Device) Viewport() (width, height int) {
	return d.viewportW, d.viewportH
}

// Flush submits pending texture writes and drains completed work.
func (d *Device) Flush() error {
	if d.released {
		return backend.ErrReleased
	}
	if _, err := d.queue.Submit(); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	d.device.Poll(gowgpu.PollPoll)
	return nil
}

// Info describes the adapter.
func (d *Device) Info() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: d.info.Name, Type: adapterType(d.info.DeviceType)}
}

// Release destroys the device, adapter and instance in reverse creation order.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
	logger().Info("wgpu: device released")
}

// gpucontext.DeviceProvider implementation.

// Device returns the wgpu device.
func (d *Device) Device() gpucontext.Device { return d.device }

// Queue returns the wgpu queue.
func (d *Device) Queue() gpucontext.Queue { return d.queue }

// Adapter returns the wgpu adapter.
func (d *Device) Adapter() gpucontext.Adapter { return d.adapter }

// SurfaceFormat returns the shared texture format.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return backend.SharedTextureFormat }

// AdapterInfo returns adapter metadata.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo { return d.Info() }

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// Texture is a wgpu texture with its default view.
type Texture struct {
	device   *Device
	tex      *gowgpu.Texture
	view     *gowgpu.TextureView
	width    int
	height   int
	format   gputypes.TextureFormat
	released bool

	// shadow holds the last uploaded pixels. Shared textures are only ever
	// written through UpdateData, so it mirrors the GPU contents.
	shadow []byte
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// View returns an opaque handle to the texture view for hosts that sample
// the texture directly.
func (t *Texture) View() gpucontext.TextureView {
	if t.released {
		return gpucontext.TextureView{}
	}
	return gpucontext.NewTextureView(unsafe.Pointer(t.view)) //nolint:gosec // handle keeps view alive
}

// UpdateData queues a full-texture write. The write is submitted on the
// next Device.Flush.
func (t *Texture) UpdateData(data []byte) error {
	if t.released {
		return backend.ErrReleased
	}
	want := t.width * t.height * 4
	if len(data) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", backend.ErrDataSize, len(data), want)
	}
	err := t.device.queue.WriteTexture(
		&gowgpu.ImageCopyTexture{Texture: t.tex, Aspect: gputypes.TextureAspectAll},
		data,
		&gowgpu.ImageDataLayout{
			BytesPerRow:  uint32(t.width * 4), //nolint:gosec // positive
			RowsPerImage: uint32(t.height),    //nolint:gosec // positive
		},
		&gowgpu.Extent3D{
			Width:              uint32(t.width),  //nolint:gosec // positive
			Height:             uint32(t.height), //nolint:gosec // positive
			DepthOrArrayLayers: 1,
		},
	)
	if err != nil {
		return fmt.Errorf("wgpu: write texture: %w", err)
	}
	t.shadow = append(t.shadow[:0], data...)
	return nil
}

// Pixels returns the last uploaded pixels in the texture's byte order, or
// nil before the first upload and after Release.
func (t *Texture) Pixels() []byte {
	if t.released {
		return nil
	}
	return t.shadow
}

// Release destroys the view and the texture. Release is idempotent.
func (t *Texture) Release() {
	if t.released {
		return
	}
	t.released = true
	t.shadow = nil
	t.view.Release()
	t.tex.Release()
}

var (
	_ backend.Backend           = (*Backend)(nil)
	_ backend.Device            = (*Device)(nil)
	_ backend.Texture           = (*Texture)(nil)
	_ backend.Readbacker        = (*Texture)(nil)
	_ gpucontext.DeviceProvider = (*Device)(nil)
)
