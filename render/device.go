// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle is the host-side device interface of the gogpu ecosystem.
// Hosts that also implement HalDevice() and HalQueue() can be handed to
// FromProvider to share their device with the rasterizer.
type DeviceHandle = gpucontext.DeviceProvider

// DefaultBackends is the backend preference order of OpenDevice.
// BackendEmpty is last and resolves to the software or noop backend,
// whichever the binary registers.
var DefaultBackends = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
	gputypes.BackendEmpty,
}

// Device is an opened hal device and its queue.
//
// A Device returned by OpenDevice owns its instance and device and must be
// closed; one returned by FromProvider borrows the host's and Close only
// forgets them.
type Device struct {
	Device hal.Device
	Queue  hal.Queue
	Info   gputypes.AdapterInfo

	instance hal.Instance
	owned    bool
}

// OpenDevice opens the first usable adapter of the first registered
// backend in backends (DefaultBackends when empty). Discrete and
// integrated GPUs are preferred over other adapters of the same backend.
//
// Backends are registered by importing them, for example
// github.com/gogpu/wgpu/hal/allbackends or github.com/gogpu/wgpu/hal/noop.
func OpenDevice(backends ...gputypes.Backend) (*Device, error) {
	if len(backends) == 0 {
		backends = DefaultBackends
	}
	var lastErr error = ErrNoBackend
	for _, variant := range backends {
		backend, ok := hal.GetBackend(variant)
		if !ok {
			continue
		}
		d, err := openBackend(backend)
		if err != nil {
			slogger().Debug("render: backend unusable", "backend", variant, "err", err)
			lastErr = err
			continue
		}
		slogger().Info("render: opened GPU device",
			"backend", variant, "adapter", d.Info.Name, "type", d.Info.DeviceType)
		return d, nil
	}
	return nil, lastErr
}

func openBackend(backend hal.Backend) (*Device, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("render: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	open, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("render: open device: %w", err)
	}
	return &Device{
		Device:   open.Device,
		Queue:    open.Queue,
		Info:     selected.Info,
		instance: instance,
		owned:    true,
	}, nil
}

// FromProvider borrows the hal device and queue of a host such as a gogpu
// window. The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func FromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderHAL)
	}
	d := &Device{Device: device, Queue: queue}
	if dp, ok := provider.(DeviceHandle); ok {
		info := dp.AdapterInfo()
		d.Info.Name = info.Name
	}
	return d, nil
}

// Owned reports whether Close releases the device.
func (d *Device) Owned() bool { return d.owned }

// Close waits for the device to go idle and destroys it when owned.
func (d *Device) Close() {
	if d.Device == nil {
		return
	}
	if d.owned {
		if err := d.Device.WaitIdle(); err != nil {
			slogger().Warn("render: wait idle on close", "err", err)
		}
		d.Device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.Device = nil
	d.Queue = nil
	d.instance = nil
}
