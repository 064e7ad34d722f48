// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device holds a WebGPU device and its queue.
type Device struct {

	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the default queue of the device.
	Queue *wgpu.Queue
}

// NewDevice returns a new device for the GPU.
func NewDevice(gp *GPU) (*Device, error) {
	d, err := gp.Adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "keylight"})
	if err != nil {
		return nil, errors.Log(err)
	}
	return &Device{Device: d, Queue: d.GetQueue()}, nil
}

// WaitDone blocks until the device is done with all submitted work.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

// Release waits for the device to finish and releases it.
func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.WaitDone()
	dv.Queue.Release()
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
