// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu runs the keylight program on WebGPU hardware. It owns
// the adapter and device plumbing, the compiled render pipeline with
// its two uniform bind groups, mesh buffers, and window-backed and
// offscreen render targets with readback.
package gpu

import (
	"log/slog"
	"os"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Debug enables verbose logging of device and target configuration.
// It is automatically set if the environment variable KEYLIGHT_DEBUG
// is set to "true".
var Debug = false

// ForceFallbackAdapter requests a software adapter instead of real
// hardware, for CI and other headless environments.
var ForceFallbackAdapter = false

func init() {
	if os.Getenv("KEYLIGHT_DEBUG") == "true" {
		Debug = true
	}
	if os.Getenv("KEYLIGHT_FALLBACK_ADAPTER") == "true" {
		ForceFallbackAdapter = true
	}
}

var theInstance *wgpu.Instance

// Instance returns the global WebGPU instance, creating it on first
// use.
func Instance() *wgpu.Instance {
	if theInstance == nil {
		theInstance = wgpu.CreateInstance(nil)
	}
	return theInstance
}

// GPU represents the physical GPU hardware.
type GPU struct {

	// Instance is the shared WebGPU instance from [Instance].
	Instance *wgpu.Instance

	// Adapter is the acquired hardware (or fallback) adapter.
	Adapter *wgpu.Adapter
}

// NewGPU returns a new GPU with an adapter compatible with the given
// surface, which can be nil for offscreen-only use.
func NewGPU(sf *wgpu.Surface) (*GPU, error) {
	gp := &GPU{Instance: Instance()}
	adapter, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    sf,
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
		ForceFallbackAdapter: ForceFallbackAdapter,
	})
	if err != nil {
		return nil, errors.Log(err)
	}
	gp.Adapter = adapter
	if Debug {
		slog.Info("keylight gpu: acquired adapter", "fallback", ForceFallbackAdapter)
	}
	return gp, nil
}

// NoDisplayGPU returns a GPU and device suitable for offscreen
// rendering, with no surface.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp, err := NewGPU(nil)
	if err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, nil, err
	}
	return gp, dev, nil
}

// Release releases the adapter.
func (gp *GPU) Release() {
	if gp.Adapter == nil {
		return
	}
	gp.Adapter.Release()
	gp.Adapter = nil
}
