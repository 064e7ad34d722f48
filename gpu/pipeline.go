// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image/color"
	"log/slog"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/keylight"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline is the keylight program realized on a device: the compiled
// shader module, the render pipeline object, and the two uniform
// buffers with their bind groups. Configure the option fields before
// calling [Pipeline.Config]; after that, update uniforms with
// [Pipeline.SetCamera] and [Pipeline.SetMaterial] at any frequency.
type Pipeline struct {

	// CullMode selects which primitive winding is discarded, with
	// counter-clockwise front faces. Default is no culling.
	CullMode wgpu.CullMode

	// DepthFormat enables a depth attachment in the given format when
	// not undefined; the render target must then provide a matching
	// depth texture. Default is no depth testing, so primitives
	// overwrite in submission order.
	DepthFormat wgpu.TextureFormat

	// ClearColor is the render pass clear value.
	ClearColor color.Color

	device         *Device
	pipeline       *wgpu.RenderPipeline
	cameraBuffer   *wgpu.Buffer
	materialBuffer *wgpu.Buffer
	cameraGroup    *wgpu.BindGroup
	materialGroup  *wgpu.BindGroup
}

// NewPipeline returns an unconfigured pipeline for the device with
// default options: no culling, no depth attachment, black clear.
func NewPipeline(dev *Device) *Pipeline {
	return &Pipeline{
		device:      dev,
		CullMode:    wgpu.CullModeNone,
		DepthFormat: wgpu.TextureFormatUndefined,
		ClearColor:  colors.Black,
	}
}

// Config compiles the shader and builds the pipeline and uniform
// resources for the given output texture format. Both uniform blocks
// start zeroed: set the camera and material before the first frame.
func (pl *Pipeline) Config(format wgpu.TextureFormat) error {
	dev := pl.device.Device

	module, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "keylight",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: keylight.Source,
		},
	})
	if errors.Log(err) != nil {
		return err
	}
	defer module.Release()

	cameraLayout, materialLayout, err := keylight.BindGroupLayouts(dev)
	if errors.Log(err) != nil {
		return err
	}
	defer cameraLayout.Release()
	defer materialLayout.Release()

	layout, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "keylight",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout, materialLayout},
	})
	if errors.Log(err) != nil {
		return err
	}
	defer layout.Release()

	if err := pl.configUniforms(cameraLayout, materialLayout); err != nil {
		return err
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  "keylight",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: keylight.VertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{keylight.VertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: keylight.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  pl.CullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	if pl.DepthFormat != wgpu.TextureFormatUndefined {
		desc.DepthStencil = &wgpu.DepthStencilState{
			Format:            pl.DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		}
	}
	pl.pipeline, err = dev.CreateRenderPipeline(desc)
	if errors.Log(err) != nil {
		return err
	}
	if Debug {
		slog.Info("keylight gpu: pipeline configured",
			"format", format, "cull", pl.CullMode, "depth", pl.DepthFormat)
	}
	return nil
}

// configUniforms creates the camera and material uniform buffers and
// binds each at binding 0 of its group layout.
func (pl *Pipeline) configUniforms(cameraLayout, materialLayout *wgpu.BindGroupLayout) error {
	dev := pl.device.Device

	var err error
	pl.cameraBuffer, err = dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "keylight.Camera",
		Size:  uint64(unsafe.Sizeof(keylight.Camera{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.materialBuffer, err = dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "keylight.Material",
		Size:  uint64(unsafe.Sizeof(keylight.Material{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.cameraGroup, err = dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "keylight.Camera",
		Layout: cameraLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  pl.cameraBuffer,
			Size:    wgpu.WholeSize,
		}},
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.materialGroup, err = dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "keylight.Material",
		Layout: materialLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  pl.materialBuffer,
			Size:    wgpu.WholeSize,
		}},
	})
	if errors.Log(err) != nil {
		return err
	}
	return nil
}

// SetCamera uploads the camera uniform block. Any model transform must
// already be folded into its view-projection matrix.
func (pl *Pipeline) SetCamera(cm *keylight.Camera) {
	pl.device.Queue.WriteBuffer(pl.cameraBuffer, 0, wgpu.ToBytes([]keylight.Camera{*cm}))
}

// SetMaterial uploads the material uniform block.
func (pl *Pipeline) SetMaterial(mt *keylight.Material) {
	pl.device.Queue.WriteBuffer(pl.materialBuffer, 0, wgpu.ToBytes([]keylight.Material{*mt}))
}

// Bind sets the pipeline and both uniform bind groups on the pass.
func (pl *Pipeline) Bind(rp *wgpu.RenderPass) {
	rp.SetPipeline(pl.pipeline)
	rp.SetBindGroup(keylight.CameraGroup, pl.cameraGroup, nil)
	rp.SetBindGroup(keylight.MaterialGroup, pl.materialGroup, nil)
}

// Release releases the pipeline and its uniform resources.
func (pl *Pipeline) Release() {
	if pl.materialGroup != nil {
		pl.materialGroup.Release()
		pl.materialGroup = nil
	}
	if pl.cameraGroup != nil {
		pl.cameraGroup.Release()
		pl.cameraGroup = nil
	}
	if pl.materialBuffer != nil {
		pl.materialBuffer.Release()
		pl.materialBuffer = nil
	}
	if pl.cameraBuffer != nil {
		pl.cameraBuffer.Release()
		pl.cameraBuffer = nil
	}
	if pl.pipeline != nil {
		pl.pipeline.Release()
		pl.pipeline = nil
	}
}
