package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultMaxDraws is the default number of draws per frame the model ring can hold.
	DefaultMaxDraws = 1024

	// modelRingStride is the dynamic-offset stride of the model ring. It matches the WebGPU
	// default minUniformBufferOffsetAlignment.
	modelRingStride = 256

	// modelBindingSize is the size of one model ring entry: a single mat4x4<f32>.
	modelBindingSize = 64

	// frameUniformSize is view_proj (64 bytes) followed by the lighting block.
	frameUniformSize = 64 + light.LightingBlockSize
)

// Bind groups of the built-in flat pipeline.
const (
	frameGroup = 0
	modelGroup = 1
)

const frameStructSource = `
struct Frame {
    view_proj: mat4x4<f32>,
    lighting: Lighting,
};
`

const objectStructSource = `
struct Object {
    model: mat4x4<f32>,
};
`

// flatShaderTemplate is the built-in lit flat-color pipeline before @oxy: expansion. Group 0
// holds per-frame state, group 1 the per-draw model matrix at a dynamic offset.
const flatShaderTemplate = `//@oxy:include lighting
//@oxy:include frame
//@oxy:include object
//@oxy:group 0 0 uniform frame frame
//@oxy:group 1 0 uniform object object

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) normal: vec3<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) normal: vec3<f32>) -> VertexOut {
    var out: VertexOut;
    out.position = frame.view_proj * object.model * vec4<f32>(position, 1.0);
    out.normal = normalize((object.model * vec4<f32>(normal, 0.0)).xyz);
    return out;
}

@fragment
fn fs_main(frag: VertexOut) -> @location(0) vec4<f32> {
    let n = normalize(frag.normal);
    var color = frame.lighting.ambient.rgb;
    for (var i = 0u; i < frame.lighting.count; i = i + 1u) {
        let l = frame.lighting.lights[i];
        color = color + l.color.rgb * max(dot(n, -l.direction.xyz), 0.0);
    }
    return vec4<f32>(color * vec3<f32>(0.8, 0.8, 0.8), 1.0);
}
`

// buildFlatShader expands flatShaderTemplate and checks that it declares exactly the
// bindings the flat pipeline's layouts provide.
func buildFlatShader() (string, error) {
	pp := shader.NewPreProcessor(
		shader.WithStruct("frame", frameStructSource, "Frame"),
		shader.WithStruct("object", objectStructSource, "Object"),
	)
	source, err := pp.Process(flatShaderTemplate)
	if err != nil {
		return "", err
	}

	provided := map[[2]int]bool{{frameGroup, 0}: true, {modelGroup, 0}: true}
	for _, d := range pp.Declarations() {
		key := [2]int{*d.Group, *d.Binding}
		if !provided[key] {
			return "", fmt.Errorf("line %d: no layout for group %d binding %d", d.Line, key[0], key[1])
		}
		delete(provided, key)
	}
	if len(provided) != 0 {
		return "", fmt.Errorf("flat shader leaves %d layout bindings undeclared", len(provided))
	}
	return source, nil
}

// WGPUDrawList is the precompiled draw-command block executed by the WebGPU backend.
// It is stored on a model.Model via CompileDrawList.
type WGPUDrawList struct {
	pipeline     *wgpu.RenderPipeline
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

// IndexCount returns the number of indices drawn.
func (d *WGPUDrawList) IndexCount() uint32 {
	return d.indexCount
}

// Release frees the draw list's GPU buffers.
func (d *WGPUDrawList) Release() {
	if d.vertexBuffer != nil {
		d.vertexBuffer.Release()
		d.vertexBuffer = nil
	}
	if d.indexBuffer != nil {
		d.indexBuffer.Release()
		d.indexBuffer = nil
	}
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount          MSAASampleCount  // MSAA sample count for the main render pass
	maxDraws             int

	// Per-frame uniforms and the built-in pipeline
	frameUniform   *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup
	modelRing      *wgpu.Buffer
	modelBindGroup *wgpu.BindGroup
	ringStaging    []byte
	flatPipeline   *wgpu.RenderPipeline

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	bound        mgl32.Mat4
	drawIndex    int
	overflowed   bool
}

// WGPUBackend is a Backend that renders through WebGPU onto a window surface.
type WGPUBackend interface {
	Backend

	// Device returns the logical GPU device.
	Device() *wgpu.Device

	// Queue returns the device's command queue.
	Queue() *wgpu.Queue

	// SurfaceFormat returns the texture format the surface is configured with.
	SurfaceFormat() wgpu.TextureFormat

	// SetPresentMode changes the present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// CompileDrawList uploads the model's mesh and stores a WGPUDrawList on it using the
	// built-in flat pipeline, making the model drawable.
	//
	// Parameters:
	//   - m: the model to compile
	//
	// Returns:
	//   - error: an error if the model has no mesh or buffer creation fails
	CompileDrawList(m model.Model) error

	// Release frees every GPU resource owned by the backend.
	Release()
}

var _ WGPUBackend = &wgpuRendererBackendImpl{}

// NewWGPUBackend creates a WebGPU backend presenting to the given surface, configured for
// the initial surface size.
//
// Parameters:
//   - surfaceDescriptor: the platform surface, usually from window.Window
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: functional options to configure the backend
//
// Returns:
//   - WGPUBackend: the newly created backend
//   - error: an error if adapter, device or pipeline creation fails
func NewWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...WGPUBackendOption) (WGPUBackend, error) {
	if surfaceDescriptor == nil {
		panic("renderer: NewWGPUBackend requires a surface descriptor")
	}

	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: MSAA4x,
		maxDraws:    DefaultMaxDraws,
		bound:       mgl32.Ident4(),
	}
	for _, option := range options {
		option(b)
	}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return nil, errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]

	if err := b.configureSurface(width, height); err != nil {
		return nil, err
	}
	if err := b.initFlatPipeline(); err != nil {
		return nil, err
	}
	return b, nil
}

// configureSurface is a wrapper for the boilerplate needed when the surface size changes:
// surface configuration, MSAA and depth targets, and the cached render pass descriptor.
func (b *wgpuRendererBackendImpl) configureSurface(width, height int) error {
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is written to the
		// swapchain view as the ResolveTarget.
		tex, view, err := b.createTarget("MSAA Texture", width, height, count, b.surfaceFormat)
		if err != nil {
			return err
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth texture sample count must match the color attachment.
	tex, view, err := b.createTarget("Depth Texture", width, height, count, wgpu.TextureFormatDepth24Plus)
	if err != nil {
		return err
	}
	b.depthTexture, b.depthTextureView = tex, view

	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is set per-frame to
	// the swapchain view. When disabled, View is set per-frame and ResolveTarget stays nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) createTarget(label string, width, height int, samples uint32, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
		b.depthTextureView, b.depthTexture = nil, nil
	}
}

// initFlatPipeline creates the frame uniform, the model ring, their bind groups and the
// built-in flat render pipeline.
func (b *wgpuRendererBackendImpl) initFlatPipeline() error {
	frameLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: frameUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create frame bind group layout: %w", err)
	}
	modelLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Model Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   modelBindingSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create model bind group layout: %w", err)
	}

	b.frameUniform, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform",
		Size:  frameUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create frame uniform: %w", err)
	}
	ringSize := uint64(b.maxDraws * modelRingStride)
	b.modelRing, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Model Ring",
		Size:  ringSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create model ring: %w", err)
	}
	b.ringStaging = make([]byte, ringSize)

	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.frameUniform, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create frame bind group: %w", err)
	}
	b.modelBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Model Bind Group",
		Layout: modelLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.modelRing, Offset: 0, Size: modelBindingSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create model bind group: %w", err)
	}

	source, err := buildFlatShader()
	if err != nil {
		return fmt.Errorf("build flat shader: %w", err)
	}
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Flat Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return fmt.Errorf("create flat shader: %w", err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Flat Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{frameLayout, modelLayout},
	})
	if err != nil {
		return fmt.Errorf("create flat pipeline layout: %w", err)
	}

	b.flatPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Flat Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: model.VertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create flat pipeline: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) CompileDrawList(m model.Model) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexData, indexData := m.VertexData(), m.IndexData()
	if len(vertexData) == 0 || len(indexData) == 0 || m.IndexCount() == 0 {
		return fmt.Errorf("compile %q: model has no mesh", m.Name())
	}

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("compile %q: %w", m.Name(), err)
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return fmt.Errorf("compile %q: %w", m.Name(), err)
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	m.SetCommands(&WGPUDrawList{
		pipeline:     b.flatPipeline,
		vertexBuffer: vb,
		indexBuffer:  ib,
		indexCount:   uint32(m.IndexCount()),
	})
	return nil
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear mgl32.Vec4) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A surface texture still held from the previous frame means Present was skipped.
	// Acquiring another would fail with "Surface image is already acquired".
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("create surface view: %w", err)
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("create command encoder: %w", err)
	}

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{
		R: float64(clear[0]), G: float64(clear[1]), B: float64(clear[2]), A: float64(clear[3]),
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(frameGroup, b.frameBindGroup, nil)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	b.drawIndex = 0
	b.overflowed = false
	return nil
}

func (b *wgpuRendererBackendImpl) SetViewProjection(viewProj mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clip := common.WebGPUClip(viewProj)
	b.queue.WriteBuffer(b.frameUniform, 0, common.StructToBytes(&clip))
}

func (b *wgpuRendererBackendImpl) SetLighting(block light.LightingBlock) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue.WriteBuffer(b.frameUniform, 64, block.Marshal())
}

func (b *wgpuRendererBackendImpl) BindMatrix(m mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bound = m
}

func (b *wgpuRendererBackendImpl) Execute(m model.Model) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || m == nil {
		return
	}
	dl, ok := m.Commands().(*WGPUDrawList)
	if !ok || dl.vertexBuffer == nil {
		return
	}
	if b.drawIndex >= b.maxDraws {
		if !b.overflowed {
			log.Printf("[Renderer] model ring full at %d draws, skipping the rest of the frame", b.maxDraws)
			b.overflowed = true
		}
		return
	}

	offset := b.drawIndex * modelRingStride
	copy(b.ringStaging[offset:offset+modelBindingSize], common.StructToBytes(&b.bound))
	b.drawIndex++

	b.framePass.SetPipeline(dl.pipeline)
	b.framePass.SetBindGroup(modelGroup, b.modelBindGroup, []uint32{uint32(offset)})
	b.framePass.SetVertexBuffer(0, dl.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(dl.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(dl.indexCount, 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errors.New("end frame without a render pass")
	}
	b.framePass.End()

	if b.drawIndex > 0 {
		b.queue.WriteBuffer(b.modelRing, 0, b.ringStaging[:b.drawIndex*modelRingStride])
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return fmt.Errorf("finish command encoder: %w", err)
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
	return nil
}

func (b *wgpuRendererBackendImpl) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return nil
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
	return nil
}

func (b *wgpuRendererBackendImpl) Resize(width, height int) {
	// Minimized windows report a zero size which the surface cannot be configured with.
	if width <= 0 || height <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.configureSurface(width, height); err != nil {
		log.Printf("[Renderer] resize to %dx%d failed: %v", width, height, err)
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = toWGPUPresentMode(mode)
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) SurfaceFormat() wgpu.TextureFormat {
	return b.surfaceFormat
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseTargets()
	if b.flatPipeline != nil {
		b.flatPipeline.Release()
	}
	if b.modelBindGroup != nil {
		b.modelBindGroup.Release()
	}
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
	}
	if b.modelRing != nil {
		b.modelRing.Release()
	}
	if b.frameUniform != nil {
		b.frameUniform.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

func toWGPUPresentMode(mode PresentMode) wgpu.PresentMode {
	switch mode {
	case PresentModeVSync:
		return wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		return wgpu.PresentModeImmediate
	}
}
