package renderer

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/Carmen-Shannon/cine-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Prop is one static colored box in the scene. Props stand in for loaded
// models: the camera demos only need reference geometry to fly around.
type Prop struct {
	Position  common.Vec3
	RotationY float32 // radians
	Scale     float32
	Color     [4]float32
}

// cameraUniform is the per-frame camera data uploaded to bind group 0.
// Layout matches the CameraUniform struct in the WGSL source.
type cameraUniform struct {
	View [16]float32
	Proj [16]float32
}

// propUniform is the per-prop data uploaded to bind group 1. Props are
// static, so these are written once at startup.
type propUniform struct {
	Model [16]float32
	Color [4]float32
}

// boxVertex is one cube vertex: position plus face normal, stride 24 bytes.
type boxVertex struct {
	Pos    [3]float32
	Normal [3]float32
}

type propBinding struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type rendererImpl struct {
	mu *sync.Mutex

	win window.Window

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	config        *wgpu.SurfaceConfiguration
	surfaceFormat wgpu.TextureFormat

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	pipeline     *wgpu.RenderPipeline
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32

	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup
	propLayout      *wgpu.BindGroupLayout

	props        []Prop
	propBindings []propBinding

	clearColor wgpu.Color
}

// Renderer draws the prop set from a camera's view and projection matrices.
// One render pass, one pipeline; all GPU resources except the camera uniform
// are uploaded at creation.
type Renderer interface {
	// RenderFrame uploads the camera matrices and draws all props to the
	// window surface. Call once per frame from the window thread.
	//
	// Parameters:
	//   - view: the camera view matrix (column-major)
	//   - proj: the camera projection matrix (column-major)
	//
	// Returns:
	//   - error: if the surface texture cannot be acquired or the pass fails
	RenderFrame(view, proj [16]float32) error

	// Resize reconfigures the surface and depth buffer for a new framebuffer
	// size. Zero dimensions (minimized window) are ignored.
	//
	// Parameters:
	//   - width: new framebuffer width in pixels
	//   - height: new framebuffer height in pixels
	Resize(width, height int)

	// Release frees all GPU resources. The renderer is unusable afterwards.
	Release()
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates a Renderer targeting the given window. The prop set is
// fixed at creation; per-prop uniforms are uploaded here and never touched
// again.
//
// Parameters:
//   - win: the window whose surface is rendered to
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: if any WebGPU setup step fails
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &rendererImpl{
		mu:         &sync.Mutex{},
		win:        win,
		clearColor: wgpu.Color{R: 0.05, G: 0.06, B: 0.08, A: 1.0},
	}
	for _, option := range options {
		option(r)
	}

	if err := r.initDevice(); err != nil {
		return nil, err
	}
	if err := r.initPipeline(); err != nil {
		return nil, err
	}
	if err := r.initProps(); err != nil {
		return nil, err
	}
	return r, nil
}

// initDevice runs the WebGPU bring-up chain: instance, surface, adapter,
// device, queue, surface configuration, and depth buffer.
func (r *rendererImpl) initDevice() error {
	r.instance = wgpu.CreateInstance(nil)

	desc := r.win.SurfaceDescriptor()
	if desc == nil {
		return fmt.Errorf("renderer: window has no surface descriptor")
	}
	r.surface = r.instance.CreateSurface(desc)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
	})
	if err != nil {
		return fmt.Errorf("renderer: request adapter: %w", err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("renderer: request device: %w", err)
	}
	r.device = device
	r.queue = device.GetQueue()

	caps := r.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return fmt.Errorf("renderer: surface reports no texture formats")
	}
	r.surfaceFormat = caps.Formats[0]

	r.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(r.win.Width()),
		Height:      uint32(r.win.Height()),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	r.surface.Configure(r.adapter, r.device, r.config)

	return r.createDepthBuffer()
}

// createDepthBuffer (re)creates the depth texture at the current surface size.
func (r *rendererImpl) createDepthBuffer() error {
	if r.depthView != nil {
		r.depthView.Release()
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}

	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth_texture",
		Size: wgpu.Extent3D{
			Width:              r.config.Width,
			Height:             r.config.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("renderer: create depth texture: %w", err)
	}
	r.depthTexture = tex

	view, err := tex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("renderer: create depth view: %w", err)
	}
	r.depthView = view
	return nil
}

// initPipeline compiles the inline WGSL shader and builds the single render
// pipeline plus the camera uniform buffer and bind group.
func (r *rendererImpl) initPipeline() error {
	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "prop_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: propShaderWGSL},
	})
	if err != nil {
		return fmt.Errorf("renderer: compile shader: %w", err)
	}
	defer shader.Release()

	uniformEntry := []wgpu.BindGroupLayoutEntry{{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffer: wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeUniform,
		},
	}}

	cameraLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "camera_bind_group_layout",
		Entries: uniformEntry,
	})
	if err != nil {
		return fmt.Errorf("renderer: camera bind group layout: %w", err)
	}
	defer cameraLayout.Release()

	propLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "prop_bind_group_layout",
		Entries: uniformEntry,
	})
	if err != nil {
		return fmt.Errorf("renderer: prop bind group layout: %w", err)
	}
	r.propLayout = propLayout

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "prop_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout, r.propLayout},
	})
	if err != nil {
		return fmt.Errorf("renderer: pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "prop_pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(boxVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.surfaceFormat,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: create pipeline: %w", err)
	}

	r.cameraBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "camera_uniform",
		Size:  uint64(unsafe.Sizeof(cameraUniform{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("renderer: camera uniform buffer: %w", err)
	}

	r.cameraBindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "camera_bind_group",
		Layout: cameraLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  r.cameraBuffer,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return fmt.Errorf("renderer: camera bind group: %w", err)
	}
	return nil
}

// initProps uploads the shared cube mesh and one uniform buffer plus bind
// group per prop.
func (r *rendererImpl) initProps() error {
	verts, indices := boxMesh()
	vbuf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "box_vertices",
		Contents: common.SliceToBytes(verts),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return fmt.Errorf("renderer: vertex buffer: %w", err)
	}
	r.vertexBuffer = vbuf

	ibuf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "box_indices",
		Contents: common.SliceToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return fmt.Errorf("renderer: index buffer: %w", err)
	}
	r.indexBuffer = ibuf
	r.indexCount = uint32(len(indices))

	for i, prop := range r.props {
		uniform := propUniform{Color: prop.Color}
		scale := common.Coalesce(prop.Scale, 1)
		common.ModelMatrix(uniform.Model[:], prop.Position, prop.RotationY, scale)

		buf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    fmt.Sprintf("prop_uniform_%d", i),
			Contents: common.StructToBytes(&uniform),
			Usage:    wgpu.BufferUsageUniform,
		})
		if err != nil {
			return fmt.Errorf("renderer: prop %d uniform: %w", i, err)
		}
		bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  fmt.Sprintf("prop_bind_group_%d", i),
			Layout: r.propLayout,
			Entries: []wgpu.BindGroupEntry{{
				Binding: 0,
				Buffer:  buf,
				Size:    wgpu.WholeSize,
			}},
		})
		if err != nil {
			return fmt.Errorf("renderer: prop %d bind group: %w", i, err)
		}
		r.propBindings = append(r.propBindings, propBinding{buffer: buf, bindGroup: bg})
	}
	return nil
}

func (r *rendererImpl) RenderFrame(view, proj [16]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	uniform := cameraUniform{View: view, Proj: proj}
	r.queue.WriteBuffer(r.cameraBuffer, 0, common.StructToBytes(&uniform))

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("renderer: acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	textureView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("renderer: surface texture view: %w", err)
	}
	defer textureView.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("renderer: command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "prop_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       textureView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.clearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.cameraBindGroup, nil)
	pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	for _, binding := range r.propBindings {
		pass.SetBindGroup(1, binding.bindGroup, nil)
		pass.DrawIndexed(r.indexCount, 1, 0, 0, 0)
	}
	pass.End()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("renderer: finish encoder: %w", err)
	}
	defer cmd.Release()

	r.queue.Submit(cmd)
	r.surface.Present()
	return nil
}

func (r *rendererImpl) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = uint32(width)
	r.config.Height = uint32(height)
	r.surface.Configure(r.adapter, r.device, r.config)
	// depth buffer must track the surface size exactly
	_ = r.createDepthBuffer()
}

func (r *rendererImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, binding := range r.propBindings {
		binding.bindGroup.Release()
		binding.buffer.Release()
	}
	r.propBindings = nil

	released := []interface{ Release() }{
		r.cameraBindGroup, r.cameraBuffer, r.propLayout,
		r.pipeline, r.vertexBuffer, r.indexBuffer,
		r.depthView, r.depthTexture,
		r.device, r.adapter, r.surface, r.instance,
	}
	for _, res := range released {
		if res != nil {
			res.Release()
		}
	}
}

// boxMesh returns a unit cube centered at the origin with per-face normals,
// counter-clockwise winding.
func boxMesh() ([]boxVertex, []uint16) {
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}

	verts := make([]boxVertex, 0, 24)
	indices := make([]uint16, 0, 36)
	for _, face := range faces {
		base := uint16(len(verts))
		for _, corner := range face.corners {
			verts = append(verts, boxVertex{Pos: corner, Normal: face.normal})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return verts, indices
}

// propShaderWGSL is the single shader pair: camera matrices at group 0,
// per-prop model matrix and color at group 1, simple directional lambert
// shading in the fragment stage.
const propShaderWGSL = `
struct CameraUniform {
    view: mat4x4<f32>,
    proj: mat4x4<f32>,
};

struct PropUniform {
    model: mat4x4<f32>,
    color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(1) @binding(0) var<uniform> prop: PropUniform;

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) normal: vec3<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) normal: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    let world = prop.model * vec4<f32>(position, 1.0);
    out.clip_position = camera.proj * camera.view * world;
    out.normal = normalize((prop.model * vec4<f32>(normal, 0.0)).xyz);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let light_dir = normalize(vec3<f32>(0.4, 0.8, 0.2));
    let diffuse = max(dot(in.normal, light_dir), 0.0) * 0.7 + 0.3;
    return vec4<f32>(prop.color.rgb * diffuse, prop.color.a);
}
`
