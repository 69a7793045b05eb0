package renderer

import (
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/pipeline"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	// layouts are shared by every pipeline and bind group, keyed by group index
	layouts        map[int]*wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	modules        map[string]*wgpu.ShaderModule

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Instance() *wgpu.Instance
	Adapter() *wgpu.Adapter
	Surface() *wgpu.Surface
	SetDevice(device *wgpu.Device)
	SetQueue(queue *wgpu.Queue)
	SetInstance(instance *wgpu.Instance)
	SetAdapter(adapter *wgpu.Adapter)
	SetSurface(surface *wgpu.Surface)

	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// It recreates the MSAA color target and the depth-stencil target at the new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if an attachment could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the GPU render pipeline for a Pipeline. The raster state
	// provides the color write mask, blending, culling and the depth-stencil state.
	//
	// Parameters:
	//   - p: the pipeline to create the GPU object for
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data into new GPU buffers stored on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created vertex and index buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices represented in the indexData, used for draw calls
	//
	// Returns:
	//   - error: an error if the buffers could not be created, otherwise nil
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the provider's uniform buffers on first use and a bind group against the
	// shared layout of the provider's group. Texture and sampler bindings must already be set.
	//
	// Parameters:
	//   - provider: the BindGroupProvider describing and receiving the resources
	//
	// Returns:
	//   - error: an error if the bind group could not be initialized, otherwise nil
	InitBindGroup(provider bind_group_provider.BindGroupProvider) error

	// CreateTextureView uploads RGBA pixel data into a new texture and returns its view.
	//
	// Parameters:
	//   - label: debug label
	//   - stagingData: the pixel data and dimensions
	//
	// Returns:
	//   - *wgpu.TextureView: the view
	//   - error: an error if the texture could not be created
	CreateTextureView(label string, stagingData common.TextureStagingData) (*wgpu.TextureView, error)

	// CreateSampler creates the repeat, nearest-filtered sampler used for base color textures.
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler
	//   - error: an error if the sampler could not be created
	CreateSampler() (*wgpu.Sampler, error)

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Color clears to the given value, depth to 1 and stencil to 0.
	//
	// Parameters:
	//   - clear: RGBA clear color
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(clear [4]float32) error

	// DrawCall encodes one indexed draw within the current render pass.
	//
	// Parameters:
	//   - p: the registered Pipeline to draw with
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - stencilRef: the stencil reference for this draw
	//   - bindGroups: providers whose bind groups are set at their group index
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, stencilRef uint32, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release releases every GPU object owned by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		layouts:     make(map[int]*wgpu.BindGroupLayout),
		modules:     make(map[string]*wgpu.ShaderModule),
	}
	w.SetSurface(w.instance.CreateSurface(surfaceDescriptor))

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, errors.New("requesting gpu adapter failed").
			WithType(ErrTypeResource).
			Wrap(err)
	}
	w.SetAdapter(a)

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, errors.New("requesting gpu device failed").
			WithType(ErrTypeResource).
			Wrap(err)
	}
	w.SetDevice(d)
	w.SetQueue(d.GetQueue())

	if err := w.initLayouts(); err != nil {
		return nil, err
	}
	return w, nil
}

// initLayouts creates the bind group layouts and the pipeline layout every mesh pipeline shares.
func (b *wgpuRendererBackendImpl) initLayouts() error {
	descriptors := map[int]wgpu.BindGroupLayoutDescriptor{
		frameGroup: frameLayoutDescriptor(),
		itemGroup:  itemLayoutDescriptor(),
	}
	ordered := make([]*wgpu.BindGroupLayout, len(descriptors))
	for g, desc := range descriptors {
		layout, err := b.device.CreateBindGroupLayout(&desc)
		if err != nil {
			return errors.New("creating bind group layout failed").
				WithType(ErrTypeResource).
				WithTag("group", g).
				Wrap(err)
		}
		b.layouts[g] = layout
		ordered[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Mesh Pipeline Layout",
		BindGroupLayouts: ordered,
	})
	if err != nil {
		return errors.New("creating pipeline layout failed").
			WithType(ErrTypeResource).
			Wrap(err)
	}
	b.pipelineLayout = pipelineLayout
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	width, height = max(width, 1), max(height, 1)

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return errors.New("creating msaa texture failed").WithType(ErrTypeResource).Wrap(err)
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return errors.New("creating msaa texture view failed").WithType(ErrTypeResource).Wrap(err)
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth-stencil sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Stencil Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthStencilFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return errors.New("creating depth stencil texture failed").WithType(ErrTypeResource).Wrap(err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		return errors.New("creating depth stencil view failed").WithType(ErrTypeResource).Wrap(err)
	}
	b.depthTexture, b.depthTextureView = depthTexture, depthView

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:              b.depthTextureView,
			DepthLoadOp:       wgpu.LoadOpClear,
			DepthStoreOp:      wgpu.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     wgpu.LoadOpClear,
			StencilStoreOp:    wgpu.StoreOpDiscard,
			StencilClearValue: 0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	if s == nil {
		return errors.New("pipeline has no shader").
			WithType(ErrTypePipeline).
			WithTag("pipeline", p.PipelineKey())
	}
	if b.surfaceFormat == nil {
		return errors.New("surface is not configured").
			WithType(ErrTypePipeline).
			WithTag("pipeline", p.PipelineKey())
	}

	module, ok := b.modules[s.Key()]
	if !ok {
		var err error
		module, err = b.device.CreateShaderModule(s.Module())
		if err != nil {
			return errors.New("compiling shader failed").
				WithType(ErrTypePipeline).
				WithTag("shader", s.Key()).
				Wrap(err)
		}
		b.modules[s.Key()] = module
	}

	state := p.State()
	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: state.ColorWriteMask(),
		Blend:     p.BlendState(),
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey(),
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.VertexEntryPoint(),
			Buffers:    []wgpu.VertexBufferLayout{meshVertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  state.Cull.WGPU(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: state.DepthStencilState(DepthStencilFormat, p.DepthBias(), p.DepthBiasSlopeScale()),
	})
	if err != nil {
		return errors.New("creating render pipeline failed").
			WithType(ErrTypePipeline).
			WithTag("pipeline", p.PipelineKey()).
			Wrap(err)
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertex, err := b.uploadBuffer(provider.Label()+" Vertex Buffer", wgpu.BufferUsageVertex, vertexData)
	if err != nil {
		return err
	}
	index, err := b.uploadBuffer(provider.Label()+" Index Buffer", wgpu.BufferUsageIndex, indexData)
	if err != nil {
		vertex.Release()
		return err
	}
	provider.SetMesh(vertex, index, indexCount)
	return nil
}

func (b *wgpuRendererBackendImpl) uploadBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, errors.New("creating buffer failed").
			WithType(ErrTypeResource).
			WithTag("buffer", label).
			Wrap(err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	group := provider.Group()
	layout, ok := b.layouts[group]
	if !ok {
		return errors.New("no bind group layout for group").
			WithType(ErrTypeResource).
			WithTag("group", group).
			WithTag("provider", provider.Label())
	}

	var descriptor wgpu.BindGroupLayoutDescriptor
	if group == frameGroup {
		descriptor = frameLayoutDescriptor()
	} else {
		descriptor = itemLayoutDescriptor()
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tv := provider.TextureView(binding)
			if tv == nil {
				return errors.New("texture binding has no view").
					WithType(ErrTypeResource).
					WithTag("binding", binding).
					WithTag("provider", provider.Label())
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: tv}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			samp := provider.Sampler(binding)
			if samp == nil {
				return errors.New("sampler binding has no sampler").
					WithType(ErrTypeResource).
					WithTag("binding", binding).
					WithTag("provider", provider.Label())
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: samp}
		default:
			buf := provider.Buffer(binding)
			if buf == nil {
				var err error
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: provider.Label() + " Uniform Buffer",
					Size:  entry.Buffer.MinBindingSize,
					Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
				})
				if err != nil {
					return errors.New("creating uniform buffer failed").
						WithType(ErrTypeResource).
						WithTag("provider", provider.Label()).
						Wrap(err)
				}
				provider.SetBuffer(binding, buf)
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Size:    wgpu.WholeSize,
			}
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return errors.New("creating bind group failed").
			WithType(ErrTypeResource).
			WithTag("provider", provider.Label()).
			Wrap(err)
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) CreateTextureView(label string, stagingData common.TextureStagingData) (*wgpu.TextureView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := wgpu.Extent3D{
		Width:              stagingData.Width,
		Height:             stagingData.Height,
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, errors.New("creating texture failed").
			WithType(ErrTypeResource).
			WithTag("texture", label).
			Wrap(err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, errors.New("creating texture view failed").
			WithType(ErrTypeResource).
			WithTag("texture", label).
			Wrap(err)
	}
	return view, nil
}

func (b *wgpuRendererBackendImpl) CreateSampler() (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Base Color Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, errors.New("creating sampler failed").
			WithType(ErrTypeResource).
			Wrap(err)
	}
	return samp, nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear [4]float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A surface image that was never presented must not be acquired twice.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented").
			WithType(ErrTypeFrame)
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return errors.New("acquiring surface texture failed").
			WithType(ErrTypeFrame).
			Wrap(err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return errors.New("creating surface view failed").
			WithType(ErrTypeFrame).
			Wrap(err)
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return errors.New("creating command encoder failed").
			WithType(ErrTypeFrame).
			Wrap(err)
	}

	color := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		color.ResolveTarget = view
	} else {
		color.View = view
	}
	color.ClearValue = wgpu.Color{
		R: float64(clear[0]),
		G: float64(clear[1]),
		B: float64(clear[2]),
		A: float64(clear[3]),
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(
	p pipeline.Pipeline,
	meshProvider bind_group_provider.BindGroupProvider,
	stencilRef uint32,
	bindGroups []bind_group_provider.BindGroupProvider,
) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || p.Pipeline() == nil {
		return
	}

	b.framePass.SetPipeline(p.Pipeline())
	b.framePass.SetStencilReference(stencilRef)
	for _, bg := range bindGroups {
		b.framePass.SetBindGroup(uint32(bg.Group()), bg.BindGroup(), nil)
	}

	b.framePass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(meshProvider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(meshProvider.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return nil
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameSurface()
		return errors.New("finishing frame commands failed").
			WithType(ErrTypeFrame).
			Wrap(err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameSurface()
	b.releaseAttachments()
	for key, m := range b.modules {
		m.Release()
		delete(b.modules, key)
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	for g, l := range b.layouts {
		l.Release()
		delete(b.layouts, g)
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

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Instance() *wgpu.Instance {
	return b.instance
}

func (b *wgpuRendererBackendImpl) Adapter() *wgpu.Adapter {
	return b.adapter
}

func (b *wgpuRendererBackendImpl) Surface() *wgpu.Surface {
	return b.surface
}

func (b *wgpuRendererBackendImpl) SetDevice(device *wgpu.Device) {
	b.device = device
}

func (b *wgpuRendererBackendImpl) SetQueue(queue *wgpu.Queue) {
	b.queue = queue
}

func (b *wgpuRendererBackendImpl) SetInstance(instance *wgpu.Instance) {
	b.instance = instance
}

func (b *wgpuRendererBackendImpl) SetAdapter(adapter *wgpu.Adapter) {
	b.adapter = adapter
}

func (b *wgpuRendererBackendImpl) SetSurface(surface *wgpu.Surface) {
	b.surface = surface
}
