package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/light"
	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/shader"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/Carmen-Shannon/impossible-box/engine/window"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline
	meshShader    shader.Shader

	backendType RendererBackendType
	backend     RendererBackend

	frame    bind_group_provider.BindGroupProvider
	meshes   map[*model.Geometry]bind_group_provider.BindGroupProvider
	items    map[uint64]*itemResources
	textures map[*common.TextureStagingData]*wgpu.TextureView
	white    *wgpu.TextureView
	sampler  *wgpu.Sampler

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// itemResources are the GPU resources of one scene mesh.
type itemResources struct {
	provider bind_group_provider.BindGroupProvider
	texture  *common.TextureStagingData
}

// FrameStats summarizes one submitted frame.
type FrameStats struct {
	// Items is the number of draws submitted.
	Items int
	// Pipelines is the number of distinct render pipelines the frame used.
	Pipelines int
}

// Renderer defines the interface for the WebGPU rendering system.
//
// The Renderer draws a scene graph in a single render pass. It walks the graph once per frame,
// takes the ordered render list and issues one draw per item with the pipeline matching the
// item's raster state and the item's stencil reference. Pipelines, mesh buffers and textures are
// created lazily on first use and cached.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipelines for one or more pipelines via the backend,
	// then caches them by PipelineKey. Already registered keys are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments could not be recreated
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode. A call to Resize is required after changing
	// this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Render draws one frame of the scene and presents it.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - viewProj: the camera view-projection matrix
	//   - eye: the camera world position
	//
	// Returns:
	//   - FrameStats: what the frame submitted
	//   - error: an error of type ErrTypeFrame, ErrTypePipeline or ErrTypeResource; the frame is dropped
	Render(s scene.Scene, viewProj mgl32.Mat4, eye mgl32.Vec3) (FrameStats, error)

	// Release releases every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing into the window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the GPU device or the surface could not be set up
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		meshShader:    shader.NewShader("mesh", shader.MeshSource),
		backendType:   backendType,
		meshes:        make(map[*model.Geometry]bind_group_provider.BindGroupProvider),
		items:         make(map[uint64]*itemResources),
		textures:      make(map[*common.TextureStagingData]*wgpu.TextureView),
		frame:         bind_group_provider.NewBindGroupProvider("frame", bind_group_provider.WithGroup(frameGroup)),
	}

	// Options first so config flags are known before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}
	if err != nil {
		return nil, err
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.backend.ConfigureSurface(win.Width(), win.Height()); err != nil {
		return nil, err
	}
	if err := r.initSharedResources(); err != nil {
		return nil, err
	}

	logs.WithTag("msaa", msaa).
		WithTag("depth_format", "depth24plus-stencil8").
		Info("renderer ready")
	return r, nil
}

// initSharedResources creates the frame bind group, the sampler and the white texture used by
// materials without a texture.
func (r *renderer) initSharedResources() error {
	if err := r.backend.InitBindGroup(r.frame); err != nil {
		return err
	}
	samp, err := r.backend.CreateSampler()
	if err != nil {
		return err
	}
	r.sampler = samp

	white, err := r.backend.CreateTextureView("white", common.TextureStagingData{
		Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF},
		Width:  1,
		Height: 1,
	})
	if err != nil {
		return err
	}
	r.white = white
	return nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		if err := r.registerLocked(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) registerLocked(p pipeline.Pipeline) error {
	key := p.PipelineKey()
	if _, exists := r.pipelineCache[key]; exists {
		return nil
	}
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return err
	}
	r.pipelineCache[key] = p
	logs.WithTag("pipeline", key).Debug("render pipeline registered")
	return nil
}

// pipelineFor returns the registered pipeline for a raster state, creating it on first use.
func (r *renderer) pipelineFor(state pipeline.RasterState) (pipeline.Pipeline, error) {
	key := pipeline.KeyFor(r.meshShader, state)
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}
	p := pipeline.NewPipeline(state, pipeline.WithShader(r.meshShader))
	if err := r.registerLocked(p); err != nil {
		return nil, err
	}
	return p, nil
}

// meshFor returns the vertex and index buffers of a geometry, uploading them once.
func (r *renderer) meshFor(geo *model.Geometry) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.meshes[geo]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("geometry %s", geo.Name()))
	if err := r.backend.InitMeshBuffers(p, geo.VertexData(), geo.IndexData(), geo.IndexCount()); err != nil {
		return nil, err
	}
	r.meshes[geo] = p
	return p, nil
}

// textureFor returns the view of a material texture, uploading it once.
func (r *renderer) textureFor(tex *common.TextureStagingData) (*wgpu.TextureView, error) {
	if tex == nil {
		return r.white, nil
	}
	if view, ok := r.textures[tex]; ok {
		return view, nil
	}
	view, err := r.backend.CreateTextureView(fmt.Sprintf("texture %dx%d", tex.Width, tex.Height), *tex)
	if err != nil {
		return nil, err
	}
	r.textures[tex] = view
	return view, nil
}

// itemLabel names the bind group of a mesh for GPU debugging. Unnamed meshes fall back to "mesh".
func itemLabel(m *scene.Mesh) string {
	return fmt.Sprintf("item %s#%d", common.Coalesce(m.Name(), "mesh"), m.ID())
}

// itemFor returns the uniform bind group of a mesh. The bind group is rebuilt when the
// material texture changed.
func (r *renderer) itemFor(m *scene.Mesh) (bind_group_provider.BindGroupProvider, error) {
	tex := m.Material().Texture()
	res, ok := r.items[m.ID()]
	if ok && res.texture == tex {
		return res.provider, nil
	}
	view, err := r.textureFor(tex)
	if err != nil {
		return nil, err
	}

	// A new entry is cached only once its bind group exists; a failed frame retries from scratch.
	if !ok {
		res = &itemResources{
			provider: bind_group_provider.NewBindGroupProvider(
				itemLabel(m),
				bind_group_provider.WithGroup(itemGroup),
			),
		}
	}
	res.provider.SetTextureView(itemTextureBinding, view)
	res.provider.SetSampler(itemSamplerBinding, r.sampler)
	if err := r.backend.InitBindGroup(res.provider); err != nil {
		if !ok {
			res.provider.Release()
		}
		return nil, err
	}
	res.texture = tex
	r.items[m.ID()] = res
	return res.provider, nil
}

// draw is one prepared draw call.
type draw struct {
	pipeline   pipeline.Pipeline
	mesh       bind_group_provider.BindGroupProvider
	item       bind_group_provider.BindGroupProvider
	stencilRef uint32
}

func (r *renderer) Render(s scene.Scene, viewProj mgl32.Mat4, eye mgl32.Vec3) (FrameStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := s.RenderList(viewProj)

	frame := light.NewGPUFrame(viewProj, eye, s.Lights())
	writes := make([]bind_group_provider.BufferWrite, 0, len(items)+1)
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: r.frame,
		Data:     frame.Marshal(),
	})

	draws := make([]draw, 0, len(items))
	used := make(map[string]struct{})
	for _, it := range items {
		if it.Mesh.Geometry().IndexCount() == 0 {
			continue
		}
		mat := it.Mesh.Material()
		p, err := r.pipelineFor(mat.RasterState())
		if err != nil {
			return FrameStats{}, err
		}
		mesh, err := r.meshFor(it.Mesh.Geometry())
		if err != nil {
			return FrameStats{}, err
		}
		item, err := r.itemFor(it.Mesh)
		if err != nil {
			return FrameStats{}, err
		}

		uniform := NewGPUItem(it)
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: item,
			Binding:  itemUniformBinding,
			Data:     uniform.Marshal(),
		})
		draws = append(draws, draw{
			pipeline:   p,
			mesh:       mesh,
			item:       item,
			stencilRef: uint32(mat.Stencil().Reference),
		})
		used[p.PipelineKey()] = struct{}{}
	}

	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(s.Background()); err != nil {
		return FrameStats{}, err
	}
	for _, d := range draws {
		r.backend.DrawCall(d.pipeline, d.mesh, d.stencilRef, []bind_group_provider.BindGroupProvider{r.frame, d.item})
	}
	if err := r.backend.EndFrame(); err != nil {
		return FrameStats{}, errors.New("frame dropped").
			WithType(ErrTypeFrame).
			WithTag("items", len(draws)).
			Wrap(err)
	}
	r.backend.Present()

	return FrameStats{Items: len(draws), Pipelines: len(used)}, nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, res := range r.items {
		res.provider.Release()
		delete(r.items, id)
	}
	for geo, p := range r.meshes {
		p.Release()
		delete(r.meshes, geo)
	}
	for tex, view := range r.textures {
		view.Release()
		delete(r.textures, tex)
	}
	if r.white != nil {
		r.white.Release()
		r.white = nil
	}
	if r.sampler != nil {
		r.sampler.Release()
		r.sampler = nil
	}
	r.frame.Release()
	for key, p := range r.pipelineCache {
		if rp := p.Pipeline(); rp != nil {
			rp.Release()
		}
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}
