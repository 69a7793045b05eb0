package pipeline

import (
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the raster state a GPU render pipeline is built from and, once registered, the pipeline itself.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	shader shader.Shader

	// renderPipeline is nil until the renderer registers this pipeline
	renderPipeline *wgpu.RenderPipeline

	state               RasterState
	depthBias           int32
	depthBiasSlopeScale float32
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
	blendState          *wgpu.BlendState
}

// Pipeline defines the interface for a GPU render pipeline built from a RasterState. Every distinct
// raster state key used by a scene maps to one Pipeline; stencil masks and the content they reveal
// differ only in state, so they share shaders and bind group layouts.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader holding the vertex and fragment entry points.
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if not set
	Shader() shader.Shader

	// Pipeline returns the underlying WebGPU render pipeline, or nil if not yet registered.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the render pipeline
	Pipeline() *wgpu.RenderPipeline

	// State returns the raster state this pipeline was built from.
	//
	// Returns:
	//   - RasterState: the raster state
	State() RasterState

	// DepthBias returns the constant depth bias.
	//
	// Returns:
	//   - int32: the depth bias value for this pipeline
	DepthBias() int32

	// DepthBiasSlopeScale returns the depth bias slope scale.
	//
	// Returns:
	//   - float32: the depth bias slope scale for this pipeline
	DepthBiasSlopeScale() float32

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// BlendState returns the blend state used when the raster state enables blending.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline, or nil if blending is not enabled
	BlendState() *wgpu.BlendState

	// SetRenderPipeline sets the render pipeline
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description for the given raster state. The pipeline key
// is derived from the state, prefixed by the shader key when a shader is provided.
//
// Parameters:
//   - state: the raster state the pipeline is built from
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(state RasterState, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		state:     state,
		topology:  wgpu.PrimitiveTopologyTriangleList,
		frontFace: wgpu.FrontFaceCCW,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.pipelineKey = KeyFor(p.shader, state)
	return p
}

// KeyFor returns the cache key of the pipeline that renders state with s.
//
// Parameters:
//   - s: the shader, may be nil
//   - state: the raster state
//
// Returns:
//   - string: the pipeline key
func KeyFor(s shader.Shader, state RasterState) string {
	if s == nil {
		return state.Key()
	}
	return s.Key() + "|" + state.Key()
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) State() RasterState {
	return p.state
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	if !p.state.Blend {
		return nil
	}
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
