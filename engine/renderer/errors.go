package renderer

const (
	// ErrTypePipeline marks a failure to build a render pipeline for a raster state.
	ErrTypePipeline = "renderer-pipeline"
	// ErrTypeResource marks a failure to create a buffer, texture or bind group.
	ErrTypeResource = "renderer-resource"
	// ErrTypeFrame marks a frame that could not be acquired or submitted. The frame is skipped.
	ErrTypeFrame = "renderer-frame"
)
