package raster

// RasterizerBuilderOption is a functional option for configuring a Rasterizer.
type RasterizerBuilderOption func(*rasterizer)

// WithWorkers sets the size of the band worker pool. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - RasterizerBuilderOption: option function to apply
func WithWorkers(n int) RasterizerBuilderOption {
	return func(r *rasterizer) {
		r.workers = max(n, 1)
	}
}

// WithBandHeight sets the number of rows each band task covers. Defaults to 16.
//
// Parameters:
//   - rows: rows per band (minimum 1)
//
// Returns:
//   - RasterizerBuilderOption: option function to apply
func WithBandHeight(rows int) RasterizerBuilderOption {
	return func(r *rasterizer) {
		r.bandHeight = max(rows, 1)
	}
}
