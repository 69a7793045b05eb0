package portal

// AllocatorBuilderOption is a functional option for configuring a StencilAllocator.
type AllocatorBuilderOption func(*stencilAllocator)

// WithStart seeds the counter so the first id returned is n+1. Use it when ids below n are
// reserved by other stencil users of the same framebuffer.
//
// Parameters:
//   - n: the seed value
//
// Returns:
//   - AllocatorBuilderOption: option function to apply
func WithStart(n uint8) AllocatorBuilderOption {
	return func(a *stencilAllocator) {
		a.start = int(n)
	}
}

// WithBits sets the stencil attachment width. Values outside [1, 8] are clamped.
//
// Parameters:
//   - bits: the number of stencil bits
//
// Returns:
//   - AllocatorBuilderOption: option function to apply
func WithBits(bits int) AllocatorBuilderOption {
	return func(a *stencilAllocator) {
		a.bits = min(max(bits, 1), DefaultStencilBits)
	}
}
