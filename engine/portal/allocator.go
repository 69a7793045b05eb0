package portal

import (
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// StencilID identifies one portal in the stencil buffer. Zero is the cleared value and never
// identifies a portal.
type StencilID uint8

// NoStencil is the stencil value of pixels no mask has covered.
const NoStencil StencilID = 0

// DefaultStencilBits is the width of the stencil attachment used by both renderers.
const DefaultStencilBits = 8

// stencilAllocator is the implementation of the StencilAllocator interface.
type stencilAllocator struct {
	mu *sync.Mutex

	start   int
	current int
	bits    int
}

// StencilAllocator hands out stencil ids for portals. Ids start at 1 and strictly increase; an id
// is never handed out twice by the same allocator. One allocator serves one scene.
type StencilAllocator interface {
	// Next increments the counter and returns the new value.
	// When the counter would pass the largest value the stencil width can hold, an error of type
	// ErrTypeResourceExhausted is returned and the counter is left unchanged.
	//
	// Returns:
	//   - StencilID: the new id
	//   - error: the exhaustion error, if any
	Next() (StencilID, error)

	// Peek returns the last id handed out, or the seed value if none was.
	//
	// Returns:
	//   - StencilID: the current counter value
	Peek() StencilID

	// Allocated returns how many ids this allocator handed out.
	//
	// Returns:
	//   - int: the number of ids
	Allocated() int

	// Remaining returns how many ids are left.
	//
	// Returns:
	//   - int: the number of ids that Next can still return
	Remaining() int
}

var _ StencilAllocator = &stencilAllocator{}

// NewStencilAllocator creates an allocator whose first id is 1, or start+1 when seeded with
// WithStart.
//
// Parameters:
//   - options: variadic list of AllocatorBuilderOption functions
//
// Returns:
//   - StencilAllocator: the allocator
func NewStencilAllocator(options ...AllocatorBuilderOption) StencilAllocator {
	a := &stencilAllocator{
		mu:   &sync.Mutex{},
		bits: DefaultStencilBits,
	}
	for _, opt := range options {
		opt(a)
	}
	a.current = min(a.start, a.maxID())
	a.start = a.current
	return a
}

func (a *stencilAllocator) maxID() int {
	return 1<<a.bits - 1
}

func (a *stencilAllocator) Next() (StencilID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current+1 > a.maxID() {
		return NoStencil, errors.New("no stencil id left").
			WithType(ErrTypeResourceExhausted).
			WithTag("bits", a.bits).
			WithTag("allocated", a.current-a.start)
	}
	a.current++
	instrumentStencilAllocated()
	return StencilID(a.current), nil
}

func (a *stencilAllocator) Peek() StencilID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return StencilID(a.current)
}

func (a *stencilAllocator) Allocated() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current - a.start
}

func (a *stencilAllocator) Remaining() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.maxID() - a.current
}
