package portal

import (
	"sync"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAllocatorSequence(t *testing.T) {
	a := NewStencilAllocator()
	require.Equal(t, NoStencil, a.Peek())

	seen := make(map[StencilID]struct{})
	for i := 1; i <= 10; i++ {
		id, err := a.Next()
		require.NoError(t, err)
		require.Equal(t, StencilID(i), id)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, 10)
	require.Equal(t, 10, a.Allocated())
	require.Equal(t, 245, a.Remaining())
}

func TestAllocatorWithStart(t *testing.T) {
	a := NewStencilAllocator(WithStart(10))
	id, err := a.Next()
	require.NoError(t, err)
	require.Equal(t, StencilID(11), id)
	require.Equal(t, 1, a.Allocated())
}

func TestAllocatorExhaustion(t *testing.T) {
	a := NewStencilAllocator(WithBits(2))
	for i := 1; i <= 3; i++ {
		id, err := a.Next()
		require.NoError(t, err)
		require.Equal(t, StencilID(i), id)
	}

	_, err := a.Next()
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeResourceExhausted))
	require.Equal(t, StencilID(3), a.Peek())
	require.Zero(t, a.Remaining())

	_, err = a.Next()
	require.True(t, errors.IsType(err, ErrTypeResourceExhausted))
	require.Equal(t, StencilID(3), a.Peek())
}

func TestAllocatorFullWidth(t *testing.T) {
	a := NewStencilAllocator(WithStart(250))
	for i := 251; i <= 255; i++ {
		id, err := a.Next()
		require.NoError(t, err)
		require.Equal(t, StencilID(i), id)
	}
	_, err := a.Next()
	require.True(t, errors.IsType(err, ErrTypeResourceExhausted))
}

func TestAllocatorBitsClamped(t *testing.T) {
	require.Equal(t, 255, NewStencilAllocator(WithBits(16)).Remaining())
	require.Equal(t, 1, NewStencilAllocator(WithBits(0)).Remaining())
}

func TestAllocatorConcurrentNext(t *testing.T) {
	a := NewStencilAllocator()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[StencilID]int)
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				id, err := a.Next()
				if err != nil {
					continue
				}
				mu.Lock()
				seen[id]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, 200)
	for id, n := range seen {
		require.Equal(t, 1, n, "id %d handed out twice", id)
	}
}
