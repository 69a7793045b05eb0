package scene

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderItem is one draw in a frame. Items are ordered by GroupOrder, then RenderOrder, then Z
// (front to back when opaque, back to front when transparent), then ID.
type RenderItem struct {
	Mesh *Mesh
	// World is the mesh's world matrix at the time the list was built.
	World mgl32.Mat4
	// Normal is the inverse transpose of World's upper 3x3.
	Normal mgl32.Mat3
	// GroupOrder is the render order of the nearest ancestor group.
	GroupOrder  int
	RenderOrder int
	// Z is the normalized device depth of the mesh origin.
	Z  float32
	ID uint64
}

func compareItems(a, b RenderItem, backToFront bool) int {
	if c := cmp.Compare(a.GroupOrder, b.GroupOrder); c != 0 {
		return c
	}
	if c := cmp.Compare(a.RenderOrder, b.RenderOrder); c != 0 {
		return c
	}
	if a.Z != b.Z {
		if backToFront {
			return cmp.Compare(b.Z, a.Z)
		}
		return cmp.Compare(a.Z, b.Z)
	}
	return cmp.Compare(a.ID, b.ID)
}

func sortOpaque(items []RenderItem) {
	slices.SortStableFunc(items, func(a, b RenderItem) int {
		return compareItems(a, b, false)
	})
}

func sortTransparent(items []RenderItem) {
	slices.SortStableFunc(items, func(a, b RenderItem) int {
		return compareItems(a, b, true)
	})
}
