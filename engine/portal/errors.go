package portal

const (
	// ErrTypeResourceExhausted is returned when no stencil id is left for a new portal.
	ErrTypeResourceExhausted = "portal-stencil-exhausted"

	// ErrTypeInvalidContent is returned when portal content contains a nil mesh, a mesh without
	// a material, a duplicate, a mesh that already has a parent or a material already bound to
	// another portal.
	ErrTypeInvalidContent = "portal-invalid-content"

	// ErrTypeInvalidPlacement is returned when a placement has a non-finite position or rotation.
	ErrTypeInvalidPlacement = "portal-invalid-placement"
)
