package portal

import (
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/pipeline"
)

// Role selects which half of the portal technique a material plays.
type Role uint8

const (
	// RoleWriter marks the mask quad: it stamps its id into the stencil buffer and draws nothing.
	RoleWriter Role = iota
	// RoleReader marks portal content: it draws only where the stencil equals its id.
	RoleReader
)

func (r Role) String() string {
	if r == RoleWriter {
		return "writer"
	}
	return "reader"
}

// StencilStateFor returns the stencil state of a role. Both roles keep the buffer on stencil or
// depth failure, replace it with the reference on pass, and use full read and write masks.
//
// Parameters:
//   - id: the portal's stencil id
//   - role: writer or reader
//
// Returns:
//   - pipeline.StencilState: the stencil state
func StencilStateFor(id StencilID, role Role) pipeline.StencilState {
	compare := pipeline.CompareEqual
	if role == RoleWriter {
		compare = pipeline.CompareAlways
	}
	return pipeline.StencilState{
		Enabled:     true,
		Compare:     compare,
		FailOp:      pipeline.StencilKeep,
		DepthFailOp: pipeline.StencilKeep,
		PassOp:      pipeline.StencilReplace,
		ReadMask:    0xFF,
		WriteMask:   0xFF,
		Reference:   uint8(id),
	}
}

// ApplyMaskState patches a material's raster state for a portal role. Writers additionally stop
// writing color and depth so the quad is invisible and does not occlude content behind it.
// Surface properties are left untouched.
//
// Parameters:
//   - m: the material to patch
//   - id: the portal's stencil id
//   - role: writer or reader
func ApplyMaskState(m material.Material, id StencilID, role Role) {
	if role == RoleWriter {
		m.SetColorWrite(false)
		m.SetDepthWrite(false)
	}
	m.SetStencil(StencilStateFor(id, role))
}
