package pipeline

import "fmt"

// CompareFunc is a depth or stencil comparison function. Comparisons read as
// "incoming OP stored": for stencil the incoming value is the reference, for depth
// it is the fragment depth.
type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

var compareNames = [...]string{"never", "less", "equal", "lequal", "greater", "notequal", "gequal", "always"}

func (c CompareFunc) String() string {
	if int(c) < len(compareNames) {
		return compareNames[c]
	}
	return fmt.Sprintf("compare(%d)", uint8(c))
}

// Eval applies the comparison to an incoming and a stored value.
//
// Parameters:
//   - incoming: the reference value (stencil) or fragment depth (depth)
//   - stored: the value currently held in the buffer
//
// Returns:
//   - bool: true if the comparison passes
func Eval[T ~uint8 | ~float32](c CompareFunc, incoming, stored T) bool {
	switch c {
	case CompareNever:
		return false
	case CompareLess:
		return incoming < stored
	case CompareEqual:
		return incoming == stored
	case CompareLessEqual:
		return incoming <= stored
	case CompareGreater:
		return incoming > stored
	case CompareNotEqual:
		return incoming != stored
	case CompareGreaterEqual:
		return incoming >= stored
	default:
		return true
	}
}

// StencilOp is the action taken on the stored stencil value after a test.
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilInvert
	StencilIncrementClamp
	StencilDecrementClamp
	StencilIncrementWrap
	StencilDecrementWrap
)

var stencilOpNames = [...]string{"keep", "zero", "replace", "invert", "incr", "decr", "incrwrap", "decrwrap"}

func (o StencilOp) String() string {
	if int(o) < len(stencilOpNames) {
		return stencilOpNames[o]
	}
	return fmt.Sprintf("stencilop(%d)", uint8(o))
}

// apply computes the unmasked result of the operation.
func (o StencilOp) apply(stored, ref uint8) uint8 {
	switch o {
	case StencilZero:
		return 0
	case StencilReplace:
		return ref
	case StencilInvert:
		return ^stored
	case StencilIncrementClamp:
		if stored == 0xFF {
			return stored
		}
		return stored + 1
	case StencilDecrementClamp:
		if stored == 0 {
			return stored
		}
		return stored - 1
	case StencilIncrementWrap:
		return stored + 1
	case StencilDecrementWrap:
		return stored - 1
	default:
		return stored
	}
}

// StencilState describes the stencil test and update applied to every fragment of a draw.
// The same state is used for front and back faces.
type StencilState struct {
	// Enabled turns the stencil test and its write ops on. A disabled state always passes and never writes.
	Enabled bool
	// Compare is evaluated as Compare(Reference&ReadMask, stored&ReadMask).
	Compare CompareFunc
	// FailOp runs when the stencil test fails.
	FailOp StencilOp
	// DepthFailOp runs when the stencil test passes but the depth test fails.
	DepthFailOp StencilOp
	// PassOp runs when both the stencil and the depth test pass.
	PassOp StencilOp
	// ReadMask selects the bits that take part in the comparison.
	ReadMask uint8
	// WriteMask selects the bits an op may modify.
	WriteMask uint8
	// Reference is the value compared against and written by StencilReplace.
	Reference uint8
}

// DisabledStencil returns the state of a draw that ignores the stencil buffer.
func DisabledStencil() StencilState {
	return StencilState{
		Compare:     CompareAlways,
		FailOp:      StencilKeep,
		DepthFailOp: StencilKeep,
		PassOp:      StencilKeep,
		ReadMask:    0xFF,
		WriteMask:   0xFF,
	}
}

// Test evaluates the stencil comparison against a stored value.
//
// Parameters:
//   - stored: the stencil buffer value at the fragment
//
// Returns:
//   - bool: true if the fragment passes the stencil test
func (s StencilState) Test(stored uint8) bool {
	if !s.Enabled {
		return true
	}
	return Eval(s.Compare, s.Reference&s.ReadMask, stored&s.ReadMask)
}

// Update returns the new stencil value after a fragment went through the stencil and depth tests.
//
// Parameters:
//   - stored: the stencil buffer value at the fragment
//   - stencilPassed: result of Test
//   - depthPassed: result of the depth test, ignored when the stencil test failed
//
// Returns:
//   - uint8: the value to store, with bits outside WriteMask preserved
func (s StencilState) Update(stored uint8, stencilPassed, depthPassed bool) uint8 {
	if !s.Enabled {
		return stored
	}
	op := s.PassOp
	switch {
	case !stencilPassed:
		op = s.FailOp
	case !depthPassed:
		op = s.DepthFailOp
	}
	next := op.apply(stored, s.Reference)
	return (stored &^ s.WriteMask) | (next & s.WriteMask)
}

// key identifies the static part of the state. Reference is dynamic render pass state
// and is left out so one pipeline serves every stencil id.
func (s StencilState) key() string {
	if !s.Enabled {
		return "s:off"
	}
	return fmt.Sprintf("s:%s/%s/%s/%s/%02x/%02x", s.Compare, s.FailOp, s.DepthFailOp, s.PassOp, s.ReadMask, s.WriteMask)
}
