package impossiblebox

// BoxBuilderOption is a functional option for configuring a Box during Build.
type BoxBuilderOption func(*Box)

// WithSpin sets whether the pocket objects rotate.
//
// Parameters:
//   - spin: true to animate the objects
//
// Returns:
//   - BoxBuilderOption: option function to apply
func WithSpin(spin bool) BoxBuilderOption {
	return func(b *Box) {
		b.spin.Store(spin)
	}
}
