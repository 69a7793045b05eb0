package shader

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoints overrides the vertex and fragment entry point names.
//
// Parameters:
//   - vertex: the @vertex function name
//   - fragment: the @fragment function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets both entry points
func WithEntryPoints(vertex, fragment string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntryPoint = vertex
		s.fragmentEntryPoint = fragment
	}
}
