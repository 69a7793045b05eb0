package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithGroup sets the bind group index the provider is bound at.
//
// Parameters:
//   - group: the group index in the pipeline layout
//
// Returns:
//   - BindGroupProviderOption: a function that sets the group index for this provider
func WithGroup(group int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.group = group
	}
}
