package common

// Coalesce picks the first argument that is not the zero value of T. Option setters use it to
// let an empty input fall through to a default.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
