package utils

// Value dereferences v, returning the zero value for nil. Used for optional
// fields of decoded JSON payloads.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}
