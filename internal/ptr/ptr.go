// Package ptr has helpers for working with pointers to values.
package ptr

// Ref returns a pointer to the value passed as argument. Useful for optional
// fields modeled as pointers.
func Ref[T any](v T) *T {
	return &v
}
