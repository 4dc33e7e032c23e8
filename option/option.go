// Package option implements the variadic options pattern.
package option

// Option mutates an options struct of type T.
type Option[T any] func(opts *T)

// Build applies the given options, in order, on top of the defaults and
// returns the result. Later options win over earlier ones.
func Build[T any](defaults *T, opts ...Option[T]) *T {
	for _, apply := range opts {
		apply(defaults)
	}
	return defaults
}
