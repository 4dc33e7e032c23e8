package singlet

// factory is the erased one-shot constructor held by a pending entry. It
// receives the Provider so it can resolve its own dependencies.
type factory func(p *Provider) (any, error)

// Static adapts an already-built value to the shape Register expects, for
// callers that want a single registration style:
//
//	singlet.Register(col, singlet.Static(cfg))
//
// RegisterInstance remains the direct way and skips the factory machinery.
func Static[T any](value T) func(*Provider) (T, error) {
	return func(*Provider) (T, error) {
		return value, nil
	}
}
