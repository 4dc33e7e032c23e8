package singlet

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/singlet/fn"
	"github.com/a-peyrard/singlet/slices"
	"github.com/rs/zerolog"
)

// Provider is the read side of the container: it constructs instances
// lazily, memoizes them, and hands the same singleton back on every
// subsequent resolution.
//
// A Provider is meant to be driven from a single goroutine. Reentrant calls
// from inside factories are expected (that is how dependencies are
// resolved, and how cycles are detected); parallel resolutions from
// multiple goroutines are not supported.
type Provider struct {
	reg *registry
	log zerolog.Logger
}

// Resolve returns the singleton instance registered for T, constructing it
// on first use. Failures are reported as *ResolveError wrapping one of:
//
//   - ErrNotFound: nothing registered for T
//   - ErrCircularDependency: T is already under construction on the
//     current call stack
//   - ErrFactoryFailure: T's factory returned an error, which is wrapped
//     alongside the sentinel
//   - ErrTypeMismatch: the stored instance is not a T
//
// A factory failure is not retried: the slot keeps its under-construction
// marker, so later resolutions of the same type report
// ErrCircularDependency. Construction is expected to be deterministic; a
// factory that can fail transiently should do its own retrying.
func Resolve[T any](p *Provider) (T, error) {
	var zero T
	t := TypeOf[T]()

	raw, err := p.resolveType(t)
	if err != nil {
		return zero, err
	}

	typed, ok := raw.(T)
	if !ok {
		return zero, newResolveError(
			t.String(),
			fmt.Errorf("%w: wanted %s, got %T", ErrTypeMismatch, t, raw),
		)
	}
	return typed, nil
}

// MustResolve is Resolve, panicking on failure. Meant for application
// wiring code where a resolution failure is fatal anyway.
func MustResolve[T any](p *Provider) T {
	value, err := Resolve[T](p)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s:\n\t%v", TypeOf[T](), err))
	}
	return value
}

// resolveType drives one entry through the state machine. Factories invoked
// here may call back into resolveType for their own dependencies, so the
// method must be safe against reentrancy on the same call stack; that is
// exactly what the takeForResolution swap provides.
func (p *Provider) resolveType(t reflect.Type) (any, error) {
	prev, found := p.reg.takeForResolution(t)
	if !found {
		p.log.Debug().Str("type", t.String()).Msg("nothing registered")
		return nil, newResolveError(t.String(), ErrNotFound)
	}

	switch prev.state {
	case stateResolved:
		// memoized fast path: put the entry back exactly as it was
		p.reg.storeResolved(t, prev.value)
		p.log.Debug().Str("type", prev.typeName).Msg("reusing memoized instance")
		return prev.value, nil

	case stateInProgress:
		// the marker we just observed belongs to a construction further up
		// the stack, leave it in place
		p.log.Debug().Str("type", prev.typeName).Msg("already under construction")
		return nil, newResolveError(prev.typeName, ErrCircularDependency)

	default: // statePending
		p.log.Debug().Str("type", prev.typeName).Msg("invoking factory")
		value, err := prev.factory(p)
		if err != nil {
			// the slot keeps the in progress marker, see Resolve
			p.log.Warn().Err(err).Str("type", prev.typeName).Msg("factory failed")
			return nil, newResolveError(
				prev.typeName,
				fmt.Errorf("%w:\n\t%w", ErrFactoryFailure, err),
			)
		}

		p.reg.storeResolved(t, value)
		p.log.Debug().Str("type", prev.typeName).Msg("instance stored")
		return value, nil
	}
}

// Describe returns a human-readable view of the registry, one line per
// entry, ordered by type name. Diagnostics only: calling it does not
// resolve anything.
func (p *Provider) Describe() string {
	infos := p.reg.list()
	slices.SortBy(infos, fn.Comparing(func(i entryInfo) string { return i.typeName }))

	var b strings.Builder
	b.WriteString("* Entries:\n")
	for _, info := range infos {
		b.WriteString(fmt.Sprintf("\t- %s [%s]\n", info.typeName, info.state))
	}
	return b.String()
}
