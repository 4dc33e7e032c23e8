package singlet

import "reflect"

// registry owns the mapping from type identity to entry and is the only
// place entry states change. It is a plain map: the container is meant to
// be driven from one goroutine, and reentrancy is handled by the in
// progress marker, not by locking.
type registry struct {
	entries map[reflect.Type]entry
}

func newRegistry() *registry {
	return &registry{
		entries: make(map[reflect.Type]entry),
	}
}

// insertFactory stores a pending entry for t. Last registration wins: any
// previous entry is overwritten whatever its state.
func (r *registry) insertFactory(t reflect.Type, build factory) {
	r.entries[t] = entry{
		state:    statePending,
		typeName: t.String(),
		factory:  build,
	}
}

// insertInstance stores an already resolved entry for t, skipping
// construction entirely.
func (r *registry) insertInstance(t reflect.Type, value any) {
	r.entries[t] = entry{
		state:    stateResolved,
		typeName: t.String(),
		value:    value,
	}
}

// takeForResolution reads the entry for t and swaps the in progress marker
// into its place, returning what was there. The swap is what makes a
// reentrant call for the same type observable: it finds the marker instead
// of a pending factory. When t was never registered nothing is created and
// found is false.
func (r *registry) takeForResolution(t reflect.Type) (prev entry, found bool) {
	prev, found = r.entries[t]
	if !found {
		return entry{}, false
	}
	r.entries[t] = entry{
		state:    stateInProgress,
		typeName: prev.typeName,
	}
	return prev, true
}

// storeResolved writes a resolved entry for t, replacing the in progress
// marker left by takeForResolution. The memoized fast path also goes
// through here to restore the entry it just took.
func (r *registry) storeResolved(t reflect.Type, value any) {
	r.entries[t] = entry{
		state:    stateResolved,
		typeName: t.String(),
		value:    value,
	}
}

// entryInfo is a snapshot of one slot, for diagnostics.
type entryInfo struct {
	typeName string
	state    entryState
}

func (r *registry) list() []entryInfo {
	infos := make([]entryInfo, 0, len(r.entries))
	for _, e := range r.entries {
		infos = append(infos, entryInfo{typeName: e.typeName, state: e.state})
	}
	return infos
}
