package singlet

import "reflect"

// TypeOf returns the identity token under which registrations and
// resolutions of I are keyed. It works for concrete types as well as
// interface types: TypeOf[io.Writer]() yields the io.Writer type, not nil.
//
// Two calls for the same contract type always return the same token; the
// registry holds at most one entry per token.
func TypeOf[I any]() reflect.Type {
	var i I
	t := reflect.TypeOf(i)
	if t == nil {
		t = reflect.TypeOf((*I)(nil)).Elem()
	}
	return t
}
