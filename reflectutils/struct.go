// Package reflectutils holds reflection helpers used by the config layer.
package reflectutils

import (
	"reflect"

	"github.com/a-peyrard/singlet/fn"
)

// WalkStruct applies the consumer on the given element and, recursively, on
// every exported field reachable from it.
func WalkStruct[T any](element T, consumer fn.BiConsumer[reflect.Value, reflect.Type]) {
	walk(reflect.ValueOf(element), consumer)
}

func walk(val reflect.Value, consumer fn.BiConsumer[reflect.Value, reflect.Type]) {
	if !val.IsValid() {
		return
	}
	consumer(val, val.Type())

	val = Deref(val)
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		if !typ.Field(i).IsExported() {
			continue
		}
		walk(val.Field(i), consumer)
	}
}

// Deref dereferences a reflect.Value until it reaches a non-pointer,
// non-interface value.
func Deref(value reflect.Value) reflect.Value {
	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		value = value.Elem()
	}
	return value
}

// CreateNilStructs allocates a zero struct for any nil struct pointer it is
// given, so a later pass can safely reach the nested fields.
func CreateNilStructs(val reflect.Value, typ reflect.Type) {
	if typ.Kind() == reflect.Pointer &&
		val.IsNil() &&
		typ.Elem().Kind() == reflect.Struct {

		val.Set(reflect.New(typ.Elem()))
	}
}
