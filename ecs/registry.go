package ecs

import (
	"fmt"
	"reflect"
)

// ComponentRegistry records which field types StructOf may store. Go cannot
// instantiate a generic storage from a reflect.Type, so every field type is
// registered once with RegisterComponent, which captures the factory.
//
// Each registry is independent; several can coexist.
type ComponentRegistry struct {
	factories map[reflect.Type]func(family any) any
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func(family any) any),
	}
}

// RegisterComponent registers T as a storable field type. Registering the same
// type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func(family any) any {
		switch f := family.(type) {
		case Family[int]:
			return newColumn[T](f)
		case Family[Index]:
			return newColumn[T](f)
		default:
			panic(fmt.Sprintf("unsupported storage family %T", family))
		}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// newColumnFor creates a column for values of type t under family. It panics
// when t was never registered.
func newColumnFor[ID comparable](r *ComponentRegistry, t reflect.Type, family Family[ID]) column[ID] {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory(family).(column[ID])
}
