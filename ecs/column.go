package ecs

import (
	"iter"
	"reflect"
)

// column is a type-erased field storage used by StructOf. Values cross the
// boundary as reflect.Values of the field type.
type column[ID comparable] interface {
	insert(v reflect.Value) ID
	// ptr returns a pointer to the value stored under id.
	ptr(id ID) (reflect.Value, bool)
	has(id ID) bool
	remove(id ID) (reflect.Value, bool)
	ids() iter.Seq[ID]
	len() int
	// storage returns the typed Storage[T, ID] behind the column.
	storage() any
}

// typedColumn adapts a Storage[T, ID] to the column interface.
type typedColumn[T any, ID comparable] struct {
	s Storage[T, ID]
}

func newColumn[T any, ID comparable](family Family[ID]) column[ID] {
	return &typedColumn[T, ID]{s: NewStorage[T](family)}
}

func (c *typedColumn[T, ID]) insert(v reflect.Value) ID {
	var value T
	reflect.ValueOf(&value).Elem().Set(v)
	return c.s.Insert(value)
}

func (c *typedColumn[T, ID]) ptr(id ID) (reflect.Value, bool) {
	p := c.s.GetMut(id)
	if p == nil {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(p), true
}

func (c *typedColumn[T, ID]) has(id ID) bool {
	return c.s.GetMut(id) != nil
}

func (c *typedColumn[T, ID]) remove(id ID) (reflect.Value, bool) {
	value, ok := c.s.Remove(id)
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(&value).Elem(), true
}

func (c *typedColumn[T, ID]) ids() iter.Seq[ID] {
	return c.s.IDs()
}

func (c *typedColumn[T, ID]) len() int {
	return c.s.Len()
}

func (c *typedColumn[T, ID]) storage() any {
	return c.s
}
