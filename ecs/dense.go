package ecs

import "iter"

// Dense is an append-only storage whose identifiers are plain slice indices.
//
// Insert appends and returns the previous length, so the live identifiers are
// always exactly 0..Len()-1. Remove swaps the last value into the removed slot
// and shrinks the slice: after removing id, the value that was stored under
// Len()-1 is now stored under id. Identifiers are therefore not stable across
// removals; use ArenaFamily or a Ref when identifiers must be kept around.
//
// The zero value is an empty storage ready to use.
type Dense[T any] struct {
	values []T
}

// NewDense creates an empty dense storage.
func NewDense[T any]() *Dense[T] {
	return &Dense[T]{}
}

// Insert appends value and returns its index.
func (d *Dense[T]) Insert(value T) int {
	id := len(d.values)
	d.values = append(d.values, value)
	return id
}

// IDs returns the contiguous range 0..Len()-1.
func (d *Dense[T]) IDs() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range d.values {
			if !yield(i) {
				return
			}
		}
	}
}

func (d *Dense[T]) Get(id int) (T, bool) {
	if id < 0 || id >= len(d.values) {
		var zero T
		return zero, false
	}
	return d.values[id], true
}

func (d *Dense[T]) GetMut(id int) *T {
	if id < 0 || id >= len(d.values) {
		return nil
	}
	return &d.values[id]
}

// Remove swap-removes the value at id. The last value takes its place.
func (d *Dense[T]) Remove(id int) (T, bool) {
	var zero T
	if id < 0 || id >= len(d.values) {
		return zero, false
	}

	value := d.values[id]
	last := len(d.values) - 1
	d.values[id] = d.values[last]
	d.values[last] = zero // drop references held by the vacated slot
	d.values = d.values[:last]
	return value, true
}

func (d *Dense[T]) Iter() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range d.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (d *Dense[T]) IterMut() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range d.values {
			if !yield(i, &d.values[i]) {
				return
			}
		}
	}
}

// Len returns the number of stored values.
func (d *Dense[T]) Len() int {
	return len(d.values)
}

var _ Storage[struct{}, int] = (*Dense[struct{}])(nil)
