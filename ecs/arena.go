package ecs

import (
	"fmt"
	"iter"
	"math"
)

// Index identifies a value stored in an Arena. It pairs the slot holding the
// value with the generation the slot had when the value was inserted.
type Index struct {
	Slot       uint32
	Generation uint32
}

// String renders the index as slot#generation.
func (i Index) String() string {
	return fmt.Sprintf("%d#%d", i.Slot, i.Generation)
}

type arenaSlot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Arena is a storage of reusable slots addressed by generational indices.
//
// Removing a value frees its slot and bumps the slot's generation, so an Index
// that has been removed never resolves again, even after the slot is reused:
// a stale Index always reports absent instead of aliasing a newer value.
//
// Freed slots are reused most-recently-freed first. A slot whose generation
// counter is exhausted is retired instead of being reused.
//
// The zero value is an empty arena ready to use.
type Arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	count int
}

// NewArena creates an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// NewArenaWithCapacity creates an empty arena with room for n values before
// its slot slice grows.
func NewArenaWithCapacity[T any](n int) *Arena[T] {
	return &Arena[T]{
		slots: make([]arenaSlot[T], 0, n),
	}
}

// Insert stores value in a free slot, or a new one if none is free.
func (a *Arena[T]) Insert(value T) Index {
	a.count++

	if len(a.free) > 0 {
		slot := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]

		s := &a.slots[slot]
		s.value = value
		s.occupied = true
		return Index{Slot: slot, Generation: s.generation}
	}

	slot := uint32(len(a.slots))
	a.slots = append(a.slots, arenaSlot[T]{
		value:    value,
		occupied: true,
	})
	return Index{Slot: slot}
}

// lookup returns the occupied slot matching id, or nil.
func (a *Arena[T]) lookup(id Index) *arenaSlot[T] {
	if int(id.Slot) >= len(a.slots) {
		return nil
	}
	s := &a.slots[id.Slot]
	if !s.occupied || s.generation != id.Generation {
		return nil
	}
	return s
}

// Contains reports whether id refers to a live value.
func (a *Arena[T]) Contains(id Index) bool {
	return a.lookup(id) != nil
}

func (a *Arena[T]) Get(id Index) (T, bool) {
	s := a.lookup(id)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.value, true
}

func (a *Arena[T]) GetMut(id Index) *T {
	s := a.lookup(id)
	if s == nil {
		return nil
	}
	return &s.value
}

// Remove frees the slot referenced by id and returns its value.
func (a *Arena[T]) Remove(id Index) (T, bool) {
	var zero T
	s := a.lookup(id)
	if s == nil {
		return zero, false
	}

	value := s.value
	s.value = zero
	s.occupied = false
	a.count--

	if s.generation == math.MaxUint32 {
		return value, true
	}
	s.generation++
	a.free = append(a.free, id.Slot)
	return value, true
}

// IDs returns the live indices in ascending slot order.
func (a *Arena[T]) IDs() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Index{Slot: uint32(i), Generation: s.generation}) {
				return
			}
		}
	}
}

func (a *Arena[T]) Iter() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Index{Slot: uint32(i), Generation: s.generation}, s.value) {
				return
			}
		}
	}
}

func (a *Arena[T]) IterMut() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Index{Slot: uint32(i), Generation: s.generation}, &s.value) {
				return
			}
		}
	}
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}

// Slots returns the number of slots ever allocated, live or free.
func (a *Arena[T]) Slots() int {
	return len(a.slots)
}

var _ Storage[struct{}, Index] = (*Arena[struct{}])(nil)
