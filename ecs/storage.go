package ecs

import (
	"fmt"
	"iter"
)

// Storage is a container for values of a single component type. Every value is
// addressed by an identifier allocated by the storage's family.
//
// Absence is never an error: lookups and removals of an identifier that is not
// live report false (or nil) and leave the storage untouched.
//
// Sequences returned by IDs, Iter and IterMut cover exactly the live set, in the
// same order, and can be restarted by calling the method again. Inserting or
// removing while ranging over one of them is undefined; use Commands to defer
// structural changes. Pointers returned by GetMut and IterMut are valid until the
// next Insert or Remove.
type Storage[T any, ID comparable] interface {
	// IDs returns every live identifier, without duplicates.
	IDs() iter.Seq[ID]

	// Insert stores value and returns an identifier that is not currently live.
	Insert(value T) ID

	// Get returns a copy of the value stored under id.
	Get(id ID) (T, bool)

	// GetMut returns a pointer to the value stored under id, or nil.
	GetMut(id ID) *T

	// Remove deletes and returns the value stored under id.
	Remove(id ID) (T, bool)

	// Iter yields every live (id, value) pair.
	Iter() iter.Seq2[ID, T]

	// IterMut yields every live id with a pointer to its value.
	IterMut() iter.Seq2[ID, *T]

	// Len returns the number of live values.
	Len() int
}

// NewStorage creates the storage implementation selected by family for values
// of type T.
func NewStorage[T any, ID comparable](family Family[ID]) Storage[T, ID] {
	var s any
	switch any(family).(type) {
	case DenseFamily:
		s = NewDense[T]()
	case ArenaFamily:
		s = NewArena[T]()
	default:
		panic(fmt.Sprintf("unsupported storage family %T", family))
	}
	return s.(Storage[T, ID])
}
