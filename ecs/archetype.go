package ecs

import (
	"errors"
	"fmt"
)

// Archetype is an entity type stored as one storage per field. All field
// storages share a single identifier space: at any time they hold exactly the
// same set of live identifiers.
type Archetype[E any, ID comparable] interface {
	// IDs returns the live identifiers in the family's enumeration order.
	IDs() []ID

	// Insert splits value into its fields, stores each one and returns the
	// identifier shared by all of them.
	Insert(value E) ID

	// Remove deletes every field stored under id and reassembles the entity.
	// An absent id reports false and changes nothing.
	Remove(id ID) (E, bool)
}

// FieldSplitter is the contract for code that splits an entity struct E into
// one storage per field. Ref and RefMut are view types with one named member
// per field, holding a copy or a pointer into the field storage respectively.
type FieldSplitter[E any, ID comparable, Ref any, RefMut any] interface {
	Archetype[E, ID]

	Get(id ID) (Ref, bool)
	GetMut(id ID) (RefMut, bool)
}

// ErrInconsistent marks a broken composite: its field storages no longer hold
// the same live identifiers. This only happens when a field storage is
// mutated behind the composite's back.
var ErrInconsistent = errors.New("ecs: field storages out of sync")

// InconsistencyError describes where a composite found its fields out of sync.
// Composites panic with it; Check-style helpers return it.
type InconsistencyError struct {
	Archetype string
	Field     string
	Op        string
	ID        any
	Detail    string
}

func (e *InconsistencyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("ecs: %s %s: field %s id %v", e.Archetype, e.Op, e.Field, e.ID)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *InconsistencyError) Unwrap() error {
	return ErrInconsistent
}

// MustAgree panics with an InconsistencyError when a field storage allocated
// got where the first field allocated want. Field-splitting code calls it
// after inserting each field past the first.
func MustAgree[ID comparable](archetype, field string, want, got ID) {
	if want == got {
		return
	}
	panic(&InconsistencyError{
		Archetype: archetype,
		Field:     field,
		Op:        "insert",
		ID:        want,
		Detail:    fmt.Sprintf("allocated %v", got),
	})
}

// MustRemove panics with an InconsistencyError when a field storage did not
// hold id although the first field did.
func MustRemove[ID comparable](archetype, field string, id ID, ok bool) {
	if ok {
		return
	}
	panic(&InconsistencyError{
		Archetype: archetype,
		Field:     field,
		Op:        "remove",
		ID:        id,
		Detail:    "missing",
	})
}
