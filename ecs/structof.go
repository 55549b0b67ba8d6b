package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

// StructOf stores entities of struct type E as one storage per field, all
// created from the same family. It splits E at runtime using reflection, so
// any struct whose fields are exported and whose field types are registered
// can be stored without generated code.
//
// Insert and Remove act on every field storage at once; the field storages
// always hold the same set of live identifiers.
type StructOf[E any, ID comparable] struct {
	name    string
	family  Family[ID]
	fields  []string
	index   map[string]int
	columns []column[ID]

	// refs tracks the handles given out by Ref, keyed by family.key(id).
	refs *intmap.Map[uint64, weak.Pointer[Ref[ID]]]
}

// NewStructOf creates an empty composite storage for E under family. It panics
// when E is not a struct, has no fields, has an unexported field, or has a
// field whose type is not registered.
func NewStructOf[E any, ID comparable](registry *ComponentRegistry, family Family[ID]) *StructOf[E, ID] {
	if family == nil {
		panic("StructOf requires a storage family")
	}

	structType := reflect.TypeFor[E]()
	if structType.Kind() != reflect.Struct {
		panic("StructOf type parameter must be a struct")
	}
	if structType.NumField() == 0 {
		panic("StructOf type " + structType.String() + " has no fields")
	}

	s := &StructOf[E, ID]{
		name:    structType.String(),
		family:  family,
		fields:  make([]string, 0, structType.NumField()),
		index:   make(map[string]int, structType.NumField()),
		columns: make([]column[ID], 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			panic("StructOf field " + s.name + "." + field.Name + " must be exported")
		}
		s.index[field.Name] = len(s.fields)
		s.fields = append(s.fields, field.Name)
		s.columns = append(s.columns, newColumnFor(registry, field.Type, family))
	}

	return s
}

// Family returns the storage family of every field storage.
func (s *StructOf[E, ID]) Family() Family[ID] {
	return s.family
}

// Fields returns the field names in declaration order.
func (s *StructOf[E, ID]) Fields() []string {
	return slices.Clone(s.fields)
}

// Len returns the number of stored entities.
func (s *StructOf[E, ID]) Len() int {
	return s.columns[0].len()
}

// IDs returns the live identifiers in ascending order.
func (s *StructOf[E, ID]) IDs() []ID {
	return slices.Collect(s.columns[0].ids())
}

// FieldIDs returns the live identifiers held by the storage of field name.
// It panics when E has no such field.
func (s *StructOf[E, ID]) FieldIDs(name string) []ID {
	i, ok := s.index[name]
	if !ok {
		panic("StructOf " + s.name + " has no field " + name)
	}
	return slices.Collect(s.columns[i].ids())
}

// Insert stores every field of value and returns the shared identifier.
func (s *StructOf[E, ID]) Insert(value E) ID {
	v := reflect.ValueOf(&value).Elem()

	id := s.columns[0].insert(v.Field(0))
	for i := 1; i < len(s.columns); i++ {
		MustAgree(s.name, s.fields[i], id, s.columns[i].insert(v.Field(i)))
	}
	return id
}

// Remove deletes the entity stored under id from every field storage and
// returns it. Under the dense family the last entity moves to id; handles
// obtained from Ref follow it.
func (s *StructOf[E, ID]) Remove(id ID) (E, bool) {
	var result E

	missing := -1
	present := 0
	for i, c := range s.columns {
		if c.has(id) {
			present++
		} else if missing < 0 {
			missing = i
		}
	}
	if present == 0 {
		return result, false
	}
	if missing >= 0 {
		panic(&InconsistencyError{
			Archetype: s.name,
			Field:     s.fields[missing],
			Op:        "remove",
			ID:        id,
			Detail:    "missing",
		})
	}

	lenBefore := s.columns[0].len()
	rv := reflect.ValueOf(&result).Elem()
	for i, c := range s.columns {
		value, _ := c.remove(id)
		rv.Field(i).Set(value)
	}

	s.updateRefs(id, lenBefore)
	return result, true
}

// Get reassembles a copy of the entity stored under id.
func (s *StructOf[E, ID]) Get(id ID) (E, bool) {
	var result E
	if !s.columns[0].has(id) {
		return result, false
	}

	rv := reflect.ValueOf(&result).Elem()
	for i, c := range s.columns {
		ptr, ok := c.ptr(id)
		if !ok {
			panic(&InconsistencyError{
				Archetype: s.name,
				Field:     s.fields[i],
				Op:        "get",
				ID:        id,
				Detail:    "missing",
			})
		}
		rv.Field(i).Set(ptr.Elem())
	}
	return result, true
}

// Iter yields every stored entity, reassembled, with its identifier.
func (s *StructOf[E, ID]) Iter() iter.Seq2[ID, E] {
	return func(yield func(ID, E) bool) {
		for id := range s.columns[0].ids() {
			entity, _ := s.Get(id)
			if !yield(id, entity) {
				return
			}
		}
	}
}

// Check verifies that every field storage holds the same live identifiers,
// in the same order. It returns an *InconsistencyError describing the first
// difference found.
func (s *StructOf[E, ID]) Check() error {
	want := slices.Collect(s.columns[0].ids())
	for i := 1; i < len(s.columns); i++ {
		got := slices.Collect(s.columns[i].ids())
		if slices.Equal(want, got) {
			continue
		}

		err := &InconsistencyError{
			Archetype: s.name,
			Field:     s.fields[i],
			Op:        "check",
			Detail:    fmt.Sprintf("%d live ids, %s has %d", len(got), s.fields[0], len(want)),
		}
		for j := 0; j < min(len(want), len(got)); j++ {
			if want[j] != got[j] {
				err.ID = got[j]
				break
			}
		}
		return err
	}
	return nil
}

// Field returns a pointer to field name of the entity stored under id, or nil
// when id is not live. It panics when E has no such field or the field is not
// of type T.
func Field[T any, E any, ID comparable](s *StructOf[E, ID], name string, id ID) *T {
	i, ok := s.index[name]
	if !ok {
		panic("StructOf " + s.name + " has no field " + name)
	}
	storage, ok := s.columns[i].storage().(Storage[T, ID])
	if !ok {
		panic(fmt.Sprintf("StructOf field %s.%s is not of type %v", s.name, name, reflect.TypeFor[T]()))
	}
	return storage.GetMut(id)
}

// Ref returns the stable handle for the entity stored under id, creating it on
// first use. It returns nil when id is not live.
func (s *StructOf[E, ID]) Ref(id ID) *Ref[ID] {
	if !s.columns[0].has(id) {
		return nil
	}
	if s.refs == nil {
		s.refs = intmap.New[uint64, weak.Pointer[Ref[ID]]](64)
	}

	key := s.family.key(id)
	if weakPtr, ok := s.refs.Get(key); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it
		s.refs.Del(key)
	}

	ref := &Ref[ID]{id: id, valid: true}
	s.refs.Put(key, weak.Make(ref))
	return ref
}

// Resolve returns the current identifier of the entity behind ref.
func (s *StructOf[E, ID]) Resolve(ref *Ref[ID]) (ID, bool) {
	id, ok := ref.ID()
	if !ok || !s.columns[0].has(id) {
		var zero ID
		return zero, false
	}
	return id, true
}

// updateRefs invalidates the handle of the removed entity and re-points the
// handle of the entity the family moved into its identifier, if any.
func (s *StructOf[E, ID]) updateRefs(removed ID, lenBefore int) {
	if s.refs == nil || s.refs.Len() == 0 {
		return
	}

	key := s.family.key(removed)
	if weakPtr, ok := s.refs.Get(key); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.invalidate()
		}
		s.refs.Del(key)
	}

	moved, ok := s.family.relocated(removed, lenBefore)
	if !ok {
		return
	}
	movedKey := s.family.key(moved)
	weakPtr, ok := s.refs.Get(movedKey)
	if !ok {
		return
	}
	s.refs.Del(movedKey)
	if ref := weakPtr.Value(); ref != nil {
		ref.id = removed
		s.refs.Put(key, weakPtr)
	}
}

var (
	_ Archetype[struct{ A int }, int]   = (*StructOf[struct{ A int }, int])(nil)
	_ Archetype[struct{ A int }, Index] = (*StructOf[struct{ A int }, Index])(nil)
)
