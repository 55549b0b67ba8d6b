package ecs

// Ref is a stable handle to an entity stored in a StructOf. It keeps tracking
// the entity when a dense removal moves it to another identifier, and becomes
// invalid once the entity is removed.
type Ref[ID comparable] struct {
	id    ID
	valid bool
}

// ID returns the entity's current identifier.
func (r *Ref[ID]) ID() (ID, bool) {
	if r == nil || !r.valid {
		var zero ID
		return zero, false
	}
	return r.id, true
}

// Valid reports whether the referenced entity is still stored.
func (r *Ref[ID]) Valid() bool {
	return r != nil && r.valid
}

func (r *Ref[ID]) invalidate() {
	var zero ID
	r.id = zero
	r.valid = false
}
