package ecs

import "cmp"

// Family binds an identifier type to a storage implementation. Every field
// storage of one composite is created from the same family, so all of them
// allocate identifiers the same way.
//
// The set of families is closed: DenseFamily and ArenaFamily.
type Family[ID comparable] interface {
	// Name returns a short human readable name for the family.
	Name() string

	// key packs id into an integer map key.
	key(id ID) uint64

	// compare orders identifiers the way the family's storages enumerate them.
	compare(a, b ID) int

	// relocated reports which identifier was moved into removed when it was
	// removed from a storage holding lenBefore values.
	relocated(removed ID, lenBefore int) (ID, bool)
}

// DenseFamily selects Dense storages and int identifiers.
type DenseFamily struct{}

func (DenseFamily) Name() string { return "dense" }

func (DenseFamily) key(id int) uint64 { return uint64(id) }

func (DenseFamily) compare(a, b int) int { return cmp.Compare(a, b) }

func (DenseFamily) relocated(removed int, lenBefore int) (int, bool) {
	last := lenBefore - 1
	if removed == last {
		return 0, false
	}
	return last, true
}

// ArenaFamily selects Arena storages and generational Index identifiers.
type ArenaFamily struct{}

func (ArenaFamily) Name() string { return "generational" }

func (ArenaFamily) key(id Index) uint64 {
	return uint64(id.Slot)<<32 | uint64(id.Generation)
}

func (ArenaFamily) compare(a, b Index) int {
	if c := cmp.Compare(a.Slot, b.Slot); c != 0 {
		return c
	}
	return cmp.Compare(a.Generation, b.Generation)
}

func (ArenaFamily) relocated(Index, int) (Index, bool) {
	return Index{}, false
}

var (
	_ Family[int]   = DenseFamily{}
	_ Family[Index] = ArenaFamily{}
)
