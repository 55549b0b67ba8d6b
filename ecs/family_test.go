package ecs_test

import (
	"testing"

	"github.com/plus3/structof/ecs"
	"github.com/stretchr/testify/assert"
)

func TestNewStorageSelectsBackend(t *testing.T) {
	dense := ecs.NewStorage[Position, int](ecs.DenseFamily{})
	assert.IsType(t, &ecs.Dense[Position]{}, dense)

	arena := ecs.NewStorage[Position, ecs.Index](ecs.ArenaFamily{})
	assert.IsType(t, &ecs.Arena[Position]{}, arena)
}

func TestFamilyNames(t *testing.T) {
	assert.Equal(t, "dense", ecs.DenseFamily{}.Name())
	assert.Equal(t, "generational", ecs.ArenaFamily{}.Name())
}

type wrappedFamily struct {
	ecs.DenseFamily
}

func TestNewStorageUnknownFamily(t *testing.T) {
	assert.PanicsWithValue(t, "unsupported storage family ecs_test.wrappedFamily", func() {
		ecs.NewStorage[Position, int](wrappedFamily{})
	})
}

// Two storages of one family driven by the same operations allocate the same
// identifiers, which is what lets a composite share one id across fields.
func TestFamilyAllocationIsDeterministic(t *testing.T) {
	t.Run("dense", func(t *testing.T) {
		assertSameAllocation(t,
			ecs.NewStorage[Position, int](ecs.DenseFamily{}),
			ecs.NewStorage[Name, int](ecs.DenseFamily{}))
	})
	t.Run("generational", func(t *testing.T) {
		assertSameAllocation(t,
			ecs.NewStorage[Position, ecs.Index](ecs.ArenaFamily{}),
			ecs.NewStorage[Name, ecs.Index](ecs.ArenaFamily{}))
	})
}

func assertSameAllocation[ID comparable](t *testing.T, a ecs.Storage[Position, ID], b ecs.Storage[Name, ID]) {
	var live []ID
	for i := range 200 {
		if i%3 == 2 && len(live) > 0 {
			id := live[(i*7)%len(live)]
			_, okA := a.Remove(id)
			_, okB := b.Remove(id)
			assert.Equal(t, okA, okB)

			live = live[:0]
			for id := range a.IDs() {
				live = append(live, id)
			}
			continue
		}

		idA := a.Insert(Position{X: float32(i)})
		idB := b.Insert(Name{Value: "n"})
		assert.Equal(t, idA, idB, "insert %d", i)
		live = append(live, idA)
	}
	assert.Equal(t, a.Len(), b.Len())
}
