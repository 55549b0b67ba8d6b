package ecs_test

import (
	"fmt"

	"github.com/plus3/structof/ecs"
)

// ExampleStructOf stores a struct as one storage per field. Every field type
// is registered once; the family picks the backend for all of them.
func ExampleStructOf() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Name](registry)

	units := ecs.NewStructOf[Unit, ecs.Index](registry, ecs.ArenaFamily{})

	scout := units.Insert(Unit{
		Pos:    Position{X: 1, Y: 2},
		Health: Health{Current: 10, Max: 10},
		Name:   Name{Value: "scout"},
	})
	units.Insert(Unit{Name: Name{Value: "tank"}})

	health := ecs.Field[Health](units, "Health", scout)
	health.Current -= 4

	removed, _ := units.Remove(scout)
	fmt.Printf("removed %s with %d/%d hp\n", removed.Name.Value, removed.Health.Current, removed.Health.Max)

	for _, u := range units.Iter() {
		fmt.Println("remaining:", u.Name.Value)
	}

	// Output:
	// removed scout with 6/10 hp
	// remaining: tank
}

// ExampleStructOf_Ref keeps a handle on an entity stored under the dense
// family. The handle follows the entity when a removal moves it.
func ExampleStructOf_Ref() {
	units := ecs.NewStructOf[Unit, int](newTestRegistry(), ecs.DenseFamily{})

	first := units.Insert(Unit{Name: Name{Value: "first"}})
	last := units.Insert(Unit{Name: Name{Value: "last"}})
	ref := units.Ref(last)

	units.Remove(first)

	id, _ := units.Resolve(ref)
	u, _ := units.Get(id)
	fmt.Printf("%s moved from %d to %d\n", u.Name.Value, last, id)

	// Output:
	// last moved from 1 to 0
}

// ExampleCommands queues removals while iterating and applies them afterwards.
func ExampleCommands() {
	units := ecs.NewStructOf[Unit, int](newTestRegistry(), ecs.DenseFamily{})
	units.Insert(Unit{Health: Health{Current: 0}, Name: Name{Value: "dead"}})
	units.Insert(Unit{Health: Health{Current: 5}, Name: Name{Value: "alive"}})
	units.Insert(Unit{Health: Health{Current: 0}, Name: Name{Value: "also dead"}})

	cmds := ecs.NewCommands[Unit, int]()
	for id, u := range units.Iter() {
		if u.Health.Current <= 0 {
			cmds.Remove(id)
		}
	}
	cmds.Flush(units)

	for _, u := range units.Iter() {
		fmt.Println(u.Name.Value)
	}

	// Output:
	// alive
}
