package ecs_test

import (
	"fmt"

	"github.com/plus3/structof/ecs"
)

// ExampleDense shows the dense backend's swap-remove: removing an entity moves
// the last one into its slot, so the removed id is immediately reused by
// another value.
func ExampleDense() {
	names := ecs.NewDense[string]()
	a := names.Insert("A")
	names.Insert("B")
	names.Insert("C")

	names.Remove(a)

	for id, name := range names.Iter() {
		fmt.Printf("%d: %s\n", id, name)
	}

	// Output:
	// 0: C
	// 1: B
}

// ExampleArena shows that a removed generational index never resolves again,
// even once its slot holds a new value.
func ExampleArena() {
	names := ecs.NewArena[string]()
	old := names.Insert("A")
	names.Remove(old)
	reused := names.Insert("B")

	_, ok := names.Get(old)
	fmt.Printf("%v live: %v\n", old, ok)
	name, ok := names.Get(reused)
	fmt.Printf("%v live: %v (%s)\n", reused, ok, name)

	// Output:
	// 0#0 live: false
	// 0#1 live: true (B)
}

// ExampleNewStorage selects a backend through its family. Code written
// against Storage works unchanged with either one.
func ExampleNewStorage() {
	fill := func(s ecs.Storage[Position, int]) {
		s.Insert(Position{X: 1})
		s.Insert(Position{X: 2})
	}

	positions := ecs.NewStorage[Position, int](ecs.DenseFamily{})
	fill(positions)

	for _, pos := range positions.IterMut() {
		pos.Y = pos.X * 10
	}
	for id, pos := range positions.Iter() {
		fmt.Printf("%d: (%.0f, %.0f)\n", id, pos.X, pos.Y)
	}

	// Output:
	// 0: (1, 10)
	// 1: (2, 20)
}
