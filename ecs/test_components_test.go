package ecs_test

import (
	"slices"

	"github.com/plus3/structof/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Inventory struct {
	Items []string
}

// Custom primitive types for testing non-struct fields
type Score int32
type Tag string

// Unit is the sample entity used by the composite tests.
type Unit struct {
	Pos    Position
	Health Health
	Name   Name
}

// Ship exercises primitive, slice and embedded fields.
type Ship struct {
	Velocity
	Score Score
	Tag   Tag
	Cargo Inventory
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Inventory](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	return registry
}

// UnitStructOf is what a field-splitting generator produces for Unit: one
// storage per field, all from the same family.
type UnitStructOf[ID comparable] struct {
	Pos    ecs.Storage[Position, ID]
	Health ecs.Storage[Health, ID]
	Name   ecs.Storage[Name, ID]
}

type UnitRef struct {
	Pos    Position
	Health Health
	Name   Name
}

type UnitRefMut struct {
	Pos    *Position
	Health *Health
	Name   *Name
}

func NewUnitStructOf[ID comparable](family ecs.Family[ID]) *UnitStructOf[ID] {
	return &UnitStructOf[ID]{
		Pos:    ecs.NewStorage[Position](family),
		Health: ecs.NewStorage[Health](family),
		Name:   ecs.NewStorage[Name](family),
	}
}

func (u *UnitStructOf[ID]) IDs() []ID {
	return slices.Collect(u.Pos.IDs())
}

func (u *UnitStructOf[ID]) Insert(value Unit) ID {
	id := u.Pos.Insert(value.Pos)
	ecs.MustAgree("Unit", "Health", id, u.Health.Insert(value.Health))
	ecs.MustAgree("Unit", "Name", id, u.Name.Insert(value.Name))
	return id
}

func (u *UnitStructOf[ID]) Remove(id ID) (Unit, bool) {
	pos, ok := u.Pos.Remove(id)
	if !ok {
		return Unit{}, false
	}
	health, ok := u.Health.Remove(id)
	ecs.MustRemove("Unit", "Health", id, ok)
	name, ok := u.Name.Remove(id)
	ecs.MustRemove("Unit", "Name", id, ok)
	return Unit{Pos: pos, Health: health, Name: name}, true
}

func (u *UnitStructOf[ID]) Get(id ID) (UnitRef, bool) {
	pos, ok := u.Pos.Get(id)
	if !ok {
		return UnitRef{}, false
	}
	health, _ := u.Health.Get(id)
	name, _ := u.Name.Get(id)
	return UnitRef{Pos: pos, Health: health, Name: name}, true
}

func (u *UnitStructOf[ID]) GetMut(id ID) (UnitRefMut, bool) {
	pos := u.Pos.GetMut(id)
	if pos == nil {
		return UnitRefMut{}, false
	}
	return UnitRefMut{Pos: pos, Health: u.Health.GetMut(id), Name: u.Name.GetMut(id)}, true
}

var (
	_ ecs.FieldSplitter[Unit, int, UnitRef, UnitRefMut]       = (*UnitStructOf[int])(nil)
	_ ecs.FieldSplitter[Unit, ecs.Index, UnitRef, UnitRefMut] = (*UnitStructOf[ecs.Index])(nil)
)

func unit(i int) Unit {
	return Unit{
		Pos:    Position{X: float32(i), Y: float32(-i)},
		Health: Health{Current: i, Max: 100},
		Name:   Name{Value: "unit"},
	}
}
