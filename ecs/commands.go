package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Commands buffers inserts and removals for a StructOf so they can be queued
// while iterating over it and applied afterwards with Flush.
type Commands[E any, ID comparable] struct {
	inserts []E
	removes []ID
	defers  []func()
}

// NewCommands creates an empty command buffer.
func NewCommands[E any, ID comparable]() *Commands[E, ID] {
	return &Commands[E, ID]{}
}

// Insert queues an entity insertion.
func (c *Commands[E, ID]) Insert(value E) {
	c.inserts = append(c.inserts, value)
}

// Remove queues an entity removal.
func (c *Commands[E, ID]) Remove(id ID) {
	c.removes = append(c.removes, id)
}

// Defer queues a function to run after every other queued operation.
func (c *Commands[E, ID]) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands[E, ID]) Len() int {
	return len(c.inserts) + len(c.removes) + len(c.defers)
}

// Flush applies the queued operations to s and resets the buffer. Removals run
// first, once per identifier and from the highest identifier down, so a dense
// removal never moves an entity that is still waiting to be removed. Inserts
// run next; their identifiers are returned in queue order. Deferred functions
// run last.
func (c *Commands[E, ID]) Flush(s *StructOf[E, ID]) []ID {
	if len(c.removes) > 0 {
		seen := intmap.NewSet[uint64](len(c.removes))
		removes := make([]ID, 0, len(c.removes))
		for _, id := range c.removes {
			if seen.Add(s.family.key(id)) {
				removes = append(removes, id)
			}
		}
		slices.SortFunc(removes, func(a, b ID) int {
			return s.family.compare(b, a)
		})
		for _, id := range removes {
			s.Remove(id)
		}
	}

	var inserted []ID
	if len(c.inserts) > 0 {
		inserted = make([]ID, 0, len(c.inserts))
		for _, value := range c.inserts {
			inserted = append(inserted, s.Insert(value))
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.inserts)
	c.inserts = c.inserts[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	return inserted
}
