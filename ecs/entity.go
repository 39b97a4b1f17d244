package ecs

import "fmt"

// Entity is a handle into a World. The low half is the slot id, the high half
// counts how often that slot was recycled, so a stale handle never aliases the
// entity that reused its slot.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID           { return entityID(e & 0xffffffff) }
func (e Entity) generation() generation { return generation(e >> 32) }

// Slot is the entity's storage slot, starting at 1.
func (e Entity) Slot() uint32 { return uint32(e.id()) }

// Generation is the number of times the slot was recycled before e.
func (e Entity) Generation() uint32 { return uint32(e.generation()) }

func (e Entity) String() string {
	if e.generation() == 0 {
		return fmt.Sprintf("%d", e.id())
	}
	return fmt.Sprintf("%d.%d", e.id(), e.generation())
}

// Valid reports whether e could name an entity. It does not check liveness.
func (e Entity) Valid() bool {
	return e.id() != 0
}
