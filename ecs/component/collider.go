package component

import "github.com/milk9111/colliders/collision"

// Collider attaches a narrow-phase collider to an entity. The collider's host
// is the entity's object adapter.
type Collider struct {
	Collider collision.Collider
}

var ColliderComponent = NewComponent[Collider]()
