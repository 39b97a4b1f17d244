package component

// Transform places an entity's shape center in world space. Colliders are
// axis aligned, so Rotation is kept for rendering only.
type Transform struct {
	X, Y     float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
