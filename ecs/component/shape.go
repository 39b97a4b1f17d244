package component

// ShapeKind names the geometry an entity exposes to colliders.
type ShapeKind int

const (
	// ShapeNone entities have a position but no collision geometry.
	ShapeNone ShapeKind = iota
	ShapeBox
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return "none"
	}
}

// Shape is the local geometry centered on the entity's Transform.
type Shape struct {
	Kind       ShapeKind
	HalfWidth  float64
	HalfHeight float64
	Radius     float64
}

var ShapeComponent = NewComponent[Shape]()
