package component

// CollisionLayer declares a collision category and mask so the collision
// system can skip pairs that should never interact.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// it is treated as category 1.
	Category uint32 `yaml:"category,omitempty"`
	// Mask is a bitmask of categories this entity tests against. If zero,
	// it is treated as all bits set.
	Mask uint32 `yaml:"mask,omitempty"`
}

func (l *CollisionLayer) EffectiveCategory() uint32 {
	if l == nil || l.Category == 0 {
		return 1
	}
	return l.Category
}

func (l *CollisionLayer) EffectiveMask() uint32 {
	if l == nil || l.Mask == 0 {
		return ^uint32(0)
	}
	return l.Mask
}

// Accepts reports whether an entity on this layer tests against other.
func (l *CollisionLayer) Accepts(other *CollisionLayer) bool {
	return l.EffectiveMask()&other.EffectiveCategory() != 0
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
