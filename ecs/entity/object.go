package entity

import (
	"fmt"

	"github.com/milk9111/colliders/collision"
	"github.com/milk9111/colliders/ecs"
	"github.com/milk9111/colliders/ecs/component"
	"github.com/milk9111/colliders/geom"
)

// CollideHandler decides the verdict for a contact reported to an Object.
type CollideHandler func(o *Object, c collision.Contact) collision.Verdict

// Object adapts an entity to the collision host contracts. Its geometry is
// read from the entity's Transform and Shape on every call.
type Object struct {
	world   *ecs.World
	entity  ecs.Entity
	name    string
	handler CollideHandler
}

var (
	_ collision.BoxHost            = (*Object)(nil)
	_ collision.CircleHost         = (*Object)(nil)
	_ collision.CapabilityReporter = (*Object)(nil)
)

func NewObject(w *ecs.World, e ecs.Entity, name string) *Object {
	return &Object{world: w, entity: e, name: name}
}

func (o *Object) Entity() ecs.Entity { return o.entity }
func (o *Object) Name() string       { return o.name }

// SetHandler replaces the collide handler. nil means always Continue.
func (o *Object) SetHandler(h CollideHandler) {
	o.handler = h
}

func (o *Object) String() string {
	return fmt.Sprintf("%s#%s", o.name, o.entity)
}

// Origin is the entity's world position.
func (o *Object) Origin() geom.Point {
	t, ok := ecs.Get(o.world, o.entity, component.TransformComponent.Kind())
	if !ok {
		return geom.Point{}
	}
	return geom.Point{X: t.X, Y: t.Y}
}

func (o *Object) shape() (component.Shape, bool) {
	s, ok := ecs.Get(o.world, o.entity, component.ShapeComponent.Kind())
	if !ok {
		return component.Shape{}, false
	}
	return *s, true
}

// Capabilities reports box geometry for boxes and circles (a circle's box is
// its bounds) and circle geometry for circles only.
func (o *Object) Capabilities() collision.Capabilities {
	s, ok := o.shape()
	if !ok {
		return 0
	}
	switch s.Kind {
	case component.ShapeBox:
		return collision.CapWorldBox
	case component.ShapeCircle:
		return collision.CapWorldBox | collision.CapWorldCircle
	default:
		return 0
	}
}

func (o *Object) WorldBox() geom.Rect {
	s, _ := o.shape()
	switch s.Kind {
	case component.ShapeCircle:
		return geom.RectFromCenter(o.Origin(), s.Radius, s.Radius)
	case component.ShapeBox:
		return geom.RectFromCenter(o.Origin(), s.HalfWidth, s.HalfHeight)
	default:
		return geom.Rect{Min: o.Origin(), Max: o.Origin()}
	}
}

func (o *Object) WorldCircle() geom.Circle {
	s, _ := o.shape()
	return geom.Circle{Center: o.Origin(), Radius: s.Radius}
}

// OnCollide records the contact on the entity, emits a collision event and
// asks the handler for the verdict.
func (o *Object) OnCollide(c collision.Contact) collision.Verdict {
	verdict := collision.Continue
	if o.handler != nil {
		verdict = o.handler(o, c)
	}

	var data *collision.Data
	if c.Data != nil {
		copied := *c.Data
		data = &copied
	}

	other := ""
	var otherEntity ecs.Entity
	if c.Candidate != nil {
		other = c.Candidate.String()
	}
	if obj, ok := c.Candidate.(*Object); ok {
		otherEntity = obj.entity
	}

	if contacts, ok := ecs.Get(o.world, o.entity, component.ContactsComponent.Kind()); ok {
		contacts.Record(component.ContactRecord{
			Other:   other,
			At:      c.At,
			Verdict: verdict,
			Data:    data,
		})
	}
	o.world.Events().Push(ecs.Event{
		Type: ecs.EventCollision,
		Data: ecs.CollisionEvent{
			Host:      o.entity,
			Candidate: otherEntity,
			At:        c.At,
			Verdict:   verdict,
			Data:      data,
		},
	})
	return verdict
}
