package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/colliders/ecs"
	"github.com/milk9111/colliders/ecs/component"
	"github.com/milk9111/colliders/geom"
)

const (
	// positionCorrection is the share of a contact's separation removed
	// directly from the position each tick.
	positionCorrection = 0.5
	physicsIterations  = 20
)

// PhysicsSystem feeds collider contacts into a Chipmunk space as impulses and
// position corrections, steps it, and writes the result back to transforms.
// Shapes are sensors: Chipmunk integrates motion but never resolves contacts
// on its own.
type PhysicsSystem struct {
	space  *cp.Space
	bounds geom.Rect
	bodies map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(gravity float64, bounds geom.Rect) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = physicsIterations
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:  space,
		bounds: bounds,
		bodies: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.removeStale(w)
	ps.syncEntities(w)
	ps.respond(w)

	ps.space.Step(1.0)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) removeStale(w *ecs.World) {
	for e, info := range ps.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.ShapeComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, s *component.Shape, pb *component.PhysicsBody) {
			if info, ok := ps.bodies[e]; ok {
				if info.static {
					// static bodies follow their transform
					info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
				}
				return
			}
			var scale *float64
			if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
				scale = &gs.Scale
			}
			info := ps.createBody(t, s, pb, scale)
			ps.bodies[e] = info
			pb.Body = info.body
			pb.Shape = info.shape
		})
}

func (ps *PhysicsSystem) createBody(t *component.Transform, s *component.Shape, pb *component.PhysicsBody, gravityScale *float64) *bodyInfo {
	var body *cp.Body
	if pb.Static {
		body = cp.NewStaticBody()
	} else {
		// rotation is not simulated; colliders are axis aligned
		body = cp.NewBody(pb.Mass, math.Inf(1))
		body.SetVelocity(pb.VelocityX, pb.VelocityY)
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	var shape *cp.Shape
	switch s.Kind {
	case component.ShapeCircle:
		shape = cp.NewCircle(body, s.Radius, cp.Vector{})
	case component.ShapeBox:
		shape = cp.NewBox(body, s.HalfWidth*2, s.HalfHeight*2, 0)
	}

	if gravityScale != nil && !pb.Static {
		scale := *gravityScale
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, gravity.Mult(scale), damping, dt)
		})
	}

	ps.space.AddBody(body)
	if shape != nil {
		shape.SetSensor(true)
		shape.SetElasticity(pb.Elasticity)
		ps.space.AddShape(shape)
	}
	return &bodyInfo{body: body, shape: shape, static: pb.Static}
}

// respond applies every pending detailed contact: the host is pushed back by
// part of the separation and loses the velocity component heading into the
// candidate, scaled by its elasticity.
func (ps *PhysicsSystem) respond(w *ecs.World) {
	ecs.ForEach2(w, component.ContactsComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, contacts *component.Contacts, pb *component.PhysicsBody) {
			info, ok := ps.bodies[e]
			if !ok || info.static {
				contacts.Pending = contacts.Pending[:0]
				return
			}
			body := info.body
			for _, rec := range contacts.Pending {
				if rec.Data == nil {
					continue
				}
				body.SetPosition(body.Position().Sub(rec.Data.Separation.Mult(positionCorrection)))

				n := rec.Data.Normal
				vn := body.Velocity().Dot(n)
				if vn <= 0 {
					continue
				}
				impulse := n.Mult(-(1 + pb.Elasticity) * vn * body.Mass())
				body.ApplyImpulseAtWorldPoint(impulse, body.Position())
			}
			contacts.Pending = contacts.Pending[:0]
		})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.ShapeComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, s *component.Shape, pb *component.PhysicsBody) {
			info, ok := ps.bodies[e]
			if !ok || info.static {
				return
			}
			pos, vel := ps.keepInBounds(info.body.Position(), info.body.Velocity(), s, pb.Elasticity)
			info.body.SetPosition(pos)
			info.body.SetVelocityVector(vel)
			t.X, t.Y = pos.X, pos.Y
		})
}

// keepInBounds clamps a body inside the scene and reflects the velocity
// component that pushed it out.
func (ps *PhysicsSystem) keepInBounds(pos, vel cp.Vector, s *component.Shape, elasticity float64) (cp.Vector, cp.Vector) {
	if ps.bounds.Width() <= 0 || ps.bounds.Height() <= 0 {
		return pos, vel
	}
	hw, hh := s.HalfWidth, s.HalfHeight
	if s.Kind == component.ShapeCircle {
		hw, hh = s.Radius, s.Radius
	}
	if pos.X-hw < ps.bounds.Min.X {
		pos.X = ps.bounds.Min.X + hw
		vel.X = math.Abs(vel.X) * elasticity
	} else if pos.X+hw > ps.bounds.Max.X {
		pos.X = ps.bounds.Max.X - hw
		vel.X = -math.Abs(vel.X) * elasticity
	}
	if pos.Y-hh < ps.bounds.Min.Y {
		pos.Y = ps.bounds.Min.Y + hh
		vel.Y = math.Abs(vel.Y) * elasticity
	} else if pos.Y+hh > ps.bounds.Max.Y {
		pos.Y = ps.bounds.Max.Y - hh
		vel.Y = -math.Abs(vel.Y) * elasticity
	}
	return pos, vel
}
