package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/colliders/collision"
	"github.com/milk9111/colliders/ecs"
	"github.com/milk9111/colliders/ecs/component"
	"github.com/milk9111/colliders/prefabs"
)

// ScriptLoader resolves a script path into a collide handler.
type ScriptLoader func(path string) (CollideHandler, error)

// Factory builds scene objects and recycles their colliders.
type Factory struct {
	Model   collision.Model
	Scripts ScriptLoader

	boxes   *collision.Pool[*collision.Box]
	circles *collision.Pool[*collision.Circle]
}

// NewFactory creates a factory whose colliders are bound to model and built
// with opts.
func NewFactory(model collision.Model, opts ...collision.Option) *Factory {
	return &Factory{
		Model:   model,
		boxes:   collision.NewPool(func() *collision.Box { return collision.NewBox(nil, opts...) }),
		circles: collision.NewPool(func() *collision.Circle { return collision.NewCircle(nil, opts...) }),
	}
}

// LoadScene spawns every object of scene. On error the entities spawned so far
// are despawned again.
func (f *Factory) LoadScene(w *ecs.World, scene *prefabs.SceneSpec) ([]ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("entity: load scene: world is nil")
	}
	if scene == nil {
		return nil, fmt.Errorf("entity: load scene: scene is nil")
	}
	mode, err := collision.ParseMode(scene.Mode)
	if err != nil {
		return nil, fmt.Errorf("entity: load scene %q: %w", scene.Name, err)
	}

	ents := make([]ecs.Entity, 0, len(scene.Objects))
	for _, spec := range scene.Objects {
		e, err := f.Spawn(w, spec, mode)
		if err != nil {
			for _, spawned := range ents {
				f.Despawn(w, spawned)
			}
			return nil, fmt.Errorf("entity: load scene %q: %w", scene.Name, err)
		}
		ents = append(ents, e)
	}
	log.Printf("Factory: loaded scene %q with %d objects", scene.Name, len(ents))
	return ents, nil
}

// Spawn creates one object. defaultMode applies when the spec has no mode.
func (f *Factory) Spawn(w *ecs.World, spec prefabs.ObjectSpec, defaultMode collision.Mode) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := f.build(w, e, spec, defaultMode); err != nil {
		f.Despawn(w, e)
		return 0, fmt.Errorf("spawn %q: %w", spec.Name, err)
	}
	return e, nil
}

func (f *Factory) build(w *ecs.World, e ecs.Entity, spec prefabs.ObjectSpec, defaultMode collision.Mode) error {
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.Transform.X,
		Y:        spec.Transform.Y,
		Rotation: spec.Transform.Rotation,
	}); err != nil {
		return err
	}
	shape, err := shapeFromSpec(spec.Shape)
	if err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ShapeComponent.Kind(), &shape); err != nil {
		return err
	}
	if spec.Layer != nil {
		layer := component.CollisionLayer{Category: spec.Layer.Category, Mask: spec.Layer.Mask}
		if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layer); err != nil {
			return err
		}
	}
	if spec.Body != nil {
		body := component.PhysicsBody{
			Mass:       spec.Body.Mass,
			Elasticity: spec.Body.Elasticity,
			Static:     spec.Body.Static,
			VelocityX:  spec.Body.VelocityX,
			VelocityY:  spec.Body.VelocityY,
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body); err != nil {
			return err
		}
	}
	if spec.GravityScale != nil {
		if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: *spec.GravityScale}); err != nil {
			return err
		}
	}

	if spec.Collider == "" {
		return nil
	}

	obj := NewObject(w, e, spec.Name)
	if spec.Script != "" {
		if f.Scripts == nil {
			return fmt.Errorf("script %q: no script loader", spec.Script)
		}
		handler, err := f.Scripts(spec.Script)
		if err != nil {
			return fmt.Errorf("script %q: %w", spec.Script, err)
		}
		obj.SetHandler(handler)
		if err := ecs.Add(w, e, component.CollideScriptComponent.Kind(), &component.CollideScript{Path: spec.Script}); err != nil {
			return err
		}
	}

	mode := defaultMode
	if spec.Mode != "" {
		if mode, err = collision.ParseMode(spec.Mode); err != nil {
			return err
		}
	}

	var col collision.Collider
	switch spec.Collider {
	case "box":
		col = f.boxes.Get(f.Model)
	case "circle":
		col = f.circles.Get(f.Model)
	default:
		return fmt.Errorf("unknown collider %q", spec.Collider)
	}
	col.SetMode(mode)
	col.Attach(obj)

	if err := ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{}); err != nil {
		f.recycle(col)
		return err
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Collider: col}); err != nil {
		f.recycle(col)
		return err
	}
	return nil
}

// Despawn returns the entity's collider to its pool and destroys the entity.
func (f *Factory) Despawn(w *ecs.World, e ecs.Entity) bool {
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && c.Collider != nil {
		f.recycle(c.Collider)
		c.Collider = nil
	}
	return ecs.DestroyEntity(w, e)
}

// Clear despawns every entity in w.
func (f *Factory) Clear(w *ecs.World) {
	for _, e := range ecs.Entities(w) {
		f.Despawn(w, e)
	}
}

// FreeColliders reports how many box and circle colliders wait for reuse.
func (f *Factory) FreeColliders() (boxes, circles int) {
	return f.boxes.Free(), f.circles.Free()
}

// AllocatedColliders reports how many colliders the pools have created.
func (f *Factory) AllocatedColliders() int {
	return f.boxes.Allocated() + f.circles.Allocated()
}

func (f *Factory) recycle(c collision.Collider) {
	switch col := c.(type) {
	case *collision.Box:
		f.boxes.Put(col)
	case *collision.Circle:
		f.circles.Put(col)
	}
}

func shapeFromSpec(s prefabs.ShapeSpec) (component.Shape, error) {
	switch s.Kind {
	case "", "none":
		return component.Shape{Kind: component.ShapeNone}, nil
	case "box":
		return component.Shape{Kind: component.ShapeBox, HalfWidth: s.HalfWidth, HalfHeight: s.HalfHeight}, nil
	case "circle":
		return component.Shape{Kind: component.ShapeCircle, Radius: s.Radius}, nil
	default:
		return component.Shape{}, fmt.Errorf("unknown shape %q", s.Kind)
	}
}
