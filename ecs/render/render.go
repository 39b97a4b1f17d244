package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/colliders/ecs"
	"github.com/milk9111/colliders/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	shapeStroke = 2
	crossSize   = 6
)

// RenderSystem draws entity shapes as outlines, tinted by whether the entity
// was touched this tick.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ShapeComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Shape) {
		clr := shapeColor(w, e)
		x, y := float32(t.X), float32(t.Y)
		switch s.Kind {
		case component.ShapeBox:
			vector.StrokeRect(screen, x-float32(s.HalfWidth), y-float32(s.HalfHeight), float32(s.HalfWidth*2), float32(s.HalfHeight*2), shapeStroke, clr, true)
		case component.ShapeCircle:
			vector.StrokeCircle(screen, x, y, float32(s.Radius), shapeStroke, clr, true)
			// heading marker
			hx := x + float32(math.Cos(t.Rotation)*s.Radius)
			hy := y + float32(math.Sin(t.Rotation)*s.Radius)
			vector.StrokeLine(screen, x, y, hx, hy, 1, clr, true)
		default:
			vector.StrokeLine(screen, x-crossSize, y-crossSize, x+crossSize, y+crossSize, 1, clr, true)
			vector.StrokeLine(screen, x-crossSize, y+crossSize, x+crossSize, y-crossSize, 1, clr, true)
		}
	})
}

func shapeColor(w *ecs.World, e ecs.Entity) color.Color {
	if !ecs.Has(w, e, component.ColliderComponent.Kind()) {
		return colornames.Gray
	}
	if c, ok := ecs.Get(w, e, component.ContactsComponent.Kind()); ok && c.Touching {
		return colornames.Orangered
	}
	return colornames.Limegreen
}
