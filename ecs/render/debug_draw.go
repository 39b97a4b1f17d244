package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/colliders/collision"
	"github.com/milk9111/colliders/geom"
	"golang.org/x/image/colornames"
)

type originHost interface {
	Origin() geom.Point
}

// OutlineDrawer collects the outlines colliders report while debug drawing
// is on and strokes them on the next Flush.
type OutlineDrawer struct {
	rects []geom.Rect
}

var _ collision.DebugDrawer = (*OutlineDrawer)(nil)

func NewOutlineDrawer() *OutlineDrawer {
	return &OutlineDrawer{}
}

// DrawOutline queues local, given relative to the host origin, in world space.
func (d *OutlineDrawer) DrawOutline(host collision.Host, local geom.Rect) {
	if d == nil {
		return
	}
	if oh, ok := host.(originHost); ok {
		local = local.Translate(oh.Origin())
	}
	d.rects = append(d.rects, local)
}

// Pending returns the queued outlines.
func (d *OutlineDrawer) Pending() []geom.Rect {
	if d == nil {
		return nil
	}
	return d.rects
}

func (d *OutlineDrawer) Reset() {
	if d == nil {
		return
	}
	d.rects = d.rects[:0]
}

// Flush strokes and clears the queued outlines.
func (d *OutlineDrawer) Flush(screen *ebiten.Image) {
	if d == nil {
		return
	}
	if screen != nil {
		for _, r := range d.rects {
			vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Width()), float32(r.Height()), 1, colornames.Yellow, false)
		}
	}
	d.Reset()
}
