package collision

import (
	"time"

	"github.com/milk9111/colliders/geom"
)

// Circle tests world bounding circles.
type Circle struct {
	base
	circleHost CircleHost
}

var _ Collider = (*Circle)(nil)

func NewCircle(model Model, opts ...Option) *Circle {
	return &Circle{base: newBase("Circle", model, opts)}
}

// Attach binds the circle to host. A host without WorldCircle is accepted but
// the collider stays inert.
func (c *Circle) Attach(host Host) {
	c.bind(host)
	c.circleHost = nil
	if host == nil {
		return
	}
	ch, ok := host.(CircleHost)
	if !ok || !hasCapability(host, CapWorldCircle) {
		c.missing("WorldCircle")
		return
	}
	c.circleHost = ch
	c.capable = true
}

func (c *Circle) Test(at time.Duration, candidate Host, hostMask, targetMask uint32) Verdict {
	c.dispose()
	defer c.drawDebug()
	if !c.capable || c.circleHost == nil {
		return Continue
	}

	other, ok := worldCircle(candidate)
	if !ok {
		return Continue
	}
	self := c.circleHost.WorldCircle()

	if c.mode == DetailedTest {
		data, hit := overlapCircles(self.Center, other.Center, self.Radius, other.Radius)
		if !hit {
			return Continue
		}
		a, b := self, other
		data.ShapeA = &a
		data.ShapeB = &b
		c.store(data)
	} else if !self.Intersects(other) {
		return Continue
	}
	return c.dispatch(at, candidate, hostMask, targetMask)
}

func (c *Circle) Release() {
	c.base.Release()
	c.circleHost = nil
}

// drawDebug outlines the host's bounding box relative to its own origin. A
// host without WorldCircle falls back to its WorldBox, if any.
func (c *Circle) drawDebug() {
	if c.drawer == nil || !DebugDrawEnabled() || c.host == nil {
		return
	}
	box, hasBox := worldBox(c.host)
	var bounds geom.Rect
	var origin geom.Point
	switch {
	case c.circleHost != nil:
		self := c.circleHost.WorldCircle()
		bounds, origin = self.Bounds(), self.Center
		if hasBox {
			bounds = box
		}
	case hasBox:
		bounds, origin = box, box.Center()
	default:
		return
	}
	c.drawer.DrawOutline(c.host, bounds.Translate(geom.Vector{X: -origin.X, Y: -origin.Y}))
}
