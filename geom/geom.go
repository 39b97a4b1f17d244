// Package geom holds the 2D value types shared by the collision core and the
// physics bridge. Vectors are Chipmunk vectors so bodies and colliders speak
// the same coordinates.
package geom

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Vector is a 2D point or direction.
type Vector = cp.Vector

// Point is a position in world space.
type Point = cp.Vector

// Rect is an axis-aligned rectangle described by its minimum and maximum corners.
type Rect struct {
	Min Point
	Max Point
}

// RectFromCenter builds a rectangle around center with the given half extents.
func RectFromCenter(center Point, halfW, halfH float64) Rect {
	return Rect{
		Min: Point{X: center.X - halfW, Y: center.Y - halfH},
		Max: Point{X: center.X + halfW, Y: center.Y + halfH},
	}
}

// RectFromBB converts a Chipmunk bounding box.
func RectFromBB(bb cp.BB) Rect {
	return Rect{Min: Point{X: bb.L, Y: bb.B}, Max: Point{X: bb.R, Y: bb.T}}
}

// BB converts the rectangle to a Chipmunk bounding box.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.Min.X, B: r.Min.Y, R: r.Max.X, T: r.Max.Y}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// HalfWidth and HalfHeight are half of the rectangle's extents.
func (r Rect) HalfWidth() float64  { return r.Width() / 2 }
func (r Rect) HalfHeight() float64 { return r.Height() / 2 }

func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vector) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Intersects reports whether r and o overlap on both axes. Touching edges do
// not count as an overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X < o.Max.X &&
		r.Max.X > o.Min.X &&
		r.Min.Y < o.Max.Y &&
		r.Max.Y > o.Min.Y
}

// BoundingRadius is the radius of the circle used to approximate r:
// the larger of its half extents.
func (r Rect) BoundingRadius() float64 {
	return math.Max(r.HalfWidth(), r.HalfHeight())
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect[%.2f,%.2f %.2f,%.2f]", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Circle is a world-space circle.
type Circle struct {
	Center Point
	Radius float64
}

// Intersects reports whether the circles overlap. Circles whose centers are
// exactly r1+r2 apart do not intersect.
func (c Circle) Intersects(o Circle) bool {
	r := c.Radius + o.Radius
	return o.Center.Sub(c.Center).LengthSq() < r*r
}

// Bounds is the smallest rectangle containing c.
func (c Circle) Bounds() Rect {
	return RectFromCenter(c.Center, c.Radius, c.Radius)
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle[%.2f,%.2f r=%.2f]", c.Center.X, c.Center.Y, c.Radius)
}
