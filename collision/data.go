package collision

import (
	"fmt"
	"math"

	"github.com/milk9111/colliders/geom"
)

// Data describes one detected overlap. It is built once per positive detailed
// test and owned by the collider that produced it until the next test.
type Data struct {
	// Distance is the overlap depth, equal to the length of Separation.
	Distance float64
	// Normal points from the first shape's center toward the second's.
	Normal geom.Vector
	// ShapeA and ShapeB are set by circle colliders only.
	ShapeA *geom.Circle
	ShapeB *geom.Circle
	// Separation is the translation that pushes the bodies apart along Normal.
	Separation geom.Vector
}

func (d *Data) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Data{distance=%.3f normal=(%.3f,%.3f) separation=(%.3f,%.3f)}",
		d.Distance, d.Normal.X, d.Normal.Y, d.Separation.X, d.Separation.Y)
}

// coincidentNormal is used when both centers are the same point.
var coincidentNormal = geom.Vector{X: 1, Y: 0}

// overlapCircles runs the squared-distance test for two circles and, when
// they overlap, builds the separation data. The square root is only taken
// once the overlap is confirmed.
func overlapCircles(c1, c2 geom.Point, r1, r2 float64) (*Data, bool) {
	delta := c2.Sub(c1)
	distSqr := delta.LengthSq()
	combined := r1 + r2
	if distSqr >= combined*combined {
		return nil, false
	}

	dist := math.Sqrt(distSqr)
	diff := combined - dist
	normal := coincidentNormal
	if dist > 0 {
		normal = delta.Mult(1 / dist)
	}
	sep := normal.Mult(diff)
	return &Data{
		Distance:   sep.Length(),
		Normal:     normal,
		Separation: sep,
	}, true
}
