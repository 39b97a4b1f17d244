package geom

import "testing"

func TestRectIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 5, Y: 5}}, Rect{Min: Point{X: 3, Y: 3}, Max: Point{X: 7, Y: 7}}, true},
		{"contained", Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 10, Y: 10}}, Rect{Min: Point{X: 3, Y: 3}, Max: Point{X: 4, Y: 4}}, true},
		{"apart_x", Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 1, Y: 1}}, Rect{Min: Point{X: 2, Y: 0}, Max: Point{X: 3, Y: 1}}, false},
		{"touching_edge", Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 5, Y: 5}}, Rect{Min: Point{X: 5, Y: 0}, Max: Point{X: 10, Y: 5}}, false},
		{"touching_corner", Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 5, Y: 5}}, Rect{Min: Point{X: 5, Y: 5}, Max: Point{X: 10, Y: 10}}, false},
		{"overlap_x_only", Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 5, Y: 5}}, Rect{Min: Point{X: 1, Y: 6}, Max: Point{X: 4, Y: 9}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Intersects(c.b); got != c.want {
				t.Fatalf("a.Intersects(b) = %v, want %v", got, c.want)
			}
			if got := c.b.Intersects(c.a); got != c.want {
				t.Fatalf("b.Intersects(a) = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRectFromCenter(t *testing.T) {
	r := RectFromCenter(Point{X: 2, Y: -1}, 3, 1)
	if r.Width() != 6 || r.Height() != 2 {
		t.Fatalf("unexpected extents %v", r)
	}
	if c := r.Center(); c.X != 2 || c.Y != -1 {
		t.Fatalf("unexpected center %v", c)
	}
	if r.BoundingRadius() != 3 {
		t.Fatalf("expected bounding radius 3, got %v", r.BoundingRadius())
	}
	if back := RectFromBB(r.BB()); back != r {
		t.Fatalf("bb round trip changed rect: %v", back)
	}
}

func TestCircleIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b Circle
		want bool
	}{
		{"overlap", Circle{Center: Point{X: 0, Y: 0}, Radius: 2}, Circle{Center: Point{X: 3, Y: 0}, Radius: 2}, true},
		{"boundary", Circle{Center: Point{X: 0, Y: 0}, Radius: 2}, Circle{Center: Point{X: 4, Y: 0}, Radius: 2}, false},
		{"apart", Circle{Center: Point{X: 0, Y: 0}, Radius: 1}, Circle{Center: Point{X: 0, Y: 10}, Radius: 1}, false},
		{"concentric", Circle{Center: Point{X: 1, Y: 1}, Radius: 1}, Circle{Center: Point{X: 1, Y: 1}, Radius: 0.5}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Intersects(c.b); got != c.want {
				t.Fatalf("Intersects = %v, want %v", got, c.want)
			}
		})
	}
}
