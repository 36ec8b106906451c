package internal

import (
	"image"
	"math"
)

// The vertices in lexicographic order. Two triangles with the same points have
// the same key, whatever order they were discovered in.
func (t Triangle) Key() TriangleKey {
	key := TriangleKey{t.A, t.B, t.C}
	if key[1].Less(key[0]) {
		key[0], key[1] = key[1], key[0]
	}
	if key[2].Less(key[1]) {
		key[1], key[2] = key[2], key[1]
	}
	if key[1].Less(key[0]) {
		key[0], key[1] = key[1], key[0]
	}
	return key
}

func (t Triangle) Edges() [3]Segment {
	return [3]Segment{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
}

// Twice the signed area. Positive when A, B, C wind counterclockwise in a y-up
// coordinate system (clockwise on screen, where y points down).
func (t Triangle) SignedArea() float64 {
	return cross(t.A, t.B, t.C)
}

func (t Triangle) Area() float64 {
	return math.Abs(t.SignedArea()) / 2
}

func (t Triangle) IsDegenerate() bool {
	return t.SignedArea() == 0
}

// Does the triangle contain the point? Points on the boundary count as inside,
// including points that rounding puts a hair outside of an edge. This works
// for either winding.
func (t Triangle) Contains(p Point) bool {
	// Relative to the triangle's size, since the edge products scale with it
	epsilon := Tolerance * math.Abs(t.SignedArea())
	d1 := cross(t.A, t.B, p)
	d2 := cross(t.B, t.C, p)
	d3 := cross(t.C, t.A, p)
	hasNegative := d1 < -epsilon || d2 < -epsilon || d3 < -epsilon
	hasPositive := d1 > epsilon || d2 > epsilon || d3 > epsilon
	return !(hasNegative && hasPositive)
}

// The integer raster coordinates inside or on the boundary of the triangle, in
// row major order. A degenerate triangle encloses nothing.
//
// Coordinates on an edge shared with a neighbor are reported by both
// triangles. Callers painting a whole mesh resolve ownership themselves (see
// Operator).
func (t Triangle) Withins() []Point {
	return t.withins(math.Inf(-1), math.Inf(1), math.Inf(-1), math.Inf(1))
}

// Withins, restricted to the pixels of a raster. The scan only covers the part
// of the bounding box that overlaps the raster, so a triangle reaching far
// outside of it costs no more than the raster itself.
func (t Triangle) WithinsIn(bounds image.Rectangle) []Point {
	return t.withins(
		float64(bounds.Min.X), float64(bounds.Max.X-1),
		float64(bounds.Min.Y), float64(bounds.Max.Y-1),
	)
}

func (t Triangle) withins(loX, hiX, loY, hiY float64) []Point {
	if t.IsDegenerate() {
		return nil
	}
	minX := math.Max(loX, math.Ceil(math.Min(t.A.X, math.Min(t.B.X, t.C.X))))
	maxX := math.Min(hiX, math.Floor(math.Max(t.A.X, math.Max(t.B.X, t.C.X))))
	minY := math.Max(loY, math.Ceil(math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y))))
	maxY := math.Min(hiY, math.Floor(math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y))))

	var withins []Point
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := Point{x, y}
			if t.Contains(p) {
				withins = append(withins, p)
			}
		}
	}
	return withins
}

// Cross product of (b - a) and (c - a).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

type Circle struct {
	Center Point
	Radius float64
}

// The circumcircle of three points, found by intersecting the right bisector
// of p1-p3 with the right bisector of p2-p3. There is no circle for collinear
// points (the bisectors are parallel), so ok is false in that case.
func Circumcircle(p1, p2, p3 Point) (circle Circle, ok bool) {
	m1 := Midpoint(p1, p3)
	m2 := Midpoint(p2, p3)
	// Bisector directions are the edge directions rotated a quarter turn
	d1x, d1y := -(p3.Y - p1.Y), p3.X-p1.X
	d2x, d2y := -(p3.Y - p2.Y), p3.X-p2.X

	denominator := d1x*d2y - d1y*d2x
	if math.Abs(denominator) <= Tolerance*math.Hypot(d1x, d1y)*math.Hypot(d2x, d2y) {
		return Circle{}, false
	}
	s := ((m2.X-m1.X)*d2y - (m2.Y-m1.Y)*d2x) / denominator
	center := Point{m1.X + s*d1x, m1.Y + s*d1y}
	return Circle{Center: center, Radius: center.Distance(p1)}, true
}

// Is the point strictly inside the circle? Points within Tolerance of the
// circumference are treated as on it.
func (c Circle) StrictlyContains(p Point) bool {
	return c.Center.Distance(p) < c.Radius-Tolerance
}
