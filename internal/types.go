package internal

import "fmt"

// Points are plain values. They are compared with ==, so they can be used
// directly as map keys. Landmark coordinates coming from a detector are
// usually integral, but interpolated meshes are not, so coordinates are
// float64.
type Point struct {
	X float64
	Y float64
}

type Mesh []Point

// Segments are ordered: Segment{a, b} != Segment{b, a}. Use Normalized() when
// direction should not matter.
type Segment struct {
	Start Point
	End   Point
}

// A triangle's vertex order is meaningful for the affine solver (vertex i of
// one triangle corresponds to vertex i of another), but its identity is not.
// Use Key() for set membership.
type Triangle struct {
	A, B, C Point
}

// Sorted vertex triple of a triangle.
type TriangleKey [3]Point

type PointSet map[Point]struct{}

type SegmentSet map[Segment]struct{}

type TriangleSet map[TriangleKey]struct{}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (s Segment) String() string {
	return fmt.Sprintf("%v-%v", s.Start, s.End)
}

func (t Triangle) String() string {
	return fmt.Sprintf("[%v %v %v]", t.A, t.B, t.C)
}

func (t Triangle) Points() [3]Point {
	return [3]Point{t.A, t.B, t.C}
}

func (set PointSet) Add(p Point) {
	set[p] = struct{}{}
}

func (set PointSet) Contains(p Point) bool {
	_, ok := set[p]
	return ok
}

func (set PointSet) Equals(other PointSet) bool {
	if len(set) != len(other) {
		return false
	}
	for p := range set {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}

// Add the segment, returning false if it was already present.
func (set SegmentSet) Add(s Segment) bool {
	if _, ok := set[s]; ok {
		return false
	}
	set[s] = struct{}{}
	return true
}

// Add the triangle, returning false if a triangle with the same three points
// was already present.
func (set TriangleSet) Add(t Triangle) bool {
	key := t.Key()
	if _, ok := set[key]; ok {
		return false
	}
	set[key] = struct{}{}
	return true
}
