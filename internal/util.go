package internal

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

const Tolerance = 1e-6

// To compensate for imprecision in floats, equality is tolerance based.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Lexicographic ordering: X first, then Y. This is the tie breaker everywhere
// the triangulation would otherwise depend on map iteration order.
func (p Point) Less(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Linear interpolation between two points. At ratio 0 the result is p, at
// ratio 1 it is other.
func (p Point) Lerp(other Point, ratio float64) Point {
	return Point{
		X: p.X*(1-ratio) + other.X*ratio,
		Y: p.Y*(1-ratio) + other.Y*ratio,
	}
}

func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

func (set PointSet) Sorted() []Point {
	points := make([]Point, 0, len(set))
	for p := range set {
		points = append(points, p)
	}
	SortPoints(points)
	return points
}

func SortPoints(points []Point) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Less(points[j])
	})
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
