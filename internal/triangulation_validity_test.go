package internal

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation of two meshes is valid. The rules are:
//  1. The left, right and averaged lists are parallel, and agree with Indices.
//  2. The set of points in the triangles equals the set of averaged points.
//  3. No triangle has zero area.
//  4. No point lies strictly inside any triangle's circumcircle.
//  5. No two edges cross.
//  6. The triangles cover the convex hull: the areas add up to the hull's, and
//     every pixel in the hull lies in some triangle.
func AssertValidTriangulation(t *testing.T, left, right Mesh, tri *Triangulation) {
	require.Len(t, tri.Left, len(tri.Average))
	require.Len(t, tri.Right, len(tri.Average))
	require.Len(t, tri.Indices, len(tri.Average))

	averaged := make(PointSet)
	for i := range left {
		averaged.Add(Midpoint(left[i], right[i]))
	}
	points := averaged.Sorted()

	trianglePoints := make(PointSet)
	for k, avg := range tri.Average {
		indices := tri.Indices[k]
		corners := avg.Points()
		leftCorners := tri.Left[k].Points()
		rightCorners := tri.Right[k].Points()
		for j, index := range indices {
			assert.Equal(t, left[index], leftCorners[j], "left vertex %d of triangle %d", j, k)
			assert.Equal(t, right[index], rightCorners[j], "right vertex %d of triangle %d", j, k)
			assert.Equal(t, Midpoint(left[index], right[index]), corners[j], "averaged vertex %d of triangle %d", j, k)
			trianglePoints.Add(corners[j])
		}
		require.False(t, avg.IsDegenerate(), "degenerate triangle %v", avg)
	}
	require.True(t, averaged.Equals(trianglePoints), "set of points in the triangles must equal the set of averaged points")

	AssertEmptyCircumcircles(t, points, tri.Average)
	AssertNoCrossingEdges(t, tri.Average)

	hull := convexHull(points)
	var triangleArea float64
	for _, avg := range tri.Average {
		triangleArea += avg.Area()
	}
	require.InDelta(t, polygonArea(hull), triangleArea, Tolerance*math.Max(1, polygonArea(hull)), "sum of the triangle areas must equal the hull area")

	validateCoverageBySampling(t, hull, tri.Average)
}

func AssertEmptyCircumcircles(t *testing.T, points []Point, triangles []Triangle) {
	for _, tri := range triangles {
		circle, ok := Circumcircle(tri.A, tri.B, tri.C)
		require.True(t, ok, "triangle %v has no circumcircle", tri)
		for _, p := range points {
			if p == tri.A || p == tri.B || p == tri.C {
				continue
			}
			assert.False(t, circle.StrictlyContains(p), "point %v lies inside the circumcircle of %v", p, tri)
		}
	}
}

func AssertNoCrossingEdges(t *testing.T, triangles []Triangle) {
	edges := make(SegmentSet)
	for _, tri := range triangles {
		for _, edge := range tri.Edges() {
			edges.Add(edge.Normalized())
		}
	}
	list := make([]Segment, 0, len(edges))
	for edge := range edges {
		list = append(list, edge)
	}
	for i, a := range list {
		for _, b := range list[i+1:] {
			assert.False(t, a.Crosses(b), "edges %v and %v cross", a, b)
		}
	}
}

func validateCoverageBySampling(t *testing.T, hull []Point, triangles []Triangle) {
	if len(hull) < 3 {
		return
	}
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range hull {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for y := math.Ceil(minY); y <= maxY; y++ {
		for x := math.Ceil(minX); x <= maxX; x++ {
			p := Point{x, y}
			if !hullContains(hull, p) {
				continue
			}
			covered := false
			for _, tri := range triangles {
				if tri.Contains(p) {
					covered = true
					break
				}
			}
			assert.True(t, covered, "pixel %v in the hull is not covered by any triangle", p)
		}
	}
}

// Andrew's monotone chain. The hull has positive orientation and no collinear
// vertices.
func convexHull(points []Point) []Point {
	if len(points) < 3 {
		return points
	}
	sorted := append([]Point(nil), points...)
	SortPoints(sorted)

	var hull []Point
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func hullContains(hull []Point, p Point) bool {
	for i := range hull {
		if cross(hull[i], hull[(i+1)%len(hull)], p) < 0 {
			return false
		}
	}
	return true
}

func polygonArea(polygon []Point) float64 {
	var area float64
	for i, p := range polygon {
		q := polygon[(i+1)%len(polygon)]
		area += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(area) / 2
}
