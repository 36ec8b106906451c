package internal

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangleKey(t *testing.T) {
	a, b, c := Point{0, 0}, Point{5, 1}, Point{2, 7}
	expected := TriangleKey{a, c, b}
	permutations := []Triangle{{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}}
	set := make(TriangleSet)
	for _, tri := range permutations {
		assert.Equal(t, expected, tri.Key())
		set.Add(tri)
	}
	assert.Len(t, set, 1)
	_, ok := set[Triangle{c, a, b}.Key()]
	assert.True(t, ok)
	_, ok = set[Triangle{a, b, Point{9, 9}}.Key()]
	assert.False(t, ok)
}

func TestTriangleContains(t *testing.T) {
	for _, tri := range []Triangle{
		{Point{0, 0}, Point{10, 0}, Point{0, 10}},
		{Point{0, 0}, Point{0, 10}, Point{10, 0}}, // other winding
	} {
		assert.True(t, tri.Contains(Point{2, 2}))
		assert.True(t, tri.Contains(Point{0, 0}), "vertex")
		assert.True(t, tri.Contains(Point{5, 0}), "edge")
		assert.True(t, tri.Contains(Point{5, 5}), "hypotenuse")
		assert.False(t, tri.Contains(Point{6, 6}))
		assert.False(t, tri.Contains(Point{-1, 2}))
	}
}

func TestTriangleWithins(t *testing.T) {
	tri := Triangle{Point{0, 0}, Point{4, 0}, Point{0, 4}}
	withins := tri.Withins()
	// x, y >= 0 and x + y <= 4
	assert.Len(t, withins, 15)
	for _, p := range withins {
		assert.LessOrEqual(t, p.X+p.Y, 4.0)
		assert.Equal(t, math.Trunc(p.X), p.X)
		assert.Equal(t, math.Trunc(p.Y), p.Y)
	}
	// Row major
	assert.Equal(t, Point{0, 0}, withins[0])
	assert.Equal(t, Point{4, 0}, withins[4])
	assert.Equal(t, Point{0, 4}, withins[14])

	// Deterministic
	assert.Equal(t, withins, tri.Withins())

	// Sub pixel vertices only enclose whole coordinates
	tri = Triangle{Point{0.5, 0.5}, Point{3.5, 0.5}, Point{0.5, 3.5}}
	assert.ElementsMatch(t, []Point{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {2, 2}, {1, 3}}, tri.Withins())

	assert.Empty(t, Triangle{Point{0, 0}, Point{1, 1}, Point{2, 2}}.Withins())
}

func TestTriangleWithinsIn(t *testing.T) {
	tri := Triangle{Point{0, 0}, Point{4, 0}, Point{0, 4}}
	assert.Equal(t,
		[]Point{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
		tri.WithinsIn(image.Rect(1, 1, 3, 3)))
	assert.Empty(t, tri.WithinsIn(image.Rect(10, 10, 20, 20)))

	// A triangle far larger than the raster only scans the raster
	huge := Triangle{Point{0, 0}, Point{60000, 0}, Point{0, 60000}}
	withins := huge.WithinsIn(image.Rect(0, 0, 50, 50))
	assert.Len(t, withins, 2500)
	assert.Equal(t, Point{49, 49}, withins[len(withins)-1])
}

func TestTriangleContainsOnRoundedEdge(t *testing.T) {
	// Interpolated face mesh vertices. (127, 182) is on the B-C edge, but the
	// edge product rounds to a tiny positive value.
	tri := Triangle{Point{109.4, 161.8}, Point{109.60000000000001, 188.2}, Point{135.7, 178.89999999999998}}
	assert.True(t, tri.Contains(Point{127, 182}))
	assert.Contains(t, tri.Withins(), Point{127, 182})

	assert.False(t, tri.Contains(Point{127, 183}))
	assert.False(t, tri.Contains(Point{136, 179}))
}

func TestWithinsSharedEdge(t *testing.T) {
	// Two halves of a square. Every pixel of the square is enclosed by at least
	// one half, and only the diagonal by both.
	upper := Triangle{Point{0, 0}, Point{8, 0}, Point{8, 8}}
	lower := Triangle{Point{0, 0}, Point{8, 8}, Point{0, 8}}
	counts := map[Point]int{}
	for _, tri := range []Triangle{upper, lower} {
		for _, p := range tri.Withins() {
			counts[p]++
		}
	}
	assert.Len(t, counts, 81)
	for p, count := range counts {
		if p.X == p.Y {
			assert.Equal(t, 2, count, "diagonal pixel %v", p)
		} else {
			assert.Equal(t, 1, count, "pixel %v", p)
		}
	}
}

func TestTriangleSignedArea(t *testing.T) {
	tri := Triangle{Point{0, 0}, Point{4, 0}, Point{0, 3}}
	assert.InDelta(t, 12, tri.SignedArea(), Tolerance)
	assert.InDelta(t, 6, tri.Area(), Tolerance)
	tri.A, tri.B = tri.B, tri.A
	assert.InDelta(t, -12, tri.SignedArea(), Tolerance)
	assert.InDelta(t, 6, tri.Area(), Tolerance)
	assert.True(t, Triangle{Point{0, 0}, Point{1, 1}, Point{3, 3}}.IsDegenerate())
}

func TestCircumcircle(t *testing.T) {
	circle, ok := Circumcircle(Point{0, 0}, Point{4, 0}, Point{0, 4})
	require.True(t, ok)
	assert.InDelta(t, 2, circle.Center.X, Tolerance)
	assert.InDelta(t, 2, circle.Center.Y, Tolerance)
	assert.InDelta(t, 2*math.Sqrt2, circle.Radius, Tolerance)

	// Every vertex is on the circle, whatever the order
	for _, tri := range []Triangle{
		{Point{3, 1}, Point{-2, 7}, Point{11, 4}},
		{Point{11, 4}, Point{3, 1}, Point{-2, 7}},
		{Point{0.5, 0.25}, Point{100, 3}, Point{42, 77.5}},
	} {
		circle, ok := Circumcircle(tri.A, tri.B, tri.C)
		require.True(t, ok)
		for _, p := range tri.Points() {
			assert.InDelta(t, circle.Radius, circle.Center.Distance(p), Tolerance)
			assert.False(t, circle.StrictlyContains(p))
		}
		assert.True(t, circle.StrictlyContains(circle.Center))
	}

	_, ok = Circumcircle(Point{0, 0}, Point{1, 1}, Point{5, 5})
	assert.False(t, ok, "collinear points have no circumcircle")
	_, ok = Circumcircle(Point{0, 0}, Point{1, 1}, Point{0, 0})
	assert.False(t, ok, "repeated points have no circumcircle")
}
