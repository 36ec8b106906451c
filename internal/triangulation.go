package internal

import (
	"log"
	"time"

	"github.com/osuushi/facemorph/internal/dbg"
)

// This implements an advancing front triangulation of the averaged landmark
// points. Starting from the shortest edge at the lexicographically smallest
// point, each edge on the frontier is extended with at most two third points,
// one per side. A third point is accepted when the circumcircle of the new
// triangle contains no other point (the Delaunay condition), and neither new
// edge crosses an edge that has already been used.
//
// The search is O(n) candidates per edge with an O(n) check each, which is
// fine for landmark sets (tens to a few hundred points) and not meant for dense
// point clouds.

// Three parallel triangle lists. Entry k of each list is the same triangle,
// expressed in the left image, the right image, and the averaged mesh. Indices
// holds the landmark index each vertex came from.
type Triangulation struct {
	Left    []Triangle
	Right   []Triangle
	Average []Triangle
	Indices [][3]int
}

func (t *Triangulation) Len() int {
	return len(t.Average)
}

type Triangulator struct {
	Logger *log.Logger
	// Log every accepted triangle. Only useful for small meshes.
	Trace bool

	left, right Mesh
	// Averaged points in landmark order, and the first landmark index that
	// produced each averaged point.
	order  []Point
	origin map[Point]int
	// Unique averaged points in lexicographic order.
	points []Point

	used      SegmentSet
	usedList  []Segment
	queue     []Segment
	triangles TriangleSet
	result    *Triangulation
}

// The meshes must have equal length. This is not checked here.
func NewTriangulator(left, right Mesh) *Triangulator {
	return &Triangulator{left: left, right: right}
}

func (t *Triangulator) Run() *Triangulation {
	start := time.Now()
	t.logf("Begin triangulation of %d landmarks", len(t.left))

	t.reset()
	t.work()

	t.logf("End triangulation: %d triangles in %v", t.result.Len(), time.Since(start))
	return t.result
}

func (t *Triangulator) reset() {
	t.order = make([]Point, len(t.left))
	t.origin = make(map[Point]int, len(t.left))
	unique := make(PointSet, len(t.left))
	for i := range t.left {
		p := Midpoint(t.left[i], t.right[i])
		t.order[i] = p
		if _, ok := t.origin[p]; !ok {
			t.origin[p] = i
		}
		unique.Add(p)
	}
	t.points = unique.Sorted()

	t.used = make(SegmentSet)
	t.usedList = nil
	t.queue = nil
	t.triangles = make(TriangleSet)
	t.result = &Triangulation{}
}

func (t *Triangulator) work() {
	if len(t.points) < 3 {
		return
	}
	p1 := t.points[0]
	p2 := t.nearest(p1)
	t.use(Segment{p1, p2})

	for len(t.queue) > 0 {
		edge := t.queue[0]
		t.queue = t.queue[1:]
		t.findPoints(edge)
	}
}

// Explore the third points for one frontier edge. At most two can exist, one
// on each side of the edge.
func (t *Triangulator) findPoints(edge Segment) {
	p1, p2 := edge.Start, edge.End
	count := 0
	for _, pnew := range t.points {
		if pnew == p1 || pnew == p2 {
			continue
		}
		circle, ok := Circumcircle(p1, p2, pnew)
		if !ok {
			continue
		}
		if !t.isDelaunay(p1, p2, pnew, circle) {
			continue
		}
		t.add(Triangle{p1, p2, pnew})
		t.use(Segment{p1, pnew})
		t.use(Segment{p2, pnew})
		count++
		if count == 2 {
			return
		}
	}
}

// Mark an edge as used, queueing it for exploration if it is new.
func (t *Triangulator) use(edge Segment) {
	if t.used.Add(edge.Normalized()) {
		t.usedList = append(t.usedList, edge)
		t.queue = append(t.queue, edge)
	}
}

func (t *Triangulator) isDelaunay(p1, p2, pnew Point, circle Circle) bool {
	for _, p := range t.points {
		if p == p1 || p == p2 || p == pnew {
			continue
		}
		if circle.StrictlyContains(p) {
			return false
		}
	}
	l1 := Segment{p1, pnew}
	l2 := Segment{p2, pnew}
	for _, edge := range t.usedList {
		if edge.Crosses(l1) || edge.Crosses(l2) {
			return false
		}
	}
	return true
}

// The closest other point. Ties go to the lexicographically smaller point,
// which is the first one seen since points are sorted.
func (t *Triangulator) nearest(p Point) Point {
	var result Point
	best := -1.0
	for _, candidate := range t.points {
		if candidate == p {
			continue
		}
		d := candidate.Distance(p)
		if best < 0 || d < best {
			best = d
			result = candidate
		}
	}
	return result
}

// Record an averaged triangle, along with its left and right counterparts.
// Triangles reached again from another edge are ignored.
func (t *Triangulator) add(tri Triangle) {
	if !t.triangles.Add(tri) {
		return
	}
	indices := [3]int{t.indexOf(tri.A), t.indexOf(tri.B), t.indexOf(tri.C)}
	t.result.Average = append(t.result.Average, tri)
	t.result.Left = append(t.result.Left, Triangle{t.left[indices[0]], t.left[indices[1]], t.left[indices[2]]})
	t.result.Right = append(t.result.Right, Triangle{t.right[indices[0]], t.right[indices[1]], t.right[indices[2]]})
	t.result.Indices = append(t.result.Indices, indices)
	if t.Trace {
		t.logf("Accepted triangle %s %v (landmarks %v)", dbg.Name(tri.Key()), tri, indices)
	}
}

// Landmark index of an averaged point.
func (t *Triangulator) indexOf(p Point) int {
	i, ok := t.origin[p]
	if !ok {
		fatalf("point %v is not part of the averaged mesh", p)
	}
	return i
}

// Edges used by the last run, in the order they were discovered.
func (t *Triangulator) UsedEdges() []Segment {
	return t.usedList
}

func (t *Triangulator) logf(format string, args ...interface{}) {
	if t.Logger != nil {
		t.Logger.Printf(format, args...)
	}
}
