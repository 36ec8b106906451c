package internal

import "fmt"

// An affine map (x, y) -> (A11*x + A12*y + A13, A21*x + A22*y + A23).
type AffineTransform struct {
	A11, A12, A13 float64
	A21, A22, A23 float64
}

func (m AffineTransform) Apply(p Point) Point {
	return Point{
		X: m.A11*p.X + m.A12*p.Y + m.A13,
		Y: m.A21*p.X + m.A22*p.Y + m.A23,
	}
}

func (m AffineTransform) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", m.A11, m.A12, m.A13, m.A21, m.A22, m.A23)
}

// Solve the affine map taking each vertex of target onto the vertex of source
// with the same index. The morph runs this backwards: target is the triangle
// being painted, source is where its pixels come from.
//
// The linear part is solved by substitution. Which variable gets eliminated
// first depends on whether target vertices 1 and 3 share an x coordinate, so
// that we never divide by zero for a valid triangle. Both triangles must be
// non-degenerate.
func SolveAffine(source, target Triangle) AffineTransform {
	if source.IsDegenerate() {
		fatalf("cannot solve affine map from degenerate source triangle %v", source)
	}

	sx1, sy1 := source.A.X, source.A.Y
	sx2, sy2 := source.B.X, source.B.Y
	sx3, sy3 := source.C.X, source.C.Y
	x1, y1 := target.A.X, target.A.Y
	x2, y2 := target.B.X, target.B.Y
	x3, y3 := target.C.X, target.C.Y

	var m AffineTransform
	if x1 != x3 {
		d := x1 - x3
		t := (x1 - x2) / d
		u := (y1 - y2) - (y1-y3)*t
		if u == 0 {
			fatalf("cannot solve affine map onto degenerate target triangle %v", target)
		}
		m.A12 = ((sx1 - sx2) - (sx1-sx3)*t) / u
		m.A22 = ((sy1 - sy2) - (sy1-sy3)*t) / u
		m.A11 = ((sx1 - sx3) - m.A12*(y1-y3)) / d
		m.A21 = ((sy1 - sy3) - m.A22*(y1-y3)) / d
	} else {
		d := y1 - y3
		if d == 0 {
			fatalf("cannot solve affine map onto degenerate target triangle %v", target)
		}
		t := (y1 - y2) / d
		u := (x1 - x2) - (x1-x3)*t
		if u == 0 {
			fatalf("cannot solve affine map onto degenerate target triangle %v", target)
		}
		m.A11 = ((sx1 - sx2) - (sx1-sx3)*t) / u
		m.A21 = ((sy1 - sy2) - (sy1-sy3)*t) / u
		m.A12 = ((sx1 - sx3) - m.A11*(x1-x3)) / d
		m.A22 = ((sy1 - sy3) - m.A21*(x1-x3)) / d
	}
	m.A13 = sx1 - m.A11*x1 - m.A12*y1
	m.A23 = sy1 - m.A21*x1 - m.A22*y1
	return m
}
