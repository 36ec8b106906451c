package internal

// The same segment with its endpoints in lexicographic order. Two segments
// with the same endpoints normalize to the same value regardless of
// direction.
func (s Segment) Normalized() Segment {
	if s.End.Less(s.Start) {
		return Segment{s.End, s.Start}
	}
	return s
}

func (s Segment) IsDegenerate() bool {
	return s.Start == s.End
}

func (s Segment) SharesEndpoint(other Segment) bool {
	return s.Start == other.Start || s.Start == other.End ||
		s.End == other.Start || s.End == other.End
}

// Does this segment cross the other one? Touching at a shared endpoint is not
// a crossing, so two edges of the same triangle never cross. Parallel and
// zero length segments never cross.
//
// With this segment as P + p*D and the other as Q + q*E, the intersection
// parameters are solved from the 2x2 system, and both must lie in [0, 1].
func (s Segment) Crosses(other Segment) bool {
	if s.SharesEndpoint(other) {
		return false
	}
	if s.IsDegenerate() {
		return false
	}

	dx, dy := s.End.X-s.Start.X, s.End.Y-s.Start.Y
	ex, ey := other.End.X-other.Start.X, other.End.Y-other.Start.Y
	ox, oy := other.Start.X-s.Start.X, other.Start.Y-s.Start.Y

	denominator := dy*ex - dx*ey
	if denominator == 0 { // Parallel, or the other segment is degenerate
		return false
	}
	q := (dx*oy - dy*ox) / denominator
	if q < 0 || q > 1 {
		return false
	}

	// Solve for p on whichever axis this segment actually spans
	var p float64
	if dx != 0 {
		p = (ox + q*ex) / dx
	} else {
		p = (oy + q*ey) / dy
	}
	return p >= 0 && p <= 1
}
