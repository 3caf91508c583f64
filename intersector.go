package polynav

// LineIntersector tests one fixed segment against many others. The fixed
// segment's direction and length are computed once by SetFirstLine, so the
// per-candidate cost of Calculate is a handful of multiplications.
type LineIntersector struct {
	start  Point
	dir    Point
	length float64
	ratio  float64
}

// SetFirstLine sets the segment all following Calculate calls test against.
func (li *LineIntersector) SetFirstLine(start, end Point) {
	li.start = start
	li.dir = end.Sub(start)
	li.length = li.dir.Length()
	li.ratio = 0
}

// Calculate reports whether the first line crosses the segment from start
// to end. Touching segments and parallel segments do not cross. After a
// true result, Result and ResultDistFromStart describe the crossing.
func (li *LineIntersector) Calculate(start, end Point) bool {
	d2 := end.Sub(start)

	denom := li.dir.X*d2.Y - li.dir.Y*d2.X
	if denom == 0 {
		return false
	}
	inv := 1 / denom

	s1s2 := li.start.Sub(start)
	r := (s1s2.Y*d2.X - s1s2.X*d2.Y) * inv
	s := (s1s2.Y*li.dir.X - s1s2.X*li.dir.Y) * inv
	if r <= 0 || r >= 1 || s <= 0 || s >= 1 {
		return false
	}

	li.ratio = r
	return true
}

// Result returns the last crossing point found by Calculate.
func (li *LineIntersector) Result() Point {
	return li.start.Add(li.dir.Mul(li.ratio))
}

// ResultDistFromStart returns the distance along the first line to the last
// crossing point found by Calculate.
func (li *LineIntersector) ResultDistFromStart() float64 {
	return li.ratio * li.length
}
