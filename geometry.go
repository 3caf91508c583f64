package polynav

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Point is a world-space position. It is the vector type of
// seehuhn.de/go/geom so callers can hand their vectors over directly.
type Point = vec.Vec2

// epsilon is the squared length below which two points are treated as
// the same position.
const epsilon = 1e-12

// Distance calculates Euclidean distance between two points
func Distance(a, b Point) float64 {
	return b.Sub(a).Length()
}

// sqrDistance is the squared Euclidean distance, used where only
// comparisons are needed.
func sqrDistance(a, b Point) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// normalized returns v scaled to unit length, or the zero vector for a
// degenerate input.
func normalized(v Point) Point {
	l := v.Length()
	if l < epsilon {
		return Point{}
	}
	return v.Mul(1 / l)
}

// rotateCW returns v rotated 90 degrees clockwise.
func rotateCW(v Point) Point {
	return Point{X: v.Y, Y: -v.X}
}

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 Point
}

// DoSegmentsIntersect checks if two line segments cross. Segments that only
// touch (at an endpoint, or end on the other segment) and parallel segments
// do not count as intersecting.
func DoSegmentsIntersect(seg1, seg2 LineSegment) bool {
	_, ok := FindIntersection(seg1, seg2)
	return ok
}

// FindIntersection returns the crossing point of two segments, using the
// same strict rule as DoSegmentsIntersect.
func FindIntersection(seg1, seg2 LineSegment) (Point, bool) {
	d1 := seg1.P2.Sub(seg1.P1)
	d2 := seg2.P2.Sub(seg2.P1)
	s1s2 := seg1.P1.Sub(seg2.P1)

	denom := d1.X*d2.Y - d1.Y*d2.X
	if denom == 0 {
		return Point{}, false
	}
	inv := 1 / denom

	r := (s1s2.Y*d2.X - s1s2.X*d2.Y) * inv
	s := (s1s2.Y*d1.X - s1s2.X*d1.Y) * inv
	if r <= 0 || r >= 1 || s <= 0 || s >= 1 {
		return Point{}, false
	}
	return seg1.P1.Add(d1.Mul(r)), true
}

// PointInPolygon checks if a point is inside a polygon using ray casting.
//
// The ray runs from the point toward negative x. An edge counts as crossed
// when its endpoints lie on opposite sides of the ray (half-open in y, so
// a ray through a shared vertex is counted once) and the crossing lies to
// the left of the point. The wrap-around edge is included.
func PointInPolygon(polygon []Point, point Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	prev := polygon[n-1]
	for _, cur := range polygon {
		if (cur.Y > point.Y) != (prev.Y > point.Y) {
			x := cur.X + (point.Y-cur.Y)*(prev.X-cur.X)/(prev.Y-cur.Y)
			if x < point.X {
				inside = !inside
			}
		}
		prev = cur
	}
	return inside
}

// SignedArea returns twice the signed area of the polygon (shoelace sum).
// It is positive for counter-clockwise winding in y-up coordinates.
func SignedArea(vertices []Point) float64 {
	sum := 0.0
	n := len(vertices)
	for i := range vertices {
		next := vertices[(i+1)%n]
		sum += vertices[i].X*next.Y - next.X*vertices[i].Y
	}
	return sum
}

// PolygonWindingIsClockwise reports whether the vertices wind clockwise
// (in y-up coordinates).
func PolygonWindingIsClockwise(vertices []Point) bool {
	return SignedArea(vertices) < 0
}

// ReversePolygon reverses the vertex order in place.
func ReversePolygon(vertices []Point) {
	for i, j := 0, len(vertices)-1; i < j; i, j = i+1, j-1 {
		vertices[i], vertices[j] = vertices[j], vertices[i]
	}
}

// IsVertexConcave tests the corner at vertices[index]. The incoming edge is
// rotated 90 degrees clockwise and dotted with the outgoing edge; the corner
// is concave iff the result is <= 0.
//
// For a counter-clockwise walkable boundary this flags the boundary's own
// convex corners, which cannot be seen around from inside. For a clockwise
// obstacle it flags the obstacle's notches.
func IsVertexConcave(vertices []Point, index int) bool {
	n := len(vertices)
	cur := vertices[index]
	next := vertices[(index+1)%n]
	prev := vertices[(index+n-1)%n]

	return rotateCW(cur.Sub(prev)).Dot(next.Sub(cur)) <= 0
}

// InflatePolygon offsets every vertex along the sum of its two incident
// unit directions: by +amount at concave corners, by -amount elsewhere.
// With the winding normalized by the registry this moves obstacles outward
// and the walkable boundary inward.
func InflatePolygon(vertices []Point, amount float64) []Point {
	n := len(vertices)
	result := make([]Point, n)
	for i := range vertices {
		cur := vertices[i]
		prevDir := normalized(vertices[(i+n-1)%n].Sub(cur))
		nextDir := normalized(vertices[(i+1)%n].Sub(cur))

		offset := amount
		if !IsVertexConcave(vertices, i) {
			offset = -amount
		}
		result[i] = cur.Add(prevDir.Add(nextDir).Mul(offset))
	}
	return result
}

// ProjectOntoLine projects p onto the infinite line through a and b.
// A degenerate line projects to a.
func ProjectOntoLine(p, a, b Point) Point {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < epsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	return a.Add(ab.Mul(t))
}

// PathLength sums the segment lengths of a waypoint sequence.
func PathLength(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}
	return total
}

// boundingBox computes the axis-aligned bounds of a vertex list.
func boundingBox(vertices []Point) (minP, maxP Point) {
	if len(vertices) == 0 {
		return Point{}, Point{}
	}
	minP, maxP = vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Y = math.Min(minP.Y, v.Y)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Y = math.Max(maxP.Y, v.Y)
	}
	return minP, maxP
}
