package polynav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, size float64) []Point {
	return []Point{
		{X: x0, Y: y0},
		{X: x0 + size, Y: y0},
		{X: x0 + size, Y: y0 + size},
		{X: x0, Y: y0 + size},
	}
}

func reversed(points []Point) []Point {
	out := append([]Point(nil), points...)
	ReversePolygon(out)
	return out
}

// lShape is a counter-clockwise L with its reflex corner at (5,5).
var lShape = []Point{
	{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5},
	{X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10},
}

// diamond has a vertex at (0,5), on the leftward ray from (7,5).
var diamond = []Point{{X: 5, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 5}}

func TestPointInPolygon(t *testing.T) {
	tests := []struct {
		name  string
		poly  []Point
		point Point
		want  bool
	}{
		{"square inside", square(0, 0, 10), Point{X: 5, Y: 5}, true},
		{"square right", square(0, 0, 10), Point{X: 15, Y: 5}, false},
		{"square left", square(0, 0, 10), Point{X: -1, Y: 5}, false},
		{"square above", square(0, 0, 10), Point{X: 5, Y: 11}, false},
		{"clockwise square inside", reversed(square(0, 0, 10)), Point{X: 5, Y: 5}, true},
		{"L inside", lShape, Point{X: 2, Y: 8}, true},
		{"L notch", lShape, Point{X: 8, Y: 8}, false},
		{"ray through vertex", diamond, Point{X: 7, Y: 5}, true},
		{"negative coordinates", square(-20, -20, 10), Point{X: -15, Y: -15}, true},
		{"degenerate", []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Point{X: 0.5, Y: 0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInPolygon(tt.poly, tt.point))
		})
	}
}

func TestPolygonWindingIsClockwise(t *testing.T) {
	ccw := square(0, 0, 10)
	assert.False(t, PolygonWindingIsClockwise(ccw))
	assert.True(t, PolygonWindingIsClockwise(reversed(ccw)))
	assert.InDelta(t, 200.0, SignedArea(ccw), 1e-9)
}

func TestIsVertexConcave(t *testing.T) {
	// Every corner of a counter-clockwise square is flagged: seen from
	// inside, none of them can be walked around.
	ccw := square(0, 0, 10)
	for i := range ccw {
		assert.True(t, IsVertexConcave(ccw, i), "ccw corner %d", i)
	}

	cw := reversed(ccw)
	for i := range cw {
		assert.False(t, IsVertexConcave(cw, i), "cw corner %d", i)
	}

	for i := range lShape {
		assert.Equal(t, i == 3, !IsVertexConcave(lShape, i), "L corner %d", i)
	}
}

func TestInflatePolygon(t *testing.T) {
	// A counter-clockwise outline shrinks, a clockwise one grows.
	in := InflatePolygon(square(0, 0, 10), 1)
	require.Len(t, in, 4)
	assert.InDelta(t, 1.0, in[0].X, 1e-9)
	assert.InDelta(t, 1.0, in[0].Y, 1e-9)
	assert.InDelta(t, 9.0, in[2].X, 1e-9)
	assert.InDelta(t, 9.0, in[2].Y, 1e-9)

	cw := []Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	out := InflatePolygon(cw, 1)
	assert.InDelta(t, -1.0, out[0].X, 1e-9)
	assert.InDelta(t, -1.0, out[0].Y, 1e-9)
	assert.InDelta(t, 11.0, out[2].X, 1e-9)
	assert.InDelta(t, 11.0, out[2].Y, 1e-9)
}

func TestDoSegmentsIntersect(t *testing.T) {
	seg := func(x1, y1, x2, y2 float64) LineSegment {
		return LineSegment{P1: Point{X: x1, Y: y1}, P2: Point{X: x2, Y: y2}}
	}
	tests := []struct {
		name string
		a, b LineSegment
		want bool
	}{
		{"crossing", seg(0, 0, 10, 10), seg(0, 10, 10, 0), true},
		{"disjoint", seg(0, 0, 1, 1), seg(5, 5, 6, 7), false},
		{"shared endpoint", seg(0, 0, 10, 0), seg(10, 0, 10, 10), false},
		{"T junction", seg(0, 0, 10, 0), seg(5, 0, 5, 10), false},
		{"parallel", seg(0, 0, 10, 0), seg(0, 1, 10, 1), false},
		{"collinear overlap", seg(0, 0, 10, 0), seg(5, 0, 15, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DoSegmentsIntersect(tt.a, tt.b))
			assert.Equal(t, tt.want, DoSegmentsIntersect(tt.b, tt.a))
		})
	}

	p, ok := FindIntersection(seg(0, 0, 10, 10), seg(0, 10, 10, 0))
	require.True(t, ok)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 5.0, p.Y, 1e-9)
}

func TestProjectOntoLine(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}
	p := ProjectOntoLine(Point{X: 4, Y: 7}, a, b)
	assert.InDelta(t, 4.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)

	// The line is infinite.
	p = ProjectOntoLine(Point{X: -3, Y: 2}, a, b)
	assert.InDelta(t, -3.0, p.X, 1e-9)
	assert.Equal(t, a, ProjectOntoLine(Point{X: 3, Y: 3}, a, a))
}

func TestPathLength(t *testing.T) {
	assert.Zero(t, PathLength(nil))
	assert.InDelta(t, 12.0, PathLength([]Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 11}}), 1e-9)
}
