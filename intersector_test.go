package polynav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIntersector(t *testing.T) {
	var li LineIntersector
	li.SetFirstLine(Point{X: 0, Y: 0}, Point{X: 10, Y: 0})

	assert.True(t, li.Calculate(Point{X: 4, Y: -5}, Point{X: 4, Y: 5}))
	assert.InDelta(t, 4.0, li.Result().X, 1e-9)
	assert.InDelta(t, 0.0, li.Result().Y, 1e-9)
	assert.InDelta(t, 4.0, li.ResultDistFromStart(), 1e-9)

	assert.False(t, li.Calculate(Point{X: 4, Y: 1}, Point{X: 4, Y: 5}), "short of the line")
	assert.False(t, li.Calculate(Point{X: 12, Y: -5}, Point{X: 12, Y: 5}), "past the end")
	assert.False(t, li.Calculate(Point{X: 0, Y: 3}, Point{X: 10, Y: 3}), "parallel")
	assert.False(t, li.Calculate(Point{X: 10, Y: 0}, Point{X: 10, Y: 5}), "touching endpoint")

	li.SetFirstLine(Point{X: 3, Y: 3}, Point{X: 3, Y: 3})
	assert.False(t, li.Calculate(Point{X: 0, Y: 0}, Point{X: 6, Y: 6}), "zero-length first line")
	assert.False(t, li.Calculate(Point{X: 0, Y: 6}, Point{X: 6, Y: 0}), "zero-length first line")
	assert.Zero(t, li.ResultDistFromStart())
}

func TestLineIntersectorMatchesSegments(t *testing.T) {
	first := LineSegment{P1: Point{X: 1, Y: 2}, P2: Point{X: 9, Y: 7}}
	others := []LineSegment{
		{P1: Point{X: 0, Y: 8}, P2: Point{X: 8, Y: 0}},
		{P1: Point{X: 5, Y: 5}, P2: Point{X: 6, Y: 9}},
		{P1: Point{X: 1, Y: 2}, P2: Point{X: 3, Y: 0}},
		{P1: Point{X: -4, Y: 3}, P2: Point{X: 20, Y: 3}},
	}

	var li LineIntersector
	li.SetFirstLine(first.P1, first.P2)
	for i, o := range others {
		assert.Equal(t, DoSegmentsIntersect(first, o), li.Calculate(o.P1, o.P2), "segment %d", i)
	}
}
