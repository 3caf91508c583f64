package polynav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alwaysVisible(a, b Point) bool { return true }

func TestPolygonNodes(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		shape []Point
		want  int
	}{
		{"main square", RoleMain, square(0, 0, 100), 0},
		{"main L", RoleMain, lShape, 1},
		{"obstacle square", RoleObstacle, square(40, 40, 20), 4},
		{"clockwise obstacle", RoleObstacle, reversed(square(40, 40, 20)), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph()
			p := newPolygon(0, "o", tt.role, tt.shape, DefaultInflateAmount)
			require.NotNil(t, p)
			assert.Equal(t, tt.want, g.addPolygonNodes(p))
			assert.Len(t, g.nodes, tt.want)
		})
	}
}

func TestReflexCornerNodeSitsInside(t *testing.T) {
	g := newGraph()
	p := newPolygon(0, "", RoleMain, lShape, DefaultInflateAmount)
	require.NotNil(t, p)
	g.addPolygonNodes(p)

	require.Len(t, g.nodes, 1)
	n := g.nodes[0]
	assert.InDelta(t, 4.99, n.pos.X, 1e-9)
	assert.InDelta(t, 4.99, n.pos.Y, 1e-9)
	assert.True(t, PointInPolygon(lShape, n.pos))
}

func TestRecomputeLinks(t *testing.T) {
	g := newGraph()
	for i := range 3 {
		g.addNode(Point{X: float64(i), Y: 0}, 0)
	}
	assert.Equal(t, 3, g.recomputeLinks(0, alwaysVisible))
	assert.Equal(t, 3, g.linkCount())

	// Incremental: only pairs involving the new node are visited.
	g.addNode(Point{X: 0, Y: 5}, 1)
	assert.Equal(t, 3, g.recomputeLinks(3, alwaysVisible))
	assert.Equal(t, 6, g.linkCount())
	require.NoError(t, g.validate())

	// A full rebuild starts over instead of duplicating links.
	assert.Equal(t, 6, g.recomputeLinks(0, alwaysVisible))
	assert.Equal(t, 6, g.linkCount())

	n := g.nodes[0]
	for _, l := range n.links {
		assert.InDelta(t, Distance(n.pos, g.byID[l.to].pos), l.cost, 1e-12)
	}
}

func TestRecomputeLinksRespectsSight(t *testing.T) {
	g := newGraph()
	a := g.addNode(Point{X: 0, Y: 0}, 0)
	b := g.addNode(Point{X: 10, Y: 0}, 0)
	c := g.addNode(Point{X: 20, Y: 0}, 0)

	// Nothing sees across x=15.
	sight := func(p, q Point) bool { return (p.X < 15) == (q.X < 15) }
	assert.Equal(t, 1, g.recomputeLinks(0, sight))
	require.Len(t, a.links, 1)
	assert.Equal(t, b.id, a.links[0].to)
	assert.Empty(t, c.links)
}

func TestRemovePolygonNodes(t *testing.T) {
	g := newGraph()
	g.addNode(Point{X: 0, Y: 0}, 0)
	g.addNode(Point{X: 1, Y: 0}, 1)
	g.addNode(Point{X: 2, Y: 0}, 0)
	g.addNode(Point{X: 3, Y: 0}, 1)
	g.recomputeLinks(0, alwaysVisible)

	assert.Equal(t, 2, g.removePolygonNodes(1))
	require.Len(t, g.nodes, 2)
	for _, n := range g.nodes {
		assert.Equal(t, PolygonID(0), n.poly)
	}
	assert.Equal(t, 1, g.linkCount())
	require.NoError(t, g.validate())

	// Ids are not reused.
	n := g.addNode(Point{X: 9, Y: 9}, 2)
	assert.Equal(t, NodeID(4), n.id)
}

func TestValidateDetectsBrokenLinks(t *testing.T) {
	g := newGraph()
	a := g.addNode(Point{X: 0, Y: 0}, 0)
	b := g.addNode(Point{X: 1, Y: 0}, 0)

	a.links = append(a.links, link{to: b.id, cost: 1})
	assert.Error(t, g.validate(), "missing reverse link")

	b.links = append(b.links, link{to: a.id, cost: 1})
	assert.NoError(t, g.validate())

	a.links = append(a.links, link{to: 42, cost: 1})
	assert.Error(t, g.validate(), "dangling link")
}
