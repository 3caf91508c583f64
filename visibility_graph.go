package polynav

import (
	"fmt"
	"slices"
)

// NodeID identifies a persistent graph node. IDs are never reused, so a
// stale link can always be detected.
type NodeID int

// link is one direction of an undirected visibility edge.
type link struct {
	to   NodeID
	cost float64 // Euclidean distance
}

// node is a persistent visibility-graph vertex.
type node struct {
	id    NodeID
	pos   Point
	poly  PolygonID
	links []link
}

// graph holds the persistent visibility graph. Node order is significant:
// it decides link order and so tie-breaking in the path search.
type graph struct {
	nodes  []*node
	byID   map[NodeID]*node
	nextID NodeID
}

func newGraph() *graph {
	return &graph{byID: make(map[NodeID]*node)}
}

func (g *graph) addNode(pos Point, poly PolygonID) *node {
	n := &node{id: g.nextID, pos: pos, poly: poly}
	g.nextID++
	g.nodes = append(g.nodes, n)
	g.byID[n.id] = n
	return n
}

// addPolygonNodes adds a node at every inflated vertex that is not concave.
// A node in a notch cannot see past its own polygon's corners, so it would
// add no connectivity.
func (g *graph) addPolygonNodes(p *polygon) int {
	added := 0
	for i, v := range p.inflated {
		if IsVertexConcave(p.inflated, i) {
			continue
		}
		g.addNode(v, p.id)
		added++
	}
	return added
}

// removePolygonNodes removes every node derived from polygon id, along with
// all links pointing at them.
func (g *graph) removePolygonNodes(id PolygonID) int {
	removed := 0
	for i := len(g.nodes) - 1; i >= 0; i-- {
		if g.nodes[i].poly == id {
			g.removeNode(g.nodes[i])
			removed++
		}
	}
	return removed
}

func (g *graph) removeNode(n *node) {
	for _, l := range n.links {
		other, ok := g.byID[l.to]
		if !ok {
			continue
		}
		other.links = slices.DeleteFunc(other.links, func(back link) bool {
			return back.to == n.id
		})
	}
	g.nodes = slices.DeleteFunc(g.nodes, func(m *node) bool { return m == n })
	delete(g.byID, n.id)
}

// connect adds the symmetric link pair between a and b.
func (g *graph) connect(a, b *node) {
	cost := Distance(a.pos, b.pos)
	a.links = append(a.links, link{to: b.id, cost: cost})
	b.links = append(b.links, link{to: a.id, cost: cost})
}

// recomputeLinks links every pair of nodes with at least one index >= from
// that has line of sight. With from <= 0 all existing links are dropped
// first, making this a full rebuild. It returns the number of links added.
func (g *graph) recomputeLinks(from int, sight func(a, b Point) bool) int {
	if from <= 0 {
		for _, n := range g.nodes {
			n.links = n.links[:0]
		}
	}

	added := 0
	for i, a := range g.nodes {
		for j := max(i+1, from); j < len(g.nodes); j++ {
			b := g.nodes[j]
			if sight(a.pos, b.pos) {
				g.connect(a, b)
				added++
			}
		}
	}
	return added
}

// linkCount returns the number of undirected links.
func (g *graph) linkCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.links)
	}
	return total / 2
}

// validate checks that every link resolves and has a matching reverse
// link of equal cost.
func (g *graph) validate() error {
	for _, n := range g.nodes {
		for _, l := range n.links {
			other, ok := g.byID[l.to]
			if !ok {
				return fmt.Errorf("node %d links to missing node %d", n.id, l.to)
			}
			back := slices.IndexFunc(other.links, func(b link) bool {
				return b.to == n.id && b.cost == l.cost
			})
			if back < 0 {
				return fmt.Errorf("link %d->%d has no reverse", n.id, l.to)
			}
		}
	}
	if len(g.byID) != len(g.nodes) {
		return fmt.Errorf("node table has %d entries for %d nodes", len(g.byID), len(g.nodes))
	}
	return nil
}
