package polynav

// Transient endpoint nodes get negative ids so they can never collide with
// persistent ones.
const (
	startNodeID NodeID = -1
	endNodeID   NodeID = -2
)

// scratch is the working set of one query: the persistent nodes followed by
// the transient start and end nodes. Links created for the query are kept
// in the overlay (extra, and the transient nodes' own slices), so the
// persistent graph is never touched and nothing needs cleaning up when the
// query ends.
type scratch struct {
	nodes []*node
	extra map[NodeID][]link
	index map[NodeID]int

	start, end int
}

func newScratch(g *graph, start, end Point) *scratch {
	n := len(g.nodes)
	s := &scratch{
		nodes: make([]*node, 0, n+2),
		extra: make(map[NodeID][]link),
		index: make(map[NodeID]int, n+2),
		start: n,
		end:   n + 1,
	}
	s.nodes = append(s.nodes, g.nodes...)
	s.nodes = append(s.nodes,
		&node{id: startNodeID, pos: start, poly: noPolygon},
		&node{id: endNodeID, pos: end, poly: noPolygon},
	)
	for i, nd := range s.nodes {
		s.index[nd.id] = i
	}
	return s
}

// linkTransient links every pair involving the transient nodes, in the same
// order a full rebuild would visit them.
func (s *scratch) linkTransient(sight func(a, b Point) bool) int {
	added := 0
	for i, a := range s.nodes {
		for j := max(i+1, s.start); j < len(s.nodes); j++ {
			b := s.nodes[j]
			if sight(a.pos, b.pos) {
				cost := Distance(a.pos, b.pos)
				s.addLink(i, link{to: b.id, cost: cost})
				s.addLink(j, link{to: a.id, cost: cost})
				added++
			}
		}
	}
	return added
}

func (s *scratch) addLink(i int, l link) {
	nd := s.nodes[i]
	if i >= s.start {
		nd.links = append(nd.links, l)
		return
	}
	s.extra[nd.id] = append(s.extra[nd.id], l)
}

// neighbours calls fn for every link of node i: persistent links first,
// then the query's own.
func (s *scratch) neighbours(i int, fn func(j int, cost float64)) {
	nd := s.nodes[i]
	visit := func(links []link) {
		for _, l := range links {
			j, ok := s.index[l.to]
			assertf(ok, "link from node %d to unknown node %d", nd.id, l.to)
			if ok {
				fn(j, l.cost)
			}
		}
	}
	visit(nd.links)
	if i < s.start {
		visit(s.extra[nd.id])
	}
}
