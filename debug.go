package polynav

// PolygonOutline describes one registered polygon for debug tooling.
type PolygonOutline struct {
	Owner    OwnerID
	Role     Role
	Enabled  bool
	Vertices []Point
	Inflated []Point
	Nodes    []Point
}

// Snapshot is a copy of the pathfinder's geometry and graph, safe to keep
// after the pathfinder changes.
type Snapshot struct {
	Polygons []PolygonOutline
	Links    []LineSegment
}

// DebugSnapshot brings the graph up to date and copies it out.
func (pf *Pathfinder) DebugSnapshot() Snapshot {
	pf.prepare()

	nodesOf := make(map[PolygonID][]Point)
	for _, n := range pf.graph.nodes {
		nodesOf[n.poly] = append(nodesOf[n.poly], n.pos)
	}

	snap := Snapshot{Links: pf.LinkSegments()}
	for _, p := range pf.polys {
		snap.Polygons = append(snap.Polygons, PolygonOutline{
			Owner:    p.owner,
			Role:     p.role,
			Enabled:  p.enabled,
			Vertices: append([]Point(nil), p.verts...),
			Inflated: append([]Point(nil), p.inflated...),
			Nodes:    nodesOf[p.id],
		})
	}
	return snap
}

// LinkSegments returns every visibility link once, as a segment between its
// two nodes.
func (pf *Pathfinder) LinkSegments() []LineSegment {
	pf.prepare()

	var lines []LineSegment
	for _, n := range pf.graph.nodes {
		for _, l := range n.links {
			// Each undirected link is stored on both ends; emit it from the
			// lower id only.
			if l.to < n.id {
				continue
			}
			other := pf.graph.byID[l.to]
			lines = append(lines, LineSegment{P1: n.pos, P2: other.pos})
		}
	}
	return lines
}
