package polynav

import (
	"go.uber.org/zap"
)

// Pathfinder plans walking routes inside one walkable polygon, around any
// number of obstacle polygons.
//
// The visibility graph is rebuilt lazily: registry changes only mark the
// pathfinder dirty, and the next FindPath or FindNextPoint performs one full
// rebuild however many changes were made.
//
// A Pathfinder is not safe for concurrent use. Hosts that share one across
// goroutines must hold a lock across each mutate-then-query sequence.
type Pathfinder struct {
	opts options
	log  *zap.Logger

	polys         []*polygon
	byOwner       map[OwnerID]*polygon
	main          *polygon
	nextPolygonID PolygonID

	graph *graph
	index *spatialIndex // nil while dirty
	dirty bool

	intersector LineIntersector
}

// New creates an empty Pathfinder. Until SetMainPolygon is called every
// point is walkable and every path is a straight line.
func New(opts ...Option) *Pathfinder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pathfinder{
		opts:    o,
		log:     o.logger,
		byOwner: make(map[OwnerID]*polygon),
		graph:   newGraph(),
	}
}

// IsValid reports whether a main polygon is set, i.e. whether pathfinding is
// active.
func (pf *Pathfinder) IsValid() bool {
	return pf.main != nil
}

// FindPath returns the waypoints of the shortest route from start to end,
// both included. Waypoints closer than the minimum waypoint distance to the
// following one are dropped.
//
// A start outside the walkable area is first moved to the closest point of
// the area. The end point is used as given; callers clamp it with
// GetClosestPointToArea when needed. An empty result means there is no
// route. Without a main polygon the result is always [start, end].
func (pf *Pathfinder) FindPath(start, end Point) []Point {
	if !pf.IsValid() {
		return []Point{start, end}
	}

	pf.prepare()
	start = pf.clampStart(start)

	s, prev, ok := pf.solve(start, end)
	if !ok {
		pf.log.Debug("no path found",
			zap.Float64("startX", start.X), zap.Float64("startY", start.Y),
			zap.Float64("endX", end.X), zap.Float64("endY", end.Y))
		return pf.fallbackPath(start, end)
	}

	minSq := pf.opts.minWaypointDist * pf.opts.minWaypointDist

	// Walk back from the end; the list is built reversed.
	result := []Point{s.nodes[s.end].pos}
	for i := s.end; i != s.start; {
		i = prev[i]
		p := s.nodes[i].pos
		if sqrDistance(result[len(result)-1], p) > minSq {
			result = append(result, p)
		}
	}
	ReversePolygon(result)

	pf.log.Debug("path found", zap.Int("waypoints", len(result)), zap.Float64("length", PathLength(result)))
	return result
}

// FindNextPoint runs the same search as FindPath but returns only the first
// waypoint after start that is farther than the minimum waypoint distance.
// When no route exists it returns end, so a steering caller keeps heading
// toward its goal.
func (pf *Pathfinder) FindNextPoint(start, end Point) Point {
	if !pf.IsValid() {
		return end
	}

	pf.prepare()
	start = pf.clampStart(start)

	s, prev, ok := pf.solve(start, end)
	if !ok {
		return pf.fallbackNextPoint(start, end)
	}

	minSq := pf.opts.minWaypointDist * pf.opts.minWaypointDist
	i := s.end
	for prev[i] != s.start && sqrDistance(start, s.nodes[prev[i]].pos) > minSq {
		i = prev[i]
	}
	return s.nodes[i].pos
}

// prepare brings the graph up to date before a query.
func (pf *Pathfinder) prepare() {
	pf.UpdateTrackedPositions()
	if pf.dirty {
		pf.dirty = false
		pf.rebuild()
	}
}

// rebuild recomputes every persistent link and the broad-phase index.
func (pf *Pathfinder) rebuild() {
	pf.index = newSpatialIndex(pf.polys)
	links := pf.graph.recomputeLinks(0, pf.hasLineOfSight)
	if debugAssertions {
		if err := pf.graph.validate(); err != nil {
			assertf(false, "after rebuild: %v", err)
		}
	}
	pf.log.Debug("visibility graph rebuilt",
		zap.Int("polygons", len(pf.polys)),
		zap.Int("nodes", len(pf.graph.nodes)),
		zap.Int("links", links))
}

// markDirty schedules a full rebuild for the next query.
func (pf *Pathfinder) markDirty() {
	pf.dirty = true
	pf.index = nil
}

func (pf *Pathfinder) clampStart(start Point) Point {
	if pf.isPointInArea(start) {
		return start
	}
	clamped := pf.closestPointToArea(start)
	pf.log.Debug("start outside walkable area, clamped",
		zap.Float64("x", clamped.X), zap.Float64("y", clamped.Y))
	return clamped
}

// solve links transient start and end nodes into a scratch copy of the
// graph and searches it. The persistent graph is left untouched.
func (pf *Pathfinder) solve(start, end Point) (*scratch, []int, bool) {
	s := newScratch(pf.graph, start, end)
	s.linkTransient(pf.hasLineOfSight)
	prev, ok := s.dijkstra(s.start, s.end)

	assertf(len(pf.graph.nodes) == len(s.nodes)-2, "query changed the persistent node count")
	_, leaked := pf.graph.byID[startNodeID]
	assertf(!leaked, "transient node registered in persistent graph")
	return s, prev, ok
}

// hasLineOfSight reports whether segment a-b crosses no raw edge of any
// enabled polygon. Edges are tested against the raw outlines while nodes sit
// on the inflated ones, which gives routes a little clearance.
func (pf *Pathfinder) hasLineOfSight(a, b Point) bool {
	if sqrDistance(a, b) < epsilon {
		return true
	}

	polys := pf.polys
	if pf.index != nil {
		polys = pf.index.candidates(a, b)
	}

	li := &pf.intersector
	li.SetFirstLine(a, b)
	for _, p := range polys {
		if !p.enabled {
			continue
		}
		blocked := false
		p.edges(func(ea, eb Point) bool {
			blocked = li.Calculate(ea, eb)
			return !blocked
		})
		if blocked {
			return false
		}
	}
	return true
}
