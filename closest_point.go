package polynav

import "math"

// GetClosestPointToArea returns the point of the walkable area closest to
// point. It is meant for points outside the area, such as a click on a wall
// or a character that drifted off the mesh. Without a main polygon the
// point is returned unchanged.
func (pf *Pathfinder) GetClosestPointToArea(point Point) Point {
	if !pf.IsValid() {
		return point
	}
	pf.UpdateTrackedPositions()
	return pf.closestPointToArea(point)
}

// closestPointToArea gathers candidates from every enabled polygon:
//   - the projection of point onto each inflated edge line, accepted when
//     the way there crosses the matching raw edge (the inflated edge lies
//     just behind it) and the projection is in the area;
//   - the in-area inflated vertex closest to point.
//
// The closest candidate wins; on ties the earliest one does.
func (pf *Pathfinder) closestPointToArea(point Point) Point {
	var candidates []Point
	closestVertex := Point{}
	closestVertexDist := math.Inf(1)

	for _, p := range pf.polys {
		if !p.enabled {
			continue
		}
		n := len(p.inflated)
		for i := range p.inflated {
			a, b := p.inflated[i], p.inflated[(i+1)%n]
			rawA, rawB := p.verts[i], p.verts[(i+1)%n]

			proj := ProjectOntoLine(point, a, b)
			crosses := DoSegmentsIntersect(LineSegment{P1: point, P2: proj}, LineSegment{P1: rawA, P2: rawB})
			if crosses && pf.isPointInArea(proj) {
				candidates = append(candidates, proj)
			}

			if d := sqrDistance(point, a); d < closestVertexDist && pf.isPointInArea(a) {
				closestVertexDist = d
				closestVertex = a
			}
		}
	}
	candidates = append(candidates, closestVertex)

	best := candidates[0]
	bestDist := math.Inf(1)
	for _, c := range candidates {
		if d := sqrDistance(point, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
