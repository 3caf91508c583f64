package polynav

import "go.uber.org/zap"

// PathResolver produces a route between two points. *Pathfinder implements
// it, so a second pathfinder built from alternative geometry can serve as
// the fallback of the first.
type PathResolver interface {
	FindPath(start, end Point) []Point
}

// PathResolverFunc adapts a function to PathResolver.
type PathResolverFunc func(start, end Point) []Point

// FindPath implements PathResolver.
func (f PathResolverFunc) FindPath(start, end Point) []Point {
	return f(start, end)
}

// fallbackPath asks the configured fallback for a route after the primary
// search failed. Without a fallback the result is empty.
func (pf *Pathfinder) fallbackPath(start, end Point) []Point {
	if pf.opts.fallback == nil {
		return []Point{}
	}
	path := pf.opts.fallback.FindPath(start, end)
	pf.log.Debug("fallback resolver consulted", zap.Int("waypoints", len(path)))
	if path == nil {
		return []Point{}
	}
	return path
}

// fallbackNextPoint is FindNextPoint's variant of fallbackPath: the first
// fallback waypoint farther than the collapse distance from start, or end.
func (pf *Pathfinder) fallbackNextPoint(start, end Point) Point {
	if pf.opts.fallback == nil {
		return end
	}
	minSq := pf.opts.minWaypointDist * pf.opts.minWaypointDist
	for _, p := range pf.fallbackPath(start, end) {
		if sqrDistance(start, p) > minSq {
			return p
		}
	}
	return end
}
