package scene

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"polynav"
)

// removeContainedObstacles drops obstacles whose every vertex lies inside
// another obstacle. Such obstacles cannot change any path and only add
// graph nodes. Of two identical outlines the later one is kept.
func removeContainedObstacles(obstacles []Obstacle) []Obstacle {
	if len(obstacles) <= 1 {
		return obstacles
	}

	rings := make([]orb.Ring, len(obstacles))
	for i, o := range obstacles {
		rings[i] = toRing(o.Points)
	}

	contained := make([]bool, len(obstacles))
	for i := range obstacles {
		if contained[i] {
			continue
		}
		for j := range obstacles {
			if i == j || contained[j] {
				continue
			}
			if isRingContainedIn(rings[i], rings[j]) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]Obstacle, 0, len(obstacles))
	for i, o := range obstacles {
		if !contained[i] {
			result = append(result, o)
		}
	}
	return result
}

// isRingContainedIn checks if ring a lies within ring b. Vertices on b's
// boundary count as inside.
func isRingContainedIn(a, b orb.Ring) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	// Quick bounding box check first
	ba, bb := a.Bound(), b.Bound()
	if !bb.Contains(ba.Min) || !bb.Contains(ba.Max) {
		return false
	}

	for _, v := range a {
		if !planar.RingContains(b, v) {
			return false
		}
	}
	return true
}

func toRing(points []polynav.Point) orb.Ring {
	r := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		r = append(r, orb.Point{p.X, p.Y})
	}
	if len(r) > 0 {
		r = append(r, r[0])
	}
	return r
}
