package polynav

import (
	"slices"

	"go.uber.org/zap"
)

// SetMainPolygon replaces the walkable-area boundary. Points are in world
// space and may wind either way. Passing fewer than three points removes
// the main polygon, which switches pathfinding off.
func (pf *Pathfinder) SetMainPolygon(points []Point) {
	if pf.main != nil {
		pf.removePolygon(pf.main)
		pf.main = nil
	}
	if len(points) == 0 {
		return
	}

	p := pf.addPolygon("", RoleMain, points)
	if p == nil {
		pf.log.Warn("ignoring degenerate main polygon", zap.Int("points", len(points)))
		return
	}
	pf.main = p
}

// AddObstacle registers a blocking polygon for owner. It does nothing if
// owner already has an obstacle. When a PositionSource knows owner, the
// obstacle follows the owner's movements from now on.
func (pf *Pathfinder) AddObstacle(owner OwnerID, points []Point) {
	if owner == "" {
		pf.log.Warn("ignoring obstacle without owner")
		return
	}
	if _, ok := pf.byOwner[owner]; ok {
		return
	}

	p := pf.addPolygon(owner, RoleObstacle, points)
	if p == nil {
		pf.log.Warn("ignoring degenerate obstacle",
			zap.String("owner", string(owner)), zap.Int("points", len(points)))
		return
	}
	if src := pf.opts.positions; src != nil {
		if pos, ok := src.Position(owner); ok {
			p.tracked = true
			p.cachedPos = pos
		}
	}
	pf.byOwner[owner] = p
}

// RemoveObstacle removes owner's obstacle together with its graph nodes.
// Unknown owners are ignored.
func (pf *Pathfinder) RemoveObstacle(owner OwnerID) {
	p, ok := pf.byOwner[owner]
	if !ok {
		return
	}
	delete(pf.byOwner, owner)
	pf.removePolygon(p)
}

// EnableObstacle makes owner's obstacle block paths again.
func (pf *Pathfinder) EnableObstacle(owner OwnerID) {
	pf.setObstacleEnabled(owner, true)
}

// DisableObstacle stops owner's obstacle from blocking paths without
// removing it. A character uses this to keep its own footprint from
// blocking itself.
func (pf *Pathfinder) DisableObstacle(owner OwnerID) {
	pf.setObstacleEnabled(owner, false)
}

func (pf *Pathfinder) setObstacleEnabled(owner OwnerID, enabled bool) {
	p, ok := pf.byOwner[owner]
	if !ok || p.enabled == enabled {
		return
	}
	p.enabled = enabled
	pf.markDirty()
}

// HasObstacle reports whether owner has a registered obstacle.
func (pf *Pathfinder) HasObstacle(owner OwnerID) bool {
	_, ok := pf.byOwner[owner]
	return ok
}

// ObstacleEnabled reports whether owner's obstacle exists and is enabled.
func (pf *Pathfinder) ObstacleEnabled(owner OwnerID) bool {
	p, ok := pf.byOwner[owner]
	return ok && p.enabled
}

// Obstacles returns the owners of all registered obstacles in registration
// order.
func (pf *Pathfinder) Obstacles() []OwnerID {
	owners := make([]OwnerID, 0, len(pf.byOwner))
	for _, p := range pf.polys {
		if p.role == RoleObstacle {
			owners = append(owners, p.owner)
		}
	}
	return owners
}

// IsPointInArea reports whether point is inside the main polygon and
// outside every enabled obstacle. Without a main polygon every point is in
// the area.
func (pf *Pathfinder) IsPointInArea(point Point) bool {
	if !pf.IsValid() {
		return true
	}
	pf.UpdateTrackedPositions()
	return pf.isPointInArea(point)
}

func (pf *Pathfinder) isPointInArea(point Point) bool {
	if pf.main == nil {
		return true
	}
	for _, p := range pf.polys {
		shouldBeInside := p == pf.main
		if p.enabled && PointInPolygon(p.verts, point) != shouldBeInside {
			return false
		}
	}
	return true
}

// addPolygon builds a polygon, registers it and creates its graph nodes.
func (pf *Pathfinder) addPolygon(owner OwnerID, role Role, points []Point) *polygon {
	p := newPolygon(pf.nextPolygonID, owner, role, points, pf.opts.inflateAmount)
	if p == nil {
		return nil
	}
	pf.nextPolygonID++

	pf.polys = append(pf.polys, p)
	nodes := pf.graph.addPolygonNodes(p)
	pf.markDirty()

	pf.log.Debug("polygon added",
		zap.Stringer("role", role),
		zap.String("owner", string(owner)),
		zap.Int("vertices", len(p.verts)),
		zap.Int("nodes", nodes))
	return p
}

func (pf *Pathfinder) removePolygon(p *polygon) {
	idx := slices.Index(pf.polys, p)
	if idx < 0 {
		return
	}
	pf.polys = slices.Delete(pf.polys, idx, idx+1)
	nodes := pf.graph.removePolygonNodes(p.id)
	pf.markDirty()

	pf.log.Debug("polygon removed",
		zap.Stringer("role", p.role),
		zap.String("owner", string(p.owner)),
		zap.Int("nodes", nodes))
}
