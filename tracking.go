package polynav

import "go.uber.org/zap"

// PositionSource reports where obstacle owners currently are. The second
// result is false once the owner no longer exists.
type PositionSource interface {
	Position(owner OwnerID) (Point, bool)
}

// PositionSourceFunc adapts a function to PositionSource.
type PositionSourceFunc func(owner OwnerID) (Point, bool)

// Position implements PositionSource.
func (f PositionSourceFunc) Position(owner OwnerID) (Point, bool) {
	return f(owner)
}

// UpdateTrackedPositions moves every tracked obstacle whose owner moved
// since the last check: both outlines are translated by the owner's
// displacement and the obstacle's nodes are recreated. Obstacles whose
// owner has disappeared are removed. Any change schedules a rebuild.
//
// Queries call this themselves; hosts only need it to refresh the
// registry outside a query.
func (pf *Pathfinder) UpdateTrackedPositions() {
	src := pf.opts.positions
	if src == nil {
		return
	}

	var gone []OwnerID
	for _, p := range pf.polys {
		if !p.tracked {
			continue
		}
		pos, ok := src.Position(p.owner)
		if !ok {
			gone = append(gone, p.owner)
			continue
		}
		if sqrDistance(p.cachedPos, pos) <= epsilon {
			continue
		}

		p.translate(pos.Sub(p.cachedPos))
		p.cachedPos = pos

		pf.graph.removePolygonNodes(p.id)
		pf.graph.addPolygonNodes(p)
		pf.markDirty()
	}

	for _, owner := range gone {
		pf.log.Debug("obstacle owner gone, removing", zap.String("owner", string(owner)))
		pf.RemoveObstacle(owner)
	}
}
