package polynav

import "math"

// OwnerID identifies the game object that owns an obstacle. The pathfinder
// never interprets it; it is only compared and handed to the PositionSource.
type OwnerID string

// PolygonID identifies a registered polygon for the lifetime of a
// Pathfinder. IDs are never reused.
type PolygonID int

// noPolygon marks graph nodes that belong to no polygon.
const noPolygon PolygonID = -1

// Role tells the walkable boundary apart from obstacles.
type Role int

const (
	// RoleMain is the walkable-area boundary: inside means walkable.
	RoleMain Role = iota
	// RoleObstacle is a hole in the walkable area: inside means blocked.
	RoleObstacle
)

func (r Role) String() string {
	switch r {
	case RoleMain:
		return "main"
	case RoleObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// polygon is one registered navigation polygon.
type polygon struct {
	id    PolygonID
	owner OwnerID
	role  Role

	verts    []Point // world space, winding normalized for role
	inflated []Point // verts offset by the inflate amount

	enabled bool

	// tracked polygons follow their owner's position; cachedPos is the
	// owner position verts currently correspond to.
	tracked   bool
	cachedPos Point
}

// newPolygon copies points, normalizes the winding for role and builds the
// inflated outline. It returns nil for polygons with fewer than three
// vertices or no area.
func newPolygon(id PolygonID, owner OwnerID, role Role, points []Point, inflate float64) *polygon {
	if len(points) < 3 {
		return nil
	}
	area := SignedArea(points)
	if math.Abs(area) < epsilon {
		return nil
	}

	verts := make([]Point, len(points))
	copy(verts, points)

	// The main polygon winds counter-clockwise, obstacles clockwise, so the
	// concave test and the inflate direction mean the same thing for both.
	if (role == RoleMain) != (area > 0) {
		ReversePolygon(verts)
	}

	return &polygon{
		id:       id,
		owner:    owner,
		role:     role,
		verts:    verts,
		inflated: InflatePolygon(verts, inflate),
		enabled:  true,
	}
}

// translate moves both outlines by delta.
func (p *polygon) translate(delta Point) {
	for i := range p.verts {
		p.verts[i] = p.verts[i].Add(delta)
	}
	for i := range p.inflated {
		p.inflated[i] = p.inflated[i].Add(delta)
	}
}

// edges calls fn for every raw edge, starting with the wrap-around edge.
// It stops early when fn returns false.
func (p *polygon) edges(fn func(a, b Point) bool) {
	prev := p.verts[len(p.verts)-1]
	for _, cur := range p.verts {
		if !fn(prev, cur) {
			return
		}
		prev = cur
	}
}
