// Package scene loads walkable areas and obstacles from GeoJSON.
//
// A scene file is a FeatureCollection of Polygon or MultiPolygon features.
// The "role" property is "main" for the walkable boundary (exactly one
// feature) or "obstacle". Obstacles may carry an "id" and an "enabled"
// flag; holes cut into the main polygon become obstacles of their own.
package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
	"go.uber.org/zap"

	"polynav"
)

// Errors returned by Parse, wrapped with the offending feature index.
var (
	// ErrNoMainPolygon is returned when no feature has the "main" role.
	ErrNoMainPolygon = errors.New("scene has no main polygon")
	// ErrMultipleMainPolygons is returned for a second main feature or a
	// main MultiPolygon with more than one polygon.
	ErrMultipleMainPolygons = errors.New("scene has more than one main polygon")
	// ErrUnknownRole is returned for a "role" other than main or obstacle.
	ErrUnknownRole = errors.New("unknown feature role")
	// ErrUnsupportedGeometry is returned for anything but Polygon and
	// MultiPolygon.
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	// ErrInvalidProperty is returned when a known property has the wrong
	// JSON type.
	ErrInvalidProperty = errors.New("invalid feature property")
)

// Feature roles.
const (
	RoleMain     = "main"
	RoleObstacle = "obstacle"
)

// Obstacle is one obstacle polygon of a scene.
type Obstacle struct {
	ID      polynav.OwnerID
	Points  []polynav.Point
	Enabled bool
}

// Scene is a loaded walkable area.
type Scene struct {
	Main      []polynav.Point
	Obstacles []Obstacle
}

// Options tune loading. The zero value loads rings as they are.
type Options struct {
	// Tolerance is the Douglas-Peucker threshold applied to every ring.
	// Zero disables simplification.
	Tolerance float64
	// KeepContained keeps obstacles that lie entirely inside another
	// obstacle. They are dropped by default.
	KeepContained bool

	Logger *zap.Logger
}

// LoadFile reads and parses a scene file.
func LoadFile(path string, opts Options) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from GeoJSON bytes.
func Parse(data []byte, opts Options) (*Scene, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	var dp *simplify.DouglasPeuckerSimplifier
	if opts.Tolerance > 0 {
		dp = simplify.DouglasPeucker(opts.Tolerance)
	}

	s := &Scene{}
	haveMain := false
	for i, f := range fc.Features {
		polys, err := polygonsOf(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		if dp != nil {
			for k := range polys {
				polys[k] = simplifyPolygon(dp, polys[k])
			}
		}

		role, err := stringProp(f.Properties, "role", RoleObstacle)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		switch role {
		case RoleMain:
			if haveMain || len(polys) != 1 {
				return nil, fmt.Errorf("feature %d: %w", i, ErrMultipleMainPolygons)
			}
			haveMain = true
			s.Main = toPoints(polys[0][0])
			for _, hole := range polys[0][1:] {
				s.Obstacles = append(s.Obstacles, Obstacle{
					ID:      polynav.OwnerID(uuid.NewString()),
					Points:  toPoints(hole),
					Enabled: true,
				})
			}

		case RoleObstacle:
			id, err := featureID(f)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			enabled, err := boolProp(f.Properties, "enabled", true)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			for k, p := range polys {
				oid := id
				if k > 0 {
					oid = fmt.Sprintf("%s-%d", id, k)
				}
				if len(p) > 1 {
					log.Warn("ignoring holes of obstacle", zap.String("id", oid), zap.Int("holes", len(p)-1))
				}
				s.Obstacles = append(s.Obstacles, Obstacle{
					ID:      polynav.OwnerID(oid),
					Points:  toPoints(p[0]),
					Enabled: enabled,
				})
			}

		default:
			return nil, fmt.Errorf("feature %d: %w %q", i, ErrUnknownRole, role)
		}
	}

	if !haveMain {
		return nil, ErrNoMainPolygon
	}

	if !opts.KeepContained {
		before := len(s.Obstacles)
		s.Obstacles = removeContainedObstacles(s.Obstacles)
		if dropped := before - len(s.Obstacles); dropped > 0 {
			log.Info("dropped contained obstacles", zap.Int("dropped", dropped))
		}
	}

	log.Info("scene loaded",
		zap.Int("mainVertices", len(s.Main)),
		zap.Int("obstacles", len(s.Obstacles)))
	return s, nil
}

// Apply replaces pf's main polygon with the scene's and registers every
// obstacle.
func (s *Scene) Apply(pf *polynav.Pathfinder) {
	pf.SetMainPolygon(s.Main)
	for _, o := range s.Obstacles {
		pf.AddObstacle(o.ID, o.Points)
		if !o.Enabled {
			pf.DisableObstacle(o.ID)
		}
	}
}

func polygonsOf(g orb.Geometry) ([]orb.Polygon, error) {
	switch g := g.(type) {
	case orb.Polygon:
		if len(g) == 0 {
			return nil, nil
		}
		return []orb.Polygon{g}, nil
	case orb.MultiPolygon:
		polys := make([]orb.Polygon, 0, len(g))
		for _, p := range g {
			if len(p) > 0 {
				polys = append(polys, p)
			}
		}
		return polys, nil
	case nil:
		return nil, fmt.Errorf("%w: missing geometry", ErrUnsupportedGeometry)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.GeoJSONType())
	}
}

func simplifyPolygon(dp *simplify.DouglasPeuckerSimplifier, p orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, 0, len(p))
	for _, r := range p {
		sr, ok := dp.Simplify(r.Clone()).(orb.Ring)
		// Keep the original when simplification collapses the ring.
		if !ok || len(sr) < 4 {
			sr = r
		}
		out = append(out, sr)
	}
	return out
}

// featureID prefers the "id" property, then the feature id, and generates
// one when neither is set.
func featureID(f *geojson.Feature) (string, error) {
	id, err := stringProp(f.Properties, "id", "")
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	if id, ok := f.ID.(string); ok && id != "" {
		return id, nil
	}
	if id, ok := f.ID.(float64); ok {
		return fmt.Sprintf("%g", id), nil
	}
	return uuid.NewString(), nil
}

// stringProp reads an optional string property. A present key of another
// JSON type is an error rather than the default.
func stringProp(props geojson.Properties, key, def string) (string, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", ErrInvalidProperty, key, v)
	}
	return s, nil
}

func boolProp(props geojson.Properties, key string, def bool) (bool, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T, want bool", ErrInvalidProperty, key, v)
	}
	return b, nil
}

// toPoints converts a GeoJSON ring, dropping the repeated closing point.
func toPoints(r orb.Ring) []polynav.Point {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	pts := make([]polynav.Point, len(r))
	for i, p := range r {
		pts[i] = polynav.Point{X: p[0], Y: p[1]}
	}
	return pts
}
