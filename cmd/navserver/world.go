package main

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"polynav"
	"polynav/internal/scene"
)

var (
	errNoScene         = errors.New("scene not loaded")
	errUnknownObstacle = errors.New("unknown obstacle")
	errObstacleExists  = errors.New("obstacle already exists")
	errUnknownAction   = errors.New("unknown obstacle action")
	errWalkerExists    = errors.New("walker already exists")
)

// world owns the pathfinders and the walkers moving through them. A
// Pathfinder is not safe for concurrent use, so every access goes through
// mu, including the PositionSource callbacks made while it is held.
type world struct {
	mu  sync.Mutex
	cfg Config
	log *zap.Logger

	pf       *polynav.Pathfinder
	fallback *polynav.Pathfinder // nil unless configured
	loaded   bool

	walkers map[polynav.OwnerID]polynav.Point
	// planning is the walker whose footprint was left disabled by its last
	// step. Empty when every footprint is enabled.
	planning polynav.OwnerID
}

func newWorld(cfg Config, log *zap.Logger) *world {
	w := &world{
		cfg:     cfg,
		log:     log,
		walkers: make(map[polynav.OwnerID]polynav.Point),
	}
	w.pf = w.newPathfinder(nil)
	return w
}

// Position implements polynav.PositionSource for walker footprints.
func (w *world) Position(owner polynav.OwnerID) (polynav.Point, bool) {
	p, ok := w.walkers[owner]
	return p, ok
}

func (w *world) newPathfinder(fallback polynav.PathResolver) *polynav.Pathfinder {
	opts := []polynav.Option{
		polynav.WithInflateAmount(w.cfg.Nav.InflateAmount),
		polynav.WithMinWaypointDistance(w.cfg.Nav.MinWaypointDistance),
		polynav.WithPositionSource(w),
		polynav.WithLogger(w.log.Named("pathfinder")),
	}
	if fallback != nil {
		opts = append(opts, polynav.WithFallback(fallback))
	}
	return polynav.New(opts...)
}

// pathfinders returns every pathfinder that mirrors the scene.
func (w *world) pathfinders() []*polynav.Pathfinder {
	if w.fallback == nil {
		return []*polynav.Pathfinder{w.pf}
	}
	return []*polynav.Pathfinder{w.pf, w.fallback}
}

// loadScene parses a GeoJSON scene and replaces the current one. Walkers
// keep their positions and get their footprints back in the new scene.
func (w *world) loadScene(data []byte) (*scene.Scene, error) {
	sc := w.cfg.Scene
	s, err := scene.Parse(data, scene.Options{
		Tolerance:     sc.Tolerance,
		KeepContained: sc.KeepContained,
		Logger:        w.log.Named("scene"),
	})
	if err != nil {
		return nil, err
	}

	var coarse *scene.Scene
	if sc.FallbackTolerance > 0 {
		coarse, err = scene.Parse(data, scene.Options{
			Tolerance:     sc.FallbackTolerance,
			KeepContained: sc.KeepContained,
		})
		if err != nil {
			return nil, fmt.Errorf("fallback scene: %w", err)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.fallback = nil
	var resolver polynav.PathResolver
	if coarse != nil {
		w.fallback = w.newPathfinder(nil)
		coarse.Apply(w.fallback)
		resolver = w.fallback
	}
	w.pf = w.newPathfinder(resolver)
	s.Apply(w.pf)
	w.loaded = true
	w.planning = ""

	for id, pos := range w.walkers {
		w.addFootprint(id, pos)
	}
	return s, nil
}

// route plans a walk from start to end. An end outside the walkable area
// is moved to the closest point of the area first, and returned.
func (w *world) route(start, end polynav.Point) ([]polynav.Point, polynav.Point, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.loaded {
		return nil, end, errNoScene
	}
	w.settle()
	if !w.pf.IsPointInArea(end) {
		end = w.pf.GetClosestPointToArea(end)
	}
	return w.pf.FindPath(start, end), end, nil
}

// clamp moves p to the closest walkable point when it is outside the area.
func (w *world) clamp(p polynav.Point) polynav.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.loaded {
		return p
	}
	w.settle()
	if w.pf.IsPointInArea(p) {
		return p
	}
	return w.pf.GetClosestPointToArea(p)
}

// obstacle applies an obstacle command to every pathfinder.
func (w *world) obstacle(action string, id polynav.OwnerID, points []polynav.Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.loaded {
		return errNoScene
	}
	if _, ok := w.walkers[id]; ok {
		return fmt.Errorf("%w: %s is a walker", errObstacleExists, id)
	}
	w.settle()

	exists := w.pf.HasObstacle(id)
	switch action {
	case "add":
		if exists {
			return fmt.Errorf("%w: %s", errObstacleExists, id)
		}
		for _, pf := range w.pathfinders() {
			pf.AddObstacle(id, points)
		}
		if !w.pf.HasObstacle(id) {
			return fmt.Errorf("degenerate obstacle %s", id)
		}
	case "remove", "enable", "disable":
		if !exists {
			return fmt.Errorf("%w: %s", errUnknownObstacle, id)
		}
		for _, pf := range w.pathfinders() {
			switch action {
			case "remove":
				pf.RemoveObstacle(id)
			case "enable":
				pf.EnableObstacle(id)
			default:
				pf.DisableObstacle(id)
			}
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownAction, action)
	}

	w.log.Info("obstacle updated", zap.String("action", action), zap.String("id", string(id)))
	return nil
}

func (w *world) snapshot() (polynav.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.loaded {
		return polynav.Snapshot{}, errNoScene
	}
	w.settle()
	return w.pf.DebugSnapshot(), nil
}

func (w *world) stats() (loaded bool, obstacles, walkers int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loaded, len(w.pf.Obstacles()), len(w.walkers)
}

// spawn places a walker at the walkable point closest to pos and gives it
// a footprint obstacle.
func (w *world) spawn(id polynav.OwnerID, pos polynav.Point) (polynav.Point, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.loaded {
		return pos, errNoScene
	}
	if _, ok := w.walkers[id]; ok || w.pf.HasObstacle(id) {
		return pos, fmt.Errorf("%w: %s", errWalkerExists, id)
	}
	w.settle()
	if !w.pf.IsPointInArea(pos) {
		pos = w.pf.GetClosestPointToArea(pos)
	}
	w.walkers[id] = pos
	w.addFootprint(id, pos)
	return pos, nil
}

func (w *world) despawn(id polynav.OwnerID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.walkers, id)
	if w.planning == id {
		w.planning = ""
	}
	for _, pf := range w.pathfinders() {
		pf.RemoveObstacle(id)
	}
}

// step advances walker id by at most maxDist toward target. The walker's
// own footprint is switched off while it plans, so it never blocks itself.
// It stays off until another walker steps or another operation calls
// settle, so consecutive ticks of one walker do not rebuild the graph.
func (w *world) step(id polynav.OwnerID, target polynav.Point, maxDist float64) (pos, next polynav.Point, arrived bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	pos = w.walkers[id]
	if w.planning != id {
		w.settle()
		for _, pf := range w.pathfinders() {
			pf.DisableObstacle(id)
		}
		w.planning = id
	}
	next = w.pf.FindNextPoint(pos, target)

	if d := polynav.Distance(pos, next); d <= maxDist {
		pos = next
	} else {
		pos = pos.Add(next.Sub(pos).Mul(maxDist / d))
	}
	w.walkers[id] = pos
	return pos, next, polynav.Distance(pos, target) < 1e-9
}

// settle re-enables the footprint left disabled by the last step. Callers
// hold mu.
func (w *world) settle() {
	if w.planning == "" {
		return
	}
	for _, pf := range w.pathfinders() {
		pf.EnableObstacle(w.planning)
	}
	w.planning = ""
}

func (w *world) addFootprint(id polynav.OwnerID, pos polynav.Point) {
	h := w.cfg.Walk.Footprint / 2
	footprint := []polynav.Point{
		{X: pos.X - h, Y: pos.Y - h},
		{X: pos.X + h, Y: pos.Y - h},
		{X: pos.X + h, Y: pos.Y + h},
		{X: pos.X - h, Y: pos.Y + h},
	}
	for _, pf := range w.pathfinders() {
		pf.AddObstacle(id, footprint)
	}
}
