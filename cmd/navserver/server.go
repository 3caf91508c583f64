package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"polynav"
	"polynav/internal/debugdraw"
)

// maxSceneBytes bounds POST /scene bodies.
const maxSceneBytes = 8 << 20

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func fromPoint(p polynav.Point) point {
	return point{X: p.X, Y: p.Y}
}

func (p point) toPoint() polynav.Point {
	return polynav.Point{X: p.X, Y: p.Y}
}

func fromPoints(pts []polynav.Point) []point {
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = fromPoint(p)
	}
	return out
}

// RouteRequest is the body of POST /route.
type RouteRequest struct {
	Start point `json:"start"`
	End   point `json:"end"`
}

// RouteResponse is the reply to POST /route.
type RouteResponse struct {
	Path    []point `json:"path"`
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	// End is the goal actually used, after clamping to the walkable area.
	End    point   `json:"end"`
	Length float64 `json:"length,omitempty"`
}

// ObstacleRequest is the body of POST /obstacle.
type ObstacleRequest struct {
	ID     string  `json:"id"`
	Action string  `json:"action"` // add, remove, enable, disable
	Points []point `json:"points,omitempty"`
}

type server struct {
	world    *world
	log      *zap.Logger
	serveMux http.ServeMux
}

func newServer(w *world, log *zap.Logger) *server {
	s := &server{world: w, log: log}
	s.serveMux.HandleFunc("/scene", corsMiddleware(s.sceneHandler))
	s.serveMux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	s.serveMux.HandleFunc("/obstacle", corsMiddleware(s.obstacleHandler))
	s.serveMux.HandleFunc("/links", corsMiddleware(s.linksHandler))
	s.serveMux.HandleFunc("/debug.png", corsMiddleware(s.debugImageHandler))
	s.serveMux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	s.serveMux.HandleFunc("/walk", s.walkHandler)
	return s
}

// ServeHTTP implements http.Handler.
func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.serveMux.ServeHTTP(w, r)
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusOf maps world errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errNoScene):
		return http.StatusConflict
	case errors.Is(err, errUnknownObstacle):
		return http.StatusNotFound
	case errors.Is(err, errObstacleExists), errors.Is(err, errWalkerExists):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// POST /scene - replace the scene with a GeoJSON FeatureCollection
func (s *server) sceneHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSceneBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sc, err := s.world.loadScene(data)
	if err != nil {
		s.log.Warn("scene rejected", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"mainVertices": len(sc.Main),
		"obstacles":    len(sc.Obstacles),
	})
}

// POST /route - plan a path between two points
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	path, end, err := s.world.route(req.Start.toPoint(), req.End.toPoint())
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	resp := RouteResponse{
		Path:    fromPoints(path),
		Success: len(path) > 0,
		End:     fromPoint(end),
		Length:  polynav.PathLength(path),
	}
	if !resp.Success {
		resp.Message = "No path found"
	}
	s.log.Info("route",
		zap.Float64("startX", req.Start.X), zap.Float64("startY", req.Start.Y),
		zap.Float64("endX", end.X), zap.Float64("endY", end.Y),
		zap.Bool("success", resp.Success),
		zap.Int("waypoints", len(path)),
		zap.Float64("length", resp.Length))

	writeJSON(w, http.StatusOK, resp)
}

// POST /obstacle - add, remove, enable or disable an obstacle
func (s *server) obstacleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ObstacleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	points := make([]polynav.Point, len(req.Points))
	for i, p := range req.Points {
		points[i] = p.toPoint()
	}
	if err := s.world.obstacle(req.Action, polynav.OwnerID(req.ID), points); err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// GET /links - visibility graph links as line segments for visualization
func (s *server) linksHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := s.world.snapshot()
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	lines := make([][2]point, len(snap.Links))
	for i, l := range snap.Links {
		lines[i] = [2]point{fromPoint(l.P1), fromPoint(l.P2)}
	}
	nodes := 0
	for _, p := range snap.Polygons {
		nodes += len(p.Nodes)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"lines":    lines,
		"numNodes": nodes,
		"numLinks": len(lines),
	})
}

// GET /debug.png - render the scene, optionally with the path between
// (sx,sy) and (ex,ey)
func (s *server) debugImageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	var path []polynav.Point
	if q.Has("sx") {
		start, err1 := queryPoint(q.Get("sx"), q.Get("sy"))
		end, err2 := queryPoint(q.Get("ex"), q.Get("ey"))
		if err := errors.Join(err1, err2); err != nil {
			http.Error(w, "Invalid path coordinates", http.StatusBadRequest)
			return
		}
		var routeErr error
		path, _, routeErr = s.world.route(start, end)
		if routeErr != nil {
			http.Error(w, routeErr.Error(), statusOf(routeErr))
			return
		}
	}

	size := 512
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 16 || n > 4096 {
			http.Error(w, "Invalid size", http.StatusBadRequest)
			return
		}
		size = n
	}

	snap, err := s.world.snapshot()
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := debugdraw.EncodePNG(w, snap, path, debugdraw.Options{Width: size}); err != nil {
		s.log.Warn("encode debug image", zap.Error(err))
	}
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	loaded, obstacles, walkers := s.world.stats()

	status := "ready"
	if !loaded {
		status = "waiting for scene"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"hasScene":  loaded,
		"obstacles": obstacles,
		"walkers":   walkers,
	})
}

func queryPoint(x, y string) (polynav.Point, error) {
	px, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return polynav.Point{}, err
	}
	py, err := strconv.ParseFloat(y, 64)
	if err != nil {
		return polynav.Point{}, err
	}
	return polynav.Point{X: px, Y: py}, nil
}
