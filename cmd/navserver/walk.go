package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"polynav"
)

// walkFrame is streamed to the client after every walk step.
type walkFrame struct {
	ID      string `json:"id"`
	Pos     point  `json:"pos"`
	Next    point  `json:"next"`
	Target  point  `json:"target"`
	Arrived bool   `json:"arrived"`
}

// GET /walk?x=&y=&tx=&ty=[&id=] - spawn a walker at (x,y) and stream its
// walk to (tx,ty) over a WebSocket. The walker blocks other routes with
// its footprint until the connection ends.
func (s *server) walkHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err1 := queryPoint(q.Get("x"), q.Get("y"))
	target, err2 := queryPoint(q.Get("tx"), q.Get("ty"))
	if err := errors.Join(err1, err2); err != nil {
		http.Error(w, "Invalid walk coordinates", http.StatusBadRequest)
		return
	}

	id := q.Get("id")
	if id == "" {
		id = uuid.NewString()
	}
	owner := polynav.OwnerID(id)

	pos, err := s.world.spawn(owner, start)
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}
	defer s.world.despawn(owner)

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer c.Close(websocket.StatusInternalError, "")

	log := s.log.With(zap.String("walker", id))
	log.Info("walk started",
		zap.Float64("x", pos.X), zap.Float64("y", pos.Y),
		zap.Float64("targetX", target.X), zap.Float64("targetY", target.Y))

	err = s.walk(r.Context(), c, owner, pos, target)
	if errors.Is(err, context.Canceled) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		log.Warn("walk aborted", zap.Error(err))
		return
	}
	log.Info("walk finished")
	c.Close(websocket.StatusNormalClosure, "arrived")
}

// walk steps the walker at the configured tick rate until it arrives.
func (s *server) walk(ctx context.Context, c *websocket.Conn, id polynav.OwnerID, pos, target polynav.Point) error {
	// Incoming messages are not used; reading only handles control frames.
	ctx = c.CloseRead(ctx)

	cfg := s.world.cfg.Walk
	limiter := rate.NewLimiter(rate.Limit(cfg.TickRate), 1)
	maxDist := cfg.Speed / cfg.TickRate
	target = s.world.clamp(target)

	frame := walkFrame{ID: string(id), Pos: fromPoint(pos), Next: fromPoint(pos), Target: fromPoint(target)}
	if err := writeTimeout(ctx, time.Second, c, frame); err != nil {
		return err
	}

	for {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		pos, next, arrived := s.world.step(id, target, maxDist)

		frame.Pos, frame.Next, frame.Arrived = fromPoint(pos), fromPoint(next), arrived
		if err := writeTimeout(ctx, time.Second, c, frame); err != nil {
			return err
		}
		if arrived {
			return nil
		}
	}
}

func writeTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, v any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return wsjson.Write(ctx, c, v)
}
