package polynav

import "go.uber.org/zap"

// options holds the tunables of a Pathfinder.
type options struct {
	inflateAmount   float64
	minWaypointDist float64
	positions       PositionSource
	fallback        PathResolver
	logger          *zap.Logger
}

// Default tunables. Neither value is a contract: any small positive
// margin and collapse distance give the same qualitative behaviour.
const (
	DefaultInflateAmount       = 0.01
	DefaultMinWaypointDistance = 1.0
)

func defaultOptions() options {
	return options{
		inflateAmount:   DefaultInflateAmount,
		minWaypointDist: DefaultMinWaypointDistance,
		logger:          zap.NewNop(),
	}
}

// Option configures a Pathfinder during creation.
//
// Example:
//
//	pf := polynav.New(
//	    polynav.WithMinWaypointDistance(2),
//	    polynav.WithLogger(logger),
//	)
type Option func(*options)

// WithInflateAmount sets the clearance by which graph nodes are pushed off
// polygon corners. Non-positive values are ignored.
func WithInflateAmount(amount float64) Option {
	return func(o *options) {
		if amount > 0 {
			o.inflateAmount = amount
		}
	}
}

// WithMinWaypointDistance sets the distance below which consecutive
// waypoints are collapsed into one. Non-positive values are ignored.
func WithMinWaypointDistance(d float64) Option {
	return func(o *options) {
		if d > 0 {
			o.minWaypointDist = d
		}
	}
}

// WithPositionSource enables movement tracking of obstacles whose owners
// the source knows about.
func WithPositionSource(src PositionSource) Option {
	return func(o *options) {
		o.positions = src
	}
}

// WithFallback sets a resolver that is asked for a path only when the
// primary search fails.
func WithFallback(r PathResolver) Option {
	return func(o *options) {
		o.fallback = r
	}
}

// WithLogger sets the logger. By default a Pathfinder logs nothing.
// Pass nil to restore the silent default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}
