package physics

import (
	"fmt"
	"math"

	"github.com/zeusync/asteroids/internal/core/geometry"
)

// MinPieceArea is the smallest collider piece area, relative to the total
// collider area, that is handed to an engine. Thinner slivers are dropped.
const MinPieceArea = 1e-9

type options struct {
	gravity            geometry.Point2
	velocityIterations int
	positionIterations int
}

type Option func(*options)

func WithGravity(gravity geometry.Point2) Option {
	return func(o *options) {
		o.gravity = gravity
	}
}

// WithIterations sets the solver iteration counts. Engines without separate
// position iterations ignore the second value.
func WithIterations(velocity, position int) Option {
	return func(o *options) {
		if velocity > 0 {
			o.velocityIterations = velocity
		}
		if position > 0 {
			o.positionIterations = position
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		velocityIterations: 8,
		positionIterations: 3,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the engine backend named by kind.
func New(kind Kind, opts ...Option) (Engine, error) {
	switch kind {
	case KindChipmunk, "":
		return NewChipmunk(opts...), nil
	case KindBox2D:
		return NewBox2D(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}

// usablePieces drops pieces that are not proper convex polygons or whose area
// is negligible compared with the whole collider. Edges shorter than minEdge
// also disqualify a piece.
func usablePieces(pieces [][]geometry.Point2, minEdge float64) [][]geometry.Point2 {
	total := 0.0
	for _, piece := range pieces {
		total += geometry.Polygon(piece).Area()
	}
	if total == 0 || math.IsNaN(total) {
		return nil
	}

	out := make([][]geometry.Point2, 0, len(pieces))
	for _, piece := range pieces {
		poly := geometry.Polygon(piece)
		if len(poly) < 3 || poly.Area() <= MinPieceArea*total {
			continue
		}
		if shortestEdge(poly) < minEdge {
			continue
		}
		out = append(out, piece)
	}
	return out
}

func shortestEdge(p geometry.Polygon) float64 {
	shortest := math.Inf(1)
	for i := range p {
		shortest = math.Min(shortest, p[i].Distance(p.At(i+1)))
	}
	return shortest
}
