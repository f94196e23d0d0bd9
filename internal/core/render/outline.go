package render

import (
	"errors"
	"fmt"

	"github.com/zeusync/asteroids/internal/core/geometry"
	"github.com/zeusync/asteroids/internal/core/observability/log"
	"github.com/zeusync/asteroids/internal/core/systems/physics"
	"github.com/zeusync/asteroids/pkg/concurrent"
)

// Drawable is anything with a local outline bound to an engine body.
type Drawable interface {
	Shape() geometry.Polygon
	Handle() physics.Handle
}

type Segment struct {
	From geometry.Point2 `json:"from" yaml:"from"`
	To   geometry.Point2 `json:"to" yaml:"to"`
}

type Outline struct {
	Handle   physics.Handle    `json:"-" yaml:"-"`
	Vertices []geometry.Point2 `json:"vertices" yaml:"vertices"`
}

type Frame struct {
	Outlines []Outline `json:"outlines" yaml:"outlines"`
	// Skipped counts bodies dropped because their handle was stale.
	Skipped int `json:"skipped" yaml:"skipped"`
}

// Draw returns the world-space outline of body for the engine's current frame.
// The transform is built fresh from the engine on every call.
func Draw(body Drawable, engine physics.StateReader) ([]geometry.Point2, error) {
	h := body.Handle()
	position, err := engine.Position(h)
	if err != nil {
		return nil, err
	}
	rotation, err := engine.Rotation(h)
	if err != nil {
		return nil, err
	}
	return geometry.NewTransform(position, rotation).ApplyAll(body.Shape()), nil
}

// Segments yields one segment per consecutive vertex pair plus the closing
// segment from the last vertex back to the first.
func Segments(outline []geometry.Point2) []Segment {
	n := len(outline)
	if n < 2 {
		return nil
	}
	segments := make([]Segment, 0, n)
	for i := range n {
		segments = append(segments, Segment{From: outline[i], To: outline[(i+1)%n]})
	}
	return segments
}

type Renderer struct {
	engine  physics.StateReader
	strict  bool
	workers int
	logger  log.Log
}

type Option func(*Renderer)

// WithStrict makes Frame fail on the first stale handle instead of skipping it.
func WithStrict(strict bool) Option {
	return func(r *Renderer) {
		r.strict = strict
	}
}

// WithWorkers spreads the vertex transforms of a frame over n goroutines.
// Engine reads always stay on the calling goroutine.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.workers = n
	}
}

func WithLogger(logger log.Log) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func NewRenderer(engine physics.StateReader, opts ...Option) *Renderer {
	r := &Renderer{
		engine: engine,
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type posed struct {
	handle    physics.Handle
	shape     geometry.Polygon
	transform geometry.Transform
}

// Frame draws every body. A stale handle aborts the frame in strict mode; in
// lenient mode the body is left out and counted in Frame.Skipped. No default
// transform is ever substituted.
func (r *Renderer) Frame(bodies []Drawable) (Frame, error) {
	var frame Frame
	poses := make([]posed, 0, len(bodies))
	for _, body := range bodies {
		transform, err := r.pose(body.Handle())
		if err != nil {
			if r.strict || !errors.Is(err, physics.ErrStaleHandle) {
				return Frame{}, fmt.Errorf("draw %s: %w", body.Handle(), err)
			}
			r.logger.Warn("skipping body with stale handle",
				log.Stringer("handle", body.Handle()),
				log.Error(err),
			)
			frame.Skipped++
			continue
		}
		poses = append(poses, posed{handle: body.Handle(), shape: body.Shape(), transform: transform})
	}

	frame.Outlines = concurrent.MapMust(poses, r.workers, func(p posed) Outline {
		return Outline{Handle: p.handle, Vertices: p.transform.ApplyAll(p.shape)}
	})
	return frame, nil
}

func (r *Renderer) pose(h physics.Handle) (geometry.Transform, error) {
	position, err := r.engine.Position(h)
	if err != nil {
		return geometry.Transform{}, err
	}
	rotation, err := r.engine.Rotation(h)
	if err != nil {
		return geometry.Transform{}, err
	}
	return geometry.NewTransform(position, rotation), nil
}
