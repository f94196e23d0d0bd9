package asteroid

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/asteroids/internal/core/geometry"
	"github.com/zeusync/asteroids/internal/core/observability/log"
	"github.com/zeusync/asteroids/internal/core/systems/physics"
)

const (
	DefaultDensity    = 1.0
	DefaultFriction   = 0.7
	DefaultElasticity = 0.2
)

// Body couples an immutable local-space outline with the rigid body an engine
// simulates for it. The engine owns position and rotation; Body only keeps the
// handle used to read them.
type Body struct {
	id          uuid.UUID
	shape       geometry.Polygon
	triangles   []geometry.Triangle
	handle      physics.Handle
	kind        physics.BodyKind
	fingerprint uint64
}

type options struct {
	angle      float64
	density    float64
	friction   float64
	elasticity float64
	kind       physics.BodyKind
	logger     log.Log
}

type Option func(*options)

func WithAngle(angle float64) Option {
	return func(o *options) {
		o.angle = angle
	}
}

func WithDensity(density float64) Option {
	return func(o *options) {
		o.density = density
	}
}

func WithFriction(friction float64) Option {
	return func(o *options) {
		o.friction = friction
	}
}

func WithElasticity(elasticity float64) Option {
	return func(o *options) {
		o.elasticity = elasticity
	}
}

// WithStatic makes the body immovable, as used for the ground.
func WithStatic() Option {
	return func(o *options) {
		o.kind = physics.Static
	}
}

func WithLogger(logger log.Log) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New triangulates shape and registers one convex collider piece per triangle
// with the engine. The body's local origin is placed at position.
func New(position geometry.Point2, shape geometry.Polygon, engine physics.Engine, opts ...Option) (*Body, error) {
	o := options{
		density:    DefaultDensity,
		friction:   DefaultFriction,
		elasticity: DefaultElasticity,
		kind:       physics.Dynamic,
		logger:     log.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	local := shape.Clone()
	if !local.IsSimple() {
		return nil, fmt.Errorf("%w: asteroid outline crosses itself", geometry.ErrNotSimplePolygon)
	}
	triangles, err := geometry.Triangulate(local)
	if err != nil {
		return nil, fmt.Errorf("triangulate asteroid shape: %w", err)
	}

	pieces := make([][]geometry.Point2, 0, len(triangles))
	for _, t := range triangles {
		v := local.Vertices(t)
		pieces = append(pieces, v[:])
	}

	handle, err := engine.AddRigidBody(
		physics.BodyDescriptor{
			Kind:     o.kind,
			Position: position,
			Angle:    o.angle,
			Density:  o.density,
		},
		physics.ColliderDescriptor{
			Pieces:     pieces,
			Friction:   o.friction,
			Elasticity: o.elasticity,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("add rigid body: %w", err)
	}

	b := &Body{
		id:          uuid.New(),
		shape:       local,
		triangles:   triangles,
		handle:      handle,
		kind:        o.kind,
		fingerprint: geometry.Fingerprint(local),
	}

	o.logger.Debug("asteroid body created",
		log.String("id", b.id.String()),
		log.Stringer("handle", handle),
		log.Stringer("kind", o.kind),
		log.Int("vertices", local.Len()),
		log.Int("pieces", len(pieces)),
		log.Float64("area", local.Area()),
	)

	return b, nil
}

// Shape returns the body's outline in local coordinates. The returned slice
// must not be modified.
func (b *Body) Shape() geometry.Polygon {
	return b.shape
}

func (b *Body) Handle() physics.Handle {
	return b.handle
}

func (b *Body) Triangles() []geometry.Triangle {
	return b.triangles
}

func (b *Body) ID() string {
	return b.id.String()
}

func (b *Body) Static() bool {
	return b.kind == physics.Static
}

// Fingerprint is a hash of the local outline, stable across runs.
func (b *Body) Fingerprint() uint64 {
	return b.fingerprint
}

// Remove releases the engine record behind the body. Dropping a Body without
// calling Remove leaves the rigid body in the engine.
func (b *Body) Remove(engine physics.Engine) error {
	if err := engine.RemoveRigidBody(b.handle); err != nil {
		return fmt.Errorf("remove asteroid %s: %w", b.id, err)
	}
	return nil
}
