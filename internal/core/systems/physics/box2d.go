package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/asteroids/internal/core/geometry"
	"github.com/zeusync/asteroids/pkg/generic"
)

var _ Engine = (*Box2D)(nil)

// box2dMinEdge matches Box2D's linear slop. Box2D welds closer vertices and
// rejects the resulting degenerate polygon.
const box2dMinEdge = 0.005

// Box2D runs bodies in a Box2D world. Each collider piece becomes one fixture.
type Box2D struct {
	world              *box2d.B2World
	bodies             *generic.Arena[*box2d.B2Body]
	velocityIterations int
	positionIterations int
}

func NewBox2D(opts ...Option) *Box2D {
	o := newOptions(opts)
	world := box2d.MakeB2World(box2d.MakeB2Vec2(o.gravity.X, o.gravity.Y))
	return &Box2D{
		world:              &world,
		bodies:             generic.NewArena[*box2d.B2Body](64),
		velocityIterations: o.velocityIterations,
		positionIterations: o.positionIterations,
	}
}

func (b *Box2D) Kind() Kind {
	return KindBox2D
}

func (b *Box2D) AddRigidBody(desc BodyDescriptor, collider ColliderDescriptor) (Handle, error) {
	pieces := usablePieces(collider.Pieces, box2dMinEdge)
	if len(pieces) == 0 {
		return Handle{}, fmt.Errorf("%w: %d pieces given", ErrEmptyCollider, len(collider.Pieces))
	}
	for _, piece := range pieces {
		if len(piece) > box2d.B2_maxPolygonVertices {
			return Handle{}, fmt.Errorf("%w: piece has %d vertices, box2d allows %d",
				ErrEmptyCollider, len(piece), box2d.B2_maxPolygonVertices)
		}
	}

	def := box2d.MakeB2BodyDef()
	if desc.Kind == Static {
		def.Type = box2d.B2BodyType.B2_staticBody
	} else {
		def.Type = box2d.B2BodyType.B2_dynamicBody
	}
	def.Position = box2d.MakeB2Vec2(desc.Position.X, desc.Position.Y)
	def.Angle = desc.Angle
	body := b.world.CreateBody(&def)

	density := desc.Density
	if density <= 0 {
		density = 1
	}
	for _, piece := range pieces {
		verts := make([]box2d.B2Vec2, len(piece))
		for i, p := range piece {
			verts[i] = box2d.MakeB2Vec2(p.X, p.Y)
		}
		shape := box2d.MakeB2PolygonShape()
		shape.Set(verts, len(verts))

		fixture := box2d.MakeB2FixtureDef()
		fixture.Shape = &shape
		fixture.Density = density
		fixture.Friction = collider.Friction
		fixture.Restitution = collider.Elasticity
		body.CreateFixtureFromDef(&fixture)
	}

	h := b.bodies.Insert(body)
	return Handle(h), nil
}

func (b *Box2D) RemoveRigidBody(h Handle) error {
	body, ok := b.bodies.Remove(generic.Handle(h))
	if !ok {
		return fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	b.world.DestroyBody(body)
	return nil
}

func (b *Box2D) Position(h Handle) (geometry.Point2, error) {
	body, ok := b.bodies.Get(generic.Handle(h))
	if !ok {
		return geometry.Point2{}, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	p := body.GetPosition()
	return geometry.Point2{X: p.X, Y: p.Y}, nil
}

func (b *Box2D) Rotation(h Handle) (float64, error) {
	body, ok := b.bodies.Get(generic.Handle(h))
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	return body.GetAngle(), nil
}

func (b *Box2D) Step(dt float64) {
	b.world.Step(dt, b.velocityIterations, b.positionIterations)
}

func (b *Box2D) Len() int {
	return b.bodies.Len()
}
