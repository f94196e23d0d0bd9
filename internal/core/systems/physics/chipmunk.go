package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/zeusync/asteroids/internal/core/geometry"
	"github.com/zeusync/asteroids/pkg/generic"
)

var _ Engine = (*Chipmunk)(nil)

type chipmunkBody struct {
	body   *cp.Body
	shapes []*cp.Shape
}

// Chipmunk runs bodies in a Chipmunk2D space. Each collider piece becomes one
// PolyShape attached to the body.
type Chipmunk struct {
	space  *cp.Space
	bodies *generic.Arena[*chipmunkBody]
}

func NewChipmunk(opts ...Option) *Chipmunk {
	o := newOptions(opts)
	space := cp.NewSpace()
	space.SetGravity(toCP(o.gravity))
	return &Chipmunk{
		space:  space,
		bodies: generic.NewArena[*chipmunkBody](64),
	}
}

func (c *Chipmunk) Kind() Kind {
	return KindChipmunk
}

func (c *Chipmunk) AddRigidBody(desc BodyDescriptor, collider ColliderDescriptor) (Handle, error) {
	pieces := usablePieces(collider.Pieces, 0)
	if len(pieces) == 0 {
		return Handle{}, fmt.Errorf("%w: %d pieces given", ErrEmptyCollider, len(collider.Pieces))
	}

	var body *cp.Body
	density := 0.0
	if desc.Kind == Static {
		body = cp.NewStaticBody()
	} else {
		// mass, moment and centre of gravity accumulate from the shape densities
		body = cp.NewBody(0, 0)
		density = desc.Density
		if density <= 0 {
			density = 1
		}
	}
	body.SetAngle(desc.Angle)
	body.SetPosition(toCP(desc.Position))
	c.space.AddBody(body)

	shapes := make([]*cp.Shape, 0, len(pieces))
	for _, piece := range pieces {
		verts := toCPVerts(piece)
		shape := cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
		shape.SetFriction(collider.Friction)
		shape.SetElasticity(collider.Elasticity)
		if density > 0 {
			shape.SetDensity(density)
		}
		shapes = append(shapes, c.space.AddShape(shape))
	}

	h := c.bodies.Insert(&chipmunkBody{body: body, shapes: shapes})
	return Handle(h), nil
}

func (c *Chipmunk) RemoveRigidBody(h Handle) error {
	entry, ok := c.bodies.Remove(generic.Handle(h))
	if !ok {
		return fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	for _, shape := range entry.shapes {
		c.space.RemoveShape(shape)
	}
	c.space.RemoveBody(entry.body)
	return nil
}

func (c *Chipmunk) Position(h Handle) (geometry.Point2, error) {
	entry, ok := c.bodies.Get(generic.Handle(h))
	if !ok {
		return geometry.Point2{}, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	return fromCP(entry.body.Position()), nil
}

func (c *Chipmunk) Rotation(h Handle) (float64, error) {
	entry, ok := c.bodies.Get(generic.Handle(h))
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	return entry.body.Angle(), nil
}

func (c *Chipmunk) Step(dt float64) {
	c.space.Step(dt)
}

func (c *Chipmunk) Len() int {
	return c.bodies.Len()
}

func toCP(p geometry.Point2) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

func fromCP(v cp.Vector) geometry.Point2 {
	return geometry.Point2{X: v.X, Y: v.Y}
}

func toCPVerts(piece []geometry.Point2) []cp.Vector {
	verts := make([]cp.Vector, len(piece))
	for i, p := range piece {
		verts[i] = toCP(p)
	}
	return verts
}
