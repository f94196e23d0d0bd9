package physics

import (
	"errors"
	"fmt"

	"github.com/zeusync/asteroids/internal/core/geometry"
	"github.com/zeusync/asteroids/pkg/generic"
)

var (
	// ErrStaleHandle is returned when a handle no longer resolves to a body,
	// either because it was removed or because it was never issued by the engine.
	ErrStaleHandle = errors.New("stale rigid body handle")
	// ErrEmptyCollider is returned when no collider piece is usable.
	ErrEmptyCollider = errors.New("collider has no usable pieces")
	// ErrUnknownEngine is returned by New for an unsupported engine kind.
	ErrUnknownEngine = errors.New("unknown physics engine")
)

// Handle is an opaque reference to a rigid body owned by an Engine.
type Handle generic.Handle

func (h Handle) String() string {
	return fmt.Sprintf("body#%d.%d", h.Index, h.Generation)
}

// StateReader exposes the per-frame pose of rigid bodies.
type StateReader interface {
	// Position returns the world position of the body's local origin.
	Position(h Handle) (geometry.Point2, error)
	// Rotation returns the body's world rotation in radians.
	Rotation(h Handle) (float64, error)
}

// Engine is the boundary to an external rigid-body simulator. The engine owns
// all body state and is not safe for concurrent use.
type Engine interface {
	StateReader

	AddRigidBody(body BodyDescriptor, collider ColliderDescriptor) (Handle, error)
	RemoveRigidBody(h Handle) error
	Step(dt float64)
	Len() int
	Kind() Kind
}

// BodyKind selects how the engine treats a body.
type BodyKind uint8

const (
	Dynamic BodyKind = iota
	Static
)

func (k BodyKind) String() string {
	if k == Static {
		return "static"
	}
	return "dynamic"
}

// BodyDescriptor describes the initial state of a rigid body.
type BodyDescriptor struct {
	Kind     BodyKind
	Position geometry.Point2
	Angle    float64
	// Density is mass per unit area; ignored for static bodies.
	Density float64
}

// ColliderDescriptor describes a compound collider made of convex pieces
// expressed in body-local coordinates.
type ColliderDescriptor struct {
	Pieces     [][]geometry.Point2
	Friction   float64
	Elasticity float64
}

// Kind names an Engine implementation.
type Kind string

const (
	KindChipmunk Kind = "chipmunk"
	KindBox2D    Kind = "box2d"
)
