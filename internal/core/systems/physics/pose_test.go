package physics

import (
	"testing"

	"github.com/ByteArena/box2d"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/asteroids/internal/core/geometry"
	"github.com/zeusync/asteroids/pkg/generic"
)

// The engines' own local-to-world mapping must agree with geometry.ToWorld
// fed from Position and Rotation, before and after stepping.

func TestChipmunkPoseMatchesToWorld(t *testing.T) {
	e := NewChipmunk(WithGravity(geometry.Point2{Y: -100}))
	h, err := e.AddRigidBody(
		BodyDescriptor{Position: geometry.Point2{X: 5, Y: 20}, Angle: 0.7},
		ColliderDescriptor{Pieces: [][]geometry.Point2{{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 1}}}},
	)
	require.NoError(t, err)

	entry, ok := e.bodies.Get(generic.Handle(h))
	require.True(t, ok)
	entry.body.SetAngularVelocity(1.5)

	local := geometry.Point2{X: 3, Y: 0}
	for frame := 0; frame < 20; frame++ {
		pos, err := e.Position(h)
		require.NoError(t, err)
		rot, err := e.Rotation(h)
		require.NoError(t, err)

		want := entry.body.LocalToWorld(cp.Vector{X: local.X, Y: local.Y})
		got := geometry.ToWorld(local, pos, rot)
		assert.InDelta(t, want.X, got.X, 1e-9, "frame %d", frame)
		assert.InDelta(t, want.Y, got.Y, 1e-9, "frame %d", frame)

		e.Step(1.0 / 60)
	}
}

func TestBox2DPoseMatchesToWorld(t *testing.T) {
	e := NewBox2D(WithGravity(geometry.Point2{Y: -10}))
	h, err := e.AddRigidBody(
		BodyDescriptor{Position: geometry.Point2{X: 5, Y: 20}, Angle: 0.7},
		ColliderDescriptor{Pieces: [][]geometry.Point2{{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 1}}}},
	)
	require.NoError(t, err)

	body, ok := e.bodies.Get(generic.Handle(h))
	require.True(t, ok)
	body.SetAngularVelocity(1.5)

	local := geometry.Point2{X: 3, Y: 0}
	for frame := 0; frame < 20; frame++ {
		pos, err := e.Position(h)
		require.NoError(t, err)
		rot, err := e.Rotation(h)
		require.NoError(t, err)

		want := body.GetWorldPoint(box2d.MakeB2Vec2(local.X, local.Y))
		got := geometry.ToWorld(local, pos, rot)
		assert.InDelta(t, want.X, got.X, 1e-9, "frame %d", frame)
		assert.InDelta(t, want.Y, got.Y, 1e-9, "frame %d", frame)

		e.Step(1.0 / 60)
	}
}

func TestChipmunkMassFromPieces(t *testing.T) {
	cases := map[string][][]geometry.Point2{
		"offset triangle": {{{X: 10, Y: 10}, {X: 13, Y: 10}, {X: 10, Y: 11}}},
		"offset square":   {{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}}, {{X: 2, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}}},
	}
	for name, pieces := range cases {
		t.Run(name, func(t *testing.T) {
			const density = 2.5
			e := NewChipmunk()
			origin := geometry.Point2{X: -4, Y: 7}
			h, err := e.AddRigidBody(
				BodyDescriptor{Position: origin, Angle: 0.3, Density: density},
				ColliderDescriptor{Pieces: pieces},
			)
			require.NoError(t, err)

			entry, ok := e.bodies.Get(generic.Handle(h))
			require.True(t, ok)
			body := entry.body

			area, centroid := massProperties(pieces)
			cog := body.CenterOfGravity()
			assert.InDelta(t, centroid.X, cog.X, 1e-9)
			assert.InDelta(t, centroid.Y, cog.Y, 1e-9)
			assert.InEpsilon(t, area*density, body.Mass(), 1e-9)

			moment := 0.0
			for _, piece := range pieces {
				verts := toCPVerts(piece)
				pieceMass := geometry.Polygon(piece).Area() * density
				moment += cp.MomentForPoly(pieceMass, len(verts), verts, toCP(centroid).Neg(), 0)
			}
			assert.InEpsilon(t, moment, body.Moment(), 1e-9)

			pos, err := e.Position(h)
			require.NoError(t, err)
			assert.InDelta(t, origin.X, pos.X, 1e-9)
			assert.InDelta(t, origin.Y, pos.Y, 1e-9)
		})
	}
}

func TestChipmunkSpinsAboutCentreOfGravity(t *testing.T) {
	e := NewChipmunk()
	pieces := [][]geometry.Point2{{{X: 10, Y: 10}, {X: 13, Y: 10}, {X: 10, Y: 11}}}
	h, err := e.AddRigidBody(BodyDescriptor{Density: 1}, ColliderDescriptor{Pieces: pieces})
	require.NoError(t, err)

	entry, ok := e.bodies.Get(generic.Handle(h))
	require.True(t, ok)
	entry.body.SetAngularVelocity(2)

	_, centroid := massProperties(pieces)
	pivot := centroid

	for range 30 {
		e.Step(1.0 / 60)
	}

	pos, err := e.Position(h)
	require.NoError(t, err)
	rot, err := e.Rotation(h)
	require.NoError(t, err)
	assert.Greater(t, rot, 0.5)

	// the origin orbits the centroid, which stays put
	origin := entry.body.LocalToWorld(cp.Vector{})
	assert.InDelta(t, origin.X, pos.X, 1e-9)
	assert.InDelta(t, origin.Y, pos.Y, 1e-9)
	spun := geometry.ToWorld(centroid, pos, rot)
	assert.InDelta(t, pivot.X, spun.X, 1e-6)
	assert.InDelta(t, pivot.Y, spun.Y, 1e-6)
	assert.Greater(t, pos.Distance(geometry.Point2{}), 1.0)
}
