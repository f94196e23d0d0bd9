package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWorldIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 1000; i++ {
		v := Point2{X: (rng.Float64() - 0.5) * 1e6, Y: (rng.Float64() - 0.5) * 1e-6}
		assert.Equal(t, v, ToWorld(v, Point2{}, 0))
	}
	assert.Equal(t, Point2{3, -4}, Identity().Apply(Point2{3, -4}))
}

func TestToWorldPreservesDistance(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	for i := 0; i < 1000; i++ {
		v := Point2{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100}
		p := Point2{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000}
		theta := rng.Float64()*4*math.Pi - 2*math.Pi

		w := ToWorld(v, p, theta)
		assert.InDelta(t, v.Length(), w.Distance(p), 1e-9)
	}
}

func TestToWorldRotationSign(t *testing.T) {
	w := ToWorld(Point2{1, 0}, Point2{}, math.Pi/2)
	assert.True(t, w.ApproxEqual(Point2{0, 1}, 1e-12), "got %v", w)

	w = ToWorld(Point2{0, 1}, Point2{}, math.Pi/2)
	assert.True(t, w.ApproxEqual(Point2{-1, 0}, 1e-12), "got %v", w)
}

func TestToWorldTranslatesUnitSquare(t *testing.T) {
	position := Point2{100, 50}
	world := NewTransform(position, 0).ApplyAll(unitSquare())
	for i, v := range unitSquare() {
		assert.Equal(t, v.Add(position), world[i])
	}
}

func TestToWorldCentredUnitSquare(t *testing.T) {
	square := Polygon{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}

	world := NewTransform(Point2{100, 50}, 0).ApplyAll(square)
	assert.Equal(t, Polygon{{99.5, 49.5}, {100.5, 49.5}, {100.5, 50.5}, {99.5, 50.5}}, world)

	turned := NewTransform(Point2{}, math.Pi/2).ApplyAll(square)
	expected := Polygon{{0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}}
	for i := range expected {
		assert.True(t, turned[i].ApproxEqual(expected[i], 1e-12), "vertex %d: %v", i, turned[i])
	}
}

func TestTransformToLocalInverts(t *testing.T) {
	xf := NewTransform(Point2{12, -7}, 1.234)
	for _, v := range lShape() {
		back := xf.ToLocal(xf.Apply(v))
		assert.True(t, back.ApproxEqual(v, 1e-12), "%v -> %v", v, back)
	}
	assert.InDelta(t, 1.234, xf.Angle(), 1e-12)
}
