package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type convexityTest struct {
	name             string
	prev, corner, nx Point2
	convex           bool
}

var convexityTests = []convexityTest{
	{"square corner", Point2{0, 0}, Point2{1, 0}, Point2{1, 1}, true},
	{"reflex corner", Point2{2, 1}, Point2{1, 1}, Point2{1, 2}, false},
	{"collinear", Point2{0, 0}, Point2{1, 0}, Point2{2, 0}, true},
	{"near collinear", Point2{0, 0}, Point2{1, 1e-14}, Point2{2, 0}, true},
	{"sharp convex", Point2{0, 0}, Point2{10, 0}, Point2{0, 0.1}, true},
	{"sharp reflex", Point2{0, 0.1}, Point2{10, 0}, Point2{0, 0}, false},
}

func TestIsConvex(t *testing.T) {
	for _, tt := range convexityTests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.convex, IsConvex(tt.prev, tt.corner, tt.nx))
		})
	}
}

func TestIsConvexScaleAndTranslationInvariant(t *testing.T) {
	scales := []float64{1.0 / 1024, 0.5, 2, 1024, 1 << 20}
	offsets := []Point2{{0, 0}, {-3, 7}, {1000, -2000}, {0.25, 0.5}}

	for _, tt := range convexityTests {
		for _, s := range scales {
			for _, o := range offsets {
				prev := tt.prev.Scale(s).Add(o)
				corner := tt.corner.Scale(s).Add(o)
				next := tt.nx.Scale(s).Add(o)
				assert.Equal(t, tt.convex, IsConvex(prev, corner, next),
					"%s scaled by %g and moved by %v", tt.name, s, o)
			}
		}
	}
}

func TestPolygonIsConvex(t *testing.T) {
	hexagon, err := Regular(6, 10)
	assert.NoError(t, err)
	assert.True(t, hexagon.IsConvex())
	assert.False(t, lShape().IsConvex())
}

func TestTriangleArea(t *testing.T) {
	assert.Equal(t, 0.5, TriangleArea(Point2{0, 0}, Point2{1, 0}, Point2{0, 1}))
	assert.Equal(t, -0.5, TriangleArea(Point2{0, 0}, Point2{0, 1}, Point2{1, 0}))
}
