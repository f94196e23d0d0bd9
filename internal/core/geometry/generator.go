package geometry

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// VertexRange is a half-open range [Min, Max) of vertex counts.
type VertexRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

func (r VertexRange) Validate() error {
	if r.Min < 3 {
		return fmt.Errorf("%w: lower bound %d is below 3", ErrInvalidVertexCount, r.Min)
	}
	if r.Max <= r.Min {
		return fmt.Errorf("%w: empty range [%d, %d)", ErrInvalidVertexCount, r.Min, r.Max)
	}
	return nil
}

// Extent bounds the spread of generated points around the origin.
type Extent struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (e Extent) Validate() error {
	if !(e.Width > 0) || !(e.Height > 0) || math.IsInf(e.Width, 0) || math.IsInf(e.Height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidExtent, e.Width, e.Height)
	}
	return nil
}

// Generator produces random simple polygons from an explicit random source.
// It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator returns a Generator whose output is fully determined by seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate samples a vertex count from vertices, scatters that many points
// uniformly over extent centred on the origin and orders them by angle around
// their centroid. The angular sort is what makes the loop simple.
func (g *Generator) Generate(vertices VertexRange, extent Extent) (Polygon, error) {
	if err := vertices.Validate(); err != nil {
		return nil, err
	}
	if err := extent.Validate(); err != nil {
		return nil, err
	}

	n := vertices.Min + g.rng.IntN(vertices.Max-vertices.Min)
	if n < 3 {
		return nil, fmt.Errorf("%w: sampled %d vertices", ErrInvalidVertexCount, n)
	}

	points := make(Polygon, 0, n)
	for len(points) < n {
		p := Point2{
			X: (g.rng.Float64() - 0.5) * extent.Width,
			Y: (g.rng.Float64() - 0.5) * extent.Height,
		}
		if slices.Contains(points, p) {
			continue
		}
		points = append(points, p)
	}

	return sortAround(points, points.Mean()), nil
}

// sortAround orders points by ascending angle around center. Points at the
// same angle are ordered by distance so the result is deterministic.
func sortAround(points Polygon, center Point2) Polygon {
	type keyed struct {
		p     Point2
		angle float64
		dist  float64
	}
	keys := make([]keyed, len(points))
	for i, p := range points {
		d := p.Sub(center)
		keys[i] = keyed{p: p, angle: d.Angle(), dist: d.LengthSquared()}
	}
	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case a.angle < b.angle:
			return -1
		case a.angle > b.angle:
			return 1
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		default:
			return 0
		}
	})
	out := make(Polygon, len(points))
	for i, k := range keys {
		out[i] = k.p
	}
	return out
}

// Regular builds a regular polygon whose vertices lie on a circle of the
// given radius, starting on the positive x axis and running counter-clockwise.
// For a hexagon the radius equals the side length.
func Regular(sides int, radius float64) (Polygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: %d sides", ErrInvalidVertexCount, sides)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: radius %g", ErrInvalidExtent, radius)
	}
	delta := 2 * math.Pi / float64(sides)
	out := make(Polygon, sides)
	for i := range out {
		angle := delta * float64(i)
		out[i] = Point2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return out, nil
}

// Rectangle returns the axis-aligned rectangle centred on the origin.
func Rectangle(halfWidth, halfHeight float64) (Polygon, error) {
	if err := (Extent{Width: halfWidth, Height: halfHeight}).Validate(); err != nil {
		return nil, err
	}
	return Polygon{
		{X: -halfWidth, Y: -halfHeight},
		{X: halfWidth, Y: -halfHeight},
		{X: halfWidth, Y: halfHeight},
		{X: -halfWidth, Y: halfHeight},
	}, nil
}
