package geometry

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Polygon is a closed loop of vertices: the last vertex connects back to the first.
// Polygons produced by this package are counter-clockwise in a y-up frame.
type Polygon []Point2

// Winding describes the orientation of a polygon loop.
type Winding int8

const (
	Clockwise        Winding = -1
	Degenerate       Winding = 0
	CounterClockwise Winding = 1
)

func (w Winding) String() string {
	switch w {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "degenerate"
	}
}

func (p Polygon) Len() int {
	return len(p)
}

// At returns the vertex at index i, wrapping around the loop in both directions.
func (p Polygon) At(i int) Point2 {
	n := len(p)
	return p[((i%n)+n)%n]
}

func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// SignedArea returns the shoelace area, positive for counter-clockwise loops.
func (p Polygon) SignedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += p[i].Cross(p[(i+1)%n])
	}
	return sum / 2
}

func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

func (p Polygon) Winding() Winding {
	area := p.SignedArea()
	switch {
	case area > 0:
		return CounterClockwise
	case area < 0:
		return Clockwise
	default:
		return Degenerate
	}
}

// Mean returns the arithmetic mean of the vertices.
func (p Polygon) Mean() Point2 {
	var sum Point2
	for _, v := range p {
		sum = sum.Add(v)
	}
	if len(p) == 0 {
		return sum
	}
	return sum.Scale(1 / float64(len(p)))
}

// Centroid returns the area centroid of the enclosed region. Degenerate loops
// fall back to the vertex mean.
func (p Polygon) Centroid() Point2 {
	area := p.SignedArea()
	if area == 0 {
		return p.Mean()
	}
	n := len(p)
	var cx, cy float64
	for i := 0; i < n; i++ {
		a, b := p[i], p[(i+1)%n]
		c := a.Cross(b)
		cx += (a.X + b.X) * c
		cy += (a.Y + b.Y) * c
	}
	return Point2{X: cx / (6 * area), Y: cy / (6 * area)}
}

// IsConvex reports whether every corner of the loop is convex under the
// counter-clockwise convention.
func (p Polygon) IsConvex() bool {
	n := len(p)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if !IsConvex(p.At(i-1), p[i], p.At(i+1)) {
			return false
		}
	}
	return true
}

// IsSimple reports whether no two non-adjacent edges intersect and no two
// consecutive vertices coincide.
func (p Polygon) IsSimple() bool {
	n := len(p)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if p[i] == p[(i+1)%n] {
			return false
		}
	}
	for i := 0; i < n; i++ {
		a1, a2 := p[i], p[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if SegmentsIntersect(a1, a2, p[j], p[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

// Vertices resolves the corners of t against p.
func (p Polygon) Vertices(t Triangle) [3]Point2 {
	return [3]Point2{p[t[0]], p[t[1]], p[t[2]]}
}

// Fingerprint hashes the exact bit patterns of the vertices.
func Fingerprint(p Polygon) uint64 {
	digest := xxhash.New()
	var buf [16]byte
	for _, v := range p {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(v.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(v.Y))
		_, _ = digest.Write(buf[:])
	}
	return digest.Sum64()
}

// SegmentsIntersect reports whether the closed segments p1p2 and q1q2 share a point.
func SegmentsIntersect(p1, p2, q1, q2 Point2) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)

	if d1 != d2 && d3 != d4 && d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0 {
		return true
	}

	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

func orientation(a, b, c Point2) int {
	v := b.Sub(a).Cross(c.Sub(a))
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func onSegment(a, b, p Point2) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
