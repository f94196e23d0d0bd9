package geometry

import "math"

// Point2 is a 2D point or vector.
type Point2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func NewPoint2(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

func (p Point2) Add(q Point2) Point2 {
	return Point2{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point2) Sub(q Point2) Point2 {
	return Point2{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point2) Scale(factor float64) Point2 {
	return Point2{X: p.X * factor, Y: p.Y * factor}
}

func (p Point2) Dot(q Point2) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product of p and q.
func (p Point2) Cross(q Point2) float64 {
	return p.X*q.Y - p.Y*q.X
}

func (p Point2) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point2) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

func (p Point2) Distance(q Point2) float64 {
	return p.Sub(q).Length()
}

// Angle returns the angle of p measured from the positive x axis, in (-π, π].
func (p Point2) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// ApproxEqual reports whether p and q differ by at most tolerance on each axis.
func (p Point2) ApproxEqual(q Point2, tolerance float64) bool {
	return math.Abs(p.X-q.X) <= tolerance && math.Abs(p.Y-q.Y) <= tolerance
}

func (p Point2) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
