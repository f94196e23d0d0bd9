package geometry

import "math"

// ToWorld maps a body-local vertex into world space for a body at position
// rotated by rotation radians: position + R(rotation)·local.
func ToWorld(local, position Point2, rotation float64) Point2 {
	return NewTransform(position, rotation).Apply(local)
}

// Transform is a rigid body's pose for a single frame. Build a new one from
// the engine's current state every frame instead of keeping one around.
type Transform struct {
	Position Point2
	cos, sin float64
}

func NewTransform(position Point2, rotation float64) Transform {
	return Transform{
		Position: position,
		cos:      math.Cos(rotation),
		sin:      math.Sin(rotation),
	}
}

// Identity is the transform of a body at the origin with no rotation.
func Identity() Transform {
	return Transform{cos: 1}
}

func (t Transform) Angle() float64 {
	return math.Atan2(t.sin, t.cos)
}

// Apply rotates v then translates it.
func (t Transform) Apply(v Point2) Point2 {
	return Point2{
		X: t.Position.X + (v.X*t.cos - v.Y*t.sin),
		Y: t.Position.Y + (v.X*t.sin + v.Y*t.cos),
	}
}

// ApplyAll transforms every vertex of p into a new polygon.
func (t Transform) ApplyAll(p Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = t.Apply(v)
	}
	return out
}

// ToLocal is the inverse of Apply.
func (t Transform) ToLocal(v Point2) Point2 {
	d := v.Sub(t.Position)
	return Point2{
		X: d.X*t.cos + d.Y*t.sin,
		Y: -d.X*t.sin + d.Y*t.cos,
	}
}
