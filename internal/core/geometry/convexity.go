package geometry

// convexityEpsilon is relative to the product of the two edge lengths, so the
// classification does not change when the corner is scaled or translated.
const convexityEpsilon = 1e-10

// IsConvex reports whether corner is a convex vertex of a counter-clockwise
// loop running prev -> corner -> next. Collinear and near-collinear corners
// are classified as convex.
func IsConvex(prev, corner, next Point2) bool {
	a := prev.Sub(corner)
	b := next.Sub(corner)
	return b.Cross(a) >= -convexityEpsilon*a.Length()*b.Length()
}

// TriangleArea returns the signed area of abc, positive when counter-clockwise.
func TriangleArea(a, b, c Point2) float64 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

// inTriangle reports whether p lies inside or on the boundary of the
// counter-clockwise triangle abc.
func inTriangle(a, b, c, p Point2) bool {
	return b.Sub(a).Cross(p.Sub(a)) >= 0 &&
		c.Sub(b).Cross(p.Sub(b)) >= 0 &&
		a.Sub(c).Cross(p.Sub(c)) >= 0
}
