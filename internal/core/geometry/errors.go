package geometry

import "errors"

var (
	// ErrInvalidVertexCount is returned when a vertex count range has a lower
	// bound below 3 or contains no values.
	ErrInvalidVertexCount = errors.New("invalid vertex count")
	// ErrInvalidExtent is returned for non-positive or non-finite extents.
	ErrInvalidExtent = errors.New("invalid extent")
	// ErrNotSimplePolygon is returned when a polygon cannot be triangulated.
	ErrNotSimplePolygon = errors.New("not a simple polygon")
)
