package geometry

import "fmt"

// Triangle holds three indices into the vertex list of a Polygon.
type Triangle [3]int

// Triangulate decomposes a simple polygon into len(p)-2 triangles by ear
// clipping. Every triangle is wound the same way as p and only references
// existing vertices. For convex input the result is the fan around vertex 0.
func Triangulate(p Polygon) ([]Triangle, error) {
	n := len(p)
	if n < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrNotSimplePolygon, n)
	}

	winding := p.Winding()
	if winding == Degenerate {
		return nil, fmt.Errorf("%w: zero area", ErrNotSimplePolygon)
	}

	// Work on the counter-clockwise ordering; clockwise input is walked in
	// reverse and its triangles are flipped back on output.
	remaining := make([]int, n)
	for i := range remaining {
		if winding == CounterClockwise {
			remaining[i] = i
		} else {
			remaining[i] = (n - i) % n
		}
	}

	triangles := make([]Triangle, 0, n-2)
	emit := func(a, b, c int) {
		if winding == CounterClockwise {
			triangles = append(triangles, Triangle{a, b, c})
		} else {
			triangles = append(triangles, Triangle{c, b, a})
		}
	}

	for len(remaining) > 3 {
		m := len(remaining)
		clipped := false
		for k := 0; k < m; k++ {
			i := (k + 1) % m
			prev, cur, next := remaining[(i+m-1)%m], remaining[i], remaining[(i+1)%m]
			if !isEar(p, remaining, prev, cur, next) {
				continue
			}
			emit(prev, cur, next)
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, fmt.Errorf("%w: no ear among %d remaining vertices", ErrNotSimplePolygon, m)
		}
	}
	emit(remaining[0], remaining[1], remaining[2])

	return triangles, nil
}

// TriangulateFan fans triangles (0, i+1, i+2) out of vertex 0. The result is
// only a valid decomposition when p is convex; use Triangulate otherwise.
func TriangulateFan(p Polygon) ([]Triangle, error) {
	n := len(p)
	if n < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrNotSimplePolygon, n)
	}
	triangles := make([]Triangle, 0, n-2)
	for i := 0; i < n-2; i++ {
		triangles = append(triangles, Triangle{0, i + 1, i + 2})
	}
	return triangles, nil
}

func isEar(p Polygon, remaining []int, prev, cur, next int) bool {
	a, b, c := p[prev], p[cur], p[next]
	if !IsConvex(a, b, c) {
		return false
	}
	for _, idx := range remaining {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		v := p[idx]
		if v == a || v == b || v == c {
			continue
		}
		if inTriangle(a, b, c, v) {
			return false
		}
	}
	return true
}
