package mesh

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// triangulate ear-clips a simple counter-clockwise polygon and returns
// counter-clockwise index triples into pts.
func triangulate(pts []r2.Vec) [][3]uint32 {
	n := len(pts)
	if n < 3 {
		return nil
	}
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	tris := make([][3]uint32, 0, n-2)

	for len(remaining) > 3 {
		clipped := false
		for i := range remaining {
			prev := remaining[(i+len(remaining)-1)%len(remaining)]
			cur := remaining[i]
			next := remaining[(i+1)%len(remaining)]
			if !isEar(pts, remaining, prev, cur, next) {
				continue
			}
			tris = append(tris, [3]uint32{uint32(prev), uint32(cur), uint32(next)})
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Numerically degenerate remainder: fan it so the cap stays closed.
			for i := 1; i+1 < len(remaining); i++ {
				tris = append(tris, [3]uint32{uint32(remaining[0]), uint32(remaining[i]), uint32(remaining[i+1])})
			}
			return tris
		}
	}
	return append(tris, [3]uint32{uint32(remaining[0]), uint32(remaining[1]), uint32(remaining[2])})
}

func isEar(pts []r2.Vec, remaining []int, prev, cur, next int) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if r2.Cross(r2.Sub(b, a), r2.Sub(c, b)) <= 0 {
		return false
	}
	for _, idx := range remaining {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		if inTriangle(pts[idx], a, b, c) {
			return false
		}
	}
	return true
}

// inTriangle reports whether p lies inside or on the counter-clockwise
// triangle abc.
func inTriangle(p, a, b, c r2.Vec) bool {
	return r2.Cross(r2.Sub(b, a), r2.Sub(p, a)) >= 0 &&
		r2.Cross(r2.Sub(c, b), r2.Sub(p, b)) >= 0 &&
		r2.Cross(r2.Sub(a, c), r2.Sub(p, c)) >= 0
}
