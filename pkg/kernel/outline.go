package kernel

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// outlineEps is the distance below which two outline points are merged.
const outlineEps = 1e-9

// CleanOutline prepares a closed 2D loop for a kernel: it drops the
// repeated closing point, consecutive duplicates and collinear points, and
// reverses the loop if needed so the result is counter-clockwise. A loop
// that collapses to fewer than three points returns nil.
func CleanOutline(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && near(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && near(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}

	// Repeatedly remove collinear points until none remain.
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			prev := out[(i+len(out)-1)%len(out)]
			next := out[(i+1)%len(out)]
			if math.Abs(r2.Cross(r2.Sub(out[i], prev), r2.Sub(next, out[i]))) < outlineEps {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	if len(out) < 3 {
		return nil
	}
	if SignedArea(out) < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// SignedArea returns the shoelace area of an open loop, positive when
// counter-clockwise.
func SignedArea(pts []r2.Vec) float64 {
	var a float64
	for i := range pts {
		a += r2.Cross(pts[i], pts[(i+1)%len(pts)])
	}
	return a / 2
}

func near(a, b r2.Vec) bool {
	return r2.Norm(r2.Sub(a, b)) < outlineEps
}
