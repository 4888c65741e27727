// Package profile builds closed 2D outlines: wall cross-sections whose outer
// edge follows a bounding sphere, door and window outlines, hatch rims and
// annular floor tiles. A profile is later extruded or revolved into a solid
// by a geometry kernel.
//
// Wall profiles live in a wall's local plane: X is the radial distance from
// the habitat axis and Y is height relative to the wall's vertical center.
package profile

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Profile is a closed loop of 2D points. The first and last points are
// identical. The zero Profile is empty (degenerate).
type Profile struct {
	Points []r2.Vec
}

// Empty reports whether the profile has no extent. Empty profiles are the
// safe-degradation result of walls that would poke through their sphere.
func (p Profile) Empty() bool {
	return len(p.Points) < 4
}

// Closed reports whether the first and last points coincide.
func (p Profile) Closed() bool {
	n := len(p.Points)
	return n > 0 && p.Points[0] == p.Points[n-1]
}

// Len returns the number of points, including the repeated closing point.
func (p Profile) Len() int {
	return len(p.Points)
}

// Bounds returns the axis-aligned bounding box of the profile. An empty
// profile has a zero box.
func (p Profile) Bounds() r2.Box {
	if len(p.Points) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		b.Min.X = math.Min(b.Min.X, pt.X)
		b.Min.Y = math.Min(b.Min.Y, pt.Y)
		b.Max.X = math.Max(b.Max.X, pt.X)
		b.Max.Y = math.Max(b.Max.Y, pt.Y)
	}
	return b
}

// SignedArea returns the shoelace area of the loop. It is positive for
// counter-clockwise winding.
func (p Profile) SignedArea() float64 {
	return signedArea(p.Points)
}

// Outline returns the loop without its closing point, which is the form the
// geometry kernels consume.
func (p Profile) Outline() []r2.Vec {
	if p.Empty() {
		return nil
	}
	n := len(p.Points)
	if p.Closed() {
		n--
	}
	out := make([]r2.Vec, n)
	copy(out, p.Points[:n])
	return out
}

// closeLoop appends the first point to pts unless it is already closed.
func closeLoop(pts []r2.Vec) Profile {
	if len(pts) == 0 {
		return Profile{}
	}
	if pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	return Profile{Points: pts}
}

func signedArea(pts []r2.Vec) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += r2.Cross(pts[i], pts[j])
	}
	return a / 2
}
