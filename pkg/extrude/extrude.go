// Package extrude turns closed profiles into thin solids centered on their
// own bounding box, ready to be rotated and dropped into place.
package extrude

import (
	"github.com/chazu/habitat/pkg/kernel"
	"github.com/chazu/habitat/pkg/profile"
	"gonum.org/v1/gonum/spatial/r2"
)

// Solidify extrudes p by thickness along local Z and recenters the result
// so the profile's bounding box center sits on the origin and the slab
// spans [-thickness/2, thickness/2] in Z.
//
// An empty profile or non-positive thickness yields k.Empty(), which
// composes like any other solid.
func Solidify(k kernel.Kernel, p profile.Profile, thickness float64) kernel.Solid {
	if p.Empty() || thickness <= 0 {
		return k.Empty()
	}
	s := k.Extrude(p.Outline(), thickness)
	if s.Empty() {
		return s
	}
	c := Pivot(p)
	return k.Translate(s, -c.X, -c.Y, -thickness/2)
}

// Pivot returns the offset Solidify removed: the center of the profile's
// bounding box. Adding it back places the solid at the profile's original
// coordinates.
func Pivot(p profile.Profile) r2.Vec {
	b := p.Bounds()
	return r2.Scale(0.5, r2.Add(b.Min, b.Max))
}
