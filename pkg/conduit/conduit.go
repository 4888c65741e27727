package conduit

import (
	"github.com/chazu/habitat/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSides is the number of facets around a conduit when a Spec does
// not set one.
const DefaultSides = 8

// Spec describes one conduit run. With no Via anchors the run is a sagging
// quadratic from Start to End; otherwise it is a spline through Start, each
// Via anchor and End.
type Spec struct {
	Name         string   `json:"name"`
	Start        r3.Vec   `json:"start"`
	End          r3.Vec   `json:"end"`
	Sag          r3.Vec   `json:"sag"`
	Via          []r3.Vec `json:"via,omitempty"`
	Radius       float64  `json:"radius"`
	Tessellation int      `json:"tessellation"`
	Sides        int      `json:"sides,omitempty"`
}

// Curve returns the path s describes, or false when it collapses to
// a point.
func (s Spec) Curve() (Curve, bool) {
	if len(s.Via) == 0 {
		q, ok := Route(s.Start, s.End, s.Sag)
		if !ok {
			return nil, false
		}
		return q, true
	}
	anchors := make([]r3.Vec, 0, len(s.Via)+2)
	anchors = append(anchors, s.Start)
	anchors = append(anchors, s.Via...)
	anchors = append(anchors, s.End)
	sp, ok := NewSpline(anchors)
	if !ok {
		return nil, false
	}
	return sp, true
}

// Sweep samples c and sweeps a tube of radius along the samples. It
// reports false, with no solid, when the sampled path has no length.
func Sweep(k kernel.Kernel, c Curve, radius float64, tessellation, sides int) (kernel.Solid, bool) {
	if c == nil || radius <= 0 {
		return nil, false
	}
	pts := Sample(c, tessellation)
	moved := false
	for _, p := range pts[1:] {
		if p != pts[0] {
			moved = true
			break
		}
	}
	if !moved {
		return nil, false
	}
	if sides < 3 {
		sides = DefaultSides
	}
	s := k.Tube(pts, radius, sides)
	if s.Empty() {
		return nil, false
	}
	return s, true
}

// Build routes and sweeps a Spec in one call.
func Build(k kernel.Kernel, s Spec) (kernel.Solid, bool) {
	c, ok := s.Curve()
	if !ok {
		return nil, false
	}
	return Sweep(k, c, s.Radius, s.Tessellation, s.Sides)
}
