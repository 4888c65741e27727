// Package conduit routes pipes and cable runs through the habitat. A run is
// a smooth curve (a sagging quadratic Bézier between two endpoints, or a
// Catmull-Rom spline through several anchors) sampled into points and swept
// into one connected tube.
package conduit

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is a parametric path over t in [0, 1].
type Curve interface {
	Point(t float64) r3.Vec
	Start() r3.Vec
	End() r3.Vec
}

// Quadratic is a quadratic Bézier curve.
type Quadratic struct {
	From, Control, To r3.Vec
}

// Route returns the quadratic Bézier from start to end whose control point
// is the midpoint displaced by sag. It reports false when start and end
// coincide, since there is nothing to route.
func Route(start, end, sag r3.Vec) (Quadratic, bool) {
	if start == end {
		return Quadratic{}, false
	}
	mid := r3.Scale(0.5, r3.Add(start, end))
	return Quadratic{From: start, Control: r3.Add(mid, sag), To: end}, true
}

// Point evaluates the curve at t.
func (q Quadratic) Point(t float64) r3.Vec {
	u := 1 - t
	p := r3.Scale(u*u, q.From)
	p = r3.Add(p, r3.Scale(2*u*t, q.Control))
	return r3.Add(p, r3.Scale(t*t, q.To))
}

// Start returns the first endpoint.
func (q Quadratic) Start() r3.Vec { return q.From }

// End returns the last endpoint.
func (q Quadratic) End() r3.Vec { return q.To }

// Spline is a uniform Catmull-Rom spline through ordered anchors. The end
// tangents are formed by mirroring the first and last anchors.
type Spline struct {
	anchors []r3.Vec
}

// NewSpline builds a spline through anchors after dropping consecutive
// duplicates. It reports false if fewer than two distinct anchors remain.
func NewSpline(anchors []r3.Vec) (Spline, bool) {
	pts := make([]r3.Vec, 0, len(anchors))
	for _, a := range anchors {
		if len(pts) > 0 && pts[len(pts)-1] == a {
			continue
		}
		pts = append(pts, a)
	}
	if len(pts) < 2 {
		return Spline{}, false
	}
	return Spline{anchors: pts}, true
}

// Anchors returns a copy of the anchors the spline passes through.
func (s Spline) Anchors() []r3.Vec {
	return append([]r3.Vec(nil), s.anchors...)
}

// Start returns the first anchor.
func (s Spline) Start() r3.Vec { return s.anchors[0] }

// End returns the last anchor.
func (s Spline) End() r3.Vec { return s.anchors[len(s.anchors)-1] }

// Point evaluates the spline at t. Anchor i is reached exactly at
// t = i/(len-1).
func (s Spline) Point(t float64) r3.Vec {
	n := len(s.anchors) - 1
	switch {
	case t <= 0:
		return s.anchors[0]
	case t >= 1:
		return s.anchors[n]
	}
	f := t * float64(n)
	seg := int(f)
	if seg >= n {
		seg = n - 1
	}
	local := f - float64(seg)
	if local == 0 {
		return s.anchors[seg]
	}
	p1, p2 := s.anchors[seg], s.anchors[seg+1]
	p0 := s.at(seg - 1)
	p3 := s.at(seg + 2)
	return catmullRom(p0, p1, p2, p3, local)
}

// at returns anchor i, mirroring past either end.
func (s Spline) at(i int) r3.Vec {
	n := len(s.anchors)
	switch {
	case i < 0:
		return r3.Sub(r3.Scale(2, s.anchors[0]), s.anchors[1])
	case i >= n:
		return r3.Sub(r3.Scale(2, s.anchors[n-1]), s.anchors[n-2])
	}
	return s.anchors[i]
}

func catmullRom(p0, p1, p2, p3 r3.Vec, t float64) r3.Vec {
	t2, t3 := t*t, t*t*t
	out := r3.Scale(2, p1)
	out = r3.Add(out, r3.Scale(t, r3.Sub(p2, p0)))
	out = r3.Add(out, r3.Scale(t2, r3.Add(r3.Sub(r3.Scale(2, p0), r3.Scale(5, p1)), r3.Sub(r3.Scale(4, p2), p3))))
	out = r3.Add(out, r3.Scale(t3, r3.Add(r3.Sub(r3.Scale(3, p1), p0), r3.Sub(p3, r3.Scale(3, p2)))))
	return r3.Scale(0.5, out)
}

// Sample evaluates c at tessellation+1 evenly spaced parameters. The first
// and last samples are exactly the curve's endpoints.
func Sample(c Curve, tessellation int) []r3.Vec {
	if tessellation < 1 {
		tessellation = 1
	}
	pts := make([]r3.Vec, tessellation+1)
	for i := range pts {
		pts[i] = c.Point(float64(i) / float64(tessellation))
	}
	pts[0] = c.Start()
	pts[tessellation] = c.End()
	return pts
}

// Length approximates the arc length of c from tessellation chords.
func Length(c Curve, tessellation int) float64 {
	pts := Sample(c, tessellation)
	var l float64
	for i := 1; i < len(pts); i++ {
		l += r3.Norm(r3.Sub(pts[i], pts[i-1]))
	}
	return l
}
