package mesh

import (
	"math"

	"github.com/chazu/habitat/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tube sweeps a circle of the given radius along path. Frames are carried
// by parallel transport so the tube does not twist, and consecutive path
// segments share their ring of vertices. Both ends are capped.
func (k *MeshKernel) Tube(path []r3.Vec, radius float64, sides int) kernel.Solid {
	pts := dedupe(path)
	if len(pts) < 2 || radius <= 0 {
		return k.Empty()
	}
	if sides < 3 {
		sides = 3
	}

	tangents := make([]r3.Vec, len(pts))
	for i := range pts {
		lo, hi := max(i-1, 0), min(i+1, len(pts)-1)
		tangents[i] = r3.Unit(r3.Sub(pts[hi], pts[lo]))
	}

	normal := initialNormal(tangents[0])
	p := part{smooth: true}
	for i, c := range pts {
		t := tangents[i]
		if i > 0 {
			// Project the previous normal onto the new cross-section plane.
			n := r3.Sub(normal, r3.Scale(r3.Dot(normal, t), t))
			if r3.Norm(n) < 1e-9 {
				n = initialNormal(t)
			}
			normal = r3.Unit(n)
		}
		binormal := r3.Cross(t, normal)
		for s := 0; s < sides; s++ {
			a := 2 * math.Pi * float64(s) / float64(sides)
			off := r3.Add(r3.Scale(radius*math.Cos(a), normal), r3.Scale(radius*math.Sin(a), binormal))
			p.verts = append(p.verts, r3.Add(c, off))
		}
	}

	at := func(i, s int) uint32 { return uint32(i*sides + s%sides) }
	for i := 0; i+1 < len(pts); i++ {
		for s := 0; s < sides; s++ {
			p.addTri(at(i, s), at(i, s+1), at(i+1, s))
			p.addTri(at(i, s+1), at(i+1, s+1), at(i+1, s))
		}
	}

	start := uint32(len(p.verts))
	p.verts = append(p.verts, pts[0])
	end := uint32(len(p.verts))
	p.verts = append(p.verts, pts[len(pts)-1])
	last := len(pts) - 1
	for s := 0; s < sides; s++ {
		p.addTri(start, at(0, s+1), at(0, s))
		p.addTri(end, at(last, s), at(last, s+1))
	}
	return wrap(p)
}

// dedupe drops consecutive points closer than axisEps.
func dedupe(path []r3.Vec) []r3.Vec {
	out := make([]r3.Vec, 0, len(path))
	for _, v := range path {
		if len(out) > 0 && r3.Norm(r3.Sub(v, out[len(out)-1])) < axisEps {
			continue
		}
		out = append(out, v)
	}
	return out
}

// initialNormal picks a unit vector perpendicular to t using the world axis
// least aligned with it.
func initialNormal(t r3.Vec) r3.Vec {
	axis := r3.Vec{X: 1}
	if math.Abs(t.Y) < math.Abs(t.X) && math.Abs(t.Y) <= math.Abs(t.Z) {
		axis = r3.Vec{Y: 1}
	} else if math.Abs(t.Z) < math.Abs(t.X) {
		axis = r3.Vec{Z: 1}
	}
	return r3.Unit(r3.Cross(t, axis))
}
