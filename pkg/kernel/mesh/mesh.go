// Package mesh implements the kernel.Kernel interface with an exact
// polygonal representation: every solid is a list of triangulated parts
// built directly from profiles, so outline vertices survive into the output
// mesh unchanged. Union is concatenation; there is no boolean CSG.
package mesh

import (
	"fmt"
	"math"

	"github.com/chazu/habitat/pkg/kernel"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*MeshKernel)(nil)
var _ kernel.Solid = (*meshSolid)(nil)

const axisEps = 1e-9

// part is one closed triangulated surface. Smooth parts share vertices and
// get averaged normals; flat parts get one normal per face.
type part struct {
	verts  []r3.Vec
	tris   [][3]uint32
	smooth bool
}

// meshSolid is the kernel.Solid of the mesh kernel.
type meshSolid struct {
	parts []part
}

// BoundingBox returns the axis-aligned bounding box.
func (s *meshSolid) BoundingBox() (min, max [3]float64) {
	if s.Empty() {
		return min, max
	}
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range s.parts {
		for _, v := range p.verts {
			lo = r3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
			hi = r3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
		}
	}
	return [3]float64{lo.X, lo.Y, lo.Z}, [3]float64{hi.X, hi.Y, hi.Z}
}

// Empty reports whether the solid has no triangles.
func (s *meshSolid) Empty() bool {
	for _, p := range s.parts {
		if len(p.tris) > 0 {
			return false
		}
	}
	return true
}

// MeshKernel implements kernel.Kernel with exact triangle meshes.
type MeshKernel struct{}

// New returns a new MeshKernel.
func New() *MeshKernel {
	return &MeshKernel{}
}

func unwrap(s kernel.Solid) *meshSolid {
	if s == nil {
		return &meshSolid{}
	}
	return s.(*meshSolid)
}

func wrap(parts ...part) kernel.Solid {
	out := make([]part, 0, len(parts))
	for _, p := range parts {
		if len(p.tris) > 0 {
			out = append(out, p)
		}
	}
	return &meshSolid{parts: out}
}

// Empty returns a solid with no geometry.
func (k *MeshKernel) Empty() kernel.Solid {
	return &meshSolid{}
}

// Box creates a box centered on the origin.
func (k *MeshKernel) Box(x, y, z float64) kernel.Solid {
	if x <= 0 || y <= 0 || z <= 0 {
		return k.Empty()
	}
	w, h := x/2, y/2
	slab := k.Extrude([]r2.Vec{{X: -w, Y: -h}, {X: w, Y: -h}, {X: w, Y: h}, {X: -w, Y: h}}, z)
	return k.Translate(slab, 0, 0, -z/2)
}

// Cylinder creates a cylinder along Y, centered on the origin.
func (k *MeshKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if height <= 0 || radius <= 0 {
		return k.Empty()
	}
	h := height / 2
	return k.Revolve([]r2.Vec{{X: 0, Y: -h}, {X: radius, Y: -h}, {X: radius, Y: h}, {X: 0, Y: h}}, segments)
}

// Sphere creates a UV sphere centered on the origin with widthSegments
// around Y and heightSegments from pole to pole.
func (k *MeshKernel) Sphere(radius float64, widthSegments, heightSegments int) kernel.Solid {
	if radius <= 0 {
		return k.Empty()
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	arc := make([]r2.Vec, 0, heightSegments+1)
	for i := 0; i <= heightSegments; i++ {
		theta := math.Pi * (1 - float64(i)/float64(heightSegments))
		arc = append(arc, r2.Vec{X: radius * math.Sin(theta), Y: radius * math.Cos(theta)})
	}
	arc[0].X, arc[heightSegments].X = 0, 0
	p, ok := revolve(arc, widthSegments)
	if !ok {
		return k.Empty()
	}
	p.smooth = true
	return wrap(p)
}

// Extrude sweeps a closed outline in the XY plane from z = 0 to
// z = thickness. Caps are ear-clipped.
func (k *MeshKernel) Extrude(outline []r2.Vec, thickness float64) kernel.Solid {
	pts := kernel.CleanOutline(outline)
	if pts == nil || thickness <= 0 {
		return k.Empty()
	}
	n := len(pts)
	caps := triangulate(pts)
	if len(caps) == 0 {
		return k.Empty()
	}

	p := part{verts: make([]r3.Vec, 0, 2*n)}
	for _, v := range pts {
		p.verts = append(p.verts, r3.Vec{X: v.X, Y: v.Y})
	}
	for _, v := range pts {
		p.verts = append(p.verts, r3.Vec{X: v.X, Y: v.Y, Z: thickness})
	}
	top := uint32(n)
	for _, t := range caps {
		p.tris = append(p.tris,
			[3]uint32{top + t[0], top + t[1], top + t[2]},
			[3]uint32{t[2], t[1], t[0]},
		)
	}
	for i := 0; i < n; i++ {
		j := uint32((i + 1) % n)
		b := uint32(i)
		p.tris = append(p.tris,
			[3]uint32{b, j, top + j},
			[3]uint32{b, top + j, top + b},
		)
	}
	return wrap(p)
}

// Revolve sweeps a closed (radius, height) outline a full turn about Y.
// Points on the axis collapse to a single vertex.
func (k *MeshKernel) Revolve(outline []r2.Vec, segments int) kernel.Solid {
	p, ok := revolve(outline, segments)
	if !ok {
		return k.Empty()
	}
	return wrap(p)
}

func revolve(outline []r2.Vec, segments int) (part, bool) {
	pts := kernel.CleanOutline(outline)
	if pts == nil {
		return part{}, false
	}
	if segments < 3 {
		segments = 3
	}
	for _, v := range pts {
		if v.X < -axisEps {
			return part{}, false
		}
	}

	var p part
	// ring[j][s] is the vertex index of outline point j at step s.
	ring := make([][]uint32, len(pts))
	for j, v := range pts {
		ring[j] = make([]uint32, segments)
		if v.X <= axisEps {
			idx := uint32(len(p.verts))
			p.verts = append(p.verts, r3.Vec{Y: v.Y})
			for s := range ring[j] {
				ring[j][s] = idx
			}
			continue
		}
		for s := 0; s < segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)
			ring[j][s] = uint32(len(p.verts))
			p.verts = append(p.verts, r3.Vec{X: v.X * math.Cos(phi), Y: v.Y, Z: v.X * math.Sin(phi)})
		}
	}

	for j := range pts {
		jn := (j + 1) % len(pts)
		for s := 0; s < segments; s++ {
			sn := (s + 1) % segments
			p.addTri(ring[j][s], ring[jn][s], ring[j][sn])
			p.addTri(ring[jn][s], ring[jn][sn], ring[j][sn])
		}
	}
	return p, len(p.tris) > 0
}

// addTri appends a triangle unless two of its corners share a vertex.
func (p *part) addTri(a, b, c uint32) {
	if a == b || b == c || a == c {
		return
	}
	p.tris = append(p.tris, [3]uint32{a, b, c})
}

// Union concatenates the surfaces of a and b.
func (k *MeshKernel) Union(a, b kernel.Solid) kernel.Solid {
	sa, sb := unwrap(a), unwrap(b)
	parts := make([]part, 0, len(sa.parts)+len(sb.parts))
	parts = append(parts, sa.parts...)
	parts = append(parts, sb.parts...)
	return &meshSolid{parts: parts}
}

// Translate moves a solid by (x, y, z).
func (k *MeshKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return transform(unwrap(s), mgl64.Translate3D(x, y, z))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// applying X first.
func (k *MeshKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := mgl64.HomogRotate3DZ(mgl64.DegToRad(z)).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(y))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(x)))
	return transform(unwrap(s), m)
}

func transform(s *meshSolid, m mgl64.Mat4) kernel.Solid {
	out := &meshSolid{parts: make([]part, len(s.parts))}
	for i, p := range s.parts {
		verts := make([]r3.Vec, len(p.verts))
		for j, v := range p.verts {
			t := mgl64.TransformCoordinate(mgl64.Vec3{v.X, v.Y, v.Z}, m)
			verts[j] = r3.Vec{X: t[0], Y: t[1], Z: t[2]}
		}
		out.parts[i] = part{verts: verts, tris: p.tris, smooth: p.smooth}
	}
	return out
}

// ToMesh flattens the solid into a render mesh.
func (k *MeshKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ms := unwrap(s)
	m := &kernel.Mesh{}
	for pi, p := range ms.parts {
		for _, v := range p.verts {
			if math.IsNaN(v.X+v.Y+v.Z) || math.IsInf(v.X+v.Y+v.Z, 0) {
				return nil, fmt.Errorf("mesh: part %d: non-finite vertex %v", pi, v)
			}
		}
		if p.smooth {
			appendSmooth(m, p)
		} else {
			appendFlat(m, p)
		}
	}
	return m, nil
}

func appendSmooth(m *kernel.Mesh, p part) {
	base := uint32(m.VertexCount())
	verts := make([]float32, 0, len(p.verts)*3)
	for _, v := range p.verts {
		verts = append(verts, float32(v.X), float32(v.Y), float32(v.Z))
	}
	idx := make([]uint32, 0, len(p.tris)*3)
	for _, t := range p.tris {
		idx = append(idx, t[0], t[1], t[2])
	}
	m.Normals = append(m.Normals, kernel.SmoothNormals(verts, idx)...)
	m.Vertices = append(m.Vertices, verts...)
	for _, i := range idx {
		m.Indices = append(m.Indices, base+i)
	}
}

func appendFlat(m *kernel.Mesh, p part) {
	for _, t := range p.tris {
		a, b, c := p.verts[t[0]], p.verts[t[1]], p.verts[t[2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		l := r3.Norm(n)
		if l < 1e-15 {
			continue
		}
		n = r3.Scale(1/l, n)
		base := uint32(m.VertexCount())
		for _, v := range []r3.Vec{a, b, c} {
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
}
