// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Surfaces are implicit and
// meshed with marching cubes, so outline vertices are approximated rather
// than reproduced exactly; the mesh kernel is the exact alternative.
package sdfx

import (
	"math"

	"github.com/chazu/habitat/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*SdfxKernel)(nil)
var _ kernel.Solid = (*sdfxSolid)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid. A nil SDF is the
// empty solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	if s.s == nil {
		return min, max
	}
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// Empty reports whether the solid is the empty solid.
func (s *sdfxSolid) Empty() bool {
	return s.s == nil
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel meshing with the given number of marching
// cubes cells along the longest axis. Non-positive cells selects
// DefaultMeshCells.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	if s == nil {
		return nil
	}
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Empty returns the empty solid.
func (k *SdfxKernel) Empty() kernel.Solid {
	return &sdfxSolid{}
}

// zToY turns a Z-aligned sdfx shape into the kernel's Y-up convention.
var zToY = sdf.RotateX(-math.Pi / 2)

// Box creates a box centered on the origin.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	if x <= 0 || y <= 0 || z <= 0 {
		return k.Empty()
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return k.Empty()
	}
	return wrap(s)
}

// Cylinder creates a cylinder along Y with the given height and radius.
// The segments parameter is ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if height <= 0 || radius <= 0 {
		return k.Empty()
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return k.Empty()
	}
	return wrap(sdf.Transform3D(s, zToY))
}

// Sphere creates a sphere centered on the origin. Segment counts are
// ignored.
func (k *SdfxKernel) Sphere(radius float64, widthSegments, heightSegments int) kernel.Solid {
	if radius <= 0 {
		return k.Empty()
	}
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return k.Empty()
	}
	return wrap(s)
}

func polygon(outline []r2.Vec) (sdf.SDF2, bool) {
	pts := kernel.CleanOutline(outline)
	if pts == nil {
		return nil, false
	}
	vs := make([]v2.Vec, len(pts))
	for i, p := range pts {
		vs[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	s, err := sdf.Polygon2D(vs)
	if err != nil {
		return nil, false
	}
	return s, true
}

// Extrude sweeps a closed XY outline along Z from z = 0 to z = thickness.
// sdf.Extrude3D is centered, so the result is lifted by half the thickness.
func (k *SdfxKernel) Extrude(outline []r2.Vec, thickness float64) kernel.Solid {
	if thickness <= 0 {
		return k.Empty()
	}
	s2, ok := polygon(outline)
	if !ok {
		return k.Empty()
	}
	lift := sdf.Translate3d(v3.Vec{Z: thickness / 2})
	return wrap(sdf.Transform3D(sdf.Extrude3D(s2, thickness), lift))
}

// Revolve sweeps a closed (radius, height) outline about Y.
func (k *SdfxKernel) Revolve(outline []r2.Vec, segments int) kernel.Solid {
	for _, p := range outline {
		if p.X < -1e-9 {
			return k.Empty()
		}
	}
	s2, ok := polygon(outline)
	if !ok {
		return k.Empty()
	}
	s, err := sdf.Revolve3D(s2)
	if err != nil {
		return k.Empty()
	}
	return wrap(sdf.Transform3D(s, zToY))
}

// Tube approximates a swept circle with one cylinder per path segment and
// a sphere at every interior joint, unioned into a single SDF.
func (k *SdfxKernel) Tube(path []r3.Vec, radius float64, sides int) kernel.Solid {
	if radius <= 0 {
		return k.Empty()
	}
	var pieces []sdf.SDF3
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		d := r3.Sub(b, a)
		l := r3.Norm(d)
		if l < 1e-9 {
			continue
		}
		cyl, err := sdf.Cylinder3D(l, radius, 0)
		if err != nil {
			continue
		}
		theta := math.Acos(math.Max(-1, math.Min(1, d.Z/l)))
		phi := math.Atan2(d.Y, d.X)
		mid := r3.Scale(0.5, r3.Add(a, b))
		m := sdf.Translate3d(v3.Vec{X: mid.X, Y: mid.Y, Z: mid.Z}).
			Mul(sdf.RotateZ(phi)).
			Mul(sdf.RotateY(theta))
		pieces = append(pieces, sdf.Transform3D(cyl, m))
		if i > 0 {
			joint, err := sdf.Sphere3D(radius)
			if err == nil {
				pieces = append(pieces, sdf.Transform3D(joint, sdf.Translate3d(v3.Vec{X: a.X, Y: a.Y, Z: a.Z})))
			}
		}
	}
	if len(pieces) == 0 {
		return k.Empty()
	}
	if len(pieces) == 1 {
		return wrap(pieces[0])
	}
	return wrap(sdf.Union3D(pieces...))
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	sa, sb := unwrap(a), unwrap(b)
	switch {
	case sa == nil:
		return wrap(sb)
	case sb == nil:
		return wrap(sa)
	}
	return wrap(sdf.Union3D(sa, sb))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	inner := unwrap(s)
	if inner == nil {
		return k.Empty()
	}
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(inner, m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	inner := unwrap(s)
	if inner == nil {
		return k.Empty()
	}
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(inner, m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)
	if sdf3 == nil {
		return &kernel.Mesh{}, nil
	}

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for _, tri := range triangles {
		// Compute face normal. Marching cubes can emit slivers with no
		// usable normal; drop them.
		n := tri.Normal()
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
			continue
		}
		base := uint32(len(vertices) / 3)
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, base+uint32(j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
