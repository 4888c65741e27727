package kernel

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene node this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Bounds returns the axis-aligned box around the vertices. An empty mesh
// returns an empty box.
func (m *Mesh) Bounds() r3.Box {
	if m.IsEmpty() {
		return r3.Box{}
	}
	b := r3.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		x, y, z := float64(m.Vertices[i]), float64(m.Vertices[i+1]), float64(m.Vertices[i+2])
		b.Min.X, b.Max.X = math.Min(b.Min.X, x), math.Max(b.Max.X, x)
		b.Min.Y, b.Max.Y = math.Min(b.Min.Y, y), math.Max(b.Max.Y, y)
		b.Min.Z, b.Max.Z = math.Min(b.Min.Z, z), math.Max(b.Max.Z, z)
	}
	return b
}

// Volume returns the signed volume enclosed by the mesh using the
// divergence theorem. It is positive for closed meshes with outward facing,
// counter-clockwise triangles.
func (m *Mesh) Volume() float64 {
	var v float64
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a := m.vertex(m.Indices[t])
		b := m.vertex(m.Indices[t+1])
		c := m.vertex(m.Indices[t+2])
		v += r3.Dot(a, r3.Cross(b, c))
	}
	return v / 6
}

func (m *Mesh) vertex(i uint32) r3.Vec {
	return r3.Vec{
		X: float64(m.Vertices[i*3]),
		Y: float64(m.Vertices[i*3+1]),
		Z: float64(m.Vertices[i*3+2]),
	}
}

// SmoothNormals generates per-vertex normals by averaging the face normals
// of all triangles incident on each vertex.
func SmoothNormals(vertices []float32, indices []uint32) []float32 {
	numVerts := len(vertices) / 3
	acc := make([]r3.Vec, numVerts)
	at := func(i uint32) r3.Vec {
		return r3.Vec{X: float64(vertices[i*3]), Y: float64(vertices[i*3+1]), Z: float64(vertices[i*3+2])}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		a, b, c := at(i0), at(i1), at(i2)
		// Unnormalized, so larger faces weigh more.
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		for _, idx := range []uint32{i0, i1, i2} {
			acc[idx] = r3.Add(acc[idx], n)
		}
	}

	normals := make([]float32, numVerts*3)
	for i, n := range acc {
		if l := r3.Norm(n); l > 1e-12 {
			n = r3.Scale(1/l, n)
		}
		normals[i*3+0] = float32(n.X)
		normals[i*3+1] = float32(n.Y)
		normals[i*3+2] = float32(n.Z)
	}
	return normals
}
