package kernel

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// tetra is a unit right tetrahedron with outward-facing triangles.
func tetra() *Mesh {
	return &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1},
		Indices:  []uint32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3},
	}
}

func TestMeshVolume(t *testing.T) {
	if got := tetra().Volume(); math.Abs(got-1.0/6) > 1e-9 {
		t.Errorf("Volume() = %f, want %f", got, 1.0/6)
	}
	if got := (&Mesh{}).Volume(); got != 0 {
		t.Errorf("empty Volume() = %f, want 0", got)
	}
}

func TestMeshBounds(t *testing.T) {
	b := tetra().Bounds()
	if b.Min != (r3.Vec{}) || b.Max != (r3.Vec{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Bounds() = %v, want unit box", b)
	}
}

func TestSmoothNormalsUnitLength(t *testing.T) {
	m := tetra()
	normals := SmoothNormals(m.Vertices, m.Indices)
	if len(normals) != len(m.Vertices) {
		t.Fatalf("got %d normal floats, want %d", len(normals), len(m.Vertices))
	}
	for i := 0; i < len(normals); i += 3 {
		n := r3.Vec{X: float64(normals[i]), Y: float64(normals[i+1]), Z: float64(normals[i+2])}
		if math.Abs(r3.Norm(n)-1) > 1e-5 {
			t.Errorf("normal %d has length %f", i/3, r3.Norm(n))
		}
	}
	// The apex on +Z touches three faces whose summed normal points away
	// from the origin.
	if normals[9+2] <= 0 {
		t.Errorf("apex normal z = %f, want > 0", normals[11])
	}
}

func TestCleanOutline(t *testing.T) {
	tests := []struct {
		name string
		in   []r2.Vec
		want int
	}{
		{"closed square", []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}, 4},
		{"duplicates", []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}}, 4},
		{"collinear midpoint", []r2.Vec{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, 4},
		{"clockwise", []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, 4},
		{"segment", []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanOutline(tt.in)
			if len(got) != tt.want {
				t.Fatalf("got %d points, want %d", len(got), tt.want)
			}
			if tt.want > 0 && SignedArea(got) <= 0 {
				t.Errorf("cleaned outline not counter-clockwise: area %f", SignedArea(got))
			}
		})
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

func (s *stubSolid) Empty() bool { return s.minBB == s.maxBB }

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. All methods return trivial results.
type stubKernel struct{ unions int }

func (k *stubKernel) Empty() Solid { return &stubSolid{} }

func (k *stubKernel) Box(x, y, z float64) Solid {
	return &stubSolid{
		minBB: [3]float64{-x / 2, -y / 2, -z / 2},
		maxBB: [3]float64{x / 2, y / 2, z / 2},
	}
}

func (k *stubKernel) Cylinder(height, radius float64, _ int) Solid {
	return &stubSolid{
		minBB: [3]float64{-radius, -height / 2, -radius},
		maxBB: [3]float64{radius, height / 2, radius},
	}
}

func (k *stubKernel) Sphere(radius float64, _, _ int) Solid { return k.Box(2*radius, 2*radius, 2*radius) }

func (k *stubKernel) Extrude(_ []r2.Vec, _ float64) Solid    { return k.Empty() }
func (k *stubKernel) Revolve(_ []r2.Vec, _ int) Solid        { return k.Empty() }
func (k *stubKernel) Tube(_ []r3.Vec, _ float64, _ int) Solid { return k.Empty() }

func (k *stubKernel) Union(a, _ Solid) Solid { k.unions++; return a }

func (k *stubKernel) Translate(s Solid, _, _, _ float64) Solid { return s }
func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid    { return s }

func (k *stubKernel) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoxBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Box(10, 20, 30)
	min, max := s.BoundingBox()
	if min != [3]float64{-5, -10, -15} {
		t.Errorf("Box min = %v, want [-5 -10 -15]", min)
	}
	if max != [3]float64{5, 10, 15} {
		t.Errorf("Box max = %v, want [5 10 15]", max)
	}
}

func TestUnionAll(t *testing.T) {
	k := &stubKernel{}
	if s := UnionAll(k); !s.Empty() {
		t.Error("UnionAll() with no solids should be empty")
	}
	UnionAll(k, k.Box(1, 1, 1), nil, k.Box(1, 1, 1), k.Box(1, 1, 1))
	if k.unions != 2 {
		t.Errorf("got %d unions, want 2", k.unions)
	}
}
