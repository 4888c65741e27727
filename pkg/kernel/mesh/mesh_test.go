package mesh

import (
	"math"
	"testing"

	"github.com/chazu/habitat/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func toMesh(t *testing.T, k *MeshKernel, s kernel.Solid) *kernel.Mesh {
	t.Helper()
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if len(m.Vertices) != len(m.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(m.Vertices), len(m.Normals))
	}
	return m
}

func TestBox(t *testing.T) {
	k := New()
	m := toMesh(t, k, k.Box(2, 3, 4))
	if m.TriangleCount() != 12 {
		t.Errorf("box triangle count = %d, want 12", m.TriangleCount())
	}
	if v := m.Volume(); math.Abs(v-24) > 1e-4 {
		t.Errorf("box volume = %f, want 24", v)
	}
	min, max := k.Box(2, 3, 4).BoundingBox()
	if min != [3]float64{-1, -1.5, -2} || max != [3]float64{1, 1.5, 2} {
		t.Errorf("box bounds = %v %v", min, max)
	}
}

func TestVolumes(t *testing.T) {
	k := New()
	lShape := []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}}
	polyArea := func(n int, r float64) float64 {
		return float64(n) / 2 * r * r * math.Sin(2*math.Pi/float64(n))
	}
	tests := []struct {
		name string
		s    kernel.Solid
		want float64
		tol  float64
	}{
		{"cylinder", k.Cylinder(2, 1, 64), polyArea(64, 1) * 2, 1e-4},
		{"concave extrude", k.Extrude(lShape, 0.5), 1.5, 1e-5},
		{"clockwise extrude", k.Extrude([]r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, 2), 2, 1e-5},
		{"annulus revolve", k.Revolve([]r2.Vec{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}}, 128),
			polyArea(128, 2) - polyArea(128, 1), 1e-4},
		{"sphere", k.Sphere(1, 64, 32), 4.0 / 3 * math.Pi, 0.05},
		{"straight tube", k.Tube([]r3.Vec{{}, {Z: 1}, {Z: 3}}, 0.5, 32), polyArea(32, 0.5) * 3, 1e-4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.s.Empty() {
				t.Fatal("unexpected empty solid")
			}
			m := toMesh(t, k, tt.s)
			if v := m.Volume(); math.Abs(v-tt.want) > tt.tol {
				t.Errorf("volume = %f, want %f", v, tt.want)
			}
		})
	}
}

func TestDegenerateInputsAreEmpty(t *testing.T) {
	k := New()
	tests := []struct {
		name string
		s    kernel.Solid
	}{
		{"empty", k.Empty()},
		{"zero box", k.Box(0, 1, 1)},
		{"collinear extrude", k.Extrude([]r2.Vec{{X: 0}, {X: 1}, {X: 2}}, 1)},
		{"zero thickness", k.Extrude([]r2.Vec{{X: 0}, {X: 1}, {X: 1, Y: 1}}, 0)},
		{"nil outline", k.Revolve(nil, 16)},
		{"negative radius revolve", k.Revolve([]r2.Vec{{X: -1}, {X: 1}, {X: 1, Y: 1}}, 16)},
		{"single point tube", k.Tube([]r3.Vec{{X: 1}, {X: 1}}, 0.1, 8)},
		{"zero sphere", k.Sphere(0, 8, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.s.Empty() {
				t.Fatal("expected empty solid")
			}
			m := toMesh(t, k, tt.s)
			if !m.IsEmpty() {
				t.Errorf("expected empty mesh, got %d triangles", m.TriangleCount())
			}
			if min, max := tt.s.BoundingBox(); min != max {
				t.Errorf("empty solid bounds %v %v", min, max)
			}
		})
	}
}

func TestUnionConcatenates(t *testing.T) {
	k := New()
	a := k.Box(1, 1, 1)
	b := k.Translate(k.Box(1, 1, 1), 3, 0, 0)
	u := k.Union(a, k.Union(k.Empty(), b))
	m := toMesh(t, k, u)
	if m.TriangleCount() != 24 {
		t.Errorf("union triangle count = %d, want 24", m.TriangleCount())
	}
	min, max := u.BoundingBox()
	if math.Abs(min[0]+0.5) > 1e-9 || math.Abs(max[0]-3.5) > 1e-9 {
		t.Errorf("union x extent = [%f, %f], want [-0.5, 3.5]", min[0], max[0])
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	min, max := k.Translate(k.Box(10, 10, 10), 100, 200, 300).BoundingBox()
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > 1e-9 || math.Abs(max[i]-expectMax[i]) > 1e-9 {
			t.Errorf("axis %d: bounds [%f, %f], want [%f, %f]", i, min[i], max[i], expectMin[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	tests := []struct {
		name    string
		x, y, z float64
		extent  [3]float64
	}{
		{"about z", 0, 0, 90, [3]float64{10, 100, 10}},
		{"about y", 0, 90, 0, [3]float64{10, 10, 100}},
		{"about x", 90, 0, 0, [3]float64{100, 10, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := k.Rotate(box, tt.x, tt.y, tt.z).BoundingBox()
			for i := 0; i < 3; i++ {
				if got := max[i] - min[i]; math.Abs(got-tt.extent[i]) > 1e-6 {
					t.Errorf("axis %d extent = %f, want %f", i, got, tt.extent[i])
				}
			}
		})
	}
}

func TestRotateYawPointsPlusXAlongAngle(t *testing.T) {
	k := New()
	arm := k.Translate(k.Box(1, 0.1, 0.1), 5, 0, 0)
	angle := math.Pi / 3
	min, max := k.Rotate(arm, 0, -angle*180/math.Pi, 0).BoundingBox()
	cx, cz := (min[0]+max[0])/2, (min[2]+max[2])/2
	if math.Abs(cx-5*math.Cos(angle)) > 1e-6 || math.Abs(cz-5*math.Sin(angle)) > 1e-6 {
		t.Errorf("arm center = (%f, %f), want (%f, %f)", cx, cz, 5*math.Cos(angle), 5*math.Sin(angle))
	}
}

func TestTubeSharesRings(t *testing.T) {
	k := New()
	path := []r3.Vec{{}, {X: 1, Y: 0.2}, {X: 2, Y: 0.3}, {X: 3, Y: 0.2}, {X: 4}}
	sides := 8
	m := toMesh(t, k, k.Tube(path, 0.05, sides))
	// One ring per path point plus two cap centers.
	if want := len(path)*sides + 2; m.VertexCount() != want {
		t.Errorf("vertex count = %d, want %d", m.VertexCount(), want)
	}
	// Side quads plus two cap fans.
	if want := (len(path)-1)*sides*2 + 2*sides; m.TriangleCount() != want {
		t.Errorf("triangle count = %d, want %d", m.TriangleCount(), want)
	}
	if m.Volume() <= 0 {
		t.Errorf("tube volume = %f, want positive", m.Volume())
	}
}

func TestTriangulateConcave(t *testing.T) {
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 2, Y: 1}, {X: 0, Y: 4}}
	tris := triangulate(pts)
	if len(tris) != len(pts)-2 {
		t.Fatalf("got %d triangles, want %d", len(tris), len(pts)-2)
	}
	var area float64
	for _, tr := range tris {
		a, b, c := pts[tr[0]], pts[tr[1]], pts[tr[2]]
		ta := r2.Cross(r2.Sub(b, a), r2.Sub(c, a)) / 2
		if ta <= 0 {
			t.Errorf("triangle %v is not counter-clockwise", tr)
		}
		area += ta
	}
	if want := kernel.SignedArea(pts); math.Abs(area-want) > 1e-9 {
		t.Errorf("triangulated area = %f, want %f", area, want)
	}
}
