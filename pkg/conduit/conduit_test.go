package conduit

import (
	"math"
	"testing"

	"github.com/chazu/habitat/pkg/kernel/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

func TestRouteSkipsZeroLength(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	if _, ok := Route(p, p, r3.Vec{Y: -1}); ok {
		t.Error("Route with start == end should report false")
	}
	if _, ok := Build(mesh.New(), Spec{Start: p, End: p, Radius: 0.1, Tessellation: 8}); ok {
		t.Error("Build with start == end should produce no solid")
	}
}

func TestRouteMidpointSag(t *testing.T) {
	start, end := r3.Vec{X: -2}, r3.Vec{X: 2}
	sag := r3.Vec{Y: -0.8}
	q, ok := Route(start, end, sag)
	if !ok {
		t.Fatal("Route failed")
	}
	if q.Control != (r3.Vec{Y: -0.8}) {
		t.Errorf("control = %v, want midpoint + sag", q.Control)
	}
	// A quadratic reaches half the control offset at t = 0.5.
	if mid := q.Point(0.5); !near(mid, r3.Vec{Y: -0.4}, 1e-12) {
		t.Errorf("midpoint = %v, want (0, -0.4, 0)", mid)
	}
}

func TestSampleEndpointsExact(t *testing.T) {
	start := r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}
	end := r3.Vec{X: 3.3, Y: -1.7, Z: 2.9}
	q, _ := Route(start, end, r3.Vec{Y: -0.5})
	sp, ok := NewSpline([]r3.Vec{start, {X: 1, Y: 1}, {X: 2, Z: 2}, end})
	if !ok {
		t.Fatal("NewSpline failed")
	}
	for _, c := range []Curve{q, sp} {
		for _, tess := range []int{1, 3, 24, 100} {
			pts := Sample(c, tess)
			if len(pts) != tess+1 {
				t.Fatalf("tess=%d: got %d samples", tess, len(pts))
			}
			if pts[0] != start || pts[tess] != end {
				t.Errorf("tess=%d: endpoints %v..%v, want %v..%v", tess, pts[0], pts[tess], start, end)
			}
		}
	}
}

func TestSplinePassesThroughAnchors(t *testing.T) {
	anchors := []r3.Vec{{X: 0}, {X: 1, Y: 1}, {X: 2, Y: 0.5, Z: 1}, {X: 3, Z: 2}, {X: 4}}
	sp, ok := NewSpline(anchors)
	if !ok {
		t.Fatal("NewSpline failed")
	}
	n := len(anchors) - 1
	for i, a := range anchors {
		if got := sp.Point(float64(i) / float64(n)); !near(got, a, 1e-9) {
			t.Errorf("anchor %d: got %v, want %v", i, got, a)
		}
	}
}

func TestNewSplineRejectsDegenerate(t *testing.T) {
	p := r3.Vec{X: 1}
	if _, ok := NewSpline([]r3.Vec{p, p, p}); ok {
		t.Error("spline through one distinct anchor should fail")
	}
	if _, ok := NewSpline(nil); ok {
		t.Error("spline with no anchors should fail")
	}
	sp, ok := NewSpline([]r3.Vec{p, p, {X: 2}})
	if !ok || len(sp.Anchors()) != 2 {
		t.Error("consecutive duplicates should be dropped")
	}
}

func TestLengthStraight(t *testing.T) {
	q, _ := Route(r3.Vec{}, r3.Vec{X: 3, Y: 4}, r3.Vec{})
	if l := Length(q, 10); math.Abs(l-5) > 1e-12 {
		t.Errorf("length = %f, want 5", l)
	}
}

func TestBuildSweepsOneTube(t *testing.T) {
	k := mesh.New()
	tests := []struct {
		name string
		spec Spec
	}{
		{"quadratic", Spec{Start: r3.Vec{X: -1}, End: r3.Vec{X: 1}, Sag: r3.Vec{Y: -0.3}, Radius: 0.05, Tessellation: 16}},
		{"spline", Spec{Start: r3.Vec{X: -1}, End: r3.Vec{X: 1}, Via: []r3.Vec{{Y: 0.5, Z: 0.5}}, Radius: 0.05, Tessellation: 16, Sides: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Build(k, tt.spec)
			if !ok {
				t.Fatal("Build failed")
			}
			m, err := k.ToMesh(s)
			if err != nil {
				t.Fatalf("ToMesh failed: %v", err)
			}
			sides := tt.spec.Sides
			if sides == 0 {
				sides = DefaultSides
			}
			// Shared rings: one ring per sample plus the two cap centers.
			if want := (tt.spec.Tessellation+1)*sides + 2; m.VertexCount() != want {
				t.Errorf("vertex count = %d, want %d", m.VertexCount(), want)
			}
			if m.Volume() <= 0 {
				t.Errorf("tube volume = %f, want positive", m.Volume())
			}
		})
	}
}
