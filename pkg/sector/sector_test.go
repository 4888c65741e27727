package sector

import (
	"math"
	"testing"
)

func TestPartitionCoversCircle(t *testing.T) {
	for _, n := range []int{1, 3, 4, 6, 7, 12} {
		sectors := Partition(n, 1, 4)
		if len(sectors) != n {
			t.Fatalf("n=%d: got %d sectors", n, len(sectors))
		}
		if sectors[0].StartAngle != 0 {
			t.Errorf("n=%d: first sector starts at %g", n, sectors[0].StartAngle)
		}
		for i := 1; i < n; i++ {
			if sectors[i-1].End() != sectors[i].StartAngle {
				t.Errorf("n=%d: gap between sector %d and %d", n, i-1, i)
			}
		}
		if last := sectors[n-1].End(); math.Abs(last-2*math.Pi) > 1e-12 {
			t.Errorf("n=%d: last sector ends at %g", n, last)
		}
	}
}

func TestPartitionDegenerate(t *testing.T) {
	for _, n := range []int{0, -1} {
		if s := Partition(n, 1, 2); s != nil {
			t.Errorf("Partition(%d) = %v, want nil", n, s)
		}
	}
}

func TestPlace(t *testing.T) {
	s := Partition(4, 1, 3)[1]
	tests := []struct {
		name           string
		angle, radius  float64
		wantA, wantR   float64
		verticalOffset float64
	}{
		{"start inner", 0, 0, math.Pi / 2, 1, 0},
		{"middle", 0.5, 0.5, 3 * math.Pi / 4, 2, 0.4},
		{"clamped high", 2, 5, math.Pi, 3, 0},
		{"clamped low", -1, -1, math.Pi / 2, 1, -0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s.Place(tt.angle, tt.radius, tt.verticalOffset)
			if math.Abs(p.Position.X-math.Cos(tt.wantA)*tt.wantR) > 1e-12 ||
				math.Abs(p.Position.Z-math.Sin(tt.wantA)*tt.wantR) > 1e-12 ||
				p.Position.Y != tt.verticalOffset {
				t.Errorf("position = %v, want angle %g radius %g", p.Position, tt.wantA, tt.wantR)
			}
			if math.Abs(p.Yaw+tt.wantA) > 1e-12 {
				t.Errorf("yaw = %g, want %g", p.Yaw, -tt.wantA)
			}
		})
	}
}

func TestPlaceDeterministic(t *testing.T) {
	a := Partition(6, 0.8, 4.5)[4].Place(0.3, 0.7, 0.25)
	b := Partition(6, 0.8, 4.5)[4].Place(0.3, 0.7, 0.25)
	if a != b {
		t.Errorf("repeated placement differs: %v vs %v", a, b)
	}
}

func TestApplyTurn(t *testing.T) {
	s := Partition(2, 0, 2)[0]
	p := s.Apply(Placement{Angle: 0.5, Radius: 1, Turn: math.Pi / 2})
	if math.Abs(p.Yaw-0) > 1e-12 {
		t.Errorf("yaw = %g, want 0", p.Yaw)
	}
	if math.Abs(p.YawDegrees()) > 1e-9 {
		t.Errorf("yaw degrees = %g, want 0", p.YawDegrees())
	}
}

func TestContains(t *testing.T) {
	sectors := Partition(4, 0, 1)
	if !sectors[0].Contains(0) || sectors[0].Contains(math.Pi/2) || !sectors[1].Contains(math.Pi/2) {
		t.Error("sector boundaries belong to the following sector")
	}
	if !sectors[3].Contains(-0.1) {
		t.Error("negative angles should wrap")
	}
}
