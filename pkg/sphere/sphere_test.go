package sphere

import (
	"math"
	"testing"
)

func TestCrossSectionInside(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		y      float64
	}{
		{"equator", 4.8, 0},
		{"above", 4.8, 1.5},
		{"below", 4.8, -1.5},
		{"near pole", 5, 4.999},
		{"unit", 1, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CrossSection(tt.radius, tt.y)
			if !ok {
				t.Fatalf("CrossSection(%v, %v) degenerate, want valid", tt.radius, tt.y)
			}
			want := math.Sqrt(tt.radius*tt.radius - tt.y*tt.y)
			if math.Abs(got-want) > 1e-12 {
				t.Errorf("CrossSection(%v, %v) = %v, want %v", tt.radius, tt.y, got, want)
			}
		})
	}
}

func TestCrossSectionDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		y      float64
	}{
		{"at top", 4.8, 4.8},
		{"at bottom", 4.8, -4.8},
		{"above shell", 4.8, 5.0},
		{"far below", 4.8, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CrossSection(tt.radius, tt.y)
			if ok {
				t.Fatalf("CrossSection(%v, %v) ok = true, want degenerate", tt.radius, tt.y)
			}
			if math.IsNaN(got) || got < 0 {
				t.Errorf("degenerate result = %v, want 0", got)
			}
		})
	}
}

func TestLevelOuterRadius(t *testing.T) {
	shell := New(4.8)
	l := shell.Level("main-deck", -1.5, 1.5, 1.0)

	r, ok := l.OuterRadius(0)
	if !ok || r != 4.8 {
		t.Errorf("OuterRadius(0) = %v, %v, want 4.8, true", r, ok)
	}

	r, ok = l.OuterRadius(5.0)
	if ok {
		t.Errorf("OuterRadius(5.0) ok = true, want degenerate")
	}
	if r != 0 {
		t.Errorf("OuterRadius(5.0) = %v, want 0", r)
	}
}

func TestLevelUsable(t *testing.T) {
	shell := New(4.8)
	tests := []struct {
		name  string
		level Level
		want  bool
	}{
		{"main deck", shell.Level("a", -1.5, 1.5, 1.0), true},
		{"ceiling through shell", shell.Level("b", 3, 5, 1.0), false},
		{"inverted", shell.Level("c", 1, -1, 1.0), false},
		{"core wider than shell at ceiling", shell.Level("d", 4, 4.7, 2.0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.Usable(); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelMinOuterRadius(t *testing.T) {
	l := New(5).Level("x", -1, 3, 0)
	got, ok := l.MinOuterRadius()
	if !ok {
		t.Fatal("MinOuterRadius degenerate")
	}
	want := math.Sqrt(25 - 9)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("MinOuterRadius() = %v, want %v", got, want)
	}
}

func TestSectorVolume(t *testing.T) {
	t.Run("whole sphere with no core", func(t *testing.T) {
		R := 2.0
		l := New(R).Level("all", -R, R, 0)
		got := l.SectorVolume(2 * math.Pi)
		want := 4.0 / 3.0 * math.Pi * R * R * R
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("SectorVolume = %v, want %v", got, want)
		}
	})

	t.Run("thin band approximates annulus", func(t *testing.T) {
		l := New(4.8).Level("band", -0.005, 0.005, 1)
		got := l.SectorVolume(2 * math.Pi)
		want := math.Pi * (4.8*4.8 - 1) * 0.01
		if math.Abs(got-want)/want > 1e-4 {
			t.Errorf("SectorVolume = %v, want ~%v", got, want)
		}
	})

	t.Run("sectors add up", func(t *testing.T) {
		l := New(4.8).Level("main", -1.5, 1.5, 1)
		whole := l.SectorVolume(2 * math.Pi)
		sixth := l.SectorVolume(2 * math.Pi / 6)
		if math.Abs(6*sixth-whole) > 1e-9 {
			t.Errorf("6 * sixth = %v, whole = %v", 6*sixth, whole)
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		if v := New(1).Level("core", -0.5, 0.5, 2).SectorVolume(math.Pi); v != 0 {
			t.Errorf("core wider than shell: volume = %v, want 0", v)
		}
		if v := New(4.8).Level("outside", 5, 6, 0).SectorVolume(math.Pi); v != 0 {
			t.Errorf("band outside shell: volume = %v, want 0", v)
		}
	})
}
