// Package sector divides a level into equal angular sectors and places
// objects inside them by fraction: fraction of the sector's sweep, fraction
// of its radial span and a height above the floor.
//
// Angles are measured from +X toward +Z around the vertical Y axis, so a
// point at angle a and radius r sits at (cos a * r, y, sin a * r).
package sector

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sector is one angular slice of a level.
type Sector struct {
	Index       int     `json:"index"`
	Count       int     `json:"count"`
	StartAngle  float64 `json:"startAngle"`
	SweepAngle  float64 `json:"sweepAngle"`
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
}

// Partition splits [0, 2π) into n sectors of equal sweep starting at angle
// 0. It returns nil when n < 1.
func Partition(n int, inner, outer float64) []Sector {
	if n < 1 {
		return nil
	}
	sweep := 2 * math.Pi / float64(n)
	out := make([]Sector, n)
	for i := range out {
		out[i] = Sector{
			Index:       i,
			Count:       n,
			StartAngle:  float64(i) * sweep,
			SweepAngle:  sweep,
			InnerRadius: inner,
			OuterRadius: outer,
		}
	}
	return out
}

// End returns the angle where the sector stops, which is exactly the next
// sector's StartAngle.
func (s Sector) End() float64 {
	return float64(s.Index+1) * s.SweepAngle
}

// Mid returns the angle halfway through the sector.
func (s Sector) Mid() float64 {
	return s.StartAngle + s.SweepAngle/2
}

// Contains reports whether angle (radians, any winding) falls in
// [StartAngle, End).
func (s Sector) Contains(angle float64) bool {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a >= s.StartAngle && a < s.End()
}

func (s Sector) String() string {
	return fmt.Sprintf("sector %d/%d [%.4f, %.4f) r=[%.3f, %.3f]",
		s.Index, s.Count, s.StartAngle, s.End(), s.InnerRadius, s.OuterRadius)
}

// Pose is a position and a rotation about the vertical axis. A positive
// yaw turns local +X toward -Z.
type Pose struct {
	Position r3.Vec  `json:"position"`
	Yaw      float64 `json:"yaw"`
}

// YawDegrees returns Yaw in degrees, the unit kernels rotate by.
func (p Pose) YawDegrees() float64 {
	return p.Yaw * 180 / math.Pi
}

// Placement names the fractions used to place an object in a sector.
// Turn is added to the yaw after the sector-facing rotation.
type Placement struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Lift   float64 `json:"lift"`
	Turn   float64 `json:"turn"`
}

// Place positions an object at angleFraction of the sweep and
// radiusFraction of the radial span, verticalOffset above y = 0. Fractions
// are clamped to [0, 1]. The yaw turns the object's local +X to point
// radially outward.
func (s Sector) Place(angleFraction, radiusFraction, verticalOffset float64) Pose {
	return s.Apply(Placement{Angle: angleFraction, Radius: radiusFraction, Lift: verticalOffset})
}

// Apply is Place driven by a Placement record.
func (s Sector) Apply(p Placement) Pose {
	a := s.StartAngle + clamp01(p.Angle)*s.SweepAngle
	r := s.InnerRadius + clamp01(p.Radius)*(s.OuterRadius-s.InnerRadius)
	return Pose{
		Position: r3.Vec{X: math.Cos(a) * r, Y: p.Lift, Z: math.Sin(a) * r},
		Yaw:      -a + p.Turn,
	}
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
