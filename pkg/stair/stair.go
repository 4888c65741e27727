// Package stair generates spiral stairs that wind around a central pole
// through the hatch between two decks.
package stair

import (
	"math"

	"github.com/chazu/habitat/pkg/kernel"
	"github.com/chazu/habitat/pkg/sector"
	"gonum.org/v1/gonum/spatial/r3"
)

// StepRadiusFraction places each step's center this far out from the pole,
// as a fraction of the hatch radius.
const StepRadiusFraction = 0.5

// countEps absorbs floating point error in rise/step so that 3.0/0.2
// counts 15 steps rather than 14.
const countEps = 1e-9

// Spec describes one spiral stair. Base is the center of the hatch at the
// lower deck's floor.
type Spec struct {
	Name          string  `json:"name"`
	Base          r3.Vec  `json:"base"`
	TotalRise     float64 `json:"totalRise"`
	StepHeight    float64 `json:"stepHeight"`
	Sweep         float64 `json:"sweep"` // radians turned from first to last step
	HatchRadius   float64 `json:"hatchRadius"`
	StepDepth     float64 `json:"stepDepth"`
	StepThickness float64 `json:"stepThickness"`
	PoleRadius    float64 `json:"poleRadius"`
	PoleSegments  int     `json:"poleSegments"`
}

func (s Spec) withDefaults() Spec {
	if s.StepDepth <= 0 {
		s.StepDepth = 0.3
	}
	if s.StepThickness <= 0 {
		s.StepThickness = 0.04
	}
	if s.PoleRadius <= 0 {
		s.PoleRadius = 0.05
	}
	if s.PoleSegments < 3 {
		s.PoleSegments = 16
	}
	return s
}

// StepCount returns floor(TotalRise/StepHeight), or 0 if either is not
// positive.
func (s Spec) StepCount() int {
	if s.TotalRise <= 0 || s.StepHeight <= 0 {
		return 0
	}
	return int(math.Floor(s.TotalRise/s.StepHeight + countEps))
}

// Layout returns the pose of every step relative to Base. Step i sits at
// height i*StepHeight, turned (i/count)*Sweep around the pole, facing
// outward along its radius.
func Layout(s Spec) []sector.Pose {
	n := s.StepCount()
	poses := make([]sector.Pose, n)
	r := s.HatchRadius * StepRadiusFraction
	for i := range poses {
		a := float64(i) / float64(n) * s.Sweep
		poses[i] = sector.Pose{
			Position: r3.Vec{X: math.Cos(a) * r, Y: float64(i) * s.StepHeight, Z: math.Sin(a) * r},
			Yaw:      -a,
		}
	}
	return poses
}

// Step is one generated tread.
type Step struct {
	Index int
	Pose  sector.Pose
	Solid kernel.Solid
}

// Stair is the generated geometry: the central pole and its treads, all in
// world coordinates.
type Stair struct {
	Name  string
	Pole  kernel.Solid
	Steps []Step
}

// Solids returns the pole followed by every tread.
func (st Stair) Solids() []kernel.Solid {
	out := make([]kernel.Solid, 0, len(st.Steps)+1)
	if st.Pole != nil {
		out = append(out, st.Pole)
	}
	for _, s := range st.Steps {
		out = append(out, s.Solid)
	}
	return out
}

// Generate builds the pole and treads for s. With no steps it returns the
// pole alone.
func Generate(k kernel.Kernel, s Spec) Stair {
	s = s.withDefaults()
	st := Stair{Name: s.Name, Pole: k.Empty()}

	if s.TotalRise > 0 {
		pole := k.Cylinder(s.TotalRise, s.PoleRadius, s.PoleSegments)
		st.Pole = k.Translate(pole, s.Base.X, s.Base.Y+s.TotalRise/2, s.Base.Z)
	}

	width := s.HatchRadius
	if width <= 0 {
		return st
	}
	for i, pose := range Layout(s) {
		tread := k.Box(width, s.StepThickness, s.StepDepth)
		tread = k.Rotate(tread, 0, pose.YawDegrees(), 0)
		p := r3.Add(s.Base, pose.Position)
		st.Steps = append(st.Steps, Step{
			Index: i,
			Pose:  pose,
			Solid: k.Translate(tread, p.X, p.Y, p.Z),
		})
	}
	return st
}
