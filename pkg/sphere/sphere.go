// Package sphere holds the closed-form sphere math every other geometry
// package is derived from: horizontal cross-sections of a bounding sphere and
// the levels (decks) carved out of it.
package sphere

import "math"

// CrossSection returns the radius of the horizontal cross-section of a sphere
// of the given radius, centered on the origin, at height y.
//
// When y lies on or outside the sphere there is no real intersection and the
// second return value is false. The returned radius is then 0, never NaN.
func CrossSection(radius, y float64) (float64, bool) {
	r2 := radius * radius
	y2 := y * y
	if !(y2 < r2) {
		return 0, false
	}
	return math.Sqrt(r2 - y2), true
}

// Sphere is a bounding shell. Its radius does not change once levels have
// been derived from it.
type Sphere struct {
	Radius float64 `json:"radius"`
}

// New returns a sphere of the given radius.
func New(radius float64) Sphere {
	return Sphere{Radius: radius}
}

// CrossSection is the method form of the package-level CrossSection.
func (s Sphere) CrossSection(y float64) (float64, bool) {
	return CrossSection(s.Radius, y)
}

// Contains reports whether the height y cuts the sphere.
func (s Sphere) Contains(y float64) bool {
	_, ok := s.CrossSection(y)
	return ok
}

// Level derives a level bounded below by floor, above by ceiling, radially
// inside by a constant inner radius and outside by this sphere.
func (s Sphere) Level(name string, floor, ceiling, inner float64) Level {
	return Level{
		Name:        name,
		YFloor:      floor,
		YCeiling:    ceiling,
		InnerRadius: inner,
		Shell:       s,
	}
}
