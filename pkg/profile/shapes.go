package profile

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rect returns a width x height rectangle centered on the origin.
func Rect(width, height float64) Profile {
	if width <= 0 || height <= 0 {
		return Profile{}
	}
	w, h := width/2, height/2
	return closeLoop([]r2.Vec{
		{X: -w, Y: -h},
		{X: w, Y: -h},
		{X: w, Y: h},
		{X: -w, Y: h},
	})
}

// Arch returns a door outline: a rectangle whose top is a half circle of
// diameter width. The total height includes the arch. The outline sits on
// y = 0 and is centered on x = 0.
func Arch(width, height float64, segments int) Profile {
	r := width / 2
	if width <= 0 || height <= r {
		return Profile{}
	}
	if segments < 2 {
		segments = 2
	}
	shoulder := height - r
	pts := []r2.Vec{{X: -r, Y: 0}, {X: r, Y: 0}}
	for i := 0; i <= segments; i++ {
		a := math.Pi * float64(i) / float64(segments)
		pts = append(pts, r2.Vec{X: r * math.Cos(a), Y: shoulder + r*math.Sin(a)})
	}
	return closeLoop(pts)
}

// Ring returns the cross-section of a hatch rim: a width x thickness
// rectangle centered at radial distance radius. Revolving it about the
// vertical axis yields the rim.
func Ring(radius, width, thickness float64) Profile {
	if width <= 0 || thickness <= 0 || radius-width/2 < 0 {
		return Profile{}
	}
	in, out := radius-width/2, radius+width/2
	h := thickness / 2
	return closeLoop([]r2.Vec{
		{X: in, Y: -h},
		{X: out, Y: -h},
		{X: out, Y: h},
		{X: in, Y: h},
	})
}

// AnnularSector returns the outline of the region between inner and outer
// radius spanning sweep radians from start. The outer arc is sampled with
// segments chords and the inner arc walks back, giving counter-clockwise
// winding.
func AnnularSector(inner, outer, start, sweep float64, segments int) Profile {
	if outer <= inner || inner < 0 || sweep <= 0 {
		return Profile{}
	}
	if segments < 1 {
		segments = 1
	}
	pts := make([]r2.Vec, 0, 2*(segments+1)+1)
	for i := 0; i <= segments; i++ {
		a := start + sweep*float64(i)/float64(segments)
		pts = append(pts, r2.Vec{X: outer * math.Cos(a), Y: outer * math.Sin(a)})
	}
	if inner == 0 {
		pts = append(pts, r2.Vec{})
		return closeLoop(pts)
	}
	for i := segments; i >= 0; i-- {
		a := start + sweep*float64(i)/float64(segments)
		pts = append(pts, r2.Vec{X: inner * math.Cos(a), Y: inner * math.Sin(a)})
	}
	return closeLoop(pts)
}
