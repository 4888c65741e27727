package profile

import (
	"github.com/chazu/habitat/pkg/sphere"
	"gonum.org/v1/gonum/spatial/r2"
)

// Wall builds the cross-section of a partition wall that spans height
// around verticalCenter, from innerRadius out to the sphere of sphereRadius.
//
// The outer edge is the sphere sampled at segments+1 evenly spaced heights,
// approximating the true curvature by chords. The loop runs up the outer
// edge and back down the inner edge, which is sampled at the same heights,
// so the winding is counter-clockwise and a non-degenerate wall has
// 2*(segments+1) distinct points plus the closing point.
//
// If either end of the span lies outside the sphere, or the sphere does not
// clear the inner radius there, Wall returns an empty profile.
func Wall(height, verticalCenter, innerRadius, sphereRadius float64, segments int) Profile {
	return wall(height, verticalCenter, innerRadius, sphereRadius, segments, false)
}

// UpperWall is Wall for walls that must meet a floor and a ceiling exactly.
// The first and terminal samples are forced to the target heights instead of
// being interpolated, so the loop has no free top edge. Wall's ends can be
// one ulp off because center±height/2 does not always round-trip; the
// geometry is otherwise identical.
func UpperWall(height, verticalCenter, innerRadius, sphereRadius float64, segments int) Profile {
	return wall(height, verticalCenter, innerRadius, sphereRadius, segments, true)
}

func wall(height, center, inner, radius float64, segments int, flush bool) Profile {
	if segments < 1 {
		segments = 1
	}
	if height <= 0 {
		return Profile{}
	}
	yStart := center - height/2
	yEnd := center + height/2

	rStart, ok := sphere.CrossSection(radius, yStart)
	if !ok || rStart <= inner {
		return Profile{}
	}
	rEnd, ok := sphere.CrossSection(radius, yEnd)
	if !ok || rEnd <= inner {
		return Profile{}
	}

	heights := make([]float64, segments+1)
	for i := range heights {
		heights[i] = yStart + (yEnd-yStart)*float64(i)/float64(segments)
	}
	if flush {
		heights[0] = yStart
		heights[segments] = yEnd
	}

	local := func(y float64) float64 { return y - center }

	pts := make([]r2.Vec, 0, 2*(segments+1)+1)
	for i, y := range heights {
		r, _ := sphere.CrossSection(radius, y)
		ly := local(y)
		if flush {
			switch i {
			case 0:
				r, ly = rStart, -height/2
			case segments:
				r, ly = rEnd, height/2
			}
		}
		pts = append(pts, r2.Vec{X: r, Y: ly})
	}
	for i := segments; i >= 0; i-- {
		ly := local(heights[i])
		if flush {
			switch i {
			case 0:
				ly = -height / 2
			case segments:
				ly = height / 2
			}
		}
		pts = append(pts, r2.Vec{X: inner, Y: ly})
	}
	return closeLoop(pts)
}

// ChordError is the largest gap between the true sphere and a chord when a
// span of the given height is approximated with segments straight pieces.
// It is the sagitta of one chord and shrinks monotonically as segments grows.
func ChordError(height, sphereRadius float64, segments int) float64 {
	if segments < 1 {
		segments = 1
	}
	half := height / float64(segments) / 2
	if half >= sphereRadius {
		return sphereRadius
	}
	r, _ := sphere.CrossSection(sphereRadius, half)
	return sphereRadius - r
}
