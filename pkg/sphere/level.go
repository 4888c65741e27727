package sphere

// Level is a horizontal band of interior space. The inner radius is set by
// the central structural cylinder; the outer bound varies with height
// because it is carved from the shell sphere.
type Level struct {
	Name        string  `json:"name"`
	YFloor      float64 `json:"yFloor"`
	YCeiling    float64 `json:"yCeiling"`
	InnerRadius float64 `json:"innerRadius"`
	Shell       Sphere  `json:"shell"`
}

// OuterRadius returns the shell cross-section at height y. The result is
// degenerate (0, false) when y lies outside the shell.
func (l Level) OuterRadius(y float64) (float64, bool) {
	return l.Shell.CrossSection(y)
}

// Height is the floor-to-ceiling distance.
func (l Level) Height() float64 {
	return l.YCeiling - l.YFloor
}

// Center is the mid height of the level.
func (l Level) Center() float64 {
	return (l.YFloor + l.YCeiling) / 2
}

// Usable reports whether the level has positive height and its narrowest
// outer bound (at floor or ceiling) still clears the inner radius.
func (l Level) Usable() bool {
	if l.Height() <= 0 {
		return false
	}
	lo, ok := l.OuterRadius(l.YFloor)
	if !ok || lo <= l.InnerRadius {
		return false
	}
	hi, ok := l.OuterRadius(l.YCeiling)
	if !ok || hi <= l.InnerRadius {
		return false
	}
	return true
}

// FloorRadius is the outer radius at floor height, or 0 if degenerate.
func (l Level) FloorRadius() float64 {
	r, _ := l.OuterRadius(l.YFloor)
	return r
}

// MinOuterRadius is the smallest outer bound over [YFloor, YCeiling]. Because
// the cross-section shrinks with |y|, it is taken at whichever end is farther
// from the sphere's equator.
func (l Level) MinOuterRadius() (float64, bool) {
	lo, okLo := l.OuterRadius(l.YFloor)
	hi, okHi := l.OuterRadius(l.YCeiling)
	if !okLo || !okHi {
		return 0, false
	}
	if lo < hi {
		return lo, true
	}
	return hi, true
}

// SectorVolume is the volume of the wedge of this level spanning sweep
// radians, between the inner cylinder and the shell. It integrates the
// annulus area π(R²−y²−r²) over the heights where the shell clears the
// inner radius, so bands poking through the shell contribute only their
// valid part.
func (l Level) SectorVolume(sweep float64) float64 {
	if sweep <= 0 || l.Height() <= 0 {
		return 0
	}
	R := l.Shell.Radius
	r := l.InnerRadius
	k := R*R - r*r
	if k <= 0 {
		return 0
	}
	h, _ := CrossSection(R, r) // sqrt(R² - r²)
	lo := max(l.YFloor, -h)
	hi := min(l.YCeiling, h)
	if hi <= lo {
		return 0
	}
	antiderivative := func(y float64) float64 {
		return k*y - y*y*y/3
	}
	return sweep / 2 * (antiderivative(hi) - antiderivative(lo))
}
