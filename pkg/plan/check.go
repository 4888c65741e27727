package plan

import (
	"fmt"
	"math"
	"strings"
)

// Warning is an advisory finding about a plan. Warnings never stop
// generation; the generator degrades whatever they point at.
type Warning struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Subject, w.Message)
}

// Check lists everything in p that will generate degenerate or surprising
// geometry. Overlapping fixtures are reported but accepted.
func Check(p *Plan) []Warning {
	var ws []Warning
	warn := func(subject, format string, args ...any) {
		ws = append(ws, Warning{Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	if p.InnerShellRadius <= 0 {
		warn("shell", "inner radius %g is not positive", p.InnerShellRadius)
	}
	if p.OuterShellRadius <= p.InnerShellRadius {
		warn("shell", "outer radius %g does not enclose inner radius %g", p.OuterShellRadius, p.InnerShellRadius)
	}
	if p.WallSegments < 1 {
		warn("settings", "wall segments %d is below 1; 1 is used", p.WallSegments)
	}
	if p.TubeTessellation < 1 {
		warn("settings", "tube tessellation %d is below 1; 1 is used", p.TubeTessellation)
	}

	levels := make(map[string]Level, len(p.Levels))
	for i, l := range p.Levels {
		subject := fmt.Sprintf("level %q", l.Name)
		if _, dup := levels[l.Name]; dup {
			warn(subject, "name is used more than once; later decks shadow earlier ones")
		}
		levels[l.Name] = l
		if !DeckNameOK(l.Name) {
			warn(subject, "name is empty, contains '/' or is reserved by the generator; skipped")
		}
		if l.Height() <= 0 {
			warn(subject, "ceiling %g is not above floor %g", l.Ceiling, l.Floor)
		}
		if l.Sectors < 1 {
			warn(subject, "%d sectors; no walls or fixtures will be placed", l.Sectors)
		}
		core := p.CoreFor(l)
		for _, y := range []float64{l.Floor, l.Ceiling} {
			if math.Abs(y) >= p.InnerShellRadius {
				warn(subject, "y=%g lies outside the inner shell; walls will be empty", y)
				continue
			}
			if r := math.Sqrt(p.InnerShellRadius*p.InnerShellRadius - y*y); r <= core {
				warn(subject, "shell radius %.3f at y=%g does not clear core %g; walls will be empty", r, y, core)
			}
		}
		for _, o := range p.Levels[:i] {
			if l.Floor < o.Ceiling && o.Floor < l.Ceiling {
				warn(subject, "overlaps level %q", o.Name)
			}
		}
	}

	sectorOK := func(subject, deck string, sector int) bool {
		l, ok := levels[deck]
		if !ok {
			warn(subject, "unknown deck %q; skipped", deck)
			return false
		}
		if sector < 0 || sector >= l.Sectors {
			warn(subject, "sector %d outside deck %q (0..%d); skipped", sector, deck, l.Sectors-1)
			return false
		}
		return true
	}

	type spot struct {
		deck   string
		sector int
		a, r   float64
	}
	taken := make(map[spot]string)
	for i, f := range p.Fixtures {
		subject := fmt.Sprintf("fixture %d (%s)", i, f.Kind)
		if strings.Contains(f.Name, "/") {
			warn(subject, "name %q contains '/'; drawn as %q", f.Name, Label(f.Name))
		}
		if !sectorOK(subject, f.Deck, f.Sector) {
			continue
		}
		key := spot{f.Deck, f.Sector, f.Angle, f.Radius}
		if prev, dup := taken[key]; dup {
			warn(subject, "occupies the same spot as %s; overlap is kept", prev)
		}
		taken[key] = subject
	}

	type cell struct {
		deck   string
		sector int
	}
	zoned := make(map[cell]string)
	for _, z := range p.Zones {
		subject := fmt.Sprintf("zone %q", z.Kind)
		if !knownZone(z.Kind) {
			warn(subject, "unknown zone kind")
		}
		if !sectorOK(subject, z.Deck, z.Sector) {
			continue
		}
		key := cell{z.Deck, z.Sector}
		if prev, dup := zoned[key]; dup {
			warn(subject, "sector %d of %q is already zoned %q", z.Sector, z.Deck, prev)
		}
		zoned[key] = z.Kind
	}

	for _, c := range p.Conduits {
		subject := fmt.Sprintf("conduit %q", c.Name)
		if strings.Contains(c.Name, "/") {
			warn(subject, "name contains '/'; drawn as %q", Label(c.Name))
		}
		ok := sectorOK(subject, c.Deck, c.From) && sectorOK(subject, c.Deck, c.To)
		for _, v := range c.Via {
			ok = sectorOK(subject, c.Deck, v) && ok
		}
		if ok && c.From == c.To && len(c.Via) == 0 {
			warn(subject, "starts and ends in sector %d; skipped", c.From)
		}
		if c.Radius <= 0 {
			warn(subject, "radius %g is not positive; skipped", c.Radius)
		}
	}

	for _, s := range p.Stairs {
		subject := fmt.Sprintf("stair %s->%s", s.From, s.To)
		from, okFrom := levels[s.From]
		to, okTo := levels[s.To]
		if !okFrom || !okTo {
			warn(subject, "unknown deck; skipped")
			continue
		}
		if to.Floor <= from.Floor {
			warn(subject, "does not climb; pole only")
		}
		if s.Hatch >= p.CoreFor(from) {
			warn(subject, "hatch radius %g reaches the walls at core %g", s.Hatch, p.CoreFor(from))
		}
	}
	return ws
}

func knownZone(kind string) bool {
	for _, k := range ZoneKinds {
		if k == kind {
			return true
		}
	}
	return false
}
