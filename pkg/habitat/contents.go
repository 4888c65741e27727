package habitat

import (
	"fmt"

	"github.com/chazu/habitat/pkg/conduit"
	"github.com/chazu/habitat/pkg/fixture"
	"github.com/chazu/habitat/pkg/plan"
	"github.com/chazu/habitat/pkg/profile"
	"github.com/chazu/habitat/pkg/scene"
	"github.com/chazu/habitat/pkg/sector"
	"github.com/chazu/habitat/pkg/sphere"
	"github.com/chazu/habitat/pkg/stair"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
)

// Hatch rim cross-section.
const (
	rimWidth     = 0.06
	rimThickness = 0.05
)

// fixtures places every catalog item on its deck's floor. Overlapping
// fixtures are kept as they are.
func (r *run) fixtures() {
	for i, f := range r.p.Fixtures {
		fields := logrus.Fields{"fixture": f.Kind, "deck": f.Deck, "sector": f.Sector}
		entry, known := fixture.Lookup(f.Kind)
		d, sec, ok := r.sector(f.Deck, f.Sector)
		if !known || !ok {
			r.skip("fixture", fields)
			continue
		}
		pose := sec.Apply(sector.Placement{Angle: f.Angle, Radius: f.Radius, Lift: d.plan.Floor, Turn: f.Turn})
		s := entry.Build(r.k)
		s = r.k.Rotate(s, 0, pose.YawDegrees(), 0)
		s = r.k.Translate(s, pose.Position.X, pose.Position.Y, pose.Position.Z)

		label := plan.Label(f.Name)
		if label == "" {
			label = f.Kind
		}
		m := scene.Material{Color: entry.Color, Opacity: 1}
		r.b.Add(d.id, fmt.Sprintf("fixture-%02d-%s", i, label), s, m, scene.RoleFixed)
		r.summary.Fixtures++
	}
}

// conduits routes each run through the midpoints of its sectors at its
// lift above the deck floor.
func (r *run) conduits() {
	for i, c := range r.p.Conduits {
		fields := logrus.Fields{"conduit": c.Name, "deck": c.Deck}
		d, ok := r.decks[c.Deck]
		if !ok || len(d.sectors) == 0 || c.Radius <= 0 {
			r.skip("conduit", fields)
			continue
		}
		// Keep the tube clear of the shell by its own diameter.
		secs := sector.Partition(len(d.sectors), d.level.InnerRadius, d.outer-2*c.Radius)
		anchor := func(index int) (r3.Vec, bool) {
			if index < 0 || index >= len(secs) {
				return r3.Vec{}, false
			}
			return secs[index].Place(0.5, 1-c.Reach, d.plan.Floor+c.Lift).Position, true
		}

		start, okStart := anchor(c.From)
		end, okEnd := anchor(c.To)
		spec := conduit.Spec{
			Name:         c.Name,
			Start:        start,
			End:          end,
			Sag:          c.Sag,
			Radius:       c.Radius,
			Tessellation: r.p.TubeTessellation,
			Sides:        r.p.TubeSides,
		}
		okVia := true
		for _, v := range c.Via {
			p, ok := anchor(v)
			okVia = okVia && ok
			spec.Via = append(spec.Via, p)
		}
		if !okStart || !okEnd || !okVia {
			r.skip("conduit with sector outside its deck", fields)
			continue
		}
		s, ok := conduit.Build(r.k, spec)
		if !ok {
			r.skip("zero-length conduit", fields)
			continue
		}
		r.b.Add(d.id, fmt.Sprintf("conduit-%02d-%s", i, plan.Label(c.Name)), s, conduitMaterial, scene.RoleFixed)
		r.summary.Conduits++
	}
}

// stairs adds a spiral stair for each deck pair, rising from the lower
// deck's floor through a hatch in the upper deck's floor.
func (r *run) stairs() {
	seen := make(map[string]bool)
	for _, st := range r.p.Stairs {
		fields := logrus.Fields{"from": st.From, "to": st.To}
		from, okFrom := r.decks[st.From]
		to, okTo := r.decks[st.To]
		name := stairPrefix + st.From + "-to-" + st.To
		if !okFrom || !okTo || seen[name] {
			r.skip("stair", fields)
			continue
		}
		seen[name] = true
		spec := stair.Spec{
			Name:        name,
			Base:        r3.Vec{Y: from.plan.Floor},
			TotalRise:   to.plan.Floor - from.plan.Floor,
			StepHeight:  st.Step,
			Sweep:       st.Sweep,
			HatchRadius: st.Hatch,
		}
		gen := stair.Generate(r.k, spec)

		id := r.b.Group(from.id, name)
		r.b.Add(id, "pole", gen.Pole, stairMaterial, scene.RoleFixed)
		for _, step := range gen.Steps {
			r.b.Add(id, fmt.Sprintf("step-%02d", step.Index), step.Solid, stairMaterial, scene.RoleFixed)
		}
		r.summary.Stairs++
		r.summary.Steps += len(gen.Steps)
		if len(gen.Steps) == 0 {
			r.g.log.WithFields(fields).Debug("stair has no steps; pole only")
		}

		rim := profile.Ring(st.Hatch, rimWidth, rimThickness)
		if rim.Empty() {
			r.skip("hatch rim", fields)
			continue
		}
		s := r.k.Revolve(rim.Outline(), r.p.ShellWidthSegments)
		s = r.k.Translate(s, 0, to.plan.Floor-rimThickness/2, 0)
		r.b.Add(to.id, "hatch-rim-from-"+st.From, s, rimMaterial, scene.RoleFixed)
	}
}

// lander hangs tanks and landing legs below the outer shell. The group is
// offset so its local y = 0 is the ground the legs stand on; each leg is
// cut to reach the shell's underside at its radius.
func (r *run) lander() {
	l := r.p.Lander
	if l == nil {
		return
	}
	tank, _ := fixture.Lookup("tank")
	leg, _ := fixture.Lookup("leg")
	R := r.p.OuterShellRadius
	ground := -(R + l.Drop + tank.Size.Y)

	id := r.b.Group(r.b.Root(), LanderGroup)
	r.b.Offset(id, r3.Vec{Y: ground}, 0)

	ring := func(n int, radius float64, each func(i int, pose sector.Pose)) {
		for i, sec := range sector.Partition(n, radius, radius) {
			each(i, sec.Place(0, 0, 0))
		}
	}

	ring(l.Tanks, 0.3*R, func(i int, pose sector.Pose) {
		s := r.k.Rotate(tank.Build(r.k), 0, pose.YawDegrees(), 0)
		s = r.k.Translate(s, pose.Position.X, 0, pose.Position.Z)
		r.b.Add(id, fmt.Sprintf("tank-%02d", i), s, scene.Material{Color: tank.Color, Opacity: 1}, scene.RoleFixed)
	})

	legRadius := 0.7 * R
	under, ok := sphere.CrossSection(R, legRadius)
	height := -under - ground
	if !ok || height <= 0 {
		r.skip("landing legs", logrus.Fields{"radius": legRadius})
		return
	}
	ring(l.Legs, legRadius, func(i int, pose sector.Pose) {
		s := leg.BuildSized(r.k, r3.Vec{Y: height})
		s = r.k.Translate(s, pose.Position.X, 0, pose.Position.Z)
		r.b.Add(id, fmt.Sprintf("leg-%02d", i), s, scene.Material{Color: leg.Color, Opacity: 1}, scene.RoleFixed)
	})
	r.g.log.WithFields(logrus.Fields{"tanks": l.Tanks, "legs": l.Legs, "drop": l.Drop}).Debug("lander systems generated")
}
