package habitat

import (
	"fmt"
	"math"

	"github.com/chazu/habitat/pkg/extrude"
	"github.com/chazu/habitat/pkg/kernel"
	"github.com/chazu/habitat/pkg/plan"
	"github.com/chazu/habitat/pkg/profile"
	"github.com/chazu/habitat/pkg/scene"
	"github.com/chazu/habitat/pkg/sector"
	"github.com/chazu/habitat/pkg/sphere"
	"github.com/sirupsen/logrus"
)

// Door leaf limits.
const (
	doorWidth    = 0.8
	doorHeight   = 2.0
	doorSegments = 8
)

// deck is a generated level: its scene group and the sectors everything
// inside it is placed by.
type deck struct {
	id      scene.NodeID
	plan    plan.Level
	level   sphere.Level
	usable  bool
	outer   float64 // narrowest shell radius over the deck's height
	sectors []sector.Sector
}

// deck adds one level's group with its floor, walls and doors.
func (r *run) deck(l plan.Level) {
	fields := logrus.Fields{"deck": l.Name}
	if _, dup := r.decks[l.Name]; dup {
		r.skip("duplicate deck", fields)
		return
	}
	if !plan.DeckNameOK(l.Name) {
		r.skip("deck with reserved or invalid name", fields)
		return
	}

	shell := sphere.New(r.p.InnerShellRadius)
	d := &deck{
		id:    r.b.Group(r.b.Root(), l.Name),
		plan:  l,
		level: shell.Level(l.Name, l.Floor, l.Ceiling, r.p.CoreFor(l)),
	}
	r.decks[l.Name] = d
	r.summary.Levels++

	d.usable = d.level.Usable()
	if outer, ok := d.level.MinOuterRadius(); ok && d.usable {
		d.outer = outer
		d.sectors = sector.Partition(l.Sectors, d.level.InnerRadius, outer)
	}
	r.summary.Sectors += len(d.sectors)
	if !d.usable {
		r.g.log.WithFields(fields).Debug("deck does not fit inside the shell; its contents are skipped")
	}

	r.floor(d)
	r.walls(d)
	r.g.log.WithFields(fields).WithField("sectors", len(d.sectors)).Debug("deck generated")
}

// floor revolves a one-segment wall profile spanning the slab thickness
// under the deck, so the slab edge follows the shell.
func (r *run) floor(d *deck) {
	t := r.p.FloorThickness
	center := d.plan.Floor - t/2
	prof := profile.Wall(t, center, d.level.InnerRadius, r.p.InnerShellRadius, 1)
	if prof.Empty() {
		r.skip("floor", logrus.Fields{"deck": d.plan.Name})
		r.b.Add(d.id, "floor", r.k.Empty(), floorMaterial, scene.RoleFixed)
		return
	}
	slab := r.k.Revolve(prof.Outline(), r.p.ShellWidthSegments)
	r.b.Add(d.id, "floor", r.k.Translate(slab, 0, center, 0), floorMaterial, scene.RoleFixed)
}

// walls places one sphere-conforming wall on every sector boundary, and a
// door leaf on each when the deck asks for doors.
func (r *run) walls(d *deck) {
	n := d.plan.Sectors
	if n < 1 {
		return
	}
	height := d.level.Height()
	center := d.level.Center()
	build := profile.Wall
	if d.plan.Flush {
		build = profile.UpperWall
	}
	prof := build(height, center, d.level.InnerRadius, r.p.InnerShellRadius, r.p.WallSegments)
	pivot := extrude.Pivot(prof)

	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		name := fmt.Sprintf("wall-%02d", i)
		if prof.Empty() {
			r.skip("wall", logrus.Fields{"deck": d.plan.Name, "wall": i})
			r.b.Add(d.id, name, r.k.Empty(), wallMaterial, scene.RoleFixed)
			continue
		}
		s := extrude.Solidify(r.k, prof, r.p.WallThickness)
		s = r.place(s, theta, pivot.X, center+pivot.Y)
		r.b.Add(d.id, name, s, wallMaterial, scene.RoleFixed)
		r.summary.Walls++

		if d.plan.Doors {
			r.door(d, i, theta)
		}
	}
}

// place turns a solid built in a wall's local frame (X radial, Y up, Z
// through the wall) to face angle theta and moves its local origin to
// radial distance radial at height y.
func (r *run) place(s kernel.Solid, theta, radial, y float64) kernel.Solid {
	s = r.k.Rotate(s, 0, degrees(-theta), 0)
	return r.k.Translate(s, math.Cos(theta)*radial, y, math.Sin(theta)*radial)
}

func (r *run) door(d *deck, i int, theta float64) {
	span := d.outer - d.level.InnerRadius
	w := math.Min(doorWidth, span/2)
	h := math.Min(doorHeight, 0.85*d.level.Height())
	arch := profile.Arch(w, h, doorSegments)
	if arch.Empty() {
		r.skip("door", logrus.Fields{"deck": d.plan.Name, "wall": i})
		return
	}
	t := 1.5 * r.p.WallThickness
	leaf := r.k.Translate(r.k.Extrude(arch.Outline(), t), 0, 0, -t/2)
	leaf = r.place(leaf, theta, d.level.InnerRadius+span/2, d.plan.Floor)
	r.b.Add(d.id, fmt.Sprintf("door-%02d", i), leaf, doorMaterial, scene.RoleFixed)
	r.summary.Doors++
}

// sector resolves a deck name and sector index from the plan.
func (r *run) sector(deckName string, index int) (*deck, sector.Sector, bool) {
	d, ok := r.decks[deckName]
	if !ok || index < 0 || index >= len(d.sectors) {
		return nil, sector.Sector{}, false
	}
	return d, d.sectors[index], true
}

// zones lays a translucent tile over each zoned sector's floor and totals
// the zoned volume.
func (r *run) zones() {
	for i, z := range r.p.Zones {
		fields := logrus.Fields{"zone": z.Kind, "deck": z.Deck, "sector": z.Sector}
		d, sec, ok := r.sector(z.Deck, z.Sector)
		color, known := ZoneColors[z.Kind]
		if !ok || !known {
			r.skip("zone", fields)
			continue
		}
		vol := d.level.SectorVolume(sec.SweepAngle)
		r.summary.Zones[z.Kind] += vol

		rim := d.level.FloorRadius() - r.p.WallThickness
		tile := profile.AnnularSector(d.level.InnerRadius, rim, sec.StartAngle, sec.SweepAngle, max(4, r.p.WallSegments))
		if tile.Empty() {
			r.skip("zone tile", fields)
			continue
		}
		// The tile is drawn in the XY plane; a quarter turn about X lays it
		// on the floor with outline Y becoming world Z.
		s := r.k.Extrude(tile.Outline(), zoneTileLift)
		s = r.k.Rotate(s, 90, 0, 0)
		s = r.k.Translate(s, 0, d.plan.Floor+zoneTileLift, 0)
		m := scene.Material{Color: color, Opacity: zoneOpacity, Transparent: true}
		r.b.Add(d.id, fmt.Sprintf("zone-%02d-%s", i, z.Kind), s, m, scene.RoleFixed)
		r.g.log.WithFields(fields).WithField("volume", vol).Debug("zone tiled")
	}
}
