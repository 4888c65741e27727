// Package fixture is the catalog of furnishings the generator places in
// sectors. Each factory builds fresh solids on every call so that no two
// scene nodes share a solid.
//
// Fixtures are built in a local frame: the base rests on y = 0, the
// footprint is centered on the origin, and local +X is the radial
// direction (a sector pose turns it to face outward).
package fixture

import (
	"sort"

	"github.com/chazu/habitat/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// Entry describes one kind of fixture.
type Entry struct {
	Kind  string
	Size  r3.Vec // X radial depth, Y height, Z tangential width
	Color string
	build func(k kernel.Kernel, size r3.Vec) kernel.Solid
}

// Build creates a new solid for the entry at its catalog size.
func (e Entry) Build(k kernel.Kernel) kernel.Solid {
	return e.BuildSized(k, e.Size)
}

// BuildSized creates a new solid scaled to size. Non-positive components
// fall back to the catalog size.
func (e Entry) BuildSized(k kernel.Kernel, size r3.Vec) kernel.Solid {
	if size.X <= 0 {
		size.X = e.Size.X
	}
	if size.Y <= 0 {
		size.Y = e.Size.Y
	}
	if size.Z <= 0 {
		size.Z = e.Size.Z
	}
	return e.build(k, size)
}

// Footprint returns the floor area the fixture covers.
func (e Entry) Footprint() float64 {
	return e.Size.X * e.Size.Z
}

var catalog = map[string]Entry{
	"bunk":      {Kind: "bunk", Size: r3.Vec{X: 0.9, Y: 1.6, Z: 2.0}, Color: "#4682b4", build: bunk},
	"desk":      {Kind: "desk", Size: r3.Vec{X: 0.6, Y: 0.75, Z: 1.2}, Color: "#a0522d", build: desk},
	"locker":    {Kind: "locker", Size: r3.Vec{X: 0.5, Y: 1.8, Z: 0.6}, Color: "#708090", build: locker},
	"galley":    {Kind: "galley", Size: r3.Vec{X: 0.6, Y: 0.9, Z: 1.8}, Color: "#d2b48c", build: galley},
	"rack":      {Kind: "rack", Size: r3.Vec{X: 0.5, Y: 1.8, Z: 1.0}, Color: "#2f4f4f", build: rack},
	"treadmill": {Kind: "treadmill", Size: r3.Vec{X: 0.8, Y: 1.2, Z: 1.8}, Color: "#333333", build: treadmill},
	"tank":      {Kind: "tank", Size: r3.Vec{X: 0.8, Y: 1.4, Z: 0.8}, Color: "#b0c4de", build: tank},
	"leg":       {Kind: "leg", Size: r3.Vec{X: 0.12, Y: 1.5, Z: 0.12}, Color: "#999999", build: leg},
}

// Lookup returns the catalog entry for kind.
func Lookup(kind string) (Entry, bool) {
	e, ok := catalog[kind]
	return e, ok
}

// Kinds returns every catalog kind in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// slab is a box whose bottom sits at y.
func slab(k kernel.Kernel, x, h, z, y float64) kernel.Solid {
	return k.Translate(k.Box(x, h, z), 0, y+h/2, 0)
}

// post is a vertical cylinder standing on y = 0 at (x, z).
func post(k kernel.Kernel, r, h, x, z float64) kernel.Solid {
	return k.Translate(k.Cylinder(h, r, 12), x, h/2, z)
}

func bunk(k kernel.Kernel, s r3.Vec) kernel.Solid {
	const mattress = 0.15
	hx, hz := s.X/2-0.03, s.Z/2-0.03
	return kernel.UnionAll(k,
		slab(k, s.X, mattress, s.Z, 0.3),
		slab(k, s.X, mattress, s.Z, s.Y-mattress),
		post(k, 0.03, s.Y, hx, hz),
		post(k, 0.03, s.Y, -hx, hz),
		post(k, 0.03, s.Y, hx, -hz),
		post(k, 0.03, s.Y, -hx, -hz),
	)
}

func desk(k kernel.Kernel, s r3.Vec) kernel.Solid {
	const top = 0.04
	hx, hz := s.X/2-0.04, s.Z/2-0.04
	legH := s.Y - top
	return kernel.UnionAll(k,
		slab(k, s.X, top, s.Z, legH),
		post(k, 0.025, legH, hx, hz),
		post(k, 0.025, legH, -hx, hz),
		post(k, 0.025, legH, hx, -hz),
		post(k, 0.025, legH, -hx, -hz),
	)
}

func locker(k kernel.Kernel, s r3.Vec) kernel.Solid {
	return slab(k, s.X, s.Y, s.Z, 0)
}

func galley(k kernel.Kernel, s r3.Vec) kernel.Solid {
	counter := slab(k, s.X, s.Y, s.Z, 0)
	basin := k.Translate(k.Cylinder(0.05, s.X/4, 24), 0, s.Y+0.025, s.Z/4)
	return k.Union(counter, basin)
}

func rack(k kernel.Kernel, s r3.Vec) kernel.Solid {
	const shelves = 4
	const board = 0.03
	parts := []kernel.Solid{
		k.Translate(slab(k, s.X, s.Y, 0.04, 0), 0, 0, -s.Z/2+0.02),
		k.Translate(slab(k, s.X, s.Y, 0.04, 0), 0, 0, s.Z/2-0.02),
	}
	for i := 0; i < shelves; i++ {
		y := float64(i) * (s.Y - board) / float64(shelves-1)
		parts = append(parts, slab(k, s.X, board, s.Z-0.08, y))
	}
	return kernel.UnionAll(k, parts...)
}

func treadmill(k kernel.Kernel, s r3.Vec) kernel.Solid {
	const deck = 0.2
	return kernel.UnionAll(k,
		slab(k, s.X, deck, s.Z, 0),
		post(k, 0.02, s.Y, 0, s.Z/2-0.05),
		k.Translate(k.Rotate(k.Cylinder(s.X, 0.02, 12), 0, 0, 90), 0, s.Y, s.Z/2-0.05),
	)
}

func tank(k kernel.Kernel, s r3.Vec) kernel.Solid {
	r := s.X / 2
	body := s.Y - 2*r
	if body <= 0 {
		return k.Translate(k.Sphere(r, 16, 8), 0, r, 0)
	}
	return kernel.UnionAll(k,
		k.Translate(k.Cylinder(body, r, 24), 0, r+body/2, 0),
		k.Translate(k.Sphere(r, 24, 12), 0, r, 0),
		k.Translate(k.Sphere(r, 24, 12), 0, r+body, 0),
	)
}

func leg(k kernel.Kernel, s r3.Vec) kernel.Solid {
	return kernel.UnionAll(k,
		post(k, s.X/2, s.Y, 0, 0),
		k.Translate(k.Cylinder(0.04, s.X*2, 16), 0, 0.02, 0),
	)
}
