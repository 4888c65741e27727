// Package habitat turns a plan into a scene: nested shells, the decks with
// their floors, walls, zones, fixtures and conduits, the spiral stairs
// between decks and the lander systems hung below the shell.
//
// Generation runs to completion on the calling goroutine. Geometric
// degeneracy never fails a run; it yields empty solids or skipped elements,
// which Summary counts.
package habitat

import (
	"fmt"
	"math"

	"github.com/chazu/habitat/pkg/config"
	"github.com/chazu/habitat/pkg/kernel"
	"github.com/chazu/habitat/pkg/plan"
	"github.com/chazu/habitat/pkg/scene"
	"github.com/sirupsen/logrus"
)

// Group names below the root.
const (
	RootGroup    = plan.RootName
	ShellsGroup  = plan.ShellsName
	LanderGroup  = plan.LanderName
	stairPrefix  = plan.StairPrefix
	zoneOpacity  = 0.8
	zoneTileLift = 0.02
)

// Colors of the fixed structure.
var (
	InnerShellMaterial = scene.Material{Color: "#cccccc", Opacity: 0.5, Transparent: true, DoubleSided: true}
	InnerWireMaterial  = scene.Material{Color: "#00bbff", Opacity: 0.5, Transparent: true, Wireframe: true}
	OuterShellMaterial = scene.Material{Color: "#8b4513", Opacity: 1}
	OuterWireMaterial  = scene.Material{Color: "#888800", Opacity: 1, Wireframe: true}

	floorMaterial   = scene.Material{Color: "#696969", Opacity: 1}
	wallMaterial    = scene.Material{Color: "#5555ff", Opacity: 0.5, Transparent: true, DoubleSided: true}
	doorMaterial    = scene.Material{Color: "#333333", Opacity: 1}
	conduitMaterial = scene.Material{Color: "#c0c0c0", Opacity: 1}
	stairMaterial   = scene.Material{Color: "#888888", Opacity: 1}
	rimMaterial     = scene.Material{Color: "#444444", Opacity: 1}
)

// ZoneColors maps each zone kind to its floor tile color.
var ZoneColors = map[string]string{
	plan.ZoneSleep:       "#ff0000",
	plan.ZoneHygiene:     "#00ff00",
	plan.ZoneExercise:    "#ffff00",
	plan.ZoneFood:        "#ffa500",
	plan.ZoneLifeSupport: "#00ffff",
}

var log = config.NamedLogger("habitat")

// Summary counts what a generation run produced.
type Summary struct {
	Levels   int `json:"levels"`
	Sectors  int `json:"sectors"`
	Walls    int `json:"walls"`
	Doors    int `json:"doors"`
	Fixtures int `json:"fixtures"`
	Conduits int `json:"conduits"`
	Stairs   int `json:"stairs"`
	Steps    int `json:"steps"`
	// Skipped counts plan elements that produced no geometry.
	Skipped int `json:"skipped"`
	// Zones is the enclosed volume per zone kind.
	Zones map[string]float64 `json:"zones"`
	// OccupiedVolume totals Zones.
	OccupiedVolume float64 `json:"occupiedVolume"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d levels, %d sectors, %d walls, %d fixtures, %d conduits, %d steps, %d skipped, occupied volume %.2f m³",
		s.Levels, s.Sectors, s.Walls, s.Fixtures, s.Conduits, s.Steps, s.Skipped, s.OccupiedVolume)
}

// Result is one generated habitat. The scene is immutable; View is the only
// state that changes afterwards.
type Result struct {
	Plan    *plan.Plan
	Scene   *scene.Scene
	View    *scene.View
	Summary Summary
}

// Generator builds habitats with one geometry kernel.
type Generator struct {
	k   kernel.Kernel
	log *logrus.Entry
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger replaces the package logger.
func WithLogger(l *logrus.Entry) Option {
	return func(g *Generator) { g.log = l }
}

// New returns a generator using k.
func New(k kernel.Kernel, opts ...Option) *Generator {
	g := &Generator{k: k, log: log}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate builds the scene for p. Decks with reserved or invalid names are
// skipped and '/' in fixture and conduit names is relabelled, so a plan
// never fails on its names; only a nil plan is an error.
func (g *Generator) Generate(p *plan.Plan) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("habitat: nil plan")
	}
	run := &run{
		g:       g,
		k:       g.k,
		p:       p,
		b:       scene.NewBuilder(RootGroup),
		decks:   make(map[string]*deck),
		summary: Summary{Zones: make(map[string]float64)},
	}

	run.shells()
	for _, l := range p.Levels {
		run.deck(l)
	}
	run.zones()
	run.fixtures()
	run.conduits()
	run.stairs()
	run.lander()

	sc, err := run.b.Build()
	if err != nil {
		return nil, fmt.Errorf("habitat: %w", err)
	}
	for _, v := range run.summary.Zones {
		run.summary.OccupiedVolume += v
	}
	g.log.WithFields(logrus.Fields{
		"plan":  p.Name,
		"nodes": sc.NodeCount(),
	}).Info(run.summary.String())

	return &Result{
		Plan:    p,
		Scene:   sc,
		View:    scene.NewView(OuterShellMaterial, OuterWireMaterial),
		Summary: run.summary,
	}, nil
}

// run carries the state of one Generate call.
type run struct {
	g       *Generator
	k       kernel.Kernel
	p       *plan.Plan
	b       *scene.Builder
	decks   map[string]*deck
	summary Summary
}

func (r *run) skip(what string, fields logrus.Fields) {
	r.summary.Skipped++
	r.g.log.WithFields(fields).Debugf("skipped %s", what)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// shells adds the inner habitat shell, always see-through, and the outer
// regolith shell whose material follows the View.
func (r *run) shells() {
	id := r.b.Group(r.b.Root(), ShellsGroup)
	w, h := r.p.ShellWidthSegments, r.p.ShellHeightSegments
	sphere := func(radius float64) kernel.Solid {
		if radius <= 0 {
			return r.k.Empty()
		}
		return r.k.Sphere(radius, w, h)
	}
	r.b.Add(id, "inner-shell", sphere(r.p.InnerShellRadius), InnerShellMaterial, scene.RoleFixed)
	r.b.Add(id, "inner-wireframe", sphere(r.p.InnerShellRadius), InnerWireMaterial, scene.RoleFixed)
	r.b.Add(id, "outer-shell", sphere(r.p.OuterShellRadius), OuterShellMaterial, scene.RoleOuterShell)
	r.b.Add(id, "outer-wireframe", sphere(r.p.OuterShellRadius), OuterWireMaterial, scene.RoleOuterWireframe)
}
