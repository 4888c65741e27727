package scene_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/habitat/pkg/kernel/mesh"
	"github.com/chazu/habitat/pkg/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

var grey = scene.Material{Color: "#cccccc", Opacity: 1}

func buildSample(t *testing.T) *scene.Scene {
	t.Helper()
	k := mesh.New()
	b := scene.NewBuilder("habitat")
	shells := b.Group(b.Root(), "shells")
	b.Add(shells, "outer", k.Sphere(5, 8, 4), grey, scene.RoleOuterShell)
	deck := b.Group(b.Root(), "main-deck")
	b.Add(deck, "floor", k.Box(1, 0.1, 1), grey, scene.RoleFixed)
	b.Add(deck, "wall-0", k.Box(0.1, 1, 1), grey, scene.RoleFixed)
	lander := b.Group(b.Root(), "lander-systems")
	b.Offset(lander, r3.Vec{Y: -6}, 0)
	b.Add(lander, "tank-0", k.Cylinder(1, 0.3, 12), grey, scene.RoleFixed)
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return s
}

func TestBuildTree(t *testing.T) {
	s := buildSample(t)
	if s.Root().Name() != "habitat" || s.Root().Kind() != scene.NodeGroup {
		t.Fatalf("root = %s %s", s.Root().Kind(), s.Root().Name())
	}
	var names []string
	for _, g := range s.Groups() {
		names = append(names, g.Name())
	}
	if got := strings.Join(names, ","); got != "shells,main-deck,lander-systems" {
		t.Errorf("groups = %s", got)
	}
	if len(s.Solids()) != 4 {
		t.Errorf("got %d solids, want 4", len(s.Solids()))
	}
	if s.NodeCount() != 8 {
		t.Errorf("node count = %d, want 8", s.NodeCount())
	}
}

func TestLookupAndGet(t *testing.T) {
	s := buildSample(t)
	deck := s.Lookup("main-deck")
	if deck == nil {
		t.Fatal("Lookup(main-deck) = nil")
	}
	if deck.ID() != "habitat/main-deck" {
		t.Errorf("deck id = %s", deck.ID())
	}
	wall := s.Get("habitat/main-deck/wall-0")
	if wall == nil || wall.Kind() != scene.NodeSolid {
		t.Fatal("Get(wall-0) did not return the solid")
	}
	if wall.ID().Short() != "wall-0" || wall.ID().Parent() != deck.ID() {
		t.Errorf("id helpers: short=%s parent=%s", wall.ID().Short(), wall.ID().Parent())
	}
	if s.Lookup("wall-0") != nil {
		t.Error("Lookup should only find groups")
	}
	if got := s.Lookup("lander-systems").Offset(); got != (r3.Vec{Y: -6}) {
		t.Errorf("lander offset = %v", got)
	}
}

func TestChildrenIsACopy(t *testing.T) {
	s := buildSample(t)
	deck := s.Lookup("main-deck")
	kids := deck.Children()
	kids[0] = nil
	if deck.Children()[0] == nil {
		t.Error("mutating Children() result changed the scene")
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	s := buildSample(t)
	var visited int
	s.Walk(func(n *scene.Node, depth int) bool {
		visited++
		return n.Name() != "main-deck"
	})
	// root, shells, outer, main-deck, lander-systems, tank-0
	if visited != 6 {
		t.Errorf("visited %d nodes, want 6", visited)
	}
}

func TestBuilderErrors(t *testing.T) {
	k := mesh.New()
	tests := []struct {
		name  string
		build func(b *scene.Builder)
		want  string
	}{
		{"duplicate group", func(b *scene.Builder) {
			b.Group(b.Root(), "deck")
			b.Group(b.Root(), "deck")
		}, "duplicate group name"},
		{"duplicate sibling", func(b *scene.Builder) {
			g := b.Group(b.Root(), "deck")
			b.Add(g, "wall", k.Box(1, 1, 1), grey, scene.RoleFixed)
			b.Add(g, "wall", k.Box(1, 1, 1), grey, scene.RoleFixed)
		}, "duplicate node"},
		{"missing parent", func(b *scene.Builder) {
			b.Add("habitat/nowhere", "wall", k.Box(1, 1, 1), grey, scene.RoleFixed)
		}, "does not exist"},
		{"solid parent", func(b *scene.Builder) {
			w := b.Add(b.Root(), "wall", k.Box(1, 1, 1), grey, scene.RoleFixed)
			b.Add(w, "door", k.Box(1, 1, 1), grey, scene.RoleFixed)
		}, "not a group"},
		{"nil solid", func(b *scene.Builder) {
			b.Add(b.Root(), "ghost", nil, grey, scene.RoleFixed)
		}, "is nil"},
		{"bad color", func(b *scene.Builder) {
			b.Add(b.Root(), "wall", k.Box(1, 1, 1), scene.Material{Color: "red", Opacity: 1}, scene.RoleFixed)
		}, "not #rrggbb"},
		{"slash in name", func(b *scene.Builder) {
			b.Add(b.Root(), "a/b", k.Box(1, 1, 1), grey, scene.RoleFixed)
		}, "invalid name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scene.NewBuilder("habitat")
			tt.build(b)
			_, err := b.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestBuilderUnusableAfterBuild(t *testing.T) {
	b := scene.NewBuilder("habitat")
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, scene.ErrBuilt) {
		t.Errorf("second Build error = %v, want ErrBuilt", err)
	}
	b.Group(b.Root(), "late")
	if !errors.Is(b.Err(), scene.ErrBuilt) {
		t.Errorf("Group after Build error = %v, want ErrBuilt", b.Err())
	}
}

func TestValidateWarnings(t *testing.T) {
	k := mesh.New()
	b := scene.NewBuilder("habitat")
	b.Group(b.Root(), "upper-deck")
	d := b.Group(b.Root(), "main-deck")
	b.Add(d, "degenerate-wall", k.Empty(), grey, scene.RoleFixed)
	b.Add(d, "haze", k.Box(1, 1, 1), scene.Material{Color: "#ffffff", Opacity: 0.5}, scene.RoleFixed)
	s, err := b.Build()
	if err != nil {
		t.Fatalf("warnings must not block Build: %v", err)
	}
	res := scene.Validate(s)
	if len(res.Errors) != 0 {
		t.Errorf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 3 {
		t.Errorf("got %d warnings, want 3: %v", len(res.Warnings), res.Warnings)
	}
	for _, w := range res.Warnings {
		if w.Severity != scene.SeverityWarning {
			t.Errorf("warning %v has severity %s", w, w.Severity)
		}
	}
}
