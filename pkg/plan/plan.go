// Package plan is the flat configuration record a habitat is generated
// from: shell radii, decks, and what goes in each deck's sectors. A plan is
// consumed once at generation time and never mutated by the generator.
package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrNoLevels is returned by level lookups on a plan with no decks.
	ErrNoLevels = errors.New("plan: no levels defined")
	// ErrUnknownLevel is returned when a name matches no deck.
	ErrUnknownLevel = errors.New("plan: unknown level")
)

// Zone kinds recognized by the generator.
const (
	ZoneSleep       = "sleep"
	ZoneHygiene     = "hygiene"
	ZoneExercise    = "exercise"
	ZoneFood        = "food"
	ZoneLifeSupport = "life-support"
)

// ZoneKinds lists the zone kinds in display order.
var ZoneKinds = []string{ZoneSleep, ZoneHygiene, ZoneExercise, ZoneFood, ZoneLifeSupport}

// Scene group names the generator uses for itself. Decks may not take them.
const (
	RootName    = "habitat"
	ShellsName  = "shells"
	LanderName  = "lander-systems"
	StairPrefix = "stair-"
)

// DeckNameOK reports whether name can name a deck: non-empty, free of '/'
// and clear of the generator's own group names.
func DeckNameOK(name string) bool {
	switch name {
	case "", RootName, ShellsName, LanderName:
		return false
	}
	return !strings.Contains(name, "/") && !strings.HasPrefix(name, StairPrefix)
}

// Label turns a fixture or conduit name into a scene node label by
// replacing the path separator.
func Label(name string) string {
	return strings.ReplaceAll(name, "/", "-")
}

// Level is one deck: a horizontal band of the inner shell.
type Level struct {
	Name    string  `json:"name"`
	Floor   float64 `json:"floor"`
	Ceiling float64 `json:"ceiling"`
	Core    float64 `json:"core,omitempty"` // inner radius; 0 uses Plan.CoreRadius
	Sectors int     `json:"sectors"`
	Flush   bool    `json:"flush,omitempty"` // walls meet floor and ceiling exactly
	Doors   bool    `json:"doors,omitempty"` // hang a door leaf on each wall
}

// Height returns Ceiling - Floor.
func (l Level) Height() float64 { return l.Ceiling - l.Floor }

// Fixture places one catalog item in a sector.
type Fixture struct {
	Name   string  `json:"name,omitempty"`
	Kind   string  `json:"kind"`
	Deck   string  `json:"deck"`
	Sector int     `json:"sector"`
	Angle  float64 `json:"angle"`  // fraction of the sector sweep
	Radius float64 `json:"radius"` // fraction of the radial span
	Turn   float64 `json:"turn,omitempty"`
}

// Zone tags a sector with a function.
type Zone struct {
	Kind   string `json:"kind"`
	Deck   string `json:"deck"`
	Sector int    `json:"sector"`
}

// Conduit runs a pipe between two sectors of a deck. Sectors listed in Via
// turn the run into a spline through each sector's midpoint.
type Conduit struct {
	Name   string  `json:"name"`
	Deck   string  `json:"deck"`
	From   int     `json:"from"`
	To     int     `json:"to"`
	Via    []int   `json:"via,omitempty"`
	Sag    r3.Vec  `json:"sag"`
	Radius float64 `json:"radius"`
	Lift   float64 `json:"lift"`            // height above the deck floor
	Reach  float64 `json:"reach,omitempty"` // fraction of the radial span; 0 runs near the shell
}

// Stair joins two decks through a hatch in the core.
type Stair struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Hatch float64 `json:"hatch"` // hatch radius
	Step  float64 `json:"step"`  // step height
	Sweep float64 `json:"sweep"` // radians turned over the whole rise
}

// Lander describes the landing systems hung below the habitat.
type Lander struct {
	Tanks int     `json:"tanks"`
	Legs  int     `json:"legs"`
	Drop  float64 `json:"drop"` // distance below the outer shell's bottom
}

// Plan is the complete habitat description.
type Plan struct {
	Name                string    `json:"name"`
	InnerShellRadius    float64   `json:"innerShellRadius"`
	OuterShellRadius    float64   `json:"outerShellRadius"`
	CoreRadius          float64   `json:"coreRadius"`
	FloorThickness      float64   `json:"floorThickness"`
	WallThickness       float64   `json:"wallThickness"`
	WallSegments        int       `json:"wallSegments"`
	TubeTessellation    int       `json:"tubeTessellation"`
	TubeSides           int       `json:"tubeSides"`
	ShellWidthSegments  int       `json:"shellWidthSegments"`
	ShellHeightSegments int       `json:"shellHeightSegments"`
	Levels              []Level   `json:"levels"`
	Fixtures            []Fixture `json:"fixtures,omitempty"`
	Zones               []Zone    `json:"zones,omitempty"`
	Conduits            []Conduit `json:"conduits,omitempty"`
	Stairs              []Stair   `json:"stairs,omitempty"`
	Lander              *Lander   `json:"lander,omitempty"`
}

// New returns a plan with the default shell and tessellation numerics and
// nothing inside the shell.
func New() *Plan {
	return &Plan{
		Name:                "habitat",
		InnerShellRadius:    4.8,
		OuterShellRadius:    5.0,
		CoreRadius:          0.8,
		FloorThickness:      0.1,
		WallThickness:       0.08,
		WallSegments:        12,
		TubeTessellation:    24,
		TubeSides:           8,
		ShellWidthSegments:  32,
		ShellHeightSegments: 16,
	}
}

// Level returns the deck with the given name.
func (p *Plan) Level(name string) (Level, error) {
	if len(p.Levels) == 0 {
		return Level{}, ErrNoLevels
	}
	for _, l := range p.Levels {
		if l.Name == name {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("%w %q", ErrUnknownLevel, name)
}

// LevelHeights returns each deck's height in plan order.
func (p *Plan) LevelHeights() []float64 {
	out := make([]float64, len(p.Levels))
	for i, l := range p.Levels {
		out[i] = l.Height()
	}
	return out
}

// SectorCounts returns each deck's sector count in plan order.
func (p *Plan) SectorCounts() []int {
	out := make([]int, len(p.Levels))
	for i, l := range p.Levels {
		out[i] = l.Sectors
	}
	return out
}

// CoreFor returns the inner radius used for l.
func (p *Plan) CoreFor(l Level) float64 {
	if l.Core > 0 {
		return l.Core
	}
	return p.CoreRadius
}

// Load reads a JSON plan. Fields missing from the file keep New's
// defaults.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: read %s: %w", path, err)
	}
	p := New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("plan: parse %s: %w", path, err)
	}
	return p, nil
}

// Save writes p as indented JSON.
func (p *Plan) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("plan: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("plan: write %s: %w", path, err)
	}
	return nil
}
