package plan

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Default returns the reference habitat: three decks inside a 4.8 m inner
// shell, furnished, zoned, plumbed and linked by spiral stairs, with the
// lander systems underneath.
func Default() *Plan {
	p := New()
	p.Levels = []Level{
		{Name: "lower-deck", Floor: -4.0, Ceiling: -1.6, Sectors: 4, Doors: true},
		{Name: "main-deck", Floor: -1.5, Ceiling: 1.5, Sectors: 6, Doors: true},
		{Name: "upper-deck", Floor: 1.6, Ceiling: 3.8, Sectors: 4, Flush: true},
	}
	p.Fixtures = []Fixture{
		{Kind: "tank", Deck: "lower-deck", Sector: 0, Angle: 0.3, Radius: 0.5},
		{Kind: "tank", Deck: "lower-deck", Sector: 0, Angle: 0.7, Radius: 0.5},
		{Kind: "rack", Deck: "lower-deck", Sector: 1, Angle: 0.5, Radius: 0.6},
		{Kind: "locker", Deck: "lower-deck", Sector: 2, Angle: 0.5, Radius: 0.6},
		{Kind: "rack", Deck: "lower-deck", Sector: 3, Angle: 0.5, Radius: 0.6},

		{Kind: "galley", Deck: "main-deck", Sector: 0, Angle: 0.5, Radius: 0.75},
		{Kind: "desk", Deck: "main-deck", Sector: 0, Angle: 0.5, Radius: 0.3},
		{Kind: "bunk", Deck: "main-deck", Sector: 1, Angle: 0.5, Radius: 0.7},
		{Kind: "locker", Deck: "main-deck", Sector: 2, Angle: 0.2, Radius: 0.8},
		{Kind: "desk", Deck: "main-deck", Sector: 2, Angle: 0.6, Radius: 0.6},
		{Kind: "treadmill", Deck: "main-deck", Sector: 3, Angle: 0.5, Radius: 0.6},
		{Kind: "rack", Deck: "main-deck", Sector: 4, Angle: 0.5, Radius: 0.7},
		{Kind: "bunk", Deck: "main-deck", Sector: 5, Angle: 0.5, Radius: 0.7},

		{Kind: "bunk", Deck: "upper-deck", Sector: 0, Angle: 0.5, Radius: 0.5},
		{Kind: "bunk", Deck: "upper-deck", Sector: 1, Angle: 0.5, Radius: 0.5},
		{Kind: "desk", Deck: "upper-deck", Sector: 2, Angle: 0.5, Radius: 0.4},
		{Kind: "locker", Deck: "upper-deck", Sector: 3, Angle: 0.5, Radius: 0.4},
	}
	p.Zones = []Zone{
		{Kind: ZoneLifeSupport, Deck: "lower-deck", Sector: 0},
		{Kind: ZoneHygiene, Deck: "lower-deck", Sector: 2},
		{Kind: ZoneFood, Deck: "main-deck", Sector: 0},
		{Kind: ZoneSleep, Deck: "main-deck", Sector: 1},
		{Kind: ZoneExercise, Deck: "main-deck", Sector: 3},
		{Kind: ZoneSleep, Deck: "upper-deck", Sector: 0},
		{Kind: ZoneSleep, Deck: "upper-deck", Sector: 1},
	}
	p.Conduits = []Conduit{
		{Name: "coolant", Deck: "main-deck", From: 0, To: 1, Sag: r3.Vec{Y: -0.3}, Radius: 0.04, Lift: 2.6},
		{Name: "power", Deck: "main-deck", From: 0, To: 3, Via: []int{1, 2}, Radius: 0.03, Lift: 2.7},
		{Name: "water", Deck: "lower-deck", From: 0, To: 2, Via: []int{1}, Radius: 0.05, Lift: 2.0},
	}
	p.Stairs = []Stair{
		{From: "lower-deck", To: "main-deck", Hatch: 0.6, Step: 0.2, Sweep: math.Pi},
		{From: "main-deck", To: "upper-deck", Hatch: 0.6, Step: 0.2, Sweep: 1.5 * math.Pi},
	}
	p.Lander = &Lander{Tanks: 3, Legs: 4, Drop: 0.5}
	return p
}
