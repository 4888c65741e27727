// Package kernel defines the abstract geometry kernel interface.
// Implementations (mesh, sdfx) provide the handful of solid builders the
// habitat generator needs behind this interface, so the generator can swap
// backends without changing.
//
// Conventions shared by every kernel: Y is up. Box, Cylinder and Sphere are
// centered on the origin, Cylinder runs along Y, Extrude runs along Z from
// z = 0 to z = thickness, Revolve sweeps a (radius, height) outline about Y.
package kernel

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box. An empty solid
	// returns a zero box.
	BoundingBox() (min, max [3]float64)
	// Empty reports whether the solid has no volume. Degenerate geometry
	// degrades to an empty solid instead of an error.
	Empty() bool
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Empty() Solid
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid
	Sphere(radius float64, widthSegments, heightSegments int) Solid

	// Profile solids
	Extrude(outline []r2.Vec, thickness float64) Solid
	Revolve(outline []r2.Vec, segments int) Solid
	Tube(path []r3.Vec, radius float64, sides int) Solid

	// Composition
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

// UnionAll folds solids into one with k.Union. Nil solids are skipped and
// no solids yield k.Empty().
func UnionAll(k Kernel, solids ...Solid) Solid {
	var acc Solid
	for _, s := range solids {
		if s == nil {
			continue
		}
		if acc == nil {
			acc = s
			continue
		}
		acc = k.Union(acc, s)
	}
	if acc == nil {
		return k.Empty()
	}
	return acc
}
