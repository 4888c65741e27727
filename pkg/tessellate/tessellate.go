// Package tessellate walks a scene and produces triangle meshes using a
// geometry kernel. One mesh is produced per solid node.
package tessellate

import (
	"fmt"
	"math"

	"github.com/chazu/habitat/pkg/kernel"
	"github.com/chazu/habitat/pkg/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// frame is one group's transform: rotate by yaw about Y, then translate.
type frame struct {
	offset r3.Vec
	yaw    float64
}

// transformStack accumulates group transforms during scene traversal.
type transformStack struct {
	frames []frame
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) push(f frame) {
	ts.frames = append(ts.frames, f)
}

func (ts *transformStack) pop() {
	if len(ts.frames) > 0 {
		ts.frames = ts.frames[:len(ts.frames)-1]
	}
}

// apply places s in world space, innermost group first.
func (ts *transformStack) apply(k kernel.Kernel, s kernel.Solid) kernel.Solid {
	for i := len(ts.frames) - 1; i >= 0; i-- {
		f := ts.frames[i]
		if f.yaw != 0 {
			s = k.Rotate(s, 0, f.yaw*180/math.Pi, 0)
		}
		if f.offset != (r3.Vec{}) {
			s = k.Translate(s, f.offset.X, f.offset.Y, f.offset.Z)
		}
	}
	return s
}

// Part is one tessellated solid with the context a viewer needs to draw
// it.
type Part struct {
	Mesh     *kernel.Mesh
	ID       scene.NodeID
	Group    string // top-level group below the root, e.g. "main-deck"
	Role     scene.Role
	Material scene.Material
}

// Tessellate walks the scene and produces one part per solid node using
// the provided geometry kernel. Empty solids yield parts with empty meshes
// so callers can still account for them. The scene is never mutated.
func Tessellate(s *scene.Scene, k kernel.Kernel) ([]Part, error) {
	if s == nil || s.Root() == nil {
		return nil, nil
	}

	ts := newTransformStack()
	parts, err := walkNode(k, s.Root(), "", 0, ts)
	if err != nil {
		return nil, fmt.Errorf("tessellate: error walking %s: %w", s.Root().ID(), err)
	}
	return parts, nil
}

// walkNode recursively traverses a node and its children, collecting parts.
func walkNode(k kernel.Kernel, n *scene.Node, group string, depth int, ts *transformStack) ([]Part, error) {
	switch n.Kind() {
	case scene.NodeSolid:
		return handleSolid(k, n, group, ts)

	case scene.NodeGroup:
		if depth == 1 {
			group = n.Name()
		}
		return handleGroup(k, n, group, depth, ts)

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind())
	}
}

// handleSolid places and meshes a leaf.
func handleSolid(k kernel.Kernel, n *scene.Node, group string, ts *transformStack) ([]Part, error) {
	solid := n.Solid()
	if solid == nil {
		return nil, fmt.Errorf("solid node %s owns no solid", n.ID())
	}
	if !solid.Empty() {
		solid = ts.apply(k, solid)
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for node %s: %w", n.ID(), err)
	}
	mesh.PartName = n.Name()

	return []Part{{
		Mesh:     mesh,
		ID:       n.ID(),
		Group:    group,
		Role:     n.Role(),
		Material: n.Material(),
	}}, nil
}

// handleGroup pushes the group's transform, recurses into children, then
// pops.
func handleGroup(k kernel.Kernel, n *scene.Node, group string, depth int, ts *transformStack) ([]Part, error) {
	ts.push(frame{offset: n.Offset(), yaw: n.Yaw()})
	defer ts.pop()

	var parts []Part
	for _, child := range n.Children() {
		collected, err := walkNode(k, child, group, depth+1, ts)
		if err != nil {
			return nil, err
		}
		parts = append(parts, collected...)
	}
	return parts, nil
}

// Stats summarizes a tessellation.
type Stats struct {
	Parts     int
	Empty     int
	Vertices  int
	Triangles int
}

// Summarize counts parts, empty meshes, vertices and triangles.
func Summarize(parts []Part) Stats {
	var st Stats
	for _, p := range parts {
		st.Parts++
		if p.Mesh.IsEmpty() {
			st.Empty++
		}
		st.Vertices += p.Mesh.VertexCount()
		st.Triangles += p.Mesh.TriangleCount()
	}
	return st
}
