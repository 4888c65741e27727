package scene

import (
	"strings"

	"github.com/chazu/habitat/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// NodeID is the slash-separated path of a node from the root, for example
// "habitat/main-deck/wall-2".
type NodeID string

// IsZero reports whether the ID is empty.
func (id NodeID) IsZero() bool { return id == "" }

// Short returns the last path element.
func (id NodeID) Short() string {
	s := string(id)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Parent returns the ID of the enclosing group, or the zero ID for the
// root.
func (id NodeID) Parent() NodeID {
	s := string(id)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return NodeID(s[:i])
	}
	return ""
}

func (id NodeID) child(name string) NodeID {
	if id.IsZero() {
		return NodeID(name)
	}
	return NodeID(string(id) + "/" + name)
}

// NodeKind enumerates the types of nodes in the scene tree.
type NodeKind int

const (
	NodeGroup NodeKind = iota // named container of other nodes
	NodeSolid                 // leaf owning one kernel solid
)

func (k NodeKind) String() string {
	switch k {
	case NodeGroup:
		return "group"
	case NodeSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Role tells the viewer whether a solid's material is fixed or follows
// the toggle view.
type Role int

const (
	RoleFixed           Role = iota // material never changes
	RoleOuterShell                  // opacity follows the View
	RoleOuterWireframe              // opacity follows the View with the shell
)

func (r Role) String() string {
	switch r {
	case RoleFixed:
		return "fixed"
	case RoleOuterShell:
		return "outer-shell"
	case RoleOuterWireframe:
		return "outer-wireframe"
	default:
		return "unknown"
	}
}

// Material is the surface description attached to a solid.
type Material struct {
	Color       string  `json:"color"` // "#rrggbb"
	Opacity     float64 `json:"opacity"`
	Transparent bool    `json:"transparent"`
	DoubleSided bool    `json:"doubleSided"`
	Wireframe   bool    `json:"wireframe"`
}

// Node is one element of the scene tree. Fields are read through methods
// so a built scene cannot be altered.
type Node struct {
	id       NodeID
	kind     NodeKind
	name     string
	children []*Node
	solid    kernel.Solid
	material Material
	role     Role
	offset   r3.Vec
	yaw      float64
}

// ID returns the node's path.
func (n *Node) ID() NodeID { return n.id }

// Kind returns whether the node is a group or a solid.
func (n *Node) Kind() NodeKind { return n.kind }

// Name returns the node's name, unique among its siblings.
func (n *Node) Name() string { return n.name }

// Children returns a copy of the node's children in insertion order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Solid returns the solid a leaf owns, or nil for a group.
func (n *Node) Solid() kernel.Solid { return n.solid }

// Material returns the leaf's base material.
func (n *Node) Material() Material { return n.material }

// Role returns the leaf's toggle role.
func (n *Node) Role() Role { return n.role }

// Offset returns the translation applied to everything under a group.
func (n *Node) Offset() r3.Vec { return n.offset }

// Yaw returns the rotation about Y, in radians, applied under a group
// before its offset.
func (n *Node) Yaw() float64 { return n.yaw }
