package scene

import (
	"errors"
	"fmt"

	"github.com/chazu/habitat/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrBuilt is returned when a Builder is used after Build.
var ErrBuilt = errors.New("scene: builder already built")

// Builder assembles a Scene. Methods record the first error they hit and
// Build reports it, so generator code can add nodes without checking each
// call.
type Builder struct {
	scene *Scene
	err   error
	built bool
}

// NewBuilder starts a scene whose root group is named root.
func NewBuilder(root string) *Builder {
	r := &Node{id: NodeID(root), kind: NodeGroup, name: root}
	return &Builder{
		scene: &Scene{
			root:      r,
			nodes:     map[NodeID]*Node{r.id: r},
			nameIndex: map[string]NodeID{root: r.id},
		},
	}
}

// Root returns the root group's ID.
func (b *Builder) Root() NodeID {
	return b.scene.root.id
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) add(parent NodeID, n *Node) NodeID {
	if b.built {
		b.fail(ErrBuilt)
		return ""
	}
	p := b.scene.nodes[parent]
	if p == nil {
		b.fail(fmt.Errorf("scene: parent %q does not exist", parent))
		return ""
	}
	if p.kind != NodeGroup {
		b.fail(fmt.Errorf("scene: parent %q is a %s, not a group", parent, p.kind))
		return ""
	}
	n.id = parent.child(n.name)
	if _, dup := b.scene.nodes[n.id]; dup {
		b.fail(fmt.Errorf("scene: duplicate node %q", n.id))
		return ""
	}
	p.children = append(p.children, n)
	b.scene.nodes[n.id] = n
	return n.id
}

// Group adds an empty group under parent and returns its ID. Group names
// must be unique across the scene.
func (b *Builder) Group(parent NodeID, name string) NodeID {
	if _, dup := b.scene.nameIndex[name]; dup {
		b.fail(fmt.Errorf("scene: duplicate group name %q", name))
		return ""
	}
	id := b.add(parent, &Node{kind: NodeGroup, name: name})
	if !id.IsZero() {
		b.scene.nameIndex[name] = id
	}
	return id
}

// Add attaches a solid under parent. The node takes ownership of s.
func (b *Builder) Add(parent NodeID, name string, s kernel.Solid, m Material, role Role) NodeID {
	if s == nil {
		b.fail(fmt.Errorf("scene: solid %q under %q is nil", name, parent))
		return ""
	}
	return b.add(parent, &Node{kind: NodeSolid, name: name, solid: s, material: m, role: role})
}

// Offset sets the yaw (radians about Y) and translation applied to every
// node under the group.
func (b *Builder) Offset(group NodeID, offset r3.Vec, yaw float64) {
	if b.built {
		b.fail(ErrBuilt)
		return
	}
	n := b.scene.nodes[group]
	if n == nil || n.kind != NodeGroup {
		b.fail(fmt.Errorf("scene: cannot offset %q: not a group", group))
		return
	}
	n.offset, n.yaw = offset, yaw
}

// Err returns the first error recorded so far.
func (b *Builder) Err() error {
	return b.err
}

// Build finishes the scene. It returns the first recorded builder error or
// the first blocking validation error. The builder cannot be used again.
func (b *Builder) Build() (*Scene, error) {
	if b.built {
		return nil, ErrBuilt
	}
	b.built = true
	if b.err != nil {
		return nil, b.err
	}
	res := Validate(b.scene)
	if len(res.Errors) > 0 {
		return nil, res.Errors[0]
	}
	return b.scene, nil
}
