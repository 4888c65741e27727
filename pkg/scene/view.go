package scene

import (
	"fmt"
	"sync"
)

// TransparentOpacity is the outer shell opacity in the transparent view.
const TransparentOpacity = 0.1

// ToggleState is the outer shell's visibility mode.
type ToggleState int

const (
	Opaque ToggleState = iota
	Transparent
)

func (s ToggleState) String() string {
	switch s {
	case Opaque:
		return "opaque"
	case Transparent:
		return "transparent"
	default:
		return fmt.Sprintf("ToggleState(%d)", int(s))
	}
}

// Label is the text a toggle control shows: the view it will switch to.
func (s ToggleState) Label() string {
	if s == Transparent {
		return "Toggle Outer View"
	}
	return "Toggle Transparent View"
}

// MarshalText encodes the state by name.
func (s ToggleState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *ToggleState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "opaque":
		*s = Opaque
	case "transparent":
		*s = Transparent
	default:
		return fmt.Errorf("scene: unknown toggle state %q", b)
	}
	return nil
}

// View holds the toggle state and the two materials it drives: the outer
// shell and its wireframe overlay. All methods are safe for concurrent use
// and both materials always reflect the same state.
type View struct {
	mu    sync.Mutex
	state ToggleState
	shell Material
	wire  Material
}

// NewView starts in the opaque state with the given base materials.
func NewView(outerShell, outerWire Material) *View {
	v := &View{shell: outerShell, wire: outerWire}
	v.apply()
	return v
}

// apply rewrites both materials for the current state. Callers hold mu.
func (v *View) apply() {
	for _, m := range []*Material{&v.shell, &v.wire} {
		if v.state == Transparent {
			m.Transparent = true
			m.Opacity = TransparentOpacity
		} else {
			m.Transparent = false
			m.Opacity = 1
		}
	}
}

// State returns the current state.
func (v *View) State() ToggleState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Toggle flips the state, updates both materials together and returns the
// view as it stands after this toggle.
func (v *View) Toggle() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Opaque {
		v.state = Transparent
	} else {
		v.state = Opaque
	}
	v.apply()
	return v.snapshot()
}

// Set puts the view in state s and returns the result.
func (v *View) Set(s ToggleState) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = s
	v.apply()
	return v.snapshot()
}

// Materials returns the outer shell and wireframe materials read under one
// lock.
func (v *View) Materials() (shell, wire Material) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.shell, v.wire
}

// Snapshot is a consistent copy of the view.
type Snapshot struct {
	State          ToggleState `json:"state"`
	Label          string      `json:"label"`
	OuterShell     Material    `json:"outerShell"`
	OuterWireframe Material    `json:"outerWireframe"`
}

// Snapshot returns the state and both materials read under one lock.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

func (v *View) snapshot() Snapshot {
	return Snapshot{State: v.state, Label: v.state.Label(), OuterShell: v.shell, OuterWireframe: v.wire}
}

// Resolve returns the material a node with the given role and base
// material should render with right now.
func (v *View) Resolve(role Role, base Material) Material {
	return v.Snapshot().Resolve(role, base)
}

// Resolve returns the material a node with the given role and base
// material renders with in this snapshot. Resolving every part of a frame
// from one snapshot keeps the shell and its wireframe in step.
func (s Snapshot) Resolve(role Role, base Material) Material {
	switch role {
	case RoleOuterShell:
		return s.OuterShell
	case RoleOuterWireframe:
		return s.OuterWireframe
	default:
		return base
	}
}
