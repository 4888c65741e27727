package scene

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationSeverity indicates whether a validation finding blocks Build or
// is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks Build
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID, e.Message)
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Validate runs every check on the scene. It is read-only.
func Validate(s *Scene) ValidationResult {
	var all []ValidationError
	all = append(all, validateTree(s)...)
	all = append(all, validateNames(s)...)
	all = append(all, validateLeaves(s)...)
	all = append(all, validateMaterials(s)...)

	var res ValidationResult
	for _, e := range all {
		if e.Severity == SeverityWarning {
			res.Warnings = append(res.Warnings, e)
		} else {
			res.Errors = append(res.Errors, e)
		}
	}
	return res
}

// validateTree checks that every node's ID matches its position under its
// parent and warns about nodes registered but unreachable from the root.
func validateTree(s *Scene) []ValidationError {
	var errs []ValidationError
	if s.root == nil {
		return []ValidationError{{Message: "scene has no root", Severity: SeverityError}}
	}

	reachable := make(map[NodeID]bool)
	s.Walk(func(n *Node, _ int) bool {
		if reachable[n.id] {
			errs = append(errs, ValidationError{
				NodeID:   n.id,
				Message:  "node appears more than once in the tree",
				Severity: SeverityError,
			})
			return false
		}
		reachable[n.id] = true
		for _, c := range n.children {
			if c.id != n.id.child(c.name) {
				errs = append(errs, ValidationError{
					NodeID:   c.id,
					Message:  fmt.Sprintf("id does not match path under %s", n.id),
					Severity: SeverityError,
				})
			}
		}
		return true
	})

	for id := range s.nodes {
		if !reachable[id] {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  "node is not reachable from the root (orphan)",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validateNames checks that group names are unique and that no name
// contains the path separator.
func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]NodeID)
	s.Walk(func(n *Node, _ int) bool {
		if n.name == "" || strings.Contains(n.name, "/") {
			errs = append(errs, ValidationError{
				NodeID:   n.id,
				Message:  fmt.Sprintf("invalid name %q", n.name),
				Severity: SeverityError,
			})
		}
		if n.kind != NodeGroup {
			return true
		}
		if prev, dup := seen[n.name]; dup {
			errs = append(errs, ValidationError{
				NodeID:   n.id,
				Message:  fmt.Sprintf("group name %q already used by %s", n.name, prev),
				Severity: SeverityError,
			})
		}
		seen[n.name] = n.id
		return true
	})
	return errs
}

// validateLeaves checks that solids are leaves that own geometry and warns
// about empty groups and degenerate solids.
func validateLeaves(s *Scene) []ValidationError {
	var errs []ValidationError
	s.Walk(func(n *Node, depth int) bool {
		switch n.kind {
		case NodeSolid:
			if len(n.children) > 0 {
				errs = append(errs, ValidationError{
					NodeID:   n.id,
					Message:  "solid node has children",
					Severity: SeverityError,
				})
			}
			if n.solid == nil {
				errs = append(errs, ValidationError{
					NodeID:   n.id,
					Message:  "solid node owns no solid",
					Severity: SeverityError,
				})
			} else if n.solid.Empty() {
				errs = append(errs, ValidationError{
					NodeID:   n.id,
					Message:  "solid is empty and emits no geometry",
					Severity: SeverityWarning,
				})
			}
		case NodeGroup:
			if len(n.children) == 0 && depth > 0 {
				errs = append(errs, ValidationError{
					NodeID:   n.id,
					Message:  "group is empty",
					Severity: SeverityWarning,
				})
			}
		}
		return true
	})
	return errs
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validateMaterials checks colors and opacity ranges on leaves.
func validateMaterials(s *Scene) []ValidationError {
	var errs []ValidationError
	s.Walk(func(n *Node, _ int) bool {
		if n.kind != NodeSolid {
			return true
		}
		m := n.material
		if !colorPattern.MatchString(m.Color) {
			errs = append(errs, ValidationError{
				NodeID:   n.id,
				Message:  fmt.Sprintf("color %q is not #rrggbb", m.Color),
				Severity: SeverityError,
			})
		}
		if m.Opacity < 0 || m.Opacity > 1 {
			errs = append(errs, ValidationError{
				NodeID:   n.id,
				Message:  fmt.Sprintf("opacity %g outside [0, 1]", m.Opacity),
				Severity: SeverityError,
			})
		}
		if m.Opacity < 1 && !m.Transparent {
			errs = append(errs, ValidationError{
				NodeID:   n.id,
				Message:  fmt.Sprintf("opacity %g has no effect without transparency", m.Opacity),
				Severity: SeverityWarning,
			})
		}
		return true
	})
	return errs
}
