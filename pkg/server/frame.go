package server

import (
	"github.com/chazu/habitat/pkg/habitat"
	"github.com/chazu/habitat/pkg/scene"
	"github.com/chazu/habitat/pkg/tessellate"
)

// fallbackPalette colors parts whose material names no color.
var fallbackPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// Message types sent over the websocket.
const (
	TypeScene = "scene"
	TypeView  = "view"
	TypeError = "error"
)

// MeshData is the JSON mesh format sent to viewers.
type MeshData struct {
	ID          string    `json:"id"`
	PartName    string    `json:"partName"`
	Group       string    `json:"group"`
	Role        string    `json:"role"`
	Vertices    []float32 `json:"vertices"`
	Normals     []float32 `json:"normals"`
	Indices     []uint32  `json:"indices"`
	Color       string    `json:"color"`
	Opacity     float64   `json:"opacity"`
	Transparent bool      `json:"transparent"`
	DoubleSided bool      `json:"doubleSided"`
	Wireframe   bool      `json:"wireframe"`
}

// Frame is a complete scene as a viewer draws it.
type Frame struct {
	Type    string           `json:"type"`
	Name    string           `json:"name"`
	Groups  []string         `json:"groups"`
	Meshes  []MeshData       `json:"meshes"`
	View    scene.Snapshot   `json:"view"`
	Summary *habitat.Summary `json:"summary,omitempty"`
}

// ViewData announces a toggle to every viewer.
type ViewData struct {
	Type string         `json:"type"`
	View scene.Snapshot `json:"view"`
}

// ErrorData reports a failed request over the websocket.
type ErrorData struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// BuildFrame converts tessellated parts into a frame. v is read once and
// every outer shell part takes its material from that one snapshot, which
// is also the frame's View. Parts with empty meshes are left out.
func BuildFrame(name string, parts []tessellate.Part, v *scene.View, summary *habitat.Summary) Frame {
	f := Frame{Type: TypeScene, Name: name, Groups: []string{}, Meshes: []MeshData{}, Summary: summary}
	resolve := v != nil
	if resolve {
		f.View = v.Snapshot()
	}
	seen := make(map[string]bool)
	for i, p := range parts {
		if p.Group != "" && !seen[p.Group] {
			seen[p.Group] = true
			f.Groups = append(f.Groups, p.Group)
		}
		if p.Mesh == nil || p.Mesh.IsEmpty() {
			continue
		}
		m := p.Material
		if resolve {
			m = f.View.Resolve(p.Role, m)
		}
		color := m.Color
		if color == "" {
			color = fallbackPalette[i%len(fallbackPalette)]
		}
		f.Meshes = append(f.Meshes, MeshData{
			ID:          string(p.ID),
			PartName:    p.Mesh.PartName,
			Group:       p.Group,
			Role:        p.Role.String(),
			Vertices:    p.Mesh.Vertices,
			Normals:     p.Mesh.Normals,
			Indices:     p.Mesh.Indices,
			Color:       color,
			Opacity:     m.Opacity,
			Transparent: m.Transparent,
			DoubleSided: m.DoubleSided,
			Wireframe:   m.Wireframe,
		})
	}
	return f
}
