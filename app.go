package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chazu/habitat/pkg/config"
	"github.com/chazu/habitat/pkg/engine"
	"github.com/chazu/habitat/pkg/habitat"
	"github.com/chazu/habitat/pkg/kernel"
	"github.com/chazu/habitat/pkg/plan"
	"github.com/chazu/habitat/pkg/scene"
	"github.com/chazu/habitat/pkg/server"
	"github.com/chazu/habitat/pkg/tessellate"
)

var log = config.NamedLogger("app")

// App ties the layout engine, the generator and the kernel together and
// keeps the last generated habitat for the viewer feed.
type App struct {
	settings config.Settings
	engine   *engine.Engine
	kernel   kernel.Kernel
	gen      *habitat.Generator

	mu      sync.RWMutex
	name    string
	result  *habitat.Result
	parts   []tessellate.Part
	onFrame func(server.Frame)
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// WarningData is an advisory plan check.
type WarningData struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []server.MeshData `json:"meshes"`
	Errors   []EvalErrorData   `json:"errors"`
	Warnings []WarningData     `json:"warnings"`
	Groups   []string          `json:"groups"`
	Summary  *habitat.Summary  `json:"summary,omitempty"`
	View     *scene.Snapshot   `json:"view,omitempty"`
}

// NewApp creates an App with the default settings.
func NewApp() *App {
	a, err := NewAppWithSettings(config.Default())
	if err != nil {
		panic(err)
	}
	return a
}

// NewAppWithSettings creates an App using the kernel s selects.
func NewAppWithSettings(s config.Settings) (*App, error) {
	k, err := s.NewKernel()
	if err != nil {
		return nil, err
	}
	return &App{
		settings: s,
		engine:   engine.NewEngine(),
		kernel:   k,
		gen:      habitat.New(k),
	}, nil
}

func newEvalResult() EvalResult {
	return EvalResult{
		Meshes:   []server.MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []WarningData{},
		Groups:   []string{},
	}
}

// Evaluate takes layout source and returns mesh data, errors and warnings.
// A successful evaluation replaces the habitat the viewer feed serves.
func (a *App) Evaluate(source string) EvalResult {
	result := newEvalResult()

	res, err := a.engine.Result(source)
	if err != nil {
		log.WithError(err).Error("evaluate failed")
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, WarningData{Subject: w.Subject, Message: w.Message})
	}

	f, err := a.Generate("layout", res.Plan)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	result.Meshes = f.Meshes
	result.Groups = f.Groups
	result.Summary = f.Summary
	result.View = &f.View
	return result
}

// Generate builds and tessellates p, stores it as the current habitat and
// returns its frame.
func (a *App) Generate(name string, p *plan.Plan) (server.Frame, error) {
	res, err := a.gen.Generate(p)
	if err != nil {
		return server.Frame{}, err
	}
	parts, err := tessellate.Tessellate(res.Scene, a.kernel)
	if err != nil {
		log.WithError(err).Error("tessellate failed")
		return server.Frame{}, fmt.Errorf("tessellation failed: %w", err)
	}
	st := tessellate.Summarize(parts)
	log.WithField("parts", st.Parts).
		WithField("empty", st.Empty).
		WithField("triangles", st.Triangles).
		Debug("tessellated")

	a.mu.Lock()
	// A regenerated habitat keeps the view the viewers are looking at.
	if a.result != nil {
		res.View.Set(a.result.View.State())
	}
	a.name, a.result, a.parts = name, res, parts
	notify := a.onFrame
	a.mu.Unlock()

	f := server.BuildFrame(name, parts, res.View, &res.Summary)
	if notify != nil {
		notify(f)
	}
	return f, nil
}

// OnFrame registers fn to receive every newly generated frame.
func (a *App) OnFrame(fn func(server.Frame)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onFrame = fn
}

// LoadPlan reads a plan from path: .hab files are evaluated as layout
// source and anything else is read as a JSON plan. An empty path yields the
// built-in habitat.
func (a *App) LoadPlan(path string) (string, *plan.Plan, error) {
	if path == "" {
		return "default", plan.Default(), nil
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !strings.EqualFold(filepath.Ext(path), ".hab") {
		p, err := plan.Load(path)
		return name, p, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return name, nil, fmt.Errorf("read layout: %w", err)
	}
	res, err := a.engine.Result(string(src))
	if err != nil {
		return name, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(res.Errors) > 0 {
		return name, nil, fmt.Errorf("%s: %w", path, res.Errors[0])
	}
	for _, w := range res.Warnings {
		log.WithField("subject", w.Subject).Warn(w.Message)
	}
	return name, res.Plan, nil
}

// Frame returns the current habitat with materials matching the view.
func (a *App) Frame() (server.Frame, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.result == nil {
		return server.Frame{}, server.ErrNoScene
	}
	return server.BuildFrame(a.name, a.parts, a.result.View, &a.result.Summary), nil
}

// View returns the current toggle view.
func (a *App) View() (scene.Snapshot, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.result == nil {
		return scene.Snapshot{}, server.ErrNoScene
	}
	return a.result.View.Snapshot(), nil
}

// ToggleView flips the outer shell between opaque and transparent.
func (a *App) ToggleView() (scene.Snapshot, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.result == nil {
		return scene.Snapshot{}, server.ErrNoScene
	}
	return a.result.View.Toggle(), nil
}

var _ server.Backend = (*App)(nil)
