// Package config holds process settings: which geometry kernel to use,
// logging, the viewer listen address and where the habitat plan comes from.
// Settings start from defaults, are overlaid by an optional JSON file and
// finally by command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chazu/habitat/pkg/kernel"
	"github.com/chazu/habitat/pkg/kernel/mesh"
	"github.com/chazu/habitat/pkg/kernel/sdfx"
)

// Kernel backends.
const (
	KernelMesh = "mesh"
	KernelSdfx = "sdfx"
)

// ErrUnknownKernel is returned for a kernel name other than KernelMesh or
// KernelSdfx.
var ErrUnknownKernel = errors.New("config: unknown kernel")

// Settings is the process configuration.
type Settings struct {
	Kernel    string `json:"kernel"`
	MeshCells int    `json:"meshCells"` // sdfx marching cubes resolution
	LogLevel  string `json:"logLevel"`
	Listen    string `json:"listen"`
	Plan      string `json:"plan"`   // .hab layout or .json plan; empty uses the built-in habitat
	Output    string `json:"output"` // mesh JSON written by the generate command
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Kernel:    KernelMesh,
		MeshCells: sdfx.DefaultMeshCells,
		LogLevel:  "info",
		Listen:    "localhost:8080",
	}
}

// Load returns Default overlaid with the JSON file at path. A missing file
// is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Debug("no settings file, using defaults")
			return s, nil
		}
		return s, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return s, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, nil
}

// RegisterFlags binds command-line flags to s. Values already in s are
// the flag defaults, so flags override the file they were loaded from.
func (s *Settings) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&s.Kernel, "kernel", s.Kernel, "geometry kernel, one of: "+KernelMesh+", "+KernelSdfx)
	fs.IntVar(&s.MeshCells, "mesh-cells", s.MeshCells, "marching cubes cells along the longest axis (sdfx kernel)")
	fs.StringVar(&s.LogLevel, "logging-level", s.LogLevel, "logging level, one of: "+availableLoggingLevelsString)
	fs.StringVar(&s.Listen, "listen", s.Listen, "viewer feed host:port")
	fs.StringVar(&s.Plan, "plan", s.Plan, "habitat layout (.hab) or plan (.json); empty uses the built-in habitat")
	fs.StringVar(&s.Output, "output", s.Output, "write tessellated meshes as JSON to this file")
}

// Validate normalizes and checks s.
func (s *Settings) Validate() error {
	s.Kernel = strings.ToLower(s.Kernel)
	s.LogLevel = strings.ToLower(s.LogLevel)

	var errs []error
	if s.Kernel != KernelMesh && s.Kernel != KernelSdfx {
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownKernel, s.Kernel))
	}
	if !validateLoggingLevel(s.LogLevel) {
		errs = append(errs, fmt.Errorf("config: invalid logging level %q, expected one of: %s",
			s.LogLevel, availableLoggingLevelsString))
	}
	if s.Kernel == KernelSdfx && s.MeshCells < 8 {
		errs = append(errs, fmt.Errorf("config: mesh cells %d is too coarse, need at least 8", s.MeshCells))
	}
	return errors.Join(errs...)
}

// NewKernel returns the geometry kernel s selects.
func (s Settings) NewKernel() (kernel.Kernel, error) {
	switch strings.ToLower(s.Kernel) {
	case KernelMesh, "":
		return mesh.New(), nil
	case KernelSdfx:
		return sdfx.New(s.MeshCells), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKernel, s.Kernel)
}

var availableLoggingLevels = []string{"panic", "fatal", "error", "warn", "info", "debug", "trace"}
var availableLoggingLevelsString = strings.Join(availableLoggingLevels, ", ")

func validateLoggingLevel(level string) bool {
	for _, l := range availableLoggingLevels {
		if l == level {
			return true
		}
	}
	return false
}
