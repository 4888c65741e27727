// Command habitat generates a sphere-bounded habitat and serves it to
// viewers.
//
// Usage:
//
//	habitat serve    [flags]   generate and serve the viewer feed
//	habitat generate [flags]   write the tessellated habitat as JSON
//	habitat check    [flags]   evaluate a layout and print its warnings
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chazu/habitat/pkg/config"
	"github.com/chazu/habitat/pkg/plan"
	"github.com/chazu/habitat/pkg/server"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.WithError(err).Error("habitat failed")
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: habitat <serve|generate|check> [flags]")
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return errors.New("missing command")
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	settingsPath := fs.String("config", "", "JSON settings file")
	// Parse once for -config, then reparse on top of the loaded file.
	first := config.Default()
	first.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := config.Load(*settingsPath)
	if err != nil {
		return err
	}
	fs = flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.String("config", *settingsPath, "JSON settings file")
	s.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := config.SetupLogging(s); err != nil {
		return err
	}

	app, err := NewAppWithSettings(s)
	if err != nil {
		return err
	}

	switch cmd {
	case "serve":
		return serve(app, s)
	case "generate":
		return generate(app, s, stdout)
	case "check":
		return check(app, s, stdout)
	default:
		usage(os.Stderr)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func serve(app *App, s config.Settings) error {
	name, p, err := app.LoadPlan(s.Plan)
	if err != nil {
		return err
	}
	f, err := app.Generate(name, p)
	if err != nil {
		return err
	}
	log.WithField("meshes", len(f.Meshes)).Info(f.Summary.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := server.New(app)
	app.OnFrame(srv.Publish)
	err = srv.ListenAndServe(ctx, s.Listen)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func generate(app *App, s config.Settings, stdout io.Writer) error {
	name, p, err := app.LoadPlan(s.Plan)
	if err != nil {
		return err
	}
	f, err := app.Generate(name, p)
	if err != nil {
		return err
	}

	w := stdout
	if s.Output != "" {
		out, err := os.Create(s.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()
		w = out
	}
	if err := json.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	log.WithField("meshes", len(f.Meshes)).WithField("output", s.Output).Info(f.Summary.String())
	return nil
}

func check(app *App, s config.Settings, stdout io.Writer) error {
	_, p, err := app.LoadPlan(s.Plan)
	if err != nil {
		return err
	}
	warnings := plan.Check(p)
	for _, w := range warnings {
		fmt.Fprintln(stdout, w)
	}
	if len(warnings) == 0 {
		fmt.Fprintln(stdout, "ok")
	}
	return nil
}
