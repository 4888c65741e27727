package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/habitat/pkg/server"
)

// ---------------------------------------------------------------------------
// 1. Empty editor: non-nil slices so JSON carries [] and not null.
// ---------------------------------------------------------------------------

func TestE2EEmptySourceExtended(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings for empty source, got %d", len(result.Warnings))
	}
	if result.Meshes == nil || result.Errors == nil || result.Warnings == nil || result.Groups == nil {
		t.Errorf("slices should be non-nil: %+v", result)
	}
}

func TestE2EErrorResultSlicesNonNil(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(+ 1 2")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for missing closing paren")
	}
	if result.Meshes == nil || result.Warnings == nil {
		t.Error("slices should be non-nil on error")
	}
	if result.Errors[0].Message == "" {
		t.Error("error message should not be empty")
	}
}

// ---------------------------------------------------------------------------
// 2. Form errors name what was wrong.
// ---------------------------------------------------------------------------

func TestE2EFormErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"unknown fixture kind", `(deck "d" :floor 0 :ceiling 2) (fixture "piano" :deck "d")`, "piano"},
		{"duplicate deck", `(deck "d" :floor 0 :ceiling 2) (deck "d" :floor 2 :ceiling 3)`, "already defined"},
		{"stair without decks", `(stair :hatch 0.5)`, ":from and :to"},
	}
	app := NewApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := app.Evaluate(tc.source)
			if len(result.Errors) == 0 {
				t.Fatalf("expected an error for %q", tc.source)
			}
			found := false
			for _, e := range result.Errors {
				if strings.Contains(e.Message, tc.want) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error mentioning %q, got: %v", tc.want, result.Errors)
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// 3. Warnings do not stop generation.
// ---------------------------------------------------------------------------

func TestE2EWarningsStillGenerate(t *testing.T) {
	app := NewApp()
	source := `
(deck "d" :floor -1 :ceiling 1 :sectors 4)
(fixture "desk" :deck "d" :sector 9)
(fixture "bunk" :deck "d" :sector 1)
(fixture "bunk" :deck "d" :sector 1)`
	result := app.Evaluate(source)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) < 2 {
		t.Fatalf("expected range and overlap warnings, got %v", result.Warnings)
	}
	if result.Summary.Fixtures != 2 || result.Summary.Skipped != 1 {
		t.Errorf("expected 2 placed and 1 skipped fixture, got %s", result.Summary)
	}
}

// ---------------------------------------------------------------------------
// 4. Degenerate geometry: a deck squeezed against the shell.
// ---------------------------------------------------------------------------

func TestE2EDegenerateDeck(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(deck "cap" :floor 4.85 :ceiling 5.5 :sectors 3)`)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	for _, m := range result.Meshes {
		if m.Group == "cap" {
			t.Errorf("degenerate deck should draw nothing, got %q", m.ID)
		}
	}
	if result.Summary.Skipped == 0 {
		t.Error("expected skipped elements to be counted")
	}
}

// ---------------------------------------------------------------------------
// 5. Rapid evaluation: no panics, errors and successes interleave cleanly.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	app := NewApp()

	sources := []string{
		`(deck "ok" :floor -1 :ceiling 1)`,
		`(deck "broken"`,
		``,
		`(fixture "bunk" :deck "missing")`,
		`(shell :inner 3 :outer 3.2)`,
		`(+ 1 2)`,
		`;; just a comment`,
		`(deck "fine" :floor 0 :ceiling 2 :sectors 5 :flush true)`,
		`(undefined-func 1 2 3)`,
		`(lander :tanks 2 :legs 3)`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}

	// The last successful layout is what the feed serves.
	f, err := app.Frame()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, g := range f.Groups {
		if g == "lander-systems" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the lander layout to be current, got groups %v", f.Groups)
	}
}

// ---------------------------------------------------------------------------
// 6. Comments only: shells, no errors.
// ---------------------------------------------------------------------------

func TestE2ECommentsOnly(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(";; nothing here\n;; or here\n")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors, got %v", result.Errors)
	}
	if len(result.Meshes) != 4 {
		t.Errorf("expected only shell meshes, got %d", len(result.Meshes))
	}
}

// ---------------------------------------------------------------------------
// 7. Arithmetic feeds forms.
// ---------------------------------------------------------------------------

func TestE2ENestedArithmeticDef(t *testing.T) {
	app := NewApp()
	source := `
(def deck-height 2.4)
(def deck-base (- 0 (/ deck-height 2)))
(deck "mid" :floor deck-base :ceiling (+ deck-base deck-height) :sectors (* 2 3))`
	result := app.Evaluate(source)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Summary.Sectors != 6 || result.Summary.Walls != 6 {
		t.Errorf("expected 6 sectors and walls, got %s", result.Summary)
	}
}

// ---------------------------------------------------------------------------
// 8. Command line.
// ---------------------------------------------------------------------------

func TestRunGenerateWritesFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "habitat.json")
	if err := run([]string{"generate", "-plan", "examples/habitat.hab", "-output", out, "-logging-level", "error"}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var f server.Frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatal(err)
	}
	if f.Name != "habitat" || len(f.Meshes) == 0 || f.Summary == nil {
		t.Errorf("unexpected frame %q with %d meshes", f.Name, len(f.Meshes))
	}
}

func TestRunCheck(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"check", "-logging-level", "error"}, &stdout); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout.String()) != "ok" {
		t.Errorf("expected the built-in habitat to check clean, got %q", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	cases := [][]string{
		nil,
		{"launch"},
		{"check", "-kernel", "voxel"},
		{"check", "-logging-level", "loud"},
	}
	for _, args := range cases {
		if err := run(args, &bytes.Buffer{}); err == nil {
			t.Errorf("expected an error for %v", args)
		}
	}
}
