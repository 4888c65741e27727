package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/habitat/pkg/fixture"
	"github.com/chazu/habitat/pkg/plan"
	zygo "github.com/glycerine/zygomys/zygo"
	"gonum.org/v1/gonum/spatial/r3"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms habitat layout source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: wall-segments -> wall_segments
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Values passed between builtins
// ---------------------------------------------------------------------------

// sexpDeck is returned by `deck` so later forms can name the deck by
// variable instead of by string.
type sexpDeck struct {
	name string
}

func (d *sexpDeck) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(deck %q)", d.name)
}
func (d *sexpDeck) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a point or offset.
type sexpVec3 struct {
	vec r3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpItem is the printable result of a form that adds something to the
// plan.
type sexpItem struct {
	form  string
	label string
}

func (it *sexpItem) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", it.form, it.label)
}
func (it *sexpItem) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a form's arguments split into keyword and positional parts.
// Every form reports the first conversion failure through err so the
// builtins read as a flat list of fields.
type kwArgs struct {
	form       string
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
	err        error
}

func parseArgs(form string, args []zygo.Sexp) *kwArgs {
	pa := &kwArgs{form: form, kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			pa.positional = append(pa.positional, args[i])
			continue
		}
		if i+1 >= len(args) {
			pa.fail(name, fmt.Errorf("missing value"))
			break
		}
		pa.kw[name] = args[i+1]
		i++
	}
	return pa
}

func (pa *kwArgs) fail(key string, err error) {
	if pa.err == nil {
		pa.err = fmt.Errorf("%s: %s: %w", pa.form, key, err)
	}
}

func (pa *kwArgs) num(key string, dst *float64) {
	v, ok := pa.kw[key]
	if !ok {
		return
	}
	f, err := toFloat64(v)
	if err != nil {
		pa.fail(key, err)
		return
	}
	*dst = f
}

func (pa *kwArgs) count(key string, dst *int) {
	v, ok := pa.kw[key]
	if !ok {
		return
	}
	n, err := toInt(v)
	if err != nil {
		pa.fail(key, err)
		return
	}
	*dst = n
}

func (pa *kwArgs) flag(key string, dst *bool) {
	v, ok := pa.kw[key]
	if !ok {
		return
	}
	b, err := toBool(v)
	if err != nil {
		pa.fail(key, err)
		return
	}
	*dst = b
}

func (pa *kwArgs) text(key string, dst *string) {
	v, ok := pa.kw[key]
	if !ok {
		return
	}
	s, err := toString(v)
	if err != nil {
		pa.fail(key, err)
		return
	}
	*dst = s
}

// deck accepts either a deck name or the value returned by `deck`.
func (pa *kwArgs) deck(key string, dst *string) {
	v, ok := pa.kw[key]
	if !ok {
		return
	}
	if d, ok := v.(*sexpDeck); ok {
		*dst = d.name
		return
	}
	pa.text(key, dst)
}

func (pa *kwArgs) vec3(key string, dst *r3.Vec) {
	v, ok := pa.kw[key]
	if !ok {
		return
	}
	vec, err := toVec3(v)
	if err != nil {
		pa.fail(key, err)
		return
	}
	*dst = vec
}

func (pa *kwArgs) ints(key string, dst *[]int) {
	v, ok := pa.kw[key]
	if !ok {
		return
	}
	items, err := sexpListToSlice(v)
	if err != nil {
		pa.fail(key, err)
		return
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, err := toInt(item)
		if err != nil {
			pa.fail(key, err)
			return
		}
		out = append(out, n)
	}
	*dst = out
}

// name returns the first positional argument as a string.
func (pa *kwArgs) name(what string) string {
	if len(pa.positional) < 1 {
		if pa.err == nil {
			pa.err = fmt.Errorf("%s requires a %s argument", pa.form, what)
		}
		return ""
	}
	s, err := toString(pa.positional[0])
	if err != nil {
		pa.fail(what, err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt accepts integers and integral floats.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected integer, got %g", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (r3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return r3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// Defaults for forms that leave a field out.
const (
	defaultSectors      = 4
	defaultHatch        = 0.6
	defaultStep         = 0.2
	defaultSweepTurns   = 1.0 // in turns of pi
	defaultConduitLift  = 2.0
	defaultConduitWidth = 0.04
)

// registerBuiltins installs the layout forms into env. Each form appends to
// p as it runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, p *plan.Plan) {
	decks := make(map[string]bool)

	// (shell :inner 4.8 :outer 5.0 :core 0.8)
	env.AddFunction("shell", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("shell", args)
		pa.num("inner", &p.InnerShellRadius)
		pa.num("outer", &p.OuterShellRadius)
		pa.num("core", &p.CoreRadius)
		if pa.err != nil {
			return zygo.SexpNull, pa.err
		}
		return &sexpItem{form: "shell", label: fmt.Sprintf("%g/%g", p.InnerShellRadius, p.OuterShellRadius)}, nil
	})

	// (settings :name "outpost" :wall-segments 12 :tube-tessellation 24 ...)
	env.AddFunction("settings", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("settings", args)
		pa.text("name", &p.Name)
		pa.num("floor-thickness", &p.FloorThickness)
		pa.num("wall-thickness", &p.WallThickness)
		pa.count("wall-segments", &p.WallSegments)
		pa.count("tube-tessellation", &p.TubeTessellation)
		pa.count("tube-sides", &p.TubeSides)
		pa.count("shell-width-segments", &p.ShellWidthSegments)
		pa.count("shell-height-segments", &p.ShellHeightSegments)
		if pa.err != nil {
			return zygo.SexpNull, pa.err
		}
		return &sexpItem{form: "settings", label: p.Name}, nil
	})

	// (deck "main-deck" :floor -1.5 :ceiling 1.5 :sectors 6 :core 1.0
	//       :flush false :doors true)
	env.AddFunction("deck", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("deck", args)
		l := plan.Level{Name: pa.name("name"), Sectors: defaultSectors}
		pa.num("floor", &l.Floor)
		pa.num("ceiling", &l.Ceiling)
		pa.num("core", &l.Core)
		pa.count("sectors", &l.Sectors)
		pa.flag("flush", &l.Flush)
		pa.flag("doors", &l.Doors)
		if pa.err != nil {
			return zygo.SexpNull, pa.err
		}
		if decks[l.Name] {
			return zygo.SexpNull, fmt.Errorf("deck: %q is already defined", l.Name)
		}
		decks[l.Name] = true
		p.Levels = append(p.Levels, l)
		return &sexpDeck{name: l.Name}, nil
	})

	// (fixture "bunk" :deck "main-deck" :sector 1 :angle 0.5 :radius 0.7 :turn 0)
	env.AddFunction("fixture", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("fixture", args)
		f := plan.Fixture{Kind: pa.name("kind"), Angle: 0.5, Radius: 0.5}
		pa.text("name", &f.Name)
		pa.deck("deck", &f.Deck)
		pa.count("sector", &f.Sector)
		pa.num("angle", &f.Angle)
		pa.num("radius", &f.Radius)
		pa.num("turn", &f.Turn)
		if pa.err != nil {
			return zygo.SexpNull, pa.err
		}
		if _, ok := fixture.Lookup(f.Kind); !ok {
			return zygo.SexpNull, fmt.Errorf("fixture: unknown kind %q, expected one of %s",
				f.Kind, strings.Join(fixture.Kinds(), ", "))
		}
		p.Fixtures = append(p.Fixtures, f)
		return &sexpItem{form: "fixture", label: f.Kind}, nil
	})

	// (zone "sleep" :deck "main-deck" :sector 1)
	env.AddFunction("zone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("zone", args)
		z := plan.Zone{Kind: pa.name("kind")}
		pa.deck("deck", &z.Deck)
		pa.count("sector", &z.Sector)
		if pa.err != nil {
			return zygo.SexpNull, pa.err
		}
		known := false
		for _, k := range plan.ZoneKinds {
			known = known || k == z.Kind
		}
		if !known {
			return zygo.SexpNull, fmt.Errorf("zone: unknown kind %q, expected one of %s",
				z.Kind, strings.Join(plan.ZoneKinds, ", "))
		}
		p.Zones = append(p.Zones, z)
		return &sexpItem{form: "zone", label: z.Kind}, nil
	})

	// (conduit "coolant" :deck "main-deck" :from 0 :to 3 :via (list 1 2)
	//          :sag (vec3 0 -0.4 0) :radius 0.04 :lift 2.6 :reach 0.1)
	env.AddFunction("conduit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("conduit", args)
		c := plan.Conduit{Name: pa.name("name"), Radius: defaultConduitWidth, Lift: defaultConduitLift}
		pa.deck("deck", &c.Deck)
		pa.count("from", &c.From)
		pa.count("to", &c.To)
		pa.ints("via", &c.Via)
		pa.vec3("sag", &c.Sag)
		pa.num("radius", &c.Radius)
		pa.num("lift", &c.Lift)
		pa.num("reach", &c.Reach)
		if pa.err != nil {
			return zygo.SexpNull, pa.err
		}
		p.Conduits = append(p.Conduits, c)
		return &sexpItem{form: "conduit", label: c.Name}, nil
	})

	// (stair :from "main-deck" :to "upper-deck" :hatch 0.6 :step 0.2 :sweep 1.5)
	// :sweep is in turns of pi.
	env.AddFunction("stair", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("stair", args)
		s := plan.Stair{Hatch: defaultHatch, Step: defaultStep}
		turns := defaultSweepTurns
		pa.deck("from", &s.From)
		pa.deck("to", &s.To)
		pa.num("hatch", &s.Hatch)
		pa.num("step", &s.Step)
		pa.num("sweep", &turns)
		if pa.err != nil {
			return zygo.SexpNull, pa.err
		}
		if s.From == "" || s.To == "" {
			return zygo.SexpNull, fmt.Errorf("stair requires :from and :to decks")
		}
		s.Sweep = turns * math.Pi
		p.Stairs = append(p.Stairs, s)
		return &sexpItem{form: "stair", label: s.From + "->" + s.To}, nil
	})

	// (lander :tanks 3 :legs 4 :drop 0.5)
	env.AddFunction("lander", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("lander", args)
		l := plan.Lander{Tanks: 3, Legs: 4, Drop: 0.5}
		pa.count("tanks", &l.Tanks)
		pa.count("legs", &l.Legs)
		pa.num("drop", &l.Drop)
		if pa.err != nil {
			return zygo.SexpNull, pa.err
		}
		p.Lander = &l
		return &sexpItem{form: "lander", label: fmt.Sprintf("%d tanks", l.Tanks)}, nil
	})

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			xyz[i] = f
		}
		return &sexpVec3{vec: r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})
}
