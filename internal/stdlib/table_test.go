package stdlib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/you-not-fish/gum/internal/infer"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

func TestDefaultTable(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if tbl.Runtime != "^1.1.0" {
		t.Errorf("Runtime = %q, want ^1.1.0", tbl.Runtime)
	}

	tests := []struct {
		name string
		want string
	}{
		{"undefined", "dynamic"},
		{"argc", "int"},
		{"argv", "[]str"},
		{"INFINITY", "num"},
		{"NAN", "num"},
		{"atol", "func(s str) int"},
		{"sqrt", "func(x num) num"},
		{"pow", "func(x num, y num) num"},
		{"printf", "func(format str, arg str) int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := tbl.Lookup(tt.name)
			if typ == nil {
				t.Fatalf("%s not in table", tt.name)
			}
			if got := typ.String(); got != tt.want {
				t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
			}
		})
	}

	if tbl.Lookup("console") != nil {
		t.Error("console should come from the shim, not the table")
	}
}

func TestLoadTable(t *testing.T) {
	src := `{
		"version": "2.0.0",
		"runtime": ">=1.0.0",
		"globals": [
			{"name": "point", "type": {"struct": [{"name": "x", "type": "number"}, {"name": "y", "type": "number"}]}},
			{"name": "any", "type": "?"},
			{"name": "flag", "type": "bool"},
			{"name": "exit", "type": {"fn": {"params": [{"name": "code", "type": "int"}]}}}
		]
	}`
	tbl, err := LoadTable(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if tbl.Version != "2.0.0" {
		t.Errorf("Version = %q", tbl.Version)
	}

	var names []string
	for _, g := range tbl.Globals {
		names = append(names, g.Name)
	}
	if got := strings.Join(names, ","); got != "point,any,flag,exit" {
		t.Errorf("globals out of order: %s", got)
	}

	if got := tbl.Lookup("point").String(); got != "struct{x num; y num}" {
		t.Errorf("point = %s", got)
	}
	if !types.IsDynamic(tbl.Lookup("any")) {
		t.Errorf("any = %s, want dynamic", tbl.Lookup("any"))
	}
	exit := tbl.Lookup("exit").(*types.Func)
	if exit.Result() != nil {
		t.Errorf("exit result = %s, want none", exit.Result())
	}
}

func TestLoadTableErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `{`, "decoding signature table"},
		{"unknown_field", `{"globals": [], "extra": 1}`, "unknown field"},
		{"bad_constraint", `{"runtime": "not a constraint", "globals": []}`, "runtime constraint"},
		{"no_name", `{"globals": [{"type": "int"}]}`, "global without a name"},
		{"duplicate", `{"globals": [{"name": "a", "type": "int"}, {"name": "a", "type": "int"}]}`, "a declared twice"},
		{"bad_type", `{"globals": [{"name": "a", "type": "float"}]}`, `signature table: a: unknown type "float"`},
		{"bad_param", `{"globals": [{"name": "f", "type": {"fn": {"params": [{"name": "p", "type": "x"}]}}}]}`, "parameter p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestCheckRuntime(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		header     string
		version    string
		wantErr    string
	}{
		{"match", "^1.0.0", "#define GUM_RUNTIME_VERSION \"1.2.3\"\n", "1.2.3", ""},
		{"indented", "^1.0.0", "  # define GUM_RUNTIME_VERSION \"1.0.0\"\n", "1.0.0", ""},
		{"too_new", "^1.0.0", "#define GUM_RUNTIME_VERSION \"2.0.0\"\n", "2.0.0", "does not satisfy"},
		{"no_constraint", "", "#define GUM_RUNTIME_VERSION \"0.1.0\"\n", "0.1.0", ""},
		{"missing", "^1.0.0", "#define OTHER 1\n", "", "does not define GUM_RUNTIME_VERSION"},
		{"malformed", "^1.0.0", "#define GUM_RUNTIME_VERSION \"one\"\n", "", "runtime header version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := &Table{Runtime: tt.constraint}
			v, err := tbl.CheckRuntime([]byte(tt.header))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.version != "" && (v == nil || v.String() != tt.version) {
				t.Errorf("version = %v, want %s", v, tt.version)
			}
		})
	}
}

// TestShimChecks makes sure the shim infers cleanly against the table
// and gives the JavaScript globals the expected types.
func TestShimChecks(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	p := syntax.NewParser(ShimName, bytes.NewReader(Shim()), errh)
	prog := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("shim parse errors:\n%s", strings.Join(errs, "\n"))
	}

	eng, err := infer.Check(prog, &infer.Config{Error: errh, Predeclared: tbl.Globals}, nil)
	if err != nil {
		t.Fatalf("shim type errors:\n%s", strings.Join(errs, "\n"))
	}

	top := eng.TopScope()
	tests := []struct {
		name string
		want string
	}{
		{"Infinity", "num"},
		{"NaN", "num"},
		{"process", "struct{argc num; argv []str}"},
		{"parseInt", "func(str dynamic, base dynamic) num"},
	}
	for _, tt := range tests {
		obj := top.Lookup(tt.name)
		if obj == nil {
			t.Errorf("%s not declared by the shim", tt.name)
			continue
		}
		if got := obj.Type().String(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}
