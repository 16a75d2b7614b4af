package codegen

import "testing"

func TestIsConst(t *testing.T) {
	src := `
function use(v) { return v; }
var lit = 1;
var derived = lit + 1;
var assigned = 1; assigned = 2;
var compound = 1; compound += 2;
var inc = 1; inc++;
var dec = 1; --dec;
var passed = 1; use(passed);
var nested = 1; use(nested + 1);
var member = { k: 1 };
var read = member.k;
var fn = function () { return assigned; };
var twice = 1; var twice = 2;
var args = argc;
var fromArgs = args;
var noinit;
var late = 1;
function f() { late = 2; }
`
	prog, eng := check(t, src)
	a := NewAnalyzer(eng)

	tests := []struct {
		name string
		want bool
	}{
		{"lit", true},
		{"derived", true},
		{"assigned", false},
		{"compound", false},
		{"inc", false},
		{"dec", false},
		{"passed", false},
		{"nested", false},
		{"member", true},
		{"read", false},
		{"fn", true},
		{"twice", false},
		{"args", false},
		{"fromArgs", false},
		{"noinit", true},
		{"late", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := findSpec(t, prog, tt.name)
			if got := a.IsConst(spec.Name); got != tt.want {
				t.Errorf("IsConst(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsConstCycle(t *testing.T) {
	prog, eng := check(t, `var m = n; var n = m;`)
	a := NewAnalyzer(eng)
	for _, name := range []string{"m", "n"} {
		if a.IsConst(findSpec(t, prog, name).Name) {
			t.Errorf("%s: initializers depending on each other must not be constant", name)
		}
	}
}

func TestIsConstFunctionScope(t *testing.T) {
	// Writes are only looked for in the scope declaring the variable.
	prog, eng := check(t, `
function f() { var local = 1; return local; }
function g() { var local = 1; local = 3; return local; }
`)
	a := NewAnalyzer(eng)

	var specs []bool
	for _, spec := range findSpecs(prog, "local") {
		specs = append(specs, a.IsConst(spec.Name))
	}
	if len(specs) != 2 || !specs[0] || specs[1] {
		t.Errorf("IsConst(local) in f, g = %v, want [true false]", specs)
	}
}

func TestMemberWritten(t *testing.T) {
	prog, eng := check(t, `var o = { k: 1 }; o.k = 2; var p = { k: 1 };`)
	a := NewAnalyzer(eng)

	o := findSpec(t, prog, "o")
	if !a.IsConst(o.Name) {
		t.Error("assigning a field leaves the binding constant")
	}
	if !a.MemberWritten(eng.ObjectOf(o.Name)) {
		t.Error("MemberWritten(o) = false, want true")
	}
	p := findSpec(t, prog, "p")
	if a.MemberWritten(eng.ObjectOf(p.Name)) {
		t.Error("MemberWritten(p) = true, want false")
	}
}
