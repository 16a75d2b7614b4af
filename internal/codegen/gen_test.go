package codegen

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/you-not-fish/gum/internal/infer"
	"github.com/you-not-fish/gum/internal/stdlib"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

func parse(t *testing.T, filename string, src []byte) *syntax.Program {
	t.Helper()
	var errs []string
	p := syntax.NewParser(filename, bytes.NewReader(src), func(pos syntax.Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	})
	prog := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors:\n%s", strings.Join(errs, "\n"))
	}
	return prog
}

func defaultTable(t *testing.T) *stdlib.Table {
	t.Helper()
	table, err := stdlib.Default()
	if err != nil {
		t.Fatalf("loading signature table: %v", err)
	}
	return table
}

func infer1(t *testing.T, prog *syntax.Program, globals []infer.Global) *infer.Engine {
	t.Helper()
	var errs []string
	conf := &infer.Config{
		Error: func(pos syntax.Pos, msg string) {
			errs = append(errs, pos.String()+": "+msg)
		},
		Predeclared: globals,
	}
	eng, _ := infer.Check(prog, conf, nil)
	if len(errs) > 0 {
		t.Fatalf("type errors:\n%s", strings.Join(errs, "\n"))
	}
	return eng
}

// check parses and infers src with the C library globals and extra.
func check(t *testing.T, src string, extra ...infer.Global) (*syntax.Program, *infer.Engine) {
	t.Helper()
	prog := parse(t, "test.js", []byte(src))
	globals := append(defaultTable(t).Globals, extra...)
	return prog, infer1(t, prog, globals)
}

func findSpecs(prog *syntax.Program, name string) []*syntax.VarSpec {
	var specs []*syntax.VarSpec
	syntax.Inspect(prog, func(n syntax.Node) bool {
		if spec, ok := n.(*syntax.VarSpec); ok && spec.Name.Value == name {
			specs = append(specs, spec)
		}
		return true
	})
	return specs
}

// findSpec returns the first declarator of name.
func findSpec(t *testing.T, prog *syntax.Program, name string) *syntax.VarSpec {
	t.Helper()
	specs := findSpecs(prog, name)
	if len(specs) == 0 {
		t.Fatalf("no declarator of %s", name)
	}
	return specs[0]
}

func sessionFor(table *stdlib.Table, extra []infer.Global) *Session {
	var names []string
	for _, g := range append(table.Globals, extra...) {
		names = append(names, g.Name)
	}
	return NewSession(names...)
}

// generate translates src alone.
func generate(t *testing.T, src string, extra ...infer.Global) (string, error) {
	t.Helper()
	prog, eng := check(t, src, extra...)
	b, err := Generate(prog, eng, sessionFor(defaultTable(t), extra))
	if err != nil {
		return "", err
	}
	return b.Format(), nil
}

// generateWithShim translates src after the JavaScript globals.
func generateWithShim(t *testing.T, src string) string {
	t.Helper()
	table := defaultTable(t)
	prog := syntax.Concat(
		parse(t, stdlib.ShimName, stdlib.Shim()),
		parse(t, "test.js", []byte(src)),
	)
	eng := infer1(t, prog, table.Globals)
	b, err := Generate(prog, eng, sessionFor(table, nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return b.Format()
}

func mustGenerate(t *testing.T, src string, extra ...infer.Global) string {
	t.Helper()
	out, err := generate(t, src, extra...)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return out
}

func wantContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q:\n%s", w, out)
		}
	}
}

func TestGenerateLog(t *testing.T) {
	out := generateWithShim(t, `var x = 5; console.log(x);`)
	// x is passed to a call, so it is an assigned global
	wantContains(t, out,
		"long x;",
		"x=5;",
		"console.log_(x);",
		"int main(int gum_argc,char*gum_argv[]){",
		"argc=gum_argc;",
	)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			"float store",
			`var x = 5; x = 2.5;`,
			[]string{"double x;", "x=5;", "(x=2.5);"},
		},
		{
			"integer loop",
			`var i = 0; while (i < 10) { i = i + 1; }`,
			[]string{"long i;", "i=0;", "while((i<10)){", "(i=(i+1));"},
		},
		{
			"function",
			`function add(a, b) { return a + b; } add(1, 2);`,
			[]string{"double add(double a,double b);", "return(a+b);", "add(1,2);"},
		},
		{
			"string concatenation",
			`var s = "a" + 1;`,
			[]string{"char*s;", `s=HPRINTF("%s%s","a",HPRINTF("%ld",(long)(1)));`},
		},
		{
			"local constant",
			`function f() { var k = 2; return k * 3; } f();`,
			[]string{"double f(void)", "long const k=2;", "return(k*3);"},
		},
		{
			"global constant",
			`var limit = 10; function f() { return limit; } f();`,
			[]string{"extern long const limit;", "long const limit=10;"},
		},
		{
			"captured constant",
			`function outer() { var n = 3; function inner() { return n; } return inner(); } outer();`,
			[]string{"return(3);"},
		},
		{
			"undefined",
			`var u = undefined;`,
			[]string{"u=JS_UNDEF;"},
		},
		{
			"string length",
			`var n = "abc".length;`,
			[]string{`((long)strlen("abc"))`},
		},
		{
			"for loop",
			`for (var j = 0; j < 3; j++) { continue; }`,
			[]string{"for(j=0;(j<3);(j++)){", "continue;"},
		},
		{
			"mixed addition",
			`var a = 1.5; var b = 2; var c = b + a;`,
			[]string{"double c;", "c=(b+a);"},
		},
		{
			"truthiness",
			`var s = ""; var k = 1; var h = 0.5; if (s && k) { s = "x"; } var z = !h;`,
			[]string{"if((JSString_TRUTHY(s)&&k)){", "bool z;", "z=(!JSNumber_TRUTHY(h));"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantContains(t, mustGenerate(t, tt.src), tt.want...)
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	checkBool := infer.Global{
		Name: "check",
		Type: types.NewFunc([]*types.Var{param("b", tBool)}, nil),
	}
	tests := []struct {
		name string
		src  string
		kind ErrorKind
		msg  string
	}{
		{
			"mutable capture",
			`function outer() { var n = 1; n = 2; function inner() { return n; } return inner(); } outer();`,
			UnhandledConstruct,
			"closure captures mutable variable n",
		},
		{
			"string to bool",
			`check("a");`,
			UnsupportedConversion,
			"cannot convert str to bool",
		},
		{
			"surplus argument",
			`function f(a) { return a; } f(1, 2);`,
			UnhandledConstruct,
			"too many arguments in call to f",
		},
		{
			"throw",
			`throw 1;`,
			UnhandledConstruct,
			"throw statement",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generate(t, tt.src, checkBool)
			var gerr *Error
			if !errors.As(err, &gerr) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if gerr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", gerr.Kind, tt.kind)
			}
			if gerr.Msg != tt.msg {
				t.Errorf("message = %q, want %q", gerr.Msg, tt.msg)
			}
			if !gerr.Pos.IsValid() {
				t.Error("error has no position")
			}
		})
	}
}

func TestGenerateStructDedup(t *testing.T) {
	prog, eng := check(t, `var a = { x: 1, y: 2 }; var b = { y: 3, x: 4 };`)
	sess := sessionFor(defaultTable(t), nil)
	buf, err := Generate(prog, eng, sess)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := buf.Format()
	if n := strings.Count(out, "typedef struct"); n != 1 {
		t.Errorf("%d typedefs, want 1:\n%s", n, out)
	}
	if n := sess.NumStructs(); n != 1 {
		t.Errorf("NumStructs() = %d, want 1", n)
	}
}

func TestGenerateStructDedupAcrossScopes(t *testing.T) {
	src := `
var a = { x: 1, y: 2 };
function f() { var b = { y: 3, x: 4 }; return b.x; }
f();
`
	out := mustGenerate(t, src)
	if n := strings.Count(out, "typedef struct"); n != 1 {
		t.Errorf("%d typedefs, want 1:\n%s", n, out)
	}
}

func TestGenerateForwardConstant(t *testing.T) {
	out := mustGenerate(t, `function f() { var s = 0; var i = s + k; var k = 2; return i; } f();`)
	if strings.Contains(out, "long const k") {
		t.Errorf("k is read before its declarator but defined in place:\n%s", out)
	}
	wantContains(t, out, "long k;", "k=2;", "long const i=(s+k);")
	if strings.Index(out, "long k;") > strings.Index(out, "long const i=") {
		t.Errorf("k is declared after its first use:\n%s", out)
	}
}

func TestGenerateTrailingReturn(t *testing.T) {
	out := mustGenerate(t, `function g() { return 1; } g();`)
	// one in g and the one ending main
	if n := strings.Count(out, "return"); n != 2 {
		t.Errorf("%d returns, want 2:\n%s", n, out)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	src := `
var p = { name: "p", at: { x: 1, y: 2 } };
var q = { at: { y: 3, x: 4 }, name: "q" };
function dist(a) { return a.at.x - a.at.y; }
var f = function (n) { return n * 2; };
dist(p);
f(3);
`
	first := mustGenerate(t, src)
	for i := 0; i < 5; i++ {
		if out := mustGenerate(t, src); out != first {
			t.Fatalf("run %d differs:\n%s\nfirst:\n%s", i, out, first)
		}
	}
}
