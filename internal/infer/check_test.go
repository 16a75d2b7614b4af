package infer

import (
	"strings"
	"testing"

	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// parseAndCheck parses source code and runs inference.
// Returns the program, the engine, and any errors.
func parseAndCheck(t *testing.T, src string, globals ...Global) (*syntax.Program, *Engine, *Info, []string) {
	t.Helper()
	var parseErrs []string
	p := syntax.NewParser("test.js", strings.NewReader(src), func(pos syntax.Pos, msg string) {
		parseErrs = append(parseErrs, pos.String()+": "+msg)
	})
	prog := p.Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors:\n%s", strings.Join(parseErrs, "\n"))
	}

	var typeErrs []string
	conf := &Config{
		Error: func(pos syntax.Pos, msg string) {
			typeErrs = append(typeErrs, pos.String()+": "+msg)
		},
		Predeclared: globals,
	}
	info := &Info{}
	eng, _ := Check(prog, conf, info)
	return prog, eng, info, typeErrs
}

// expectNoErrors checks that inference succeeds and returns the engine.
func expectNoErrors(t *testing.T, src string, globals ...Global) (*syntax.Program, *Engine) {
	t.Helper()
	prog, eng, _, errs := parseAndCheck(t, src, globals...)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", strings.Join(errs, "\n"))
	}
	return prog, eng
}

// expectErrors checks that inference produces the expected error substrings.
func expectErrors(t *testing.T, src string, expectedMsgs ...string) {
	t.Helper()
	_, _, _, errs := parseAndCheck(t, src)
	if len(errs) == 0 {
		t.Errorf("expected errors containing %v, got none", expectedMsgs)
		return
	}
	errText := strings.Join(errs, "\n")
	for _, msg := range expectedMsgs {
		if !strings.Contains(errText, msg) {
			t.Errorf("expected error containing %q, got:\n%s", msg, errText)
		}
	}
}

// varType returns the type of a top-level variable as a string.
func varType(t *testing.T, eng *Engine, name string) string {
	t.Helper()
	obj := eng.TopScope().Lookup(name)
	if obj == nil {
		t.Fatalf("%s not declared", name)
	}
	if obj.Type() == nil {
		return "<nil>"
	}
	return obj.Type().String()
}

func TestCheckVarTypes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want map[string]string
	}{
		{
			name: "literals",
			src:  "var a = 1; var s = 'x'; var b = true; var u;",
			want: map[string]string{"a": "num", "s": "str", "b": "bool", "u": "dynamic"},
		},
		{
			name: "plus",
			src:  "var x = 1 + 2; var y = 'a' + 1; var z = 1 + 'a'; var w = true + true;",
			want: map[string]string{"x": "num", "y": "str", "z": "str", "w": "dynamic"},
		},
		{
			name: "operators",
			src:  "var a = 1 < 2; var b = 3 * 4; var c = 5 | 1; var d = !a; var e = -b; var f = typeof a;",
			want: map[string]string{"a": "bool", "b": "num", "c": "num", "d": "bool", "e": "num", "f": "str"},
		},
		{
			name: "conflict",
			src:  "var v = 1; v = 'a'; var w = v;",
			want: map[string]string{"v": "dynamic", "w": "dynamic"},
		},
		{
			name: "compound",
			src:  "var s = 'a'; s += 1; var n = 1; n -= 2; n++;",
			want: map[string]string{"s": "str", "n": "num"},
		},
		{
			name: "conditional",
			src:  "var c = true ? 1 : 2; var d = true ? 1 : 'x';",
			want: map[string]string{"c": "num", "d": "dynamic"},
		},
		{
			name: "sequence",
			src:  "var a = (1, 'x');",
			want: map[string]string{"a": "str"},
		},
		{
			name: "redeclared",
			src:  "var a = 1; var a = 2;",
			want: map[string]string{"a": "num"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, eng := expectNoErrors(t, tt.src)
			for name, want := range tt.want {
				if got := varType(t, eng, name); got != want {
					t.Errorf("%s: got %s, want %s", name, got, want)
				}
			}
		})
	}
}

func TestCheckObjects(t *testing.T) {
	_, eng := expectNoErrors(t, "var o = {a: 1, b: 'x'}; var n = o.a; o.c = true;")
	if got := varType(t, eng, "o"); got != "struct{a num; b str; c bool}" {
		t.Errorf("o: got %s", got)
	}
	if got := varType(t, eng, "n"); got != "num" {
		t.Errorf("n: got %s", got)
	}

	// Field order follows first appearance.
	st := eng.TopScope().Lookup("o").Type().(*types.Struct)
	if st.Field(2).Name() != "c" {
		t.Errorf("third field = %s, want c", st.Field(2).Name())
	}
}

func TestCheckObjectMerge(t *testing.T) {
	_, eng := expectNoErrors(t, "var o = {a: 1}; o = {a: 2, b: 'x'};")
	if got := varType(t, eng, "o"); got != "struct{a num; b str}" {
		t.Errorf("o: got %s", got)
	}
}

func TestCheckRecursiveObject(t *testing.T) {
	_, eng := expectNoErrors(t, "var o = {}; o.self = o;")
	if got := varType(t, eng, "o"); got != "struct{self dynamic}" {
		t.Errorf("o: got %s", got)
	}
}

func TestCheckArrays(t *testing.T) {
	_, eng := expectNoErrors(t, "var a = [1, 2]; var e = a[0]; var l = a.length; var s = 'abc'.length; a[1] = 3;")
	want := map[string]string{"a": "[]num", "e": "num", "l": "num", "s": "num"}
	for name, w := range want {
		if got := varType(t, eng, name); got != w {
			t.Errorf("%s: got %s, want %s", name, got, w)
		}
	}

	_, eng = expectNoErrors(t, "var m = [[1], [2]]; var n = [1, 'x'];")
	if got := varType(t, eng, "m"); got != "[][]num" {
		t.Errorf("m: got %s", got)
	}
	if got := varType(t, eng, "n"); got != "[]dynamic" {
		t.Errorf("n: got %s", got)
	}
}

func TestCheckFunctions(t *testing.T) {
	prog, eng := expectNoErrors(t, "function f(a, b) { return a + b; } var r = f(1, 2);")
	decl := prog.Body[0].(*syntax.FuncDecl)
	if got := eng.FuncType(decl).String(); got != "func(a num, b num) num" {
		t.Errorf("f: got %s", got)
	}
	if got := varType(t, eng, "r"); got != "num" {
		t.Errorf("r: got %s", got)
	}
	obj := eng.TopScope().Lookup("f").(*types.FuncObj)
	if obj.Signature() == nil || obj.Signature().String() != "func(a num, b num) num" {
		t.Errorf("FuncObj signature = %v", obj.Signature())
	}
	scope := eng.FuncScope(decl)
	if scope == nil || scope.Signature() != obj.Signature() {
		t.Error("function scope does not carry the signature")
	}
}

func TestCheckHoisting(t *testing.T) {
	_, eng := expectNoErrors(t, "var r = f(); function f() { return 'x'; }")
	if got := varType(t, eng, "r"); got != "str" {
		t.Errorf("r: got %s", got)
	}
}

func TestCheckFuncLit(t *testing.T) {
	prog, eng := expectNoErrors(t, "var g = function(x) { return x; }; var s = g('hi');")
	if got := varType(t, eng, "g"); got != "func(x str) str" {
		t.Errorf("g: got %s", got)
	}
	if got := varType(t, eng, "s"); got != "str" {
		t.Errorf("s: got %s", got)
	}
	lit := prog.Body[0].(*syntax.VarDecl).List[0].Value.(*syntax.FuncLit)
	if eng.FuncScope(lit) == nil || eng.FuncScope(lit).Parent() != eng.TopScope() {
		t.Error("function literal scope not nested in top scope")
	}
}

func TestCheckNamedFuncLit(t *testing.T) {
	src := "var f = function fact(n) { return n ? n * fact(n - 1) : 1; }; var r = f(5);"
	prog, eng := expectNoErrors(t, src)
	if got := varType(t, eng, "r"); got != "num" {
		t.Errorf("r: got %s", got)
	}
	lit := prog.Body[0].(*syntax.VarDecl).List[0].Value.(*syntax.FuncLit)
	self := eng.FuncScope(lit).Lookup("fact")
	if self == nil || eng.SelfFunc(self) != lit {
		t.Error("named literal not bound to itself")
	}
}

func TestCheckParamConflict(t *testing.T) {
	_, eng := expectNoErrors(t, "function id(x) { return x; } id(1); id('a');")
	if got := eng.TopScope().Lookup("id").Type().String(); got != "func(x dynamic) dynamic" {
		t.Errorf("id: got %s", got)
	}
}

func TestCheckPredeclared(t *testing.T) {
	printf := types.NewFunc([]*types.Var{types.NewParam(syntax.Pos{}, "format", types.Typ[types.Str])}, types.Typ[types.Int])
	globals := []Global{
		{Name: "argc", Type: types.Typ[types.Int]},
		{Name: "printf", Type: printf},
	}
	prog, eng := expectNoErrors(t, "var n = argc; var k = printf('%d', 1);", globals...)

	if got := varType(t, eng, "n"); got != "num" {
		t.Errorf("n: got %s", got)
	}
	argc := prog.Body[0].(*syntax.VarDecl).List[0].Value
	if got := eng.ExprType(argc); got != types.Typ[types.Int] {
		t.Errorf("ExprType(argc) = %s, want int", got)
	}
	obj := eng.TopScope().Lookup("argc").(*types.Var)
	if !obj.IsPredeclared() || !eng.IsSeeded(obj) {
		t.Error("argc not predeclared")
	}
	if eng.IsSeeded(eng.TopScope().Lookup("n")) {
		t.Error("n must not be seeded")
	}
}

func TestCheckSeededVar(t *testing.T) {
	logType := types.NewFunc([]*types.Var{types.NewParam(syntax.Pos{}, "arg", types.Typ[types.Str])}, types.Typ[types.Dynamic])
	console := types.NewStruct([]*types.Var{types.NewField(syntax.Pos{}, "log", logType)})
	src := "var console = {log: function(s) { }}; console.log(1);"
	prog, eng := expectNoErrors(t, src, Global{Name: "console", Type: console})

	obj := eng.TopScope().Lookup("console").(*types.Var)
	if obj.IsPredeclared() || !eng.IsSeeded(obj) {
		t.Error("declared console should be seeded but not predeclared")
	}
	if got := obj.Type().String(); got != "struct{log func(arg str) dynamic}" {
		t.Errorf("console: got %s", got)
	}

	// The literal picks up the table's parameter type, and the call with a
	// number does not disturb it.
	lit := prog.Body[0].(*syntax.VarDecl).List[0].Value.(*syntax.ObjectLit).Props[0].Value.(*syntax.FuncLit)
	sig := eng.FuncType(lit)
	if sig == nil || sig.Param(0).Type() != types.Typ[types.Str] {
		t.Errorf("literal signature = %v", sig)
	}
	param := eng.FuncScope(lit).Lookup("s")
	if param == nil || param.Type() != types.Typ[types.Str] {
		t.Errorf("param s type = %v, want str", param)
	}
}

func TestCheckScopes(t *testing.T) {
	src := "var a = 1; function f(p) { var b = p; return b; }"
	prog, eng, info, errs := parseAndCheck(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := prog.Body[1].(*syntax.FuncDecl)
	ret := decl.Body.Stmts[1].(*syntax.ReturnStmt)

	if eng.ScopeOf(ret.Result) != eng.FuncScope(decl) {
		t.Error("return value not in the function scope")
	}
	if eng.ScopeOf(decl) != eng.TopScope() {
		t.Error("declaration not in the top scope")
	}
	if eng.FuncScope(decl).Comment() != "function f" {
		t.Errorf("comment = %q", eng.FuncScope(decl).Comment())
	}
	if info.Scopes[decl] != eng.FuncScope(decl) || info.Scopes[prog] != eng.TopScope() {
		t.Error("Info.Scopes not filled")
	}

	p := eng.FuncScope(decl).Lookup("p").(*types.Var)
	if !p.IsParam() {
		t.Error("p is not a parameter")
	}
	name := ret.Result.(*syntax.Name)
	if info.Uses[name] == nil || eng.ObjectOf(name) != info.Uses[name] {
		t.Error("use of b not recorded")
	}
	if info.Types[name] != types.Typ[types.Dynamic] {
		t.Errorf("Info.Types[b] = %v, want dynamic", info.Types[name])
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"undefined", "x = 1;", "test.js:1:1: undefined: x"},
		{"undefined_in_func", "function f() { return y; }", "undefined: y"},
		{"dup_func", "function f() {} function f() {}", "function f redeclared"},
		{"dup_param", "function f(a, a) {}", "duplicate parameter a"},
		{"var_and_func", "var f; function f() {}", "f is declared both as a variable and a function"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, tt.src, tt.want)
		})
	}
}

func TestCheckFirstError(t *testing.T) {
	prog := syntax.NewParser("test.js", strings.NewReader("a; b;"), nil).Parse()
	_, err := Check(prog, nil, nil)
	te, ok := err.(*TypeError)
	if !ok {
		t.Fatalf("err = %T, want *TypeError", err)
	}
	if te.Error() != "test.js:1:1: undefined: a" {
		t.Errorf("Error() = %q", te.Error())
	}
}

func TestCheckDeterministic(t *testing.T) {
	src := "var o = {x: 1, y: [1, 2]}; o.self = o; function f(a) { return {v: a, w: f}; } var r = f(o);"
	_, a := expectNoErrors(t, src)
	_, b := expectNoErrors(t, src)
	if a.TopScope().String() != b.TopScope().String() {
		t.Errorf("two runs differ:\n%s\n%s", a.TopScope(), b.TopScope())
	}
}
