package types

import (
	"strings"
	"testing"

	"github.com/you-not-fish/gum/internal/syntax"
)

// Helper function to create a scope for testing
func testScope(parent *Scope, comment string) *Scope {
	return NewScope(parent, nil, comment)
}

func TestScopeInsertAndLookup(t *testing.T) {
	scope := testScope(nil, "test")

	obj := NewVar(syntax.Pos{}, "x", Typ[Int])
	if existing := scope.Insert(obj); existing != nil {
		t.Errorf("Insert() returned non-nil for first insert")
	}
	if scope.Lookup("x") != obj {
		t.Errorf("Lookup() did not return inserted object")
	}
	if obj.Parent() != scope {
		t.Errorf("Insert() did not set the parent scope")
	}

	// Insert duplicate
	obj2 := NewVar(syntax.Pos{}, "x", Typ[Num])
	if existing := scope.Insert(obj2); existing != obj {
		t.Errorf("Insert() should return first object for duplicate")
	}
}

func TestScopeLookupParent(t *testing.T) {
	parent := testScope(nil, "parent")
	child := testScope(parent, "child")

	obj := NewVar(syntax.Pos{}, "x", Typ[Int])
	parent.Insert(obj)

	found, foundScope := child.LookupParent("x")
	if found != obj || foundScope != parent {
		t.Errorf("LookupParent() = %v, %v; want parent's object", found, foundScope)
	}
	if child.Lookup("x") != nil {
		t.Errorf("Lookup() should not find parent's object")
	}
	if obj, scope := child.LookupParent("missing"); obj != nil || scope != nil {
		t.Errorf("LookupParent(missing) = %v, %v", obj, scope)
	}
}

func TestScopeShadowing(t *testing.T) {
	parent := testScope(nil, "parent")
	child := testScope(parent, "child")

	outer := NewVar(syntax.Pos{}, "x", Typ[Int])
	inner := NewVar(syntax.Pos{}, "x", Typ[Str])
	parent.Insert(outer)
	child.Insert(inner)

	if found, _ := child.LookupParent("x"); found != inner {
		t.Errorf("inner declaration should shadow outer")
	}
	if found, _ := parent.LookupParent("x"); found != outer {
		t.Errorf("parent should still see outer declaration")
	}
}

func TestScopeTree(t *testing.T) {
	top := testScope(nil, "top")
	f := testScope(top, "function f")
	g := testScope(f, "function g")

	if !top.IsTop() || f.IsTop() {
		t.Error("IsTop mismatch")
	}
	if g.Top() != top {
		t.Error("Top() did not reach the outermost scope")
	}
	if len(top.Children()) != 1 || top.Children()[0] != f {
		t.Error("child scope not registered with parent")
	}
	if top.Pos().IsValid() {
		t.Error("scope without node has a valid position")
	}
}

func TestScopeFunctionNode(t *testing.T) {
	body := &syntax.BlockStmt{}
	decl := &syntax.FuncDecl{
		Name:   &syntax.Name{Value: "f"},
		Params: []*syntax.Name{{Value: "a"}, {Value: "b"}},
		Body:   body,
	}
	s := NewScope(testScope(nil, "top"), decl, "function f")

	if got := strings.Join(s.Params(), ","); got != "a,b" {
		t.Errorf("Params() = %q, want a,b", got)
	}
	if s.Body() != body || s.Node() != decl {
		t.Error("Body()/Node() do not reflect the declaration")
	}

	sig := NewFunc(nil, Typ[Int])
	s.SetSignature(sig)
	if s.Signature() != sig {
		t.Error("SetSignature did not stick")
	}

	lit := &syntax.FuncLit{Params: []*syntax.Name{{Value: "x"}}, Body: body}
	ls := NewScope(s, lit, "function literal")
	if got := ls.Params(); len(got) != 1 || got[0] != "x" {
		t.Errorf("literal Params() = %v", got)
	}
	if testScope(nil, "top").Body() != nil {
		t.Error("top-level scope has a body")
	}
}

func TestScopeNamesAndString(t *testing.T) {
	scope := testScope(nil, "top")
	scope.Insert(NewVar(syntax.Pos{}, "z", Typ[Int]))
	scope.Insert(NewVar(syntax.Pos{}, "a", Typ[Str]))
	scope.Insert(NewVar(syntax.Pos{}, "m", nil))

	if got := strings.Join(scope.Names(), ","); got != "a,m,z" {
		t.Errorf("Names() = %q, want a,m,z", got)
	}
	if scope.NumObjects() != 3 {
		t.Errorf("NumObjects() = %d, want 3", scope.NumObjects())
	}

	child := testScope(scope, "function f")
	child.Insert(NewParam(syntax.Pos{}, "p", Typ[Num]))

	want := "scope top {\n  a: str\n  m: <nil>\n  z: int\n  scope function f {\n    p: num\n  }\n}\n"
	if got := scope.String(); got != want {
		t.Errorf("String() =\n%s\nwant:\n%s", got, want)
	}
}
