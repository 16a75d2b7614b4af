package types

import (
	"testing"

	"github.com/you-not-fish/gum/internal/syntax"
)

func TestBasicTypes(t *testing.T) {
	tests := []struct {
		kind BasicKind
		name string
		info BasicInfo
	}{
		{Int, "int", InfoInteger},
		{Num, "num", InfoFloat},
		{Bool, "bool", InfoBoolean},
		{Str, "str", InfoString},
		{Dynamic, "dynamic", InfoBoxed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Typ[tt.kind]
			if b.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", b.Kind(), tt.kind)
			}
			if b.Name() != tt.name || b.String() != tt.name {
				t.Errorf("Name() = %q, want %q", b.Name(), tt.name)
			}
			if b.Info() != tt.info {
				t.Errorf("Info() = %v, want %v", b.Info(), tt.info)
			}
		})
	}

	if Typ[Invalid] != nil {
		t.Error("Typ[Invalid] should be nil")
	}
}

func TestTypeString(t *testing.T) {
	point := NewStruct([]*Var{field("y", Typ[Num]), field("x", Typ[Num])})
	tests := []struct {
		name string
		t    Type
		want string
	}{
		{"array", NewArray(Typ[Int]), "[]int"},
		{"nested array", NewArray(NewArray(Typ[Str])), "[][]str"},
		{"struct sorted", point, "struct{x num; y num}"},
		{"empty struct", NewStruct(nil), "struct{}"},
		{"func", NewFunc([]*Var{NewParam(syntax.Pos{}, "p", point)}, Typ[Bool]), "func(p struct{x num; y num}) bool"},
		{"func no params", NewFunc(nil, Typ[Dynamic]), "func() dynamic"},
		{"array of func", NewArray(NewFunc(nil, Typ[Int])), "[]func() int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdenticalStringsAgree(t *testing.T) {
	a := NewStruct([]*Var{field("b", Typ[Str]), field("a", NewArray(Typ[Int]))})
	b := NewStruct([]*Var{field("a", NewArray(Typ[Int])), field("b", Typ[Str])})
	if !Identical(a, b) {
		t.Fatal("structs should be identical")
	}
	if a.String() != b.String() {
		t.Errorf("identical structs print differently: %s vs %s", a, b)
	}
}

func TestStructLookup(t *testing.T) {
	s := NewStruct([]*Var{field("a", Typ[Int]), field("b", Typ[Str])})
	if s.NumFields() != 2 {
		t.Fatalf("NumFields() = %d, want 2", s.NumFields())
	}
	f, i := s.Lookup("b")
	if f == nil || i != 1 || f.Type() != Typ[Str] {
		t.Errorf("Lookup(b) = %v, %d", f, i)
	}
	if f, i := s.Lookup("c"); f != nil || i != -1 {
		t.Errorf("Lookup(c) = %v, %d; want nil, -1", f, i)
	}
	// Declaration order is preserved for emission.
	if s.Field(0).Name() != "a" {
		t.Errorf("Field(0) = %s, want a", s.Field(0).Name())
	}
}

func TestVarKinds(t *testing.T) {
	pos := syntax.NewPos("t.js", 1, 1)
	local := NewVar(pos, "x", Typ[Int])
	param := NewParam(pos, "p", Typ[Num])
	pre := NewPredeclared("argc", Typ[Int])

	if local.IsParam() || local.IsPredeclared() || local.Kind() != LocalVar {
		t.Error("local variable has wrong kind")
	}
	if !param.IsParam() {
		t.Error("parameter not reported as parameter")
	}
	if !pre.IsPredeclared() || pre.Pos().IsValid() {
		t.Error("predeclared variable has wrong kind or a position")
	}
	if !field("f", Typ[Int]).IsField() {
		t.Error("field not reported as field")
	}

	spec1 := &syntax.VarSpec{Name: &syntax.Name{Value: "x"}}
	spec2 := &syntax.VarSpec{Name: &syntax.Name{Value: "x"}}
	local.AddDecl(spec1)
	local.AddDecl(spec2)
	if local.Decl() != spec1 || len(local.Decls()) != 2 {
		t.Error("declarators not recorded in order")
	}
	if param.Decl() != nil {
		t.Error("parameter has a declarator")
	}

	local.SetType(Typ[Num])
	if local.Type() != Typ[Num] {
		t.Error("SetType did not update the type")
	}
}

func TestFuncObj(t *testing.T) {
	decl := &syntax.FuncDecl{Name: &syntax.Name{Value: "f"}}
	obj := NewFuncObj(decl)
	if obj.Name() != "f" || obj.Decl() != decl {
		t.Fatal("FuncObj does not reflect its declaration")
	}
	if obj.Type() != nil {
		t.Error("type set before SetSignature")
	}
	sig := NewFunc(nil, Typ[Int])
	obj.SetSignature(sig)
	if obj.Signature() != sig || obj.Type() != sig {
		t.Error("SetSignature did not update the type")
	}
}
